package services

import (
	"sort"
	"strings"

	"freight-estimate-service/internal/domain"
)

type place struct {
	name  string
	coord domain.Coordinate
}

// knownPlaces is the offline last-resort table. Alternate spellings map to
// the same coordinates as the canonical name.
var knownPlaces = []place{
	{"Mumbai", domain.Coordinate{Lat: 19.0760, Lon: 72.8777}},
	{"Bombay", domain.Coordinate{Lat: 19.0760, Lon: 72.8777}},
	{"Delhi", domain.Coordinate{Lat: 28.6139, Lon: 77.2090}},
	{"New Delhi", domain.Coordinate{Lat: 28.6139, Lon: 77.2090}},
	{"Bangalore", domain.Coordinate{Lat: 12.9716, Lon: 77.5946}},
	{"Bengaluru", domain.Coordinate{Lat: 12.9716, Lon: 77.5946}},
	{"Banglore", domain.Coordinate{Lat: 12.9716, Lon: 77.5946}},
	{"Chennai", domain.Coordinate{Lat: 13.0827, Lon: 80.2707}},
	{"Madras", domain.Coordinate{Lat: 13.0827, Lon: 80.2707}},
	{"Kolkata", domain.Coordinate{Lat: 22.5726, Lon: 88.3639}},
	{"Calcutta", domain.Coordinate{Lat: 22.5726, Lon: 88.3639}},
	{"Hyderabad", domain.Coordinate{Lat: 17.3850, Lon: 78.4867}},
	{"Pune", domain.Coordinate{Lat: 18.5204, Lon: 73.8567}},
	{"Poona", domain.Coordinate{Lat: 18.5204, Lon: 73.8567}},
	{"Ahmedabad", domain.Coordinate{Lat: 23.0225, Lon: 72.5714}},
	{"Jaipur", domain.Coordinate{Lat: 26.9124, Lon: 75.7873}},
	{"Lucknow", domain.Coordinate{Lat: 26.8467, Lon: 80.9462}},
	{"Kochi", domain.Coordinate{Lat: 9.9312, Lon: 76.2673}},
	{"Cochin", domain.Coordinate{Lat: 9.9312, Lon: 76.2673}},
	{"Coimbatore", domain.Coordinate{Lat: 11.0168, Lon: 76.9558}},
	{"Coimbatur", domain.Coordinate{Lat: 11.0168, Lon: 76.9558}},
	{"Madurai", domain.Coordinate{Lat: 9.9252, Lon: 78.1198}},
	{"Trichy", domain.Coordinate{Lat: 10.7905, Lon: 78.7047}},
	{"Tiruchirappalli", domain.Coordinate{Lat: 10.7905, Lon: 78.7047}},
	{"Ooty", domain.Coordinate{Lat: 11.4102, Lon: 76.6950}},
	{"Surat", domain.Coordinate{Lat: 21.1702, Lon: 72.8311}},
}

// scanOrder is knownPlaces sorted longest name first; equal lengths keep
// declaration order so "New Delhi" wins over "Delhi".
var scanOrder = func() []place {
	out := make([]place, len(knownPlaces))
	copy(out, knownPlaces)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].name) > len(out[j].name)
	})
	return out
}()

// Gazetteer answers lookups against the offline place table.
type Gazetteer struct{}

// Lookup matches name exactly, ignoring case and surrounding whitespace.
func (Gazetteer) Lookup(name string) (domain.Coordinate, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Coordinate{}, false
	}
	for _, p := range knownPlaces {
		if strings.EqualFold(p.name, name) {
			return p.coord, true
		}
	}
	return domain.Coordinate{}, false
}

// FindIn returns the first known place whose name appears anywhere in text.
func (Gazetteer) FindIn(text string) (string, domain.Coordinate, bool) {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return "", domain.Coordinate{}, false
	}
	for _, p := range scanOrder {
		if strings.Contains(lower, strings.ToLower(p.name)) {
			return p.name, p.coord, true
		}
	}
	return "", domain.Coordinate{}, false
}
