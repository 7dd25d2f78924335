package services

import (
	"math"

	"freight-estimate-service/internal/domain"
)

type distanceBand struct {
	maxKm     float64
	tier      string
	vehicle   string
	ratePerKm float64
}

// Upper bounds are inclusive; the last band is open-ended.
var distanceBands = []distanceBand{
	{40, "Local City Driver", "Mini Truck", 12},
	{150, "Regional Driver (2+ years)", "Light Commercial Vehicle", 18},
	{500, "Intercity Driver (5+ years)", "Medium Goods Vehicle", 25},
	{math.Inf(1), "Long-Haul Specialist (8+ years)", "Heavy Duty Truck", 32},
}

var mountainBand = distanceBand{
	tier:      "Mountain Terrain Specialist",
	vehicle:   "4x4 Cargo Truck",
	ratePerKm: 40,
}

// Heuristic-only keywords; the cost model keeps its own list.
var suggestionMountainKeywords = []string{"ooty", "manali", "shimla", "munnar", "kodaikanal"}

// SuggestTrip is the coarse distance-band heuristic: a driver tier, a vehicle
// type and a flat-rate trip cost.
func SuggestTrip(origin, destination string, distanceKm float64) domain.Suggestion {
	band := distanceBands[len(distanceBands)-1]
	for _, b := range distanceBands {
		if distanceKm <= b.maxKm {
			band = b
			break
		}
	}

	mountain := containsAny(origin, suggestionMountainKeywords) ||
		containsAny(destination, suggestionMountainKeywords)
	if mountain {
		band = mountainBand
	}

	return domain.Suggestion{
		ExperienceTier: band.tier,
		VehicleType:    band.vehicle,
		RatePerKm:      band.ratePerKm,
		FuelCost:       roundTo(distanceKm*band.ratePerKm, 2),
		Mountain:       mountain,
	}
}
