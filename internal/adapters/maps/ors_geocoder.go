package maps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/platform/obs"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder resolves free text using OpenRouteService (/geocode/search).
type ORSGeocoder struct {
	client  *httpClient
	baseURL string
	country string
}

// NewORSGeocoder builds the geocoder. country is an optional ISO code passed
// as boundary.country.
func NewORSGeocoder(apiKey, baseURL, country string, session *http.Client, metrics *obs.Metrics) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSGeocoder{
		client:  newHTTPClient("ors_geocode", session, map[string]string{"Authorization": apiKey}, metrics),
		baseURL: strings.TrimRight(baseURL, "/"),
		country: country,
	}, nil
}

func (o *ORSGeocoder) Geocode(ctx context.Context, query string) ([]domain.Coordinate, error) {
	req, err := o.client.newRequest(ctx, http.MethodGet, o.baseURL+"/geocode/search", nil)
	if err != nil {
		return nil, fmt.Errorf("ORS geocode: %w", err)
	}

	q := req.URL.Query()
	q.Set("text", query)
	q.Set("size", "1")
	if o.country != "" {
		q.Set("boundary.country", o.country)
	}
	req.URL.RawQuery = q.Encode()

	var decoded geocodeResponse
	if err := o.client.doJSON(req, &decoded); err != nil {
		return nil, fmt.Errorf("ORS geocode %q: %w", query, err)
	}

	out := make([]domain.Coordinate, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		coords := f.Geometry.Coordinates
		if len(coords) != 2 {
			return nil, fmt.Errorf("ORS geocode %q: invalid coordinate format", query)
		}
		out = append(out, domain.Coordinate{Lon: coords[0], Lat: coords[1]})
	}

	return out, nil
}
