package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/platform/obs"
	"freight-estimate-service/internal/ports"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Segments []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"segments"`
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// ORSRouter requests driving routes from OpenRouteService directions in
// GeoJSON form. The raw path is returned and encoded by the caller.
type ORSRouter struct {
	client  *httpClient
	baseURL string
	profile string
}

func NewORSRouter(apiKey, baseURL string, session *http.Client, metrics *obs.Metrics) (*ORSRouter, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSRouter{
		client:  newHTTPClient("ors_directions", session, map[string]string{"Authorization": apiKey}, metrics),
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving-hgv",
	}, nil
}

func (o *ORSRouter) Route(ctx context.Context, origin, destination domain.Coordinate) (ports.ProviderRoute, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{origin.CoordsToList(), destination.CoordsToList()},
	})
	if err != nil {
		return ports.ProviderRoute{}, fmt.Errorf("marshal directions request: %w", err)
	}

	req, err := o.client.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return ports.ProviderRoute{}, fmt.Errorf("ORS directions: %w", err)
	}

	var decoded directionsResponse
	if err := o.client.doJSON(req, &decoded); err != nil {
		return ports.ProviderRoute{}, fmt.Errorf("ORS directions: %w", err)
	}

	if len(decoded.Features) == 0 {
		return ports.ProviderRoute{}, errors.New("ORS directions: no routes returned")
	}

	f := decoded.Features[0]
	out := ports.ProviderRoute{
		DistanceMeters:  f.Properties.Summary.Distance,
		DurationSeconds: f.Properties.Summary.Duration,
	}

	if len(f.Properties.Segments) > 0 {
		out.DistanceMeters, out.DurationSeconds = 0, 0
		for _, s := range f.Properties.Segments {
			out.DistanceMeters += s.Distance
			out.DurationSeconds += s.Duration
		}
	}

	out.Path = make([]domain.Coordinate, 0, len(f.Geometry.Coordinates))
	for i, c := range f.Geometry.Coordinates {
		// GeoJSON positions may carry elevation as a third value.
		if len(c) < 2 {
			return ports.ProviderRoute{}, fmt.Errorf("ORS directions: invalid position at index %d", i)
		}
		out.Path = append(out.Path, domain.Coordinate{Lon: c[0], Lat: c[1]})
	}

	return out, nil
}
