package maps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/platform/obs"
	"freight-estimate-service/internal/ports"
)

type osrmResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64   `json:"distance"`
	Duration float64   `json:"duration"`
	Geometry string    `json:"geometry"`
	Legs     []osrmLeg `json:"legs"`
}

type osrmLeg struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

// OSRMRouter requests driving routes from an OSRM /route/v1 endpoint.
type OSRMRouter struct {
	client  *httpClient
	baseURL string
	profile string
}

func NewOSRMRouter(baseURL string, session *http.Client, metrics *obs.Metrics) *OSRMRouter {
	return &OSRMRouter{
		client:  newHTTPClient("osrm", session, nil, metrics),
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving",
	}
}

func (o *OSRMRouter) Route(ctx context.Context, origin, destination domain.Coordinate) (ports.ProviderRoute, error) {
	// OSRM expects lon,lat pairs separated by ';'.
	endpoint := fmt.Sprintf("%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f",
		o.baseURL, o.profile,
		origin.Lon, origin.Lat,
		destination.Lon, destination.Lat,
	)

	req, err := o.client.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.ProviderRoute{}, fmt.Errorf("OSRM route: %w", err)
	}

	q := req.URL.Query()
	q.Set("overview", "full")
	q.Set("geometries", "polyline")
	q.Set("alternatives", "false")
	q.Set("steps", "false")
	req.URL.RawQuery = q.Encode()

	var decoded osrmResponse
	if err := o.client.doJSON(req, &decoded); err != nil {
		return ports.ProviderRoute{}, fmt.Errorf("OSRM route: %w", err)
	}

	if decoded.Code != "Ok" {
		return ports.ProviderRoute{}, fmt.Errorf("OSRM route: code %q: %s", decoded.Code, decoded.Message)
	}
	if len(decoded.Routes) == 0 {
		return ports.ProviderRoute{}, errors.New("OSRM route: no routes returned")
	}

	r := decoded.Routes[0]
	out := ports.ProviderRoute{
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		Geometry:        r.Geometry,
	}

	if len(r.Legs) > 0 {
		out.DistanceMeters, out.DurationSeconds = 0, 0
		for _, leg := range r.Legs {
			out.DistanceMeters += leg.Distance
			out.DurationSeconds += leg.Duration
		}
	}

	return out, nil
}
