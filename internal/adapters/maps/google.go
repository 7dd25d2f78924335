package maps

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/platform/obs"
	"freight-estimate-service/internal/ports"

	gmaps "googlemaps.github.io/maps"
)

// GoogleProvider implements both GeocodeProvider and RouteProvider on top of
// the Google Maps Geocoding and Directions APIs.
type GoogleProvider struct {
	client  *gmaps.Client
	region  string
	metrics *obs.Metrics
}

// NewGoogleProvider builds the client. baseURL overrides the API host and is
// empty in production. region biases geocoding (ccTLD, e.g. "in").
func NewGoogleProvider(apiKey, baseURL, region string, session *http.Client, metrics *obs.Metrics) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	opts := []gmaps.ClientOption{gmaps.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, gmaps.WithBaseURL(baseURL))
	}
	if session != nil {
		opts = append(opts, gmaps.WithHTTPClient(session))
	}

	client, err := gmaps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create google maps client: %w", err)
	}

	return &GoogleProvider{client: client, region: region, metrics: metrics}, nil
}

func (g *GoogleProvider) Geocode(ctx context.Context, query string) ([]domain.Coordinate, error) {
	results, err := g.client.Geocode(ctx, &gmaps.GeocodingRequest{
		Address: query,
		Region:  g.region,
	})
	if err != nil {
		g.metrics.ProviderRequest("google_geocode", "error")
		return nil, fmt.Errorf("google geocode %q: %w", query, err)
	}
	g.metrics.ProviderRequest("google_geocode", "ok")

	out := make([]domain.Coordinate, 0, len(results))
	for _, r := range results {
		out = append(out, domain.Coordinate{
			Lat: r.Geometry.Location.Lat,
			Lon: r.Geometry.Location.Lng,
		})
	}

	return out, nil
}

func (g *GoogleProvider) Route(ctx context.Context, origin, destination domain.Coordinate) (ports.ProviderRoute, error) {
	routes, _, err := g.client.Directions(ctx, &gmaps.DirectionsRequest{
		Origin:      latLng(origin),
		Destination: latLng(destination),
		Mode:        gmaps.TravelModeDriving,
	})
	if err != nil {
		g.metrics.ProviderRequest("google_directions", "error")
		return ports.ProviderRoute{}, fmt.Errorf("google directions: %w", err)
	}
	g.metrics.ProviderRequest("google_directions", "ok")

	if len(routes) == 0 {
		return ports.ProviderRoute{}, errors.New("google directions: no routes returned")
	}

	r := routes[0]
	if len(r.Legs) == 0 {
		return ports.ProviderRoute{}, errors.New("google directions: route has no legs")
	}

	out := ports.ProviderRoute{Geometry: r.OverviewPolyline.Points}
	for _, leg := range r.Legs {
		out.DistanceMeters += float64(leg.Distance.Meters)
		out.DurationSeconds += leg.Duration.Seconds()
	}

	return out, nil
}

func latLng(c domain.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}
