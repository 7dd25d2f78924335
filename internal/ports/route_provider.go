package ports

import (
	"context"

	"freight-estimate-service/internal/domain"
)

// Driving route as reported by a routing provider, legs already summed.
// Geometry is an encoded polyline; providers that only return raw
// coordinates leave it empty and fill Path instead.
type ProviderRoute struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        string
	Path            []domain.Coordinate
}

// Contract for retrieving a driving route between two coordinates.
type RouteProvider interface {
	// Return the best driving route from origin to destination.
	Route(ctx context.Context, origin, destination domain.Coordinate) (ProviderRoute, error)
}

// Optional cache in front of a RouteProvider.
type RouteCache interface {
	Get(ctx context.Context, origin, destination domain.Coordinate) (ProviderRoute, bool, error)
	Put(ctx context.Context, origin, destination domain.Coordinate, route ProviderRoute) error
}
