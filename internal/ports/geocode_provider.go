package ports

import (
	"context"

	"freight-estimate-service/internal/domain"
)

// Contract for turning free text into candidate coordinates.
type GeocodeProvider interface {
	// Return candidates for query, best first. No results is an empty slice.
	Geocode(ctx context.Context, query string) ([]domain.Coordinate, error)
}

// Optional persistent cache mapping normalized queries to coordinates.
type GeocodeCache interface {
	GetMany(ctx context.Context, queries []string) (map[string]domain.Coordinate, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinate) error
}
