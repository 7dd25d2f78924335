package maps

import (
	"context"
	"strings"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/ports"

	"go.uber.org/zap"
)

// normalize ensures consistent cache keys by collapsing whitespace and case.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// CachedGeocoder serves repeated queries from a persistent cache. Cache
// failures are logged and the provider is used directly.
type CachedGeocoder struct {
	provider ports.GeocodeProvider
	cache    ports.GeocodeCache
	logger   *zap.Logger
}

func NewCachedGeocoder(provider ports.GeocodeProvider, cache ports.GeocodeCache, logger *zap.Logger) *CachedGeocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGeocoder{provider: provider, cache: cache, logger: logger}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, query string) ([]domain.Coordinate, error) {
	key := normalize(query)
	if key == "" {
		return c.provider.Geocode(ctx, query)
	}

	hits, err := c.cache.GetMany(ctx, []string{key})
	if err != nil {
		c.logger.Warn("geocode cache read failed", zap.String("query", key), zap.Error(err))
	} else if coord, ok := hits[key]; ok {
		return []domain.Coordinate{coord}, nil
	}

	results, err := c.provider.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(results) > 0 {
		if err := c.cache.PutMany(ctx, map[string]domain.Coordinate{key: results[0]}); err != nil {
			c.logger.Warn("geocode cache write failed", zap.String("query", key), zap.Error(err))
		}
	}

	return results, nil
}

// CachedRouter serves repeated coordinate pairs from a persistent cache.
// Only complete routes with geometry are stored.
type CachedRouter struct {
	provider ports.RouteProvider
	cache    ports.RouteCache
	logger   *zap.Logger
}

func NewCachedRouter(provider ports.RouteProvider, cache ports.RouteCache, logger *zap.Logger) *CachedRouter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRouter{provider: provider, cache: cache, logger: logger}
}

func (c *CachedRouter) Route(ctx context.Context, origin, destination domain.Coordinate) (ports.ProviderRoute, error) {
	cached, ok, err := c.cache.Get(ctx, origin, destination)
	if err != nil {
		c.logger.Warn("route cache read failed", zap.Error(err))
	} else if ok {
		return cached, nil
	}

	route, err := c.provider.Route(ctx, origin, destination)
	if err != nil {
		return ports.ProviderRoute{}, err
	}

	if route.Geometry != "" {
		if err := c.cache.Put(ctx, origin, destination, route); err != nil {
			c.logger.Warn("route cache write failed", zap.Error(err))
		}
	}

	return route, nil
}
