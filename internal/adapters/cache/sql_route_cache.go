package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/platform/obs"
	"freight-estimate-service/internal/ports"

	"go.uber.org/zap"
)

// SQLRouteCache is a SQL-backed cache for origin->destination routes.
type SQLRouteCache struct {
	DB     *sql.DB
	TTL    time.Duration
	Logger *zap.Logger
}

func NewSQLRouteCache(db *sql.DB, ttl time.Duration, logger *zap.Logger) *SQLRouteCache {
	return &SQLRouteCache{DB: db, TTL: ttl, Logger: logger}
}

// CoordKey renders a coordinate at ~1m precision so nearby repeats share a row.
func CoordKey(c domain.Coordinate) string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lon)
}

func (s *SQLRouteCache) Get(
	ctx context.Context,
	origin, destination domain.Coordinate,
) (_ ports.ProviderRoute, _ bool, err error) {
	defer obs.Time(ctx, s.Logger, "route.cache.Get")(&err)

	if s.DB == nil {
		return ports.ProviderRoute{}, false, errors.New("route cache: db is nil")
	}

	q := `
	SELECT distance_meters, duration_seconds, geometry
    FROM route_cache
    WHERE origin = $1
        AND destination = $2
        AND ($3::float8 = 0 OR cached_at > now() - make_interval(secs => $3::float8));
	`

	var r ports.ProviderRoute
	err = s.DB.QueryRowContext(ctx, q, CoordKey(origin), CoordKey(destination), s.TTL.Seconds()).
		Scan(&r.DistanceMeters, &r.DurationSeconds, &r.Geometry)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.ProviderRoute{}, false, nil
	}
	if err != nil {
		return ports.ProviderRoute{}, false, fmt.Errorf("get route cache: %w", err)
	}

	return r, true, nil
}

func (s *SQLRouteCache) Put(
	ctx context.Context,
	origin, destination domain.Coordinate,
	route ports.ProviderRoute,
) (err error) {
	defer obs.Time(ctx, s.Logger, "route.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO route_cache (origin, destination, distance_meters, duration_seconds, geometry)
    VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		geometry = EXCLUDED.geometry,
		cached_at = now();
	`, CoordKey(origin), CoordKey(destination), route.DistanceMeters, route.DurationSeconds, route.Geometry)
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	return nil
}
