package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/platform/obs"

	"go.uber.org/zap"
)

// SQLGeocodeCache is a SQL-backed cache mapping normalized queries to
// coordinates. Rows older than TTL are ignored; a zero TTL keeps them forever.
type SQLGeocodeCache struct {
	DB     *sql.DB
	TTL    time.Duration
	Logger *zap.Logger
}

func NewSQLGeocodeCache(db *sql.DB, ttl time.Duration, logger *zap.Logger) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, TTL: ttl, Logger: logger}
}

// Fetch cached coordinates for the given queries.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Coordinate, err error) {
	defer obs.Time(ctx, s.Logger, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(queries)
	if len(uniq) == 0 {
		return map[string]domain.Coordinate{}, nil
	}

	q := `
	SELECT query, lat, lon
    FROM geocode_cache
    WHERE query = ANY($1::text[])
        AND ($2::float8 = 0 OR cached_at > now() - make_interval(secs => $2::float8));
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq, s.TTL.Seconds())
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinate, len(uniq))
	for rows.Next() {
		var query string
		var lat, lon float64
		if err := rows.Scan(&query, &lat, &lon); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[query] = domain.Coordinate{Lat: lat, Lon: lon}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store query -> coordinate mappings in the cache.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinate) (err error) {
	defer obs.Time(ctx, s.Logger, "geocode.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (query, lat, lon)
    VALUES ($1, $2, $3)
	ON CONFLICT (query) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		cached_at = now();
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for query, c := range results {
		if strings.TrimSpace(query) == "" {
			return errors.New("insert geocode cache: empty query key")
		}

		if _, err := stmt.ExecContext(ctx, query, c.Lat, c.Lon); err != nil {
			return fmt.Errorf("insert geocode cache query=%q: %w", query, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}

func uniqueKeys(keys []string) []string {
	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}

		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	return uniq
}
