package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const geocodeKeyPrefix = "geocode:"

// RedisGeocodeCache stores geocode results as JSON values with a TTL.
type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client, ttl: ttl, logger: logger}
}

func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Coordinate, err error) {
	defer obs.Time(ctx, r.logger, "geocode.redis.GetMany")(&err)

	if r.client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := uniqueKeys(queries)
	out := make(map[string]domain.Coordinate, len(uniq))
	if len(uniq) == 0 {
		return out, nil
	}

	keys := make([]string, len(uniq))
	for i, q := range uniq {
		keys[i] = geocodeKeyPrefix + q
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: mget: %w", err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}

		var c domain.Coordinate
		if err := json.Unmarshal([]byte(s), &c); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode %q: %w", uniq[i], err)
		}
		out[uniq[i]] = c
	}

	return out, nil
}

func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinate) (err error) {
	defer obs.Time(ctx, r.logger, "geocode.redis.PutMany")(&err)

	if r.client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.client.TxPipeline()
	for query, c := range results {
		if query == "" {
			return errors.New("insert geocode cache: empty query key")
		}

		b, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("insert geocode cache: encode %q: %w", query, err)
		}
		pipe.Set(ctx, geocodeKeyPrefix+query, b, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: exec: %w", err)
	}

	return nil
}
