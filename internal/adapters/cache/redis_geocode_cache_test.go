package cache

import (
	"context"
	"testing"
	"time"

	"freight-estimate-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisGeocodeCache_RoundTrip(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, time.Hour, nil)
	ctx := context.Background()

	pune := domain.Coordinate{Lat: 18.5204, Lon: 73.8567}
	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinate{"pune": pune}))

	got, err := c.GetMany(ctx, []string{"pune", "mumbai", "pune", " "})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Coordinate{"pune": pune}, got)
}

func TestRedisGeocodeCache_Expires(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, time.Minute, nil)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinate{"delhi": {Lat: 28.6139, Lon: 77.209}}))
	assert.Equal(t, time.Minute, mr.TTL(geocodeKeyPrefix+"delhi"))

	mr.FastForward(2 * time.Minute)

	got, err := c.GetMany(ctx, []string{"delhi"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisGeocodeCache_EmptyInputs(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, 0, nil)

	got, err := c.GetMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, c.PutMany(context.Background(), nil))
}

func TestRedisGeocodeCache_ServerDown(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, time.Hour, nil)
	mr.Close()

	_, err := c.GetMany(context.Background(), []string{"pune"})
	require.Error(t, err)
}
