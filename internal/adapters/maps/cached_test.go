package maps

import (
	"context"
	"errors"
	"testing"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memGeocodeCache struct {
	data    map[string]domain.Coordinate
	readErr error
}

func (m *memGeocodeCache) GetMany(_ context.Context, keys []string) (map[string]domain.Coordinate, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make(map[string]domain.Coordinate)
	for _, k := range keys {
		if c, ok := m.data[k]; ok {
			out[k] = c
		}
	}
	return out, nil
}

func (m *memGeocodeCache) PutMany(_ context.Context, entries map[string]domain.Coordinate) error {
	for k, v := range entries {
		m.data[k] = v
	}
	return nil
}

type memRouteCache struct {
	data map[[2]domain.Coordinate]ports.ProviderRoute
}

func (m *memRouteCache) Get(_ context.Context, o, d domain.Coordinate) (ports.ProviderRoute, bool, error) {
	r, ok := m.data[[2]domain.Coordinate{o, d}]
	return r, ok, nil
}

func (m *memRouteCache) Put(_ context.Context, o, d domain.Coordinate, r ports.ProviderRoute) error {
	m.data[[2]domain.Coordinate{o, d}] = r
	return nil
}

func TestCachedGeocoder_HitSkipsProvider(t *testing.T) {
	pune := domain.Coordinate{Lat: 18.5204, Lon: 73.8567}
	mock := NewMockGeocoder(map[string]domain.Coordinate{"Pune": pune})
	cache := &memGeocodeCache{data: map[string]domain.Coordinate{}}
	g := NewCachedGeocoder(mock, cache, nil)

	got, err := g.Geocode(context.Background(), "Pune")
	require.NoError(t, err)
	assert.Equal(t, []domain.Coordinate{pune}, got)
	assert.Equal(t, pune, cache.data["pune"])

	got, err = g.Geocode(context.Background(), "  PUNE ")
	require.NoError(t, err)
	assert.Equal(t, []domain.Coordinate{pune}, got)
	assert.Len(t, mock.Calls(), 1)
}

func TestCachedGeocoder_ReadErrorFallsThrough(t *testing.T) {
	pune := domain.Coordinate{Lat: 18.5204, Lon: 73.8567}
	mock := NewMockGeocoder(map[string]domain.Coordinate{"Pune": pune})
	cache := &memGeocodeCache{data: map[string]domain.Coordinate{}, readErr: errors.New("down")}
	g := NewCachedGeocoder(mock, cache, nil)

	got, err := g.Geocode(context.Background(), "Pune")
	require.NoError(t, err)
	assert.Equal(t, []domain.Coordinate{pune}, got)
}

func TestCachedGeocoder_MissesAreNotStored(t *testing.T) {
	mock := NewMockGeocoder(nil)
	cache := &memGeocodeCache{data: map[string]domain.Coordinate{}}
	g := NewCachedGeocoder(mock, cache, nil)

	got, err := g.Geocode(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, cache.data)
}

func TestCachedRouter_StoresOnlyRoutesWithGeometry(t *testing.T) {
	o := domain.Coordinate{Lat: 18.52, Lon: 73.85}
	d := domain.Coordinate{Lat: 19.07, Lon: 72.87}

	mock := NewMockRouter(
		MockRouteResponse{Route: ports.ProviderRoute{DistanceMeters: 1000, DurationSeconds: 60}},
		MockRouteResponse{Route: ports.ProviderRoute{DistanceMeters: 1000, DurationSeconds: 60, Geometry: "_p~iF~ps|U"}},
	)
	cache := &memRouteCache{data: map[[2]domain.Coordinate]ports.ProviderRoute{}}
	r := NewCachedRouter(mock, cache, nil)

	_, err := r.Route(context.Background(), o, d)
	require.NoError(t, err)
	assert.Empty(t, cache.data)

	_, err = r.Route(context.Background(), o, d)
	require.NoError(t, err)
	assert.Len(t, cache.data, 1)

	got, err := r.Route(context.Background(), o, d)
	require.NoError(t, err)
	assert.Equal(t, "_p~iF~ps|U", got.Geometry)
	assert.Equal(t, 2, mock.Calls())
}
