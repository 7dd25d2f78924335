package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "nominatim", cfg.Geocoder)
	assert.Equal(t, "osrm", cfg.Router)
	assert.Equal(t, "none", cfg.CacheBackend)
	assert.Equal(t, time.Second, cfg.GeocodeInterval)
	assert.Equal(t, 10*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, 30*time.Second, cfg.RouteTimeout)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "in", cfg.Region)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ROUTER", "ORS")
	t.Setenv("ORS_API_KEY", "key")
	t.Setenv("ROUTE_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ors", cfg.Router)
	assert.Equal(t, 5*time.Second, cfg.RouteTimeout)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "google without key", env: map[string]string{"GEOCODER": "google"}},
		{name: "unknown router", env: map[string]string{"ROUTER": "bicycle"}},
		{name: "redis without url", env: map[string]string{"CACHE_BACKEND": "redis"}},
		{name: "interval too short", env: map[string]string{"GEOCODE_INTERVAL": "100ms"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGet(t *testing.T) {
	t.Setenv("SEED_FOR_TEST", "x")

	assert.Equal(t, "x", Get("SEED_FOR_TEST", "y"))
	assert.Equal(t, "y", Get("UNSET_FOR_TEST", "y"))
}
