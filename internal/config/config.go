package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env  string `mapstructure:"ENV"`
	Port string `mapstructure:"PORT"`

	Geocoder      string `mapstructure:"GEOCODER"`
	Router        string `mapstructure:"ROUTER"`
	NominatimURL  string `mapstructure:"NOMINATIM_URL"`
	OSRMURL       string `mapstructure:"OSRM_URL"`
	ORSURL        string `mapstructure:"ORS_URL"`
	ORSAPIKey     string `mapstructure:"ORS_API_KEY"`
	GoogleMapsKey string `mapstructure:"GOOGLE_MAPS_KEY"`
	UserAgent     string `mapstructure:"USER_AGENT"`
	Region        string `mapstructure:"GEOCODE_REGION"`

	GeocodeInterval   time.Duration `mapstructure:"GEOCODE_INTERVAL"`
	GeocodeTimeout    time.Duration `mapstructure:"GEOCODE_TIMEOUT"`
	RouteTimeout      time.Duration `mapstructure:"ROUTE_TIMEOUT"`
	RouteRetryBackoff time.Duration `mapstructure:"ROUTE_RETRY_BACKOFF"`

	CacheBackend string        `mapstructure:"CACHE_BACKEND"`
	DatabaseURL  string        `mapstructure:"DATABASE_URL"`
	RedisURL     string        `mapstructure:"REDIS_URL"`
	CacheTTL     time.Duration `mapstructure:"CACHE_TTL"`
}

var defaults = map[string]any{
	"ENV":                 "production",
	"PORT":                "8080",
	"GEOCODER":            "nominatim",
	"ROUTER":              "osrm",
	"NOMINATIM_URL":       "https://nominatim.openstreetmap.org",
	"OSRM_URL":            "https://router.project-osrm.org",
	"ORS_URL":             "https://api.openrouteservice.org",
	"ORS_API_KEY":         "",
	"GOOGLE_MAPS_KEY":     "",
	"USER_AGENT":          "freight-estimate-service/1.0",
	"GEOCODE_REGION":      "in",
	"GEOCODE_INTERVAL":    "1s",
	"GEOCODE_TIMEOUT":     "10s",
	"ROUTE_TIMEOUT":       "30s",
	"ROUTE_RETRY_BACKOFF": "1s",
	"CACHE_BACKEND":       "none",
	"DATABASE_URL":        "",
	"REDIS_URL":           "",
	"CACHE_TTL":           "24h",
}

// Load reads configuration from the environment. A .env file, if any, is
// expected to have been loaded into the environment already.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg.Geocoder = strings.ToLower(strings.TrimSpace(cfg.Geocoder))
	cfg.Router = strings.ToLower(strings.TrimSpace(cfg.Router))
	cfg.CacheBackend = strings.ToLower(strings.TrimSpace(cfg.CacheBackend))

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Validate checks provider selections and their required credentials.
func (c Config) Validate() error {
	switch c.Geocoder {
	case "nominatim":
	case "ors":
		if c.ORSAPIKey == "" {
			return fmt.Errorf("GEOCODER=ors requires ORS_API_KEY")
		}
	case "google":
		if c.GoogleMapsKey == "" {
			return fmt.Errorf("GEOCODER=google requires GOOGLE_MAPS_KEY")
		}
	default:
		return fmt.Errorf("unknown GEOCODER %q", c.Geocoder)
	}

	switch c.Router {
	case "osrm":
	case "ors":
		if c.ORSAPIKey == "" {
			return fmt.Errorf("ROUTER=ors requires ORS_API_KEY")
		}
	case "google":
		if c.GoogleMapsKey == "" {
			return fmt.Errorf("ROUTER=google requires GOOGLE_MAPS_KEY")
		}
	default:
		return fmt.Errorf("unknown ROUTER %q", c.Router)
	}

	switch c.CacheBackend {
	case "none":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("CACHE_BACKEND=postgres requires DATABASE_URL")
		}
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("CACHE_BACKEND=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}

	// Public geocoders only allow one request per second.
	if c.Env != "development" && c.GeocodeInterval < time.Second {
		return fmt.Errorf("GEOCODE_INTERVAL must be at least 1s, got %s", c.GeocodeInterval)
	}

	return nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
