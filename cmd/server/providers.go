package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"freight-estimate-service/internal/adapters/cache"
	"freight-estimate-service/internal/adapters/maps"
	"freight-estimate-service/internal/config"
	"freight-estimate-service/internal/platform/db"
	"freight-estimate-service/internal/platform/obs"
	"freight-estimate-service/internal/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// buildProviders selects the geocoding and routing providers from config and
// optionally wraps them in persistent caches. cleanup releases cache clients.
func buildProviders(
	ctx context.Context,
	cfg config.Config,
	session *http.Client,
	logger *zap.Logger,
	metrics *obs.Metrics,
) (ports.GeocodeProvider, ports.RouteProvider, func(), error) {
	cleanup := func() {}

	var google *maps.GoogleProvider
	if cfg.Geocoder == "google" || cfg.Router == "google" {
		g, err := maps.NewGoogleProvider(cfg.GoogleMapsKey, "", cfg.Region, session, metrics)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("build providers: %w", err)
		}
		google = g
	}

	var geocoder ports.GeocodeProvider
	switch cfg.Geocoder {
	case "nominatim":
		g, err := maps.NewNominatimGeocoder(cfg.NominatimURL, cfg.UserAgent, session, metrics)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("build providers: %w", err)
		}
		geocoder = g
	case "ors":
		g, err := maps.NewORSGeocoder(cfg.ORSAPIKey, cfg.ORSURL, strings.ToUpper(cfg.Region), session, metrics)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("build providers: %w", err)
		}
		geocoder = g
	case "google":
		geocoder = google
	default:
		return nil, nil, cleanup, fmt.Errorf("build providers: unknown geocoder %q", cfg.Geocoder)
	}

	var router ports.RouteProvider
	switch cfg.Router {
	case "osrm":
		router = maps.NewOSRMRouter(cfg.OSRMURL, session, metrics)
	case "ors":
		r, err := maps.NewORSRouter(cfg.ORSAPIKey, cfg.ORSURL, session, metrics)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("build providers: %w", err)
		}
		router = r
	case "google":
		router = google
	default:
		return nil, nil, cleanup, fmt.Errorf("build providers: unknown router %q", cfg.Router)
	}

	switch cfg.CacheBackend {
	case "postgres":
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("build providers: %w", err)
		}
		if err := db.InitSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, cleanup, fmt.Errorf("build providers: %w", err)
		}
		cleanup = func() { _ = conn.Close() }

		geocoder = maps.NewCachedGeocoder(geocoder, cache.NewSQLGeocodeCache(conn, cfg.CacheTTL, logger), logger)
		router = maps.NewCachedRouter(router, cache.NewSQLRouteCache(conn, cfg.CacheTTL, logger), logger)

	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("build providers: parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, cleanup, fmt.Errorf("build providers: ping redis: %w", err)
		}
		cleanup = func() { _ = client.Close() }

		// Routes carry full geometries; only geocodes go to Redis.
		geocoder = maps.NewCachedGeocoder(geocoder, cache.NewRedisGeocodeCache(client, cfg.CacheTTL, logger), logger)
	}

	return geocoder, router, cleanup, nil
}
