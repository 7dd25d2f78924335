package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freight-estimate-service/internal/api"
	"freight-estimate-service/internal/config"
	"freight-estimate-service/internal/platform/obs"
	"freight-estimate-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete map providers (and optional caches) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.NewMetrics(reg)

	session := &http.Client{Timeout: 60 * time.Second}

	geocoder, router, cleanup, err := buildProviders(context.Background(), cfg, session, logger, metrics)
	if err != nil {
		logger.Fatal("build providers", zap.Error(err))
	}
	defer cleanup()

	// Shared by every resolver in the process.
	throttle := services.NewThrottle(cfg.GeocodeInterval)
	estimator := services.NewEstimator(
		services.NewGeocodeResolver(geocoder, throttle, cfg.GeocodeTimeout, logger, metrics),
		services.NewRouteResolver(router, cfg.RouteTimeout, cfg.RouteRetryBackoff, logger, metrics),
		logger,
		metrics,
	)

	// Write timeout covers two geocodes, two routing attempts and backoff.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(estimator, reg, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("geocoder", cfg.Geocoder),
			zap.String("router", cfg.Router),
			zap.String("cache", cfg.CacheBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
