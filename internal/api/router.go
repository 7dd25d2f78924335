package api

import (
	"net/http"

	"freight-estimate-service/internal/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(estimator handlers.Estimator, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(logger))

	estimateHandler := &handlers.EstimateHandler{Estimator: estimator, Logger: logger}

	r.GET("/health", handlers.Health)
	r.POST("/estimates", estimateHandler.Create)
	r.POST("/suggestions", handlers.Suggest)
	r.POST("/polyline/decode", handlers.DecodePolyline)

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return r
}
