package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/platform/obs"
	"freight-estimate-service/internal/polyline"
	"freight-estimate-service/internal/ports"

	"go.uber.org/zap"
)

const (
	earthRadiusKm = 6371.0

	// detour factor applied to great-circle distance
	roadFactor          = 1.3
	fallbackSpeedKmh    = 60.0
	routeAttempts       = 2
	defaultRouteTimeout = 30 * time.Second
	defaultBackoff      = time.Second
)

// RouteResolver asks the routing provider for a road route and degrades to a
// haversine estimate when the provider cannot answer.
type RouteResolver struct {
	provider ports.RouteProvider
	timeout  time.Duration
	backoff  time.Duration
	logger   *zap.Logger
	metrics  *obs.Metrics
}

// NewRouteResolver wires a resolver. Zero timeout/backoff pick 30s and 1s.
func NewRouteResolver(
	provider ports.RouteProvider,
	timeout time.Duration,
	backoff time.Duration,
	logger *zap.Logger,
	metrics *obs.Metrics,
) *RouteResolver {
	if timeout <= 0 {
		timeout = defaultRouteTimeout
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RouteResolver{
		provider: provider,
		timeout:  timeout,
		backoff:  backoff,
		logger:   logger,
		metrics:  metrics,
	}
}

// Resolve always returns a route. Provider failures are retried once and then
// replaced by an approximate result with no geometry.
func (r *RouteResolver) Resolve(ctx context.Context, origin, destination domain.Coordinate) domain.RouteResult {
	route, err := r.withRetry(ctx, origin, destination)
	if err == nil {
		r.metrics.RouteResolved("provider")
		return route
	}

	r.logger.Warn("routing provider unavailable, using haversine estimate",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.Error(err),
	)
	r.metrics.RouteResolved("fallback")

	distance := Haversine(origin, destination) * roadFactor
	return domain.RouteResult{
		DistanceKm:    distance,
		DurationHours: distance / fallbackSpeedKmh,
		Approximate:   true,
	}
}

func (r *RouteResolver) withRetry(ctx context.Context, origin, destination domain.Coordinate) (domain.RouteResult, error) {
	if r.provider == nil {
		return domain.RouteResult{}, errors.New("route: no provider configured")
	}

	var lastErr error
	for attempt := 1; attempt <= routeAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.RouteResult{}, fmt.Errorf("route: %w", err)
		}

		route, err := r.attempt(ctx, origin, destination)
		if err == nil {
			return route, nil
		}
		lastErr = err

		r.logger.Warn("route attempt failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt == routeAttempts {
			break
		}

		// Linear backoff: 1x, 2x, ...
		timer := time.NewTimer(time.Duration(attempt) * r.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return domain.RouteResult{}, fmt.Errorf("route: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return domain.RouteResult{}, fmt.Errorf("route: %d attempts: %w", routeAttempts, lastErr)
}

func (r *RouteResolver) attempt(ctx context.Context, origin, destination domain.Coordinate) (_ domain.RouteResult, err error) {
	defer obs.Time(ctx, r.logger, "route.provider.Route")(&err)

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	pr, err := r.provider.Route(callCtx, origin, destination)
	if err != nil {
		return domain.RouteResult{}, err
	}

	if pr.DistanceMeters < 0 || pr.DurationSeconds < 0 ||
		math.IsNaN(pr.DistanceMeters) || math.IsNaN(pr.DurationSeconds) {
		return domain.RouteResult{}, fmt.Errorf("invalid route totals: %v m, %v s", pr.DistanceMeters, pr.DurationSeconds)
	}

	geometry := pr.Geometry
	switch {
	case geometry != "":
		if _, err := polyline.Decode(geometry); err != nil {
			return domain.RouteResult{}, fmt.Errorf("provider geometry: %w", err)
		}
	case len(pr.Path) > 0:
		geometry = polyline.Encode(pr.Path)
	default:
		return domain.RouteResult{}, errors.New("provider returned no geometry")
	}

	return domain.RouteResult{
		DistanceKm:    pr.DistanceMeters / 1000,
		DurationHours: pr.DurationSeconds / 3600,
		Geometry:      geometry,
	}, nil
}

// Haversine returns the great-circle distance between a and b in km.
func Haversine(a, b domain.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}
