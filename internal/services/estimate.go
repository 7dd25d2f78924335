package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/platform/obs"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Estimator answers full estimate requests: geocode both ends, resolve the
// route, then run the detailed cost model and the heuristic.
type Estimator struct {
	geocoder *GeocodeResolver
	router   *RouteResolver
	validate *validator.Validate
	logger   *zap.Logger
	metrics  *obs.Metrics
}

func NewEstimator(geocoder *GeocodeResolver, router *RouteResolver, logger *zap.Logger, metrics *obs.Metrics) *Estimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Estimator{
		geocoder: geocoder,
		router:   router,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

func (e *Estimator) Estimate(ctx context.Context, req domain.EstimateRequest) (_ *domain.Estimate, err error) {
	defer obs.Time(ctx, e.logger, "estimate")(&err)
	start := time.Now()
	defer func() { e.metrics.ObserveEstimate(time.Since(start).Seconds()) }()

	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)

	if err := e.checkRequest(req); err != nil {
		return nil, fmt.Errorf("estimate: %w", err)
	}

	origin, destination, err := e.locate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("estimate: %w", err)
	}

	route := e.router.Resolve(ctx, origin, destination)

	originName := firstNonEmpty(req.OriginCity, req.Origin)
	destName := firstNonEmpty(req.DestinationCity, req.Destination)
	suggestion := SuggestTrip(originName, destName, route.DistanceKm)

	out := &domain.Estimate{
		DistanceKm:        roundTo(route.DistanceKm, 2),
		DurationHours:     roundTo(route.DurationHours, 2),
		RouteGeometry:     route.Geometry,
		ApproximateRoute:  route.Approximate,
		OriginCoords:      origin,
		DestinationCoords: destination,
		VehicleType:       suggestion.VehicleType,
		DriverExperience:  suggestion.ExperienceTier,
		FuelCost:          suggestion.FuelCost,
		Suggestion:        suggestion,
	}

	if req.Cargo != nil {
		breakdown := EstimateCost(route.DistanceKm, route.DurationHours, *req.Cargo, originName, destName)
		out.CostBreakdown = &breakdown
		out.VehicleType = breakdown.VehicleType
		out.FuelCost = breakdown.FuelCost
	}

	return out, nil
}

func (e *Estimator) checkRequest(req domain.EstimateRequest) error {
	if err := e.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: field %s failed %q", domain.ErrInvalidInput, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	for _, c := range []*domain.Coordinate{req.OriginCoords, req.DestinationCoords} {
		if c == nil {
			continue
		}
		if err := c.Validate(); err != nil {
			return err
		}
	}

	if req.Cargo != nil {
		if err := domain.ValidateCargo(*req.Cargo); err != nil {
			return err
		}
	}

	return nil
}

// locate resolves both ends concurrently. Explicit coordinates skip geocoding.
func (e *Estimator) locate(ctx context.Context, req domain.EstimateRequest) (domain.Coordinate, domain.Coordinate, error) {
	var origin, destination domain.Coordinate

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := e.resolveEnd(gctx, req.Origin, req.OriginCity, req.OriginCoords)
		origin = c
		return err
	})
	g.Go(func() error {
		c, err := e.resolveEnd(gctx, req.Destination, req.DestinationCity, req.DestinationCoords)
		destination = c
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.Coordinate{}, domain.Coordinate{}, err
	}
	return origin, destination, nil
}

func (e *Estimator) resolveEnd(ctx context.Context, text, city string, coords *domain.Coordinate) (domain.Coordinate, error) {
	if coords != nil {
		return *coords, nil
	}

	c, ok := e.geocoder.Resolve(ctx, text, city)
	if !ok {
		return domain.Coordinate{}, &domain.LocationError{Input: text}
	}
	return c, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
