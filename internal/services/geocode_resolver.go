package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/platform/obs"
	"freight-estimate-service/internal/ports"

	"go.uber.org/zap"
)

const (
	StrategyDirect           = "direct"
	StrategyPostalCode       = "postal_code"
	StrategySegments         = "segments"
	StrategyExplicitFallback = "explicit_fallback"
	StrategyGazetteerScan    = "gazetteer_scan"

	defaultGeocodeTimeout = 10 * time.Second
)

var postalCodePattern = regexp.MustCompile(`\b\d{6}\b`)

// Resolution is a successful geocoding outcome and the strategy that found it.
type Resolution struct {
	Coordinate domain.Coordinate
	Strategy   string
}

type geocodeStrategy struct {
	name string
	run  func(ctx context.Context, input, fallback string) (domain.Coordinate, bool)
}

// GeocodeResolver turns free text into a coordinate by walking an ordered
// list of strategies. Provider failures never escape; only "not found" does.
type GeocodeResolver struct {
	provider  ports.GeocodeProvider
	throttle  *Throttle
	gazetteer Gazetteer
	timeout   time.Duration
	logger    *zap.Logger
	metrics   *obs.Metrics

	strategies []geocodeStrategy
}

// NewGeocodeResolver wires a resolver. throttle must be the process-wide
// instance; a zero timeout means 10s per provider call.
func NewGeocodeResolver(
	provider ports.GeocodeProvider,
	throttle *Throttle,
	timeout time.Duration,
	logger *zap.Logger,
	metrics *obs.Metrics,
) *GeocodeResolver {
	if timeout <= 0 {
		timeout = defaultGeocodeTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &GeocodeResolver{
		provider: provider,
		throttle: throttle,
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
	}
	r.strategies = []geocodeStrategy{
		{StrategyDirect, r.direct},
		{StrategyPostalCode, r.postalCode},
		{StrategySegments, r.segments},
		{StrategyExplicitFallback, r.explicitFallback},
		{StrategyGazetteerScan, r.gazetteerScan},
	}
	return r
}

// Resolve returns the coordinate for input, or false when nothing matched.
// fallback is an optional caller-supplied alternative such as a city name.
func (r *GeocodeResolver) Resolve(ctx context.Context, input, fallback string) (domain.Coordinate, bool) {
	res, ok := r.ResolveDetailed(ctx, input, fallback)
	return res.Coordinate, ok
}

func (r *GeocodeResolver) ResolveDetailed(ctx context.Context, input, fallback string) (Resolution, bool) {
	input = strings.TrimSpace(input)
	fallback = strings.TrimSpace(fallback)

	for _, s := range r.strategies {
		if c, ok := s.run(ctx, input, fallback); ok {
			r.metrics.GeocodeResolved(s.name)
			r.logger.Debug("location resolved",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.String("input", input),
				zap.String("strategy", s.name),
			)
			return Resolution{Coordinate: c, Strategy: s.name}, true
		}
	}

	r.metrics.GeocodeResolved("not_found")
	r.logger.Warn("location not resolved",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("input", input),
		zap.String("fallback", fallback),
	)
	return Resolution{}, false
}

func (r *GeocodeResolver) direct(ctx context.Context, input, _ string) (domain.Coordinate, bool) {
	return r.lookup(ctx, input)
}

func (r *GeocodeResolver) postalCode(ctx context.Context, input, _ string) (domain.Coordinate, bool) {
	code := postalCodePattern.FindString(input)
	if code == "" || code == input {
		return domain.Coordinate{}, false
	}
	return r.lookup(ctx, code)
}

func (r *GeocodeResolver) segments(ctx context.Context, input, _ string) (domain.Coordinate, bool) {
	if !strings.Contains(input, ",") {
		return domain.Coordinate{}, false
	}

	parts := make([]string, 0)
	for _, p := range strings.Split(input, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return domain.Coordinate{}, false
	}

	last := parts[len(parts)-1]
	if c, ok := r.lookup(ctx, last); ok {
		return c, true
	}
	if c, ok := r.gazetteer.Lookup(last); ok {
		return c, true
	}

	if len(parts) >= 2 {
		return r.lookup(ctx, parts[len(parts)-2]+", "+last)
	}
	return domain.Coordinate{}, false
}

func (r *GeocodeResolver) explicitFallback(ctx context.Context, _, fallback string) (domain.Coordinate, bool) {
	if fallback == "" {
		return domain.Coordinate{}, false
	}
	if c, ok := r.lookup(ctx, fallback); ok {
		return c, true
	}
	return r.gazetteer.Lookup(fallback)
}

func (r *GeocodeResolver) gazetteerScan(_ context.Context, input, _ string) (domain.Coordinate, bool) {
	_, c, ok := r.gazetteer.FindIn(input)
	return c, ok
}

// lookup performs one throttled provider call and keeps the first in-range
// candidate. Every failure is logged and reported as a miss.
func (r *GeocodeResolver) lookup(ctx context.Context, query string) (domain.Coordinate, bool) {
	query = strings.TrimSpace(query)
	if query == "" || r.provider == nil || ctx.Err() != nil {
		return domain.Coordinate{}, false
	}

	log := r.logger.With(zap.String("req_id", obs.RequestID(ctx)), zap.String("query", query))

	if err := r.throttle.Wait(ctx); err != nil {
		log.Warn("geocode throttle wait aborted", zap.Error(err))
		return domain.Coordinate{}, false
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	results, err := r.provider.Geocode(callCtx, query)
	if err != nil {
		log.Warn("geocode provider failed", zap.Error(err))
		return domain.Coordinate{}, false
	}

	for _, c := range results {
		if err := c.Validate(); err != nil {
			log.Warn("geocode provider returned invalid coordinate", zap.Error(err))
			continue
		}
		return c, true
	}

	log.Debug("geocode provider returned no results")
	return domain.Coordinate{}, false
}
