package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle spaces outbound geocoding calls at least interval apart across the
// whole process. One instance is created at startup and shared.
type Throttle struct {
	limiter *rate.Limiter
}

func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		return &Throttle{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call may proceed or ctx ends.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil {
		return ctx.Err()
	}
	return t.limiter.Wait(ctx)
}
