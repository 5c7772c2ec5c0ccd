package oracle

import (
	"context"

	"golang.org/x/time/rate"

	"dispatchsim/internal/domain"
)

// RateLimitedBackend enforces a small per-request spacing delay before
// forwarding to the wrapped backend, so a tick's burst of oracle calls
// doesn't hammer an external router.
type RateLimitedBackend struct {
	Backend Backend
	limiter *rate.Limiter
}

func NewRateLimitedBackend(backend Backend, interval rate.Limit, burst int) *RateLimitedBackend {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedBackend{Backend: backend, limiter: rate.NewLimiter(interval, burst)}
}

func (b *RateLimitedBackend) Route(ctx context.Context, start domain.Point, waypoints []domain.Point) (Result, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return Result{}, err
	}
	return b.Backend.Route(ctx, start, waypoints)
}
