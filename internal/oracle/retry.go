package oracle

import (
	"context"
	"errors"
	"time"

	"dispatchsim/internal/domain"
)

// RetryingBackend retries a wrapped backend with multiplicative backoff on
// any error except an HTTP status outside the retryable set, which stops
// retrying at once. Errors are not told apart beyond that: a malformed or
// non-Ok response is retried the same way as a transport failure. On
// exhaustion it falls back to a Euclidean backend if one is configured,
// else fails.
type RetryingBackend struct {
	Backend     Backend
	MaxAttempts int
	BackoffBase time.Duration
	Fallback    Backend // nil disables fallback
}

func NewRetryingBackend(backend Backend, maxAttempts int, backoffBase time.Duration, fallback Backend) *RetryingBackend {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryingBackend{Backend: backend, MaxAttempts: maxAttempts, BackoffBase: backoffBase, Fallback: fallback}
}

func (b *RetryingBackend) Route(ctx context.Context, start domain.Point, waypoints []domain.Point) (Result, error) {
	var lastErr error
	backoff := b.BackoffBase

	for attempt := 0; attempt < b.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		result, err := b.Backend.Route(ctx, start, waypoints)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var statusErr *HTTPStatusError
		if errors.As(err, &statusErr) && !IsRetryableStatus(statusErr.StatusCode) {
			break
		}
	}

	if b.Fallback != nil {
		if result, err := b.Fallback.Route(ctx, start, waypoints); err == nil {
			return result, nil
		}
	}
	return Result{}, lastErr
}
