package places

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// providerLimiter throttles calls made with one provider credential.
// All clients built with the same key share one limiter, so concurrent
// searches cannot jointly exceed the provider quota.
type providerLimiter struct {
	limiter *rate.Limiter
	slots   *semaphore.Weighted
}

// acquire blocks until a token and an in-flight slot are available.
// The returned release func must be called once the HTTP call completes.
func (l *providerLimiter) acquire(ctx context.Context) (func(), error) {
	if err := l.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for provider slot: %w", err)
	}
	if err := l.limiter.Wait(ctx); err != nil {
		l.slots.Release(1)
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return func() { l.slots.Release(1) }, nil
}

type limiterRegistry struct {
	mu       sync.Mutex
	limiters map[string]*providerLimiter
}

// sharedLimiters is process-wide: one entry per credential
var sharedLimiters = &limiterRegistry{limiters: make(map[string]*providerLimiter)}

// forKey returns the limiter for apiKey, creating it with the given settings on first use.
// Later callers with the same key get the existing limiter regardless of their settings.
func (r *limiterRegistry) forKey(apiKey string, requestsPerSecond float64, burst int, maxConcurrent int) *providerLimiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.limiters[apiKey]; ok {
		return l
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	if burst <= 0 {
		burst = 1
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	l := &providerLimiter{
		limiter: rate.NewLimiter(limit, burst),
		slots:   semaphore.NewWeighted(int64(maxConcurrent)),
	}
	r.limiters[apiKey] = l
	return l
}
