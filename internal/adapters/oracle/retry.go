package oracle

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/ecoperks/ecosort/pkg/metrics"
)

// Default retry configuration. The original issued oracle calls with
// no timeout or retry at all; the bounded attempt timeout and single
// extra attempt are a deliberate hardening on top of that behavior.
const (
	defaultMaxAttempts    = 2
	defaultInitialWait    = time.Second
	defaultMaxWait        = 10 * time.Second
	defaultMultiplier     = 2.0
	defaultAttemptTimeout = 30 * time.Second
)

// Retrier decorates a Classifier with a per-attempt timeout and
// bounded retry with exponential backoff and jitter on transient
// failures. An attempt that hits its own timeout counts as transient
// while the parent context is live; parent cancellation and
// non-transient failures are never retried.
type Retrier struct {
	inner          Classifier
	maxAttempts    int
	initialWait    time.Duration
	maxWait        time.Duration
	multiplier     float64
	attemptTimeout time.Duration
}

// RetryOption applies a configuration option to the Retrier.
type RetryOption func(*Retrier)

// WithMaxAttempts sets the total number of attempts (first try
// included).
func WithMaxAttempts(n int) RetryOption {
	return func(r *Retrier) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithAttemptTimeout bounds each individual oracle call.
func WithAttemptTimeout(d time.Duration) RetryOption {
	return func(r *Retrier) {
		if d > 0 {
			r.attemptTimeout = d
		}
	}
}

// WithBackoff sets the backoff parameters.
func WithBackoff(initial, maxWait time.Duration, multiplier float64) RetryOption {
	return func(r *Retrier) {
		if initial > 0 && maxWait >= initial && multiplier >= 1 {
			r.initialWait = initial
			r.maxWait = maxWait
			r.multiplier = multiplier
		}
	}
}

// WithRetry wraps a Classifier with retry behavior.
func WithRetry(inner Classifier, opts ...RetryOption) *Retrier {
	r := &Retrier{
		inner:          inner,
		maxAttempts:    defaultMaxAttempts,
		initialWait:    defaultInitialWait,
		maxWait:        defaultMaxWait,
		multiplier:     defaultMultiplier,
		attemptTimeout: defaultAttemptTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Classify calls the inner classifier, retrying transient failures.
func (r *Retrier) Classify(ctx context.Context, imageBytes []byte) (string, error) {
	var lastErr error
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
		text, err := r.inner.Classify(attemptCtx, imageBytes)
		attemptTimedOut := errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
		cancel()
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", lastErr
		}
		// A stalled upstream surfaces as the attempt deadline firing;
		// that is worth another try while the parent context is live.
		if !attemptTimedOut && !isTransient(err) {
			return "", err
		}
		if attempt == r.maxAttempts-1 {
			break
		}

		metrics.RecordOracleRetry()
		select {
		case <-ctx.Done():
			return "", lastErr
		case <-time.After(r.backoff(attempt)):
		}
	}
	return "", lastErr
}

// backoff computes the wait before the next attempt, with ±20% jitter.
func (r *Retrier) backoff(attempt int) time.Duration {
	wait := float64(r.initialWait) * math.Pow(r.multiplier, float64(attempt))
	if wait > float64(r.maxWait) {
		wait = float64(r.maxWait)
	}
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
