package transitionmw

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/transitkit/pkg/logger"
	"github.com/dmitrymomot/transitkit/pkg/statemachine"
)

type retryConfig struct {
	maxAttempts int
	backoff     BackoffStrategy
	retryIf     func(error) bool
	logger      *slog.Logger
}

// RetryOption configures the Retry middleware.
type RetryOption func(*retryConfig)

// WithMaxAttempts sets the total number of attempts, the first one included.
func WithMaxAttempts(n int) RetryOption {
	return func(c *retryConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the delay strategy between attempts.
func WithBackoff(b BackoffStrategy) RetryOption {
	return func(c *retryConfig) {
		if b != nil {
			c.backoff = b
		}
	}
}

// WithRetryIf replaces the predicate deciding whether an error is retried.
// By default only transition action failures are retried.
func WithRetryIf(fn func(error) bool) RetryOption {
	return func(c *retryConfig) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

// WithRetryLogger sets the logger used to report retries.
func WithRetryLogger(l *slog.Logger) RetryOption {
	return func(c *retryConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Retry re-runs the rest of the chain when it fails with a retryable error.
// Waiting between attempts stops as soon as ctx is done.
func Retry[S, T comparable, E any](opts ...RetryOption) statemachine.Middleware[S, T, E] {
	cfg := retryConfig{
		maxAttempts: 3,
		backoff:     DefaultBackoffStrategy(),
		retryIf:     statemachine.IsTransitionError,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next statemachine.Handler[S, T, E]) statemachine.Handler[S, T, E] {
		return func(ctx context.Context, t *statemachine.Transition[S, T, E]) error {
			var err error
			for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
				if err = next(ctx, t); err == nil || !cfg.retryIf(err) || attempt == cfg.maxAttempts {
					return err
				}

				delay := cfg.backoff.NextInterval(attempt)
				cfg.logger.WarnContext(ctx, "retrying transition",
					logger.Source(t.Source),
					logger.Destination(t.Destination),
					logger.Attempt(attempt),
					slog.Duration("delay", delay),
					logger.Error(err),
				)

				if err := wait(ctx, delay); err != nil {
					return err
				}
			}
			return err
		}
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
