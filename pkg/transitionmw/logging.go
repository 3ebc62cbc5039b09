package transitionmw

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/transitkit/pkg/logger"
	"github.com/dmitrymomot/transitkit/pkg/statemachine"
)

// Logging logs the start and the outcome of every transition.
func Logging[S, T comparable, E any](log *slog.Logger) statemachine.Middleware[S, T, E] {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("transitionmw"))

	return func(next statemachine.Handler[S, T, E]) statemachine.Handler[S, T, E] {
		return func(ctx context.Context, t *statemachine.Transition[S, T, E]) error {
			attrs := []slog.Attr{
				logger.Source(t.Source),
				logger.Destination(t.Destination),
				logger.Trigger(t.Trigger),
				logger.RequestKind(t.Kind.String()),
			}
			log.LogAttrs(ctx, slog.LevelDebug, "transition started", attrs...)

			start := time.Now()
			err := next(ctx, t)
			attrs = append(attrs, logger.Duration(time.Since(start)))

			switch {
			case err == nil:
				log.LogAttrs(ctx, slog.LevelInfo, "transition completed", attrs...)
			case errors.Is(err, statemachine.ErrSkipTransition):
				log.LogAttrs(ctx, slog.LevelDebug, "transition skipped", attrs...)
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				log.LogAttrs(ctx, slog.LevelWarn, "transition cancelled", append(attrs, logger.Error(err))...)
			default:
				log.LogAttrs(ctx, slog.LevelError, "transition failed", append(attrs, logger.Error(err))...)
			}
			return err
		}
	}
}
