package transitionmw

import (
	"context"
	"time"

	"github.com/dmitrymomot/transitkit/pkg/statemachine"
)

// Timeout bounds the rest of the chain with a deadline. Actions observe it
// through ctx and the pipeline refuses to commit once it has passed.
func Timeout[S, T comparable, E any](d time.Duration) statemachine.Middleware[S, T, E] {
	return func(next statemachine.Handler[S, T, E]) statemachine.Handler[S, T, E] {
		if d <= 0 {
			return next
		}
		return func(ctx context.Context, t *statemachine.Transition[S, T, E]) error {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, t)
		}
	}
}
