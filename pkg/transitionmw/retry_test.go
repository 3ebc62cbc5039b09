package transitionmw_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transitkit/pkg/statemachine"
	"github.com/dmitrymomot/transitkit/pkg/transitionmw"
)

var errDeclined = errors.New("card declined")

func TestRetry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		m := newOrderMachine(t, actionFunc(func(context.Context, *transition) error {
			if calls.Add(1) < 3 {
				return errDeclined
			}
			return nil
		}), transitionmw.Retry[string, string, *order](
			transitionmw.WithMaxAttempts(3),
			transitionmw.WithBackoff(transitionmw.FixedBackoff{}),
		))

		o := &order{status: "new"}
		require.NoError(t, m.Fire(ctx, m.ByTrigger(o, "pay")))
		assert.Equal(t, "paid", o.status)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		m := newOrderMachine(t, actionFunc(func(context.Context, *transition) error {
			calls.Add(1)
			return errDeclined
		}), transitionmw.Retry[string, string, *order](
			transitionmw.WithMaxAttempts(2),
			transitionmw.WithBackoff(transitionmw.FixedBackoff{}),
		))

		o := &order{status: "new"}
		err := m.Fire(ctx, m.ByTrigger(o, "pay"))
		require.ErrorIs(t, err, errDeclined)
		assert.True(t, statemachine.IsTransitionError(err))
		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, "new", o.status)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		denied := errors.New("denied")
		m := newOrderMachine(t, nil,
			transitionmw.Retry[string, string, *order](transitionmw.WithBackoff(transitionmw.FixedBackoff{})),
			func(statemachine.Handler[string, string, *order]) statemachine.Handler[string, string, *order] {
				return func(context.Context, *transition) error {
					calls.Add(1)
					return denied
				}
			},
		)

		err := m.Fire(ctx, m.ByTrigger(&order{status: "new"}, "pay"))
		require.ErrorIs(t, err, denied)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("custom predicate", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		m := newOrderMachine(t, actionFunc(func(context.Context, *transition) error {
			calls.Add(1)
			return errDeclined
		}), transitionmw.Retry[string, string, *order](
			transitionmw.WithMaxAttempts(5),
			transitionmw.WithBackoff(transitionmw.FixedBackoff{}),
			transitionmw.WithRetryIf(func(error) bool { return false }),
		))

		require.Error(t, m.Fire(ctx, m.ByTrigger(&order{status: "new"}, "pay")))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("stops waiting when the context is done", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		m := newOrderMachine(t, actionFunc(func(context.Context, *transition) error {
			return errDeclined
		}), transitionmw.Retry[string, string, *order](
			transitionmw.WithBackoff(transitionmw.FixedBackoff{Interval: time.Hour}),
		))

		err := m.Fire(ctx, m.ByTrigger(&order{status: "new"}, "pay"))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
