package statemachine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transitkit/pkg/statemachine"
)

type (
	handler    = statemachine.Handler[State, Trigger, *document]
	middleware = statemachine.Middleware[State, Trigger, *document]
)

func tracing(j *journal, name string) middleware {
	return func(next handler) handler {
		return func(ctx context.Context, tr *transition) error {
			j.add(name + ":in")
			err := next(ctx, tr)
			j.add(name + ":out")
			return err
		}
	}
}

func TestMachine_Middleware(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("runs in configuration order", func(t *testing.T) {
		t.Parallel()
		var j journal
		m := newMachine(t)
		m.Use(tracing(&j, "first"), nil, tracing(&j, "second"))
		m.Use(tracing(&j, "third"))
		m.Configure(StateA).AddTransitionTo(StateB, AtoB, j.action("own"), nil)
		m.Configure(StateB)

		require.NoError(t, m.Fire(ctx, m.ByTrigger(&document{state: StateA}, AtoB)))
		assert.Equal(t, []string{
			"first:in", "second:in", "third:in",
			"own",
			"third:out", "second:out", "first:out",
		}, j.entries())
	})

	t.Run("sees the resolved transition", func(t *testing.T) {
		t.Parallel()
		var seen transition
		m := newMachine(t)
		m.Use(func(next handler) handler {
			return func(ctx context.Context, tr *transition) error {
				seen = *tr
				return next(ctx, tr)
			}
		})
		m.Configure(StateA).AddTransitionTo(StateB, AtoB, nil, nil)
		m.Configure(StateB)

		require.NoError(t, m.Fire(ctx, m.ByState(&document{state: StateA}, StateB)))
		assert.Equal(t, StateA, seen.Source)
		assert.Equal(t, StateB, seen.Destination)
		assert.Equal(t, AtoB, seen.Trigger)
		assert.Equal(t, statemachine.KindState, seen.Kind)
	})

	t.Run("rewriting the destination does not redirect the commit", func(t *testing.T) {
		t.Parallel()
		var j journal
		var completed transition
		m := newMachine(t)
		m.Use(func(next handler) handler {
			return func(ctx context.Context, tr *transition) error {
				tr.Destination = StateD
				tr.Entity = &document{state: StateC}
				return next(ctx, tr)
			}
		})
		m.Configure(StateA).
			AddTransitionTo(StateB, AtoB, nil, nil).
			BeforeTransitionTo(StateB, j.action("before")).
			AfterTransitionTo(StateB, j.action("after"))
		m.OnTransitionCompleted(func(_ context.Context, tr *transition) { completed = *tr })

		doc := &document{state: StateA}
		require.NotPanics(t, func() {
			require.NoError(t, m.Fire(ctx, m.ByTrigger(doc, AtoB)))
		})
		assert.Equal(t, StateB, doc.state)
		assert.Equal(t, []string{"before", "after"}, j.entries())
		assert.Same(t, doc, completed.Entity)
		assert.Equal(t, StateB, completed.Destination)
	})

	t.Run("explicit skip", func(t *testing.T) {
		t.Parallel()
		m := newMachine(t)
		m.Use(func(handler) handler {
			return func(context.Context, *transition) error {
				return statemachine.ErrSkipTransition
			}
		})
		m.Configure(StateA).AddTransitionTo(StateB, AtoB, nil, nil)
		m.Configure(StateB)

		doc := &document{state: StateA}
		require.NoError(t, m.Fire(ctx, m.ByTrigger(doc, AtoB)))
		assert.Equal(t, StateA, doc.state)
	})

	t.Run("silent drop is reported", func(t *testing.T) {
		t.Parallel()
		m := newMachine(t)
		m.Use(func(handler) handler {
			return func(context.Context, *transition) error { return nil }
		})
		m.Configure(StateA).AddTransitionTo(StateB, AtoB, nil, nil)
		m.Configure(StateB)

		err := m.Fire(ctx, m.ByTrigger(&document{state: StateA}, AtoB))
		assert.ErrorIs(t, err, statemachine.ErrPipelineNotInvoked)
	})

	t.Run("middleware error", func(t *testing.T) {
		t.Parallel()
		denied := errors.New("denied")
		m := newMachine(t)
		m.Use(func(handler) handler {
			return func(context.Context, *transition) error { return denied }
		})
		m.Configure(StateA).AddTransitionTo(StateB, AtoB, nil, nil)
		m.Configure(StateB)

		doc := &document{state: StateA}
		assert.ErrorIs(t, m.Fire(ctx, m.ByTrigger(doc, AtoB)), denied)
		assert.Equal(t, StateA, doc.state)
	})

	t.Run("wraps every autofire hop", func(t *testing.T) {
		t.Parallel()
		var j journal
		m := newMachine(t)
		m.Use(tracing(&j, "mw"))
		m.Configure(StateA).AddTransitionTo(StateB, AtoB, nil, nil)
		addAutofire(t, m.Configure(StateB), StateC, BtoC, nil, nil)
		require.NoError(t, m.SetFinite(StateC))

		require.NoError(t, m.Fire(ctx, m.ByTrigger(&document{state: StateA}, AtoB)))
		assert.Equal(t, []string{"mw:in", "mw:out", "mw:in", "mw:out"}, j.entries())
	})
}
