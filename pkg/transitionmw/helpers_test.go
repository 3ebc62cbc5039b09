package transitionmw_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transitkit/pkg/statemachine"
)

type order struct {
	status string
}

type (
	machine    = statemachine.Machine[string, string, *order]
	transition = statemachine.Transition[string, string, *order]
	middleware = statemachine.Middleware[string, string, *order]
)

// newOrderMachine returns a machine with a single "new" -> "paid" transition
// on the "pay" trigger running the given action.
func newOrderMachine(t *testing.T, action statemachine.Action[string, string, *order], mws ...middleware) *machine {
	t.Helper()
	m, err := statemachine.New[string, string](
		func(o *order) string { return o.status },
		func(o *order, s string) { o.status = s },
	)
	require.NoError(t, err)
	m.Use(mws...)
	m.Configure("new").AddTransitionTo("paid", "pay", action, nil)
	require.NoError(t, m.SetFinite("paid"))
	return m
}

func actionFunc(fn func(ctx context.Context, t *transition) error) statemachine.Action[string, string, *order] {
	return statemachine.ActionFunc[string, string, *order](fn)
}
