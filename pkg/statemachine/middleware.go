package statemachine

import "context"

// Handler runs a transition. The innermost handler is the transition pipeline.
type Handler[S, T comparable, E any] func(ctx context.Context, t *Transition[S, T, E]) error

// Middleware wraps a Handler. A middleware must call next, or return
// ErrSkipTransition to short-circuit on purpose.
type Middleware[S, T comparable, E any] func(next Handler[S, T, E]) Handler[S, T, E]

// Use appends middleware. Middleware runs in the order it was added: the
// first one added is the outermost.
func (m *Machine[S, T, E]) Use(mws ...Middleware[S, T, E]) {
	for _, mw := range mws {
		if mw != nil {
			m.middleware = append(m.middleware, mw)
		}
	}
}

func chain[S, T comparable, E any](mws []Middleware[S, T, E], h Handler[S, T, E]) Handler[S, T, E] {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
