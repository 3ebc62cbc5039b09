package statemachine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/transitkit/pkg/logger"
)

// Machine resolves, guards, executes and commits transitions of entities of
// type E with states S and triggers T.
//
// A Machine is configured once and then fired many times. Fire is safe for
// concurrent use as long as configuration has finished; concurrent fires on
// the same entity are not serialized.
type Machine[S, T comparable, E any] struct {
	get func(E) S
	set func(E, S)

	states map[S]*state[S, T, E]
	order  []S

	defaultOptions Options
	emptyOptions   Options

	entryActions []Action[S, T, E]
	exitActions  []Action[S, T, E]
	completed    []CompletedFunc[S, T, E]
	middleware   []Middleware[S, T, E]

	logger           *slog.Logger
	logLevel         slog.Level
	maxAutofireDepth int
}

// New creates a machine. get reads the entity's current state and set writes it.
func New[S, T comparable, E any](get func(E) S, set func(E, S), opts ...Option) (*Machine[S, T, E], error) {
	if get == nil || set == nil {
		return nil, ErrNilAccessor
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	return &Machine[S, T, E]{
		get:              get,
		set:              set,
		states:           make(map[S]*state[S, T, E]),
		emptyOptions:     &BaseOptions{},
		logger:           s.logger.With(logger.Component("statemachine")),
		logLevel:         s.logLevel,
		maxAutofireDepth: s.maxAutofireDepth,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew[S, T comparable, E any](get func(E) S, set func(E, S), opts ...Option) *Machine[S, T, E] {
	m, err := New[S, T, E](get, set, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// SetFinite registers terminal states. Firing from a finite state is a no-op.
func (m *Machine[S, T, E]) SetFinite(values ...S) error {
	for _, value := range values {
		if _, ok := m.states[value]; ok {
			return NewErrAmbiguousStateConfiguration(value)
		}
		m.register(value, true)
	}
	return nil
}

// AddDefaultEntryAction adds an action that runs first in every transition.
func (m *Machine[S, T, E]) AddDefaultEntryAction(a Action[S, T, E]) {
	if a != nil {
		m.entryActions = append(m.entryActions, a)
	}
}

// AddDefaultExitAction adds an action that runs last in every transition.
func (m *Machine[S, T, E]) AddDefaultExitAction(a Action[S, T, E]) {
	if a != nil {
		m.exitActions = append(m.exitActions, a)
	}
}

// OnTransitionCompleted subscribes fn to committed transitions.
func (m *Machine[S, T, E]) OnTransitionCompleted(fn CompletedFunc[S, T, E]) {
	if fn != nil {
		m.completed = append(m.completed, fn)
	}
}

// States returns the registered states in registration order.
func (m *Machine[S, T, E]) States() []S {
	return slices.Clone(m.order)
}

// IsFinite reports whether value is registered as a finite state.
func (m *Machine[S, T, E]) IsFinite(value S) bool {
	st, ok := m.states[value]
	return ok && st.finite
}

// Fire resolves and runs the transition described by req, followed by any
// autofire transitions it unlocks.
//
// A request from a finite state, or one whose transitions are all rejected by
// their guards, is a no-op. If ctx is cancelled before the commit the state is
// left unchanged and ctx.Err() is returned.
//
// Autofire hops run in a loop, so a cycle without WithMaxAutofireDepth keeps
// going until an action or middleware fails or ctx is cancelled.
func (m *Machine[S, T, E]) Fire(ctx context.Context, req Request[S, T, E]) error {
	if req.kind == KindAutofire {
		return ErrInvalidRequest
	}

	for depth := 0; ; depth++ {
		next, err := m.fireOnce(ctx, req, depth)
		if err != nil || !next {
			return err
		}
		req = autofireRequest[S, T](req.entity)
	}
}

// fireOnce runs a single transition. next reports whether the entity landed
// on the resolved destination and an autofire hop should be attempted.
func (m *Machine[S, T, E]) fireOnce(ctx context.Context, req Request[S, T, E], depth int) (next bool, err error) {
	inv, err := m.resolve(req)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to resolve transition",
			logger.RequestKind(req.kind.String()),
			logger.Error(err),
		)
		return false, err
	}
	if inv == nil {
		return false, nil
	}
	if req.kind == KindAutofire {
		if m.maxAutofireDepth > 0 && depth > m.maxAutofireDepth {
			return false, fmt.Errorf("%w: %d", ErrAutofireDepthExceeded, m.maxAutofireDepth)
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}
	}
	inv.depth = depth

	handler := chain(m.middleware, func(ctx context.Context, t *Transition[S, T, E]) error {
		inv.invoked = true
		inv.transition = t
		return m.execute(ctx, inv)
	})

	err = handler(ctx, inv.transition)
	switch {
	case errors.Is(err, ErrSkipTransition):
		return false, nil
	case err != nil:
		m.logger.ErrorContext(ctx, "transition failed",
			logger.Source(inv.current.value),
			logger.Destination(inv.resolver.destination),
			logger.Trigger(inv.resolver.trigger),
			logger.Error(err),
		)
		return false, err
	case !inv.invoked:
		return false, ErrPipelineNotInvoked
	}

	m.logger.Log(ctx, m.logLevel, "transition committed",
		logger.Source(inv.current.value),
		logger.Destination(inv.resolver.destination),
		logger.Trigger(inv.resolver.trigger),
		logger.RequestKind(req.kind.String()),
		slog.Int("autofire_depth", depth),
	)

	return inv.committed && m.get(req.entity) == inv.resolver.destination, nil
}

// resolve picks the single applicable transition for req. A nil invocation
// with a nil error means there is nothing to do.
func (m *Machine[S, T, E]) resolve(req Request[S, T, E]) (*invocation[S, T, E], error) {
	switch req.kind {
	case KindTrigger, KindState, KindAutofire:
	default:
		return nil, ErrInvalidRequest
	}

	value := m.get(req.entity)
	current, ok := m.states[value]
	if !ok {
		return nil, NewErrStateNotConfigured(value)
	}
	if current.finite {
		return nil, nil
	}

	var candidates []*resolver[S, T, E]
	switch req.kind {
	case KindTrigger:
		candidates = current.byTrigger(req.trigger)
		if len(candidates) == 0 {
			return nil, NewErrTriggerResolverNotFound(KindTrigger, req.trigger, nil)
		}
	case KindState:
		candidates = current.byDestination(req.state)
		if len(candidates) == 0 {
			return nil, NewErrTriggerResolverNotFound(KindState, nil, req.state)
		}
	case KindAutofire:
		candidates = current.autofire()
		if len(candidates) == 0 {
			return nil, nil
		}
	}

	var selected *resolver[S, T, E]
	for _, r := range candidates {
		if !r.guardMet(req.entity) {
			continue
		}
		if selected != nil {
			return nil, NewErrAmbiguousTriggerResolver(selected.destination)
		}
		selected = r
	}
	if selected == nil {
		return nil, nil
	}

	target, ok := m.states[selected.destination]
	if !ok {
		return nil, NewErrStateNotConfigured(selected.destination)
	}

	return &invocation[S, T, E]{
		entity:   req.entity,
		current:  current,
		target:   target,
		resolver: selected,
		transition: &Transition[S, T, E]{
			Entity:      req.entity,
			Source:      value,
			Destination: selected.destination,
			Trigger:     selected.trigger,
			Options:     selected.options,
			Kind:        req.kind,
		},
	}, nil
}

func (m *Machine[S, T, E]) register(value S, finite bool) *state[S, T, E] {
	st := newState[S, T, E](value, finite)
	m.states[value] = st
	m.order = append(m.order, value)
	return st
}

func (m *Machine[S, T, E]) transitionDefaults() Options {
	if m.defaultOptions != nil {
		return m.defaultOptions
	}
	return m.emptyOptions
}
