package statemachine

import (
	"context"
	"slices"
)

// Action is a unit of work executed during a transition. Actions of one
// transition run strictly one after another.
type Action[S, T comparable, E any] interface {
	Execute(ctx context.Context, t *Transition[S, T, E]) error
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc[S, T comparable, E any] func(ctx context.Context, t *Transition[S, T, E]) error

func (f ActionFunc[S, T, E]) Execute(ctx context.Context, t *Transition[S, T, E]) error {
	return f(ctx, t)
}

// Guard reports whether a transition is applicable to the entity right now.
// A nil guard always passes.
type Guard[E any] func(entity E) bool

// CompletedFunc is called synchronously once a transition has been committed
// and all of its actions have run.
type CompletedFunc[S, T comparable, E any] func(ctx context.Context, t *Transition[S, T, E])

// Transition is the record of a single state change. It lives for the
// duration of one Fire call.
type Transition[S, T comparable, E any] struct {
	Entity      E
	Source      S
	Destination S
	Trigger     T
	// Options is the resolved options instance of the transition. It is the
	// instance stored in the machine configuration, not a copy.
	Options Options
	Kind    RequestKind

	actions []Action[S, T, E]
}

// ActionLog returns the actions executed so far, in execution order.
func (t *Transition[S, T, E]) ActionLog() []Action[S, T, E] {
	return slices.Clone(t.actions)
}

func (t *Transition[S, T, E]) record(a Action[S, T, E]) {
	t.actions = append(t.actions, a)
}

// resolver is a configured trigger -> destination edge.
type resolver[S, T comparable, E any] struct {
	trigger     T
	destination S
	guard       Guard[E]
	options     Options
	action      Action[S, T, E]
}

func (r *resolver[S, T, E]) guardMet(entity E) bool {
	return r.guard == nil || r.guard(entity)
}

// state is a registered state value together with its outgoing resolvers and
// the before/after actions attached to it.
type state[S, T comparable, E any] struct {
	value  S
	finite bool

	triggers  []T
	resolvers map[T][]*resolver[S, T, E]

	// before holds actions keyed by destination, run when leaving this state.
	before map[S][]Action[S, T, E]
	// after holds actions keyed by source, run when entering this state.
	after map[S][]Action[S, T, E]
}

func newState[S, T comparable, E any](value S, finite bool) *state[S, T, E] {
	return &state[S, T, E]{
		value:     value,
		finite:    finite,
		resolvers: make(map[T][]*resolver[S, T, E]),
		before:    make(map[S][]Action[S, T, E]),
		after:     make(map[S][]Action[S, T, E]),
	}
}

func (s *state[S, T, E]) addResolver(r *resolver[S, T, E]) {
	if _, ok := s.resolvers[r.trigger]; !ok {
		s.triggers = append(s.triggers, r.trigger)
	}
	s.resolvers[r.trigger] = append(s.resolvers[r.trigger], r)
}

// all returns every resolver in trigger insertion order.
func (s *state[S, T, E]) all() []*resolver[S, T, E] {
	var out []*resolver[S, T, E]
	for _, trigger := range s.triggers {
		out = append(out, s.resolvers[trigger]...)
	}
	return out
}

func (s *state[S, T, E]) byTrigger(trigger T) []*resolver[S, T, E] {
	return s.resolvers[trigger]
}

func (s *state[S, T, E]) byDestination(destination S) []*resolver[S, T, E] {
	var out []*resolver[S, T, E]
	for _, r := range s.all() {
		if r.destination == destination {
			out = append(out, r)
		}
	}
	return out
}

// autofire returns the autofire resolvers that leave this state.
// Self loops are excluded so an autofire chain always moves.
func (s *state[S, T, E]) autofire() []*resolver[S, T, E] {
	var out []*resolver[S, T, E]
	for _, r := range s.all() {
		if r.destination != s.value && r.options.Autofire() {
			out = append(out, r)
		}
	}
	return out
}
