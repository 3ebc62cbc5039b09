package statemachine

// StateBuilder configures the outgoing transitions of one state.
// Configuration is not safe for concurrent use and must finish before the
// first Fire.
type StateBuilder[S, T comparable, E any] struct {
	machine *Machine[S, T, E]
	state   *state[S, T, E]
	err     error
}

// Configure returns the builder for a source state, registering it on first
// use. Configuring a state already marked as finite yields a builder whose
// Err reports an ErrAmbiguousStateConfiguration and whose methods are no-ops.
func (m *Machine[S, T, E]) Configure(value S) *StateBuilder[S, T, E] {
	st, ok := m.states[value]
	if ok && st.finite {
		return &StateBuilder[S, T, E]{
			machine: m,
			state:   st,
			err:     NewErrAmbiguousStateConfiguration(value),
		}
	}
	if !ok {
		st = m.register(value, false)
	}
	return &StateBuilder[S, T, E]{machine: m, state: st}
}

// Err returns the configuration error recorded by the builder, if any.
func (b *StateBuilder[S, T, E]) Err() error {
	return b.err
}

// AddTransitionTo adds a transition to destination on trigger. The action
// and the guard may be nil. The transition uses the machine default options
// as they are at this moment.
func (b *StateBuilder[S, T, E]) AddTransitionTo(destination S, trigger T, action Action[S, T, E], guard Guard[E]) *StateBuilder[S, T, E] {
	if b.err != nil {
		return b
	}
	b.addResolver(destination, trigger, b.machine.transitionDefaults(), action, guard)
	return b
}

// BeforeTransitionTo registers an action that runs before leaving this state
// for destination.
func (b *StateBuilder[S, T, E]) BeforeTransitionTo(destination S, action Action[S, T, E]) *StateBuilder[S, T, E] {
	if b.err != nil || action == nil {
		return b
	}
	b.state.before[destination] = append(b.state.before[destination], action)
	return b
}

// AfterTransitionTo registers an action that runs after destination has been
// entered from this state. The destination is registered if needed.
func (b *StateBuilder[S, T, E]) AfterTransitionTo(destination S, action Action[S, T, E]) *StateBuilder[S, T, E] {
	if b.err != nil || action == nil {
		return b
	}
	target, ok := b.machine.states[destination]
	if !ok {
		target = b.machine.register(destination, false)
	}
	target.after[b.state.value] = append(target.after[b.state.value], action)
	return b
}

func (b *StateBuilder[S, T, E]) addResolver(destination S, trigger T, opts Options, action Action[S, T, E], guard Guard[E]) {
	b.state.addResolver(&resolver[S, T, E]{
		trigger:     trigger,
		destination: destination,
		guard:       guard,
		options:     opts,
		action:      action,
	})
}
