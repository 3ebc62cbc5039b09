package statemachine

import "fmt"

// Options carries per-transition configuration. Implementations are usually
// pointer types so that a shared default instance can be mutated in place.
type Options interface {
	Autofire() bool
}

// BaseOptions is the minimal Options implementation. Embed it into custom
// option types to get the autofire flag.
type BaseOptions struct {
	IsAutofire bool
}

// Autofire reports whether the transition fires automatically once its
// source state is entered. Safe to call on a nil receiver.
func (o *BaseOptions) Autofire() bool {
	return o != nil && o.IsAutofire
}

// ArgsOptions carries a typed payload alongside the autofire flag.
type ArgsOptions[A any] struct {
	BaseOptions
	Args A
}

// NewArgsOptions returns an empty ArgsOptions. It matches the factory
// signature expected by AddTransitionWithOptions and InitDefaultOptions.
func NewArgsOptions[A any]() *ArgsOptions[A] {
	return &ArgsOptions[A]{}
}

// InitDefaultOptions installs a machine-wide default options instance.
// Transitions added afterwards share it: AddTransitionTo stores it as-is and
// AddTransitionWithOptions mutates it in place.
func InitDefaultOptions[O Options, S, T comparable, E any](m *Machine[S, T, E], newOptions func() O, mutate func(O)) error {
	if newOptions == nil {
		return ErrNilOptionsFactory
	}
	opts := newOptions()
	if mutate != nil {
		mutate(opts)
	}
	m.defaultOptions = opts
	return nil
}

// AddTransitionWithOptions adds a transition whose options are of type O.
//
// When the machine has a default options instance it must be of type O and
// it is mutated in place; otherwise a fresh instance from newOptions is
// mutated and stored.
func AddTransitionWithOptions[O Options, S, T comparable, E any](
	b *StateBuilder[S, T, E],
	destination S,
	trigger T,
	newOptions func() O,
	mutate func(O),
	action Action[S, T, E],
	guard Guard[E],
) (*StateBuilder[S, T, E], error) {
	if b.err != nil {
		return b, b.err
	}

	var opts O
	if def := b.machine.defaultOptions; def != nil {
		typed, ok := def.(O)
		if !ok {
			return b, NewErrOptionsTypeMismatch(fmt.Sprintf("%T", *new(O)), fmt.Sprintf("%T", def))
		}
		opts = typed
	} else {
		if newOptions == nil {
			return b, ErrNilOptionsFactory
		}
		opts = newOptions()
	}

	if mutate != nil {
		mutate(opts)
	}

	b.addResolver(destination, trigger, opts, action, guard)
	return b, nil
}
