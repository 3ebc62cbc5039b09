package definition

import (
	"fmt"

	"github.com/dmitrymomot/transitkit/pkg/statemachine"
)

// Registry maps the guard and action names used in definitions to code.
type Registry[E any] struct {
	guards  map[string]statemachine.Guard[E]
	actions map[string]statemachine.Action[string, string, E]
}

func NewRegistry[E any]() *Registry[E] {
	return &Registry[E]{
		guards:  make(map[string]statemachine.Guard[E]),
		actions: make(map[string]statemachine.Action[string, string, E]),
	}
}

// Guard registers a named guard, replacing any previous one.
func (r *Registry[E]) Guard(name string, g statemachine.Guard[E]) *Registry[E] {
	r.guards[name] = g
	return r
}

// Action registers a named action, replacing any previous one.
func (r *Registry[E]) Action(name string, a statemachine.Action[string, string, E]) *Registry[E] {
	r.actions[name] = a
	return r
}

// ActionFunc registers a named action function.
func (r *Registry[E]) ActionFunc(name string, fn statemachine.ActionFunc[string, string, E]) *Registry[E] {
	return r.Action(name, fn)
}

// guard resolves a guard name. The empty name means no guard.
func (r *Registry[E]) guard(name string) (statemachine.Guard[E], error) {
	if name == "" {
		return nil, nil
	}
	g, ok := r.guards[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGuard, name)
	}
	return g, nil
}

// action resolves an action name. The empty name means no action.
func (r *Registry[E]) action(name string) (statemachine.Action[string, string, E], error) {
	if name == "" {
		return nil, nil
	}
	a, ok := r.actions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return a, nil
}

func (r *Registry[E]) actionList(names []string) ([]statemachine.Action[string, string, E], error) {
	out := make([]statemachine.Action[string, string, E], 0, len(names))
	for _, name := range names {
		a, err := r.action(name)
		if err != nil {
			return nil, err
		}
		if a != nil {
			out = append(out, a)
		}
	}
	return out, nil
}
