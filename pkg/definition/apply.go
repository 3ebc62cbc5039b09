package definition

import (
	"errors"
	"slices"

	"github.com/dmitrymomot/transitkit/pkg/statemachine"
)

// Apply configures m from def. Every guard and action name is resolved
// before the machine is touched, so an unknown name leaves m unchanged.
func Apply[E any](def *Definition, m *statemachine.Machine[string, string, E], reg *Registry[E]) error {
	if m == nil {
		return ErrNilMachine
	}
	if def == nil {
		return ErrInvalidDefinition
	}
	if reg == nil {
		reg = NewRegistry[E]()
	}
	if err := def.Validate(); err != nil {
		return err
	}

	p, err := resolve(def, reg)
	if err != nil {
		return err
	}

	// Finite states go first so after hooks targeting them do not register
	// them as regular states.
	if err := m.SetFinite(def.Finite...); err != nil {
		return errors.Join(ErrFailedToApply, err)
	}

	for _, a := range p.entry {
		m.AddDefaultEntryAction(a)
	}
	for _, a := range p.exit {
		m.AddDefaultExitAction(a)
	}

	for _, s := range p.states {
		b := m.Configure(s.name)
		if err := b.Err(); err != nil {
			return errors.Join(ErrFailedToApply, err)
		}

		for _, tr := range s.transitions {
			if !tr.autofire {
				b.AddTransitionTo(tr.to, tr.trigger, tr.action, tr.guard)
				continue
			}
			if _, err := statemachine.AddTransitionWithOptions(b, tr.to, tr.trigger,
				newBaseOptions, setAutofire, tr.action, tr.guard); err != nil {
				return errors.Join(ErrFailedToApply, err)
			}
		}
		for _, h := range s.before {
			b.BeforeTransitionTo(h.destination, h.action)
		}
		for _, h := range s.after {
			b.AfterTransitionTo(h.destination, h.action)
		}
	}

	return nil
}

func newBaseOptions() *statemachine.BaseOptions { return &statemachine.BaseOptions{} }

func setAutofire(o *statemachine.BaseOptions) { o.IsAutofire = true }

type (
	statePlan[E any] struct {
		name        string
		transitions []transitionPlan[E]
		before      []hookPlan[E]
		after       []hookPlan[E]
	}
	transitionPlan[E any] struct {
		to       string
		trigger  string
		autofire bool
		guard    statemachine.Guard[E]
		action   statemachine.Action[string, string, E]
	}
	hookPlan[E any] struct {
		destination string
		action      statemachine.Action[string, string, E]
	}
	plan[E any] struct {
		states []statePlan[E]
		entry  []statemachine.Action[string, string, E]
		exit   []statemachine.Action[string, string, E]
	}
)

func resolve[E any](def *Definition, reg *Registry[E]) (*plan[E], error) {
	p := &plan[E]{}

	var err error
	if p.entry, err = reg.actionList(def.EntryActions); err != nil {
		return nil, err
	}
	if p.exit, err = reg.actionList(def.ExitActions); err != nil {
		return nil, err
	}

	for _, s := range def.States {
		sp := statePlan[E]{name: s.Name}
		for _, tr := range s.Transitions {
			guard, err := reg.guard(tr.Guard)
			if err != nil {
				return nil, err
			}
			action, err := reg.action(tr.Action)
			if err != nil {
				return nil, err
			}
			sp.transitions = append(sp.transitions, transitionPlan[E]{
				to:       tr.To,
				trigger:  tr.Trigger,
				autofire: tr.Autofire,
				guard:    guard,
				action:   action,
			})
		}
		if sp.before, err = hooks(s.Before, reg); err != nil {
			return nil, err
		}
		if sp.after, err = hooks(s.After, reg); err != nil {
			return nil, err
		}
		p.states = append(p.states, sp)
	}
	return p, nil
}

// hooks flattens a destination -> actions map in a stable destination order.
func hooks[E any](byDestination map[string][]string, reg *Registry[E]) ([]hookPlan[E], error) {
	destinations := make([]string, 0, len(byDestination))
	for dst := range byDestination {
		destinations = append(destinations, dst)
	}
	slices.Sort(destinations)

	var out []hookPlan[E]
	for _, dst := range destinations {
		actions, err := reg.actionList(byDestination[dst])
		if err != nil {
			return nil, err
		}
		for _, a := range actions {
			out = append(out, hookPlan[E]{destination: dst, action: a})
		}
	}
	return out, nil
}
