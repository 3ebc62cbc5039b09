package statemachine

import (
	"context"
	"errors"
	"fmt"
)

// invocation carries the per-call state of one transition.
type invocation[S, T comparable, E any] struct {
	entity     E
	current    *state[S, T, E]
	target     *state[S, T, E]
	resolver   *resolver[S, T, E]
	transition *Transition[S, T, E]
	depth      int
	invoked    bool
	committed  bool
}

// execute runs the transition phases in order and commits the destination
// through the accessor. Entity, source and destination are fixed at
// resolution and a middleware rewriting them on the Transition is ignored.
func (m *Machine[S, T, E]) execute(ctx context.Context, inv *invocation[S, T, E]) error {
	src, dst := inv.current.value, inv.resolver.destination
	t := inv.transition
	t.Entity, t.Source, t.Destination = inv.entity, src, dst
	t.actions = t.actions[:0]

	if err := runActions(ctx, t, m.entryActions); err != nil {
		return fmt.Errorf("statemachine: default entry action: %w", err)
	}

	if src != dst {
		if err := runActions(ctx, t, inv.current.before[dst]); err != nil {
			return fmt.Errorf("statemachine: before action: %w", err)
		}
	}

	if a := inv.resolver.action; a != nil {
		if err := a.Execute(ctx, t); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return ctxErr
			}
			return NewErrActionFailed(t, err)
		}
		t.record(a)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	m.set(inv.entity, dst)
	inv.committed = true

	if src != dst {
		if err := runActions(ctx, t, inv.target.after[src]); err != nil {
			return fmt.Errorf("statemachine: after action: %w", err)
		}
	}

	if err := runActions(ctx, t, m.exitActions); err != nil {
		return fmt.Errorf("statemachine: default exit action: %w", err)
	}

	for _, fn := range m.completed {
		fn(ctx, t)
	}
	return nil
}

func runActions[S, T comparable, E any](ctx context.Context, t *Transition[S, T, E], actions []Action[S, T, E]) error {
	for _, a := range actions {
		if err := a.Execute(ctx, t); err != nil {
			return err
		}
		t.record(a)
	}
	return nil
}
