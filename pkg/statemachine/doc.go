// Package statemachine provides a generic state-transition engine.
//
// A Machine reads and writes the state of an entity through a pair of
// accessor functions, so any type can be driven by it without embedding or
// persistence concerns. Transitions are configured per source state and are
// fired either by trigger or by destination state:
//
//	m := statemachine.MustNew[Status, Event, *Order](
//		func(o *Order) Status { return o.Status },
//		func(o *Order, s Status) { o.Status = s },
//	)
//
//	m.Configure(Pending).
//		AddTransitionTo(Paid, Pay, chargeCard, nil).
//		AddTransitionTo(Cancelled, Cancel, nil, nil)
//	m.Configure(Paid).
//		AddTransitionTo(Shipped, Ship, nil, hasAddress)
//	_ = m.SetFinite(Shipped, Cancelled)
//
//	err := m.Fire(ctx, m.ByTrigger(order, Pay))
//
// # Transition phases
//
// A fired transition runs default entry actions, the before actions of the
// source state, the transition's own action, a cancellation checkpoint, the
// commit through the setter, the after actions of the destination state,
// default exit actions and finally the completion callbacks. Before and after
// actions are skipped for self transitions.
//
// # Options and autofire
//
// Every transition carries an Options value. Transitions whose options report
// Autofire fire on their own as soon as their source state is entered, so a
// single Fire call may walk a chain of states. WithMaxAutofireDepth bounds
// such chains.
//
// Options instances are shared: the machine default installed with
// InitDefaultOptions is stored in, and mutated by, every transition that uses
// it. Treat options as read-only at fire time when firing concurrently.
//
// # Middleware
//
// Middleware wraps the whole pipeline, in the order it was added. The
// transitionmw package provides logging, retry, timeout, metrics and tracing
// middleware.
//
// # Errors
//
// Configuration and resolution failures are typed errors with Is*Error
// predicates. A failing transition action is reported as *ErrActionFailed,
// which matches ErrTransitionFailed. Cancellation is reported as ctx.Err().
package statemachine
