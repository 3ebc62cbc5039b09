// Package transitkit is a toolkit for driving domain entities through
// explicit state machines.
//
// The packages are independent and can be used on their own:
//
//   - pkg/statemachine: the generic transition engine. Transitions are
//     resolved by trigger or by destination, guarded, executed through an
//     ordered pipeline of actions and committed through accessor functions.
//   - pkg/transitionmw: middleware for the engine (logging, retry with
//     backoff, timeouts, Prometheus metrics, OpenTelemetry tracing).
//   - pkg/history: transition history recorded through completion callbacks,
//     stored in memory, Redis or PostgreSQL.
//   - pkg/definition: machines declared in YAML.
//   - pkg/config and pkg/logger: environment configuration and slog setup.
//
// Basic usage:
//
//	m := statemachine.MustNew[Status, Event](
//		func(o *Order) Status { return o.Status },
//		func(o *Order, s Status) { o.Status = s },
//	)
//	m.Configure(Pending).AddTransitionTo(Paid, Pay, chargeCard, nil)
//	_ = m.SetFinite(Paid)
//
//	m.Use(transitionmw.Logging[Status, Event, *Order](logger.New()))
//
//	if err := m.Fire(ctx, m.ByTrigger(order, Pay)); err != nil {
//		return err
//	}
package transitkit
