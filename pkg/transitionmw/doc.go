// Package transitionmw provides middleware for statemachine.Machine.
//
// Every constructor is generic over the machine's state, trigger and entity
// types and returns a statemachine.Middleware:
//
//	m.Use(
//		transitionmw.Tracing[Status, Event, *Order](otel.Tracer("orders")),
//		transitionmw.Metrics[Status, Event, *Order](metrics),
//		transitionmw.Logging[Status, Event, *Order](log),
//		transitionmw.Retry[Status, Event, *Order](transitionmw.WithMaxAttempts(3)),
//		transitionmw.Timeout[Status, Event, *Order](5*time.Second),
//	)
//
// Middleware runs in the order it is added, so the example traces and
// measures the whole retry loop while each attempt gets its own deadline.
//
// Retry re-runs the full transition pipeline, including default entry and
// before actions. Only use it with actions that tolerate being repeated.
package transitionmw
