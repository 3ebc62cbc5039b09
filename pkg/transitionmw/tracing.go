package transitionmw

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/transitkit/pkg/statemachine"
)

// SpanName is the name of spans started by Tracing.
const SpanName = "statemachine.transition"

// Tracing starts one span per transition. Actions receive the span context.
func Tracing[S, T comparable, E any](tracer trace.Tracer) statemachine.Middleware[S, T, E] {
	return func(next statemachine.Handler[S, T, E]) statemachine.Handler[S, T, E] {
		if tracer == nil {
			return next
		}
		return func(ctx context.Context, t *statemachine.Transition[S, T, E]) error {
			ctx, span := tracer.Start(ctx, SpanName,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					attribute.String("transition.source", fmt.Sprint(t.Source)),
					attribute.String("transition.destination", fmt.Sprint(t.Destination)),
					attribute.String("transition.trigger", fmt.Sprint(t.Trigger)),
					attribute.String("transition.kind", t.Kind.String()),
				),
			)
			defer span.End()

			err := next(ctx, t)
			span.SetAttributes(attribute.String("transition.status", status(err)))
			if err != nil && status(err) != StatusSkipped {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return err
		}
	}
}
