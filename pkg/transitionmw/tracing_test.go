package transitionmw_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/transitkit/pkg/transitionmw"
)

func TestTracing(t *testing.T) {
	t.Parallel()

	t.Run("span per transition", func(t *testing.T) {
		t.Parallel()
		recorder := tracetest.NewSpanRecorder()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

		var inSpan bool
		m := newOrderMachine(t, actionFunc(func(ctx context.Context, _ *transition) error {
			inSpan = trace.SpanContextFromContext(ctx).IsValid()
			return nil
		}), transitionmw.Tracing[string, string, *order](provider.Tracer("test")))

		require.NoError(t, m.Fire(context.Background(), m.ByTrigger(&order{status: "new"}, "pay")))
		assert.True(t, inSpan)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		span := spans[0]
		assert.Equal(t, transitionmw.SpanName, span.Name())
		assert.Equal(t, codes.Unset, span.Status().Code)
		assert.Contains(t, span.Attributes(), attribute.String("transition.source", "new"))
		assert.Contains(t, span.Attributes(), attribute.String("transition.destination", "paid"))
		assert.Contains(t, span.Attributes(), attribute.String("transition.trigger", "pay"))
		assert.Contains(t, span.Attributes(), attribute.String("transition.status", transitionmw.StatusOK))
	})

	t.Run("error recorded", func(t *testing.T) {
		t.Parallel()
		recorder := tracetest.NewSpanRecorder()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

		m := newOrderMachine(t, actionFunc(func(context.Context, *transition) error {
			return errDeclined
		}), transitionmw.Tracing[string, string, *order](provider.Tracer("test")))

		require.Error(t, m.Fire(context.Background(), m.ByTrigger(&order{status: "new"}, "pay")))

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		require.NotEmpty(t, spans[0].Events())
		assert.Equal(t, "exception", spans[0].Events()[0].Name)
	})

	t.Run("nil tracer", func(t *testing.T) {
		t.Parallel()
		m := newOrderMachine(t, nil, transitionmw.Tracing[string, string, *order](nil))
		require.NoError(t, m.Fire(context.Background(), m.ByTrigger(&order{status: "new"}, "pay")))
	})
}
