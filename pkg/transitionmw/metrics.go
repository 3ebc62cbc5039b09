package transitionmw

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/transitkit/pkg/statemachine"
)

const (
	StatusOK        = "ok"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
	StatusSkipped   = "skipped"
)

var labels = []string{"source", "destination", "trigger", "status"}

// MetricsCollector holds the Prometheus collectors shared by every machine
// instrumented with it.
type MetricsCollector struct {
	transitions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

type metricsConfig struct {
	namespace string
	buckets   []float64
}

// MetricsOption configures a MetricsCollector.
type MetricsOption func(*metricsConfig)

// WithNamespace sets the metric namespace. Defaults to "transitkit".
func WithNamespace(ns string) MetricsOption {
	return func(c *metricsConfig) {
		c.namespace = ns
	}
}

// WithBuckets sets the duration histogram buckets, in seconds.
func WithBuckets(buckets ...float64) MetricsOption {
	return func(c *metricsConfig) {
		if len(buckets) > 0 {
			c.buckets = buckets
		}
	}
}

// NewMetricsCollector creates the collectors and registers them with reg.
func NewMetricsCollector(reg prometheus.Registerer, opts ...MetricsOption) (*MetricsCollector, error) {
	if reg == nil {
		return nil, ErrNilRegisterer
	}

	cfg := metricsConfig{
		namespace: "transitkit",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &MetricsCollector{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "transitions_total",
			Help:      "Number of fired transitions by outcome.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "transition_duration_seconds",
			Help:      "Time spent running the transition pipeline.",
			Buckets:   cfg.buckets,
		}, labels),
	}

	if err := reg.Register(c.transitions); err != nil {
		return nil, errors.Join(ErrRegisterMetrics, err)
	}
	if err := reg.Register(c.duration); err != nil {
		return nil, errors.Join(ErrRegisterMetrics, err)
	}
	return c, nil
}

// Metrics counts transitions and observes their duration.
func Metrics[S, T comparable, E any](c *MetricsCollector) statemachine.Middleware[S, T, E] {
	return func(next statemachine.Handler[S, T, E]) statemachine.Handler[S, T, E] {
		if c == nil {
			return next
		}
		return func(ctx context.Context, t *statemachine.Transition[S, T, E]) error {
			start := time.Now()
			err := next(ctx, t)

			values := []string{
				fmt.Sprint(t.Source),
				fmt.Sprint(t.Destination),
				fmt.Sprint(t.Trigger),
				status(err),
			}
			c.transitions.WithLabelValues(values...).Inc()
			c.duration.WithLabelValues(values...).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, statemachine.ErrSkipTransition):
		return StatusSkipped
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StatusCancelled
	default:
		return StatusFailed
	}
}
