package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/transitkit/pkg/logger"
	"github.com/dmitrymomot/transitkit/pkg/statemachine"
)

// Named can be implemented by actions to control how they appear in records.
type Named interface {
	Name() string
}

type recorderConfig struct {
	logger *slog.Logger
	now    func() time.Time
}

// RecorderOption configures a Recorder.
type RecorderOption func(*recorderConfig)

// WithLogger sets the logger used to report storage failures.
func WithLogger(l *slog.Logger) RecorderOption {
	return func(c *recorderConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source of CreatedAt.
func WithClock(now func() time.Time) RecorderOption {
	return func(c *recorderConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// Recorder writes a Record for every committed transition.
type Recorder[S, T comparable, E any] struct {
	storage  Storage
	entityID func(E) string
	logger   *slog.Logger
	now      func() time.Time
}

// NewRecorder creates a recorder. entityID extracts the identifier records
// are grouped by.
func NewRecorder[S, T comparable, E any](storage Storage, entityID func(E) string, opts ...RecorderOption) (*Recorder[S, T, E], error) {
	if storage == nil {
		return nil, ErrNilStorage
	}
	if entityID == nil {
		return nil, ErrNilEntityIDFunc
	}

	cfg := recorderConfig{
		logger: logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Recorder[S, T, E]{
		storage:  storage,
		entityID: entityID,
		logger:   cfg.logger.With(logger.Component("history")),
		now:      cfg.now,
	}, nil
}

// Record stores the transition. It returns the storage error so callers
// outside of a machine callback can react to it.
func (r *Recorder[S, T, E]) Record(ctx context.Context, t *statemachine.Transition[S, T, E]) error {
	rec := Record{
		ID:          uuid.New(),
		EntityID:    r.entityID(t.Entity),
		Source:      fmt.Sprint(t.Source),
		Destination: fmt.Sprint(t.Destination),
		Trigger:     fmt.Sprint(t.Trigger),
		Kind:        t.Kind.String(),
		CreatedAt:   r.now().UTC(),
	}
	for _, a := range t.ActionLog() {
		rec.Actions = append(rec.Actions, actionName(a))
	}
	return r.storage.Store(ctx, rec)
}

// Callback returns a completion callback for Machine.OnTransitionCompleted.
// Storage errors are logged.
func (r *Recorder[S, T, E]) Callback() statemachine.CompletedFunc[S, T, E] {
	return func(ctx context.Context, t *statemachine.Transition[S, T, E]) {
		if err := r.Record(ctx, t); err != nil {
			r.logger.ErrorContext(ctx, "failed to record transition",
				logger.EntityID(r.entityID(t.Entity)),
				logger.Source(t.Source),
				logger.Destination(t.Destination),
				logger.Trigger(t.Trigger),
				logger.Error(err),
			)
		}
	}
}

func actionName(a any) string {
	if n, ok := a.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", a)
}
