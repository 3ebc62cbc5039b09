package statemachine

import (
	"log/slog"

	"github.com/dmitrymomot/transitkit/pkg/logger"
)

// Config holds deploy-time settings of a machine. Load it with config.Load.
type Config struct {
	MaxAutofireDepth int  `env:"STATEMACHINE_MAX_AUTOFIRE_DEPTH" envDefault:"0"`
	LogTransitions   bool `env:"STATEMACHINE_LOG_TRANSITIONS" envDefault:"false"`
}

type settings struct {
	logger           *slog.Logger
	maxAutofireDepth int
	logLevel         slog.Level
}

func defaultSettings() settings {
	return settings{
		logger:   logger.Discard(),
		logLevel: slog.LevelDebug,
	}
}

// Option configures a Machine.
type Option func(*settings)

// WithLogger sets the logger used for transition and failure records.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxAutofireDepth bounds the number of chained autofire transitions
// following one Fire call. Zero means unlimited, in which case an autofire
// cycle runs until an action fails or the context is cancelled.
func WithMaxAutofireDepth(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.maxAutofireDepth = n
		}
	}
}

// WithConfig applies values loaded from the environment. Zero values leave
// earlier options untouched.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		if cfg.MaxAutofireDepth > 0 {
			s.maxAutofireDepth = cfg.MaxAutofireDepth
		}
		if cfg.LogTransitions {
			s.logLevel = slog.LevelInfo
		}
	}
}
