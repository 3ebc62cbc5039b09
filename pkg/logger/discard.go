package logger

import (
	"context"
	"log/slog"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

// Discard returns a logger that drops every record.
// Packages use it as their default so a nil logger never has to be checked.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}
