package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Source records the source state of a transition under the key "source".
func Source(state any) slog.Attr {
	return slog.Any("source", state)
}

// Destination records the destination state of a transition under the key "destination".
func Destination(state any) slog.Attr {
	return slog.Any("destination", state)
}

// Trigger records the trigger of a transition under the key "trigger".
func Trigger(trigger any) slog.Attr {
	return slog.Any("trigger", trigger)
}

// RequestKind records how a transition was requested under the key "request_kind".
func RequestKind(kind string) slog.Attr {
	return slog.String("request_kind", kind)
}

// EntityID records the entity identifier under the key "entity_id".
// If id is nil, it returns an empty Attr.
func EntityID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("entity_id", id)
}

// Attempt records the attempt number under the key "attempt".
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
