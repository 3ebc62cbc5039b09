// Package logger provides a slog factory configured with functional options
// plus attribute helpers that keep key names consistent across transitkit.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler depending on the
// configured Format and wraps it with LogHandlerDecorator, which runs the
// registered ContextExtractor callbacks on every record.
//
// Attribute helpers (Source, Destination, Trigger, RequestKind, EntityID,
// Attempt, Duration, Error) are used by the state machine engine and its
// middleware so that every transition record carries the same keys.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("billing"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	log.InfoContext(ctx, "transition committed",
//	    logger.Source("draft"),
//	    logger.Destination("review"),
//	)
//
// Discard returns a logger that drops everything; packages use it as their
// default so callers are never forced to pass a logger.
package logger
