package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

var loggerContextKey contextKey

// WithAttrs derives a context whose logger carries the extra attributes.
func WithAttrs(ctx context.Context, attrs ...any) context.Context {
	l := FromContext(ctx).With(attrs...)
	return context.WithValue(ctx, loggerContextKey, l)
}

// FromContext returns the request-scoped logger, falling back to the
// process logger when the context carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return LoggerWrapper()
	}
	if l, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
