package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	loggerKey    contextKey = "logger"
)

// GenerateRequestID returns a fresh UUID for correlating a request's log lines.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID stores id in ctx and attaches a child logger carrying it.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, id)
	l := Logger().With().Str("request_id", id).Logger()
	return context.WithValue(ctx, loggerKey, &l)
}

// RequestIDFromContext returns the request id or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx returns the logger attached to ctx, falling back to the global logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok {
			return l
		}
	}
	l := Logger()
	return &l
}
