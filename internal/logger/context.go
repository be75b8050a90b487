package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	actorKey     ctxKey = "actor"
)

type actor struct {
	userID string
	role   string
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithActor tags every log line written from ctx with the signed-in user.
func WithActor(ctx context.Context, userID, role string) context.Context {
	return context.WithValue(ctx, actorKey, actor{userID: userID, role: role})
}

// FromCtx returns the global logger with request_id and actor fields attached.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if a, ok := ctx.Value(actorKey).(actor); ok {
		l = l.With(zap.String("user_id", a.userID), zap.String("role", a.role))
	}
	return l
}
