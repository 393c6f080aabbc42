package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextAuthIDKey ctxKey = "authID"

func AuthIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if authID, ok := ctx.Value(ContextAuthIDKey).(string); ok {
		return authID
	}
	return ""
}

func ContextWithAuthID(ctx context.Context, authID string) context.Context {
	return context.WithValue(ctx, ContextAuthIDKey, authID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
