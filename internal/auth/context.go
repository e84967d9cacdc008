package auth

import (
	"context"

	"github.com/tasknest/tasknest/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const sessionContextKey contextKey = "session"

// ContextWithSession adds the resolved session to the context.
func ContextWithSession(ctx context.Context, sess *model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SessionFromContext retrieves the session from the context.
// Returns nil if not present.
func SessionFromContext(ctx context.Context) *model.Session {
	sess, ok := ctx.Value(sessionContextKey).(*model.Session)
	if !ok {
		return nil
	}
	return sess
}

// MustSessionFromContext retrieves the session from the context.
// Panics if not present (use only behind the auth guard).
func MustSessionFromContext(ctx context.Context) *model.Session {
	sess := SessionFromContext(ctx)
	if sess == nil {
		panic("session not found in context - ensure auth middleware is applied")
	}
	return sess
}
