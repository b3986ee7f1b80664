package httpx

import (
	"context"
	"net/http"

	"github.com/ghugn/chem-class-git/internal/service"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *service.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the request's session and whether the session middleware ran.
func GetSessionFromContext(ctx context.Context) (*service.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*service.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}

// requestSession returns the session attached by the Sessions middleware.
// Routes mounted without it get an unbound, unauthenticated session.
func requestSession(r *http.Request) *service.Session {
	if s, ok := GetSessionFromContext(r.Context()); ok {
		return s
	}
	return service.NewSession(nil, "")
}
