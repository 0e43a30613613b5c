package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const sessionContextKey contextKey = "session_id"

// SessionHeader carries the cart session identifier. The SPA stores it and
// sends it back on every request; a request without one gets a fresh
// identifier issued.
const SessionHeader = "X-Session-ID"

const sessionCookieName = "storefront_session"

// SessionMiddleware resolves the cart session for a request, preferring the
// header over the cookie, and echoes the identifier in both so the client
// can persist it.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			if cookie, err := r.Cookie(sessionCookieName); err == nil {
				sessionID = cookie.Value
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		w.Header().Set(SessionHeader, sessionID)
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := context.WithValue(r.Context(), sessionContextKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext returns the session identifier resolved by
// SessionMiddleware, or the empty string outside of it.
func SessionFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionContextKey).(string); ok {
		return id
	}
	return ""
}
