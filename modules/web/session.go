package web

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/pkg/cookie"
)

// SessionCookie holds the signed browser session id.
const SessionCookie = "bt_session"

// SessionMaxAge keeps the session cookie for 30 days.
const SessionMaxAge = 30 * 24 * 60 * 60

var sessionKey = handler.NewContextKey("session")

var sessionIDPattern = regexp.MustCompile(`^[0-9a-f-]{36}$`)

// Sessions issues and reads the signed session cookie. The session id
// scopes per-browser state: forms, auto-save snapshots, toasts, sort state.
func Sessions(cookies *cookie.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := cookies.GetSigned(r, SessionCookie)
			if err != nil || !sessionIDPattern.MatchString(id) {
				id = uuid.NewString()
				cookies.SetSigned(w, SessionCookie, id, cookie.WithMaxAge(SessionMaxAge))
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), id)))
		})
	}
}

// WithSession stores the session id in ctx.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// SessionID returns the session id of ctx or "".
func SessionID(ctx context.Context) string {
	return handler.ContextValue[string](ctx, sessionKey)
}

// SessionLogExtractor adds the session id to log records.
func SessionLogExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := SessionID(ctx); id != "" {
		return slog.String("session", id), true
	}
	return slog.Attr{}, false
}
