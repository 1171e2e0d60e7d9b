package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/borrmann/bautagebuch/pkg/logger"
)

// HealthCheck is a readiness probe of one dependency.
type HealthCheck func(context.Context) error

// HealthHandler answers "ALIVE" without checks and "READY" or
// 503 "NOT_READY" when checks are given.
func HealthHandler(l *slog.Logger, checks ...HealthCheck) http.HandlerFunc {
	if l == nil {
		l = logger.Nop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			_, _ = w.Write([]byte("ALIVE"))
			return
		}
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				l.LogAttrs(r.Context(), slog.LevelError, "readiness check failed",
					logger.Component("httpserver"),
					logger.Error(err),
				)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		_, _ = w.Write([]byte("READY"))
	}
}
