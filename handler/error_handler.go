package handler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/borrmann/bautagebuch/pkg/logger"
)

// ErrorToastParams is the input of the error toast component.
type ErrorToastParams struct {
	Message   string
	Type      string
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// ErrorToast renders the toast patched into ToastTarget for datastar
	// requests. Without it datastar requests get no visible feedback.
	ErrorToast func(ErrorToastParams) templ.Component

	ToastTarget string // default "#toast-container"
}

// NewErrorHandler logs err and answers with a toast patch for datastar
// requests or a plain error response otherwise. Client errors log at
// warn level, everything else at error.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := Classify(err)
		requestID := middleware.GetReqID(r.Context())

		level := slog.LevelError
		if info.StatusCode < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Component("handler"),
			logger.RequestID(requestID),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
		)

		if !IsDataStar(r) {
			http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
			return
		}
		if cfg.ErrorToast == nil {
			return
		}
		toast := cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: requestID})
		if err := Run(ctx, Element(toast, WithTarget(cfg.ToastTarget), WithPatchMode(PatchAppend))); err != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error toast",
				logger.Component("handler"),
				logger.RequestID(requestID),
				logger.Error(err),
			)
		}
	}
}
