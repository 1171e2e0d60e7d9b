package handler

import (
	"errors"
	"net/http"
)

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// HandlerFunc handles a request whose input was bound into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Bind fills v from the request. It must run before anything is written
// to the response: once an SSE stream is open the body may be unreadable.
type Bind func(r *http.Request, v any) error

// ErrorHandler writes err to the client.
type ErrorHandler func(ctx Context, err error)

type wrapConfig struct {
	binders      []Bind
	errorHandler ErrorHandler
}

// WrapOption configures Wrap.
type WrapOption func(*wrapConfig)

// WithBinders sets the binders applied in order before the handler runs.
// A binder returning ErrNotApplicable is skipped.
func WithBinders(binders ...Bind) WrapOption {
	return func(c *wrapConfig) {
		c.binders = append(c.binders, binders...)
	}
}

// WithErrorHandler replaces the plain-text error handler.
func WithErrorHandler(h ErrorHandler) WrapOption {
	return func(c *wrapConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// Wrap turns a typed handler into an http.HandlerFunc.
//
//	r.Post("/forms/{form}/blur/{field}", handler.Wrap(h.blur,
//		handler.WithBinders(handler.Signals()),
//		handler.WithErrorHandler(errs),
//	))
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption) http.HandlerFunc {
	cfg := &wrapConfig{errorHandler: plainErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				if errors.Is(err, ErrNotApplicable) {
					continue
				}
				cfg.errorHandler(ctx, errors.Join(ErrBadRequest, err))
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}

func plainErrorHandler(ctx Context, err error) {
	info := Classify(err)
	http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
}
