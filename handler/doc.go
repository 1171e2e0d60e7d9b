// Package handler adapts typed request handlers to net/http and renders
// their responses either as datastar server-sent events or as plain HTML.
//
// A handler receives a Context, whose datastar stream is opened lazily,
// and the request input bound by the configured binders:
//
//	type blurSignals map[string]any
//
//	func (h *Forms) blur(ctx handler.Context, sig blurSignals) handler.Response {
//		return handler.Stream(
//			handler.Element(view, handler.WithTarget("#titel-feedback")),
//			handler.SetSignals(map[string]any{"dirty": false}),
//		)
//	}
//
//	r.Post("/forms/{form}/blur/{field}", handler.Wrap(h.blur,
//		handler.WithBinders(handler.Signals()),
//	))
//
// Responses: Templ for a single component, Stream for an ordered list of
// actions (element patches, removals, signals, scripts, navigation),
// SSE for long-lived streams, JSON, Empty and Redirect.
//
// Errors returned while binding or rendering go to the ErrorHandler.
// NewErrorHandler logs them and shows a toast for datastar requests.
package handler
