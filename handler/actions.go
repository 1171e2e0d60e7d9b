package handler

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// Action is one event written to a datastar stream.
type Action interface {
	Apply(sse *datastar.ServerSentEventGenerator) error
}

// ActionFunc adapts a function to Action.
type ActionFunc func(sse *datastar.ServerSentEventGenerator) error

func (f ActionFunc) Apply(sse *datastar.ServerSentEventGenerator) error { return f(sse) }

// Element patches a templ component.
func Element(c templ.Component, opts ...TemplOption) Action {
	return ActionFunc(func(sse *datastar.ServerSentEventGenerator) error {
		return sse.PatchElementTempl(c, opts...)
	})
}

// Remove deletes the elements matching selector.
func Remove(selector string) Action {
	return ActionFunc(func(sse *datastar.ServerSentEventGenerator) error {
		return sse.PatchElements("",
			datastar.WithSelector(selector),
			datastar.WithMode(datastar.ElementPatchModeRemove),
		)
	})
}

// SetSignals merges values into the client's signals.
func SetSignals(values map[string]any) Action {
	return ActionFunc(func(sse *datastar.ServerSentEventGenerator) error {
		data, err := json.Marshal(values)
		if err != nil {
			return err
		}
		return sse.PatchSignals(data)
	})
}

// Script runs JavaScript on the client.
func Script(js string) Action {
	return ActionFunc(func(sse *datastar.ServerSentEventGenerator) error {
		return sse.ExecuteScript(js)
	})
}

// Navigate sends the browser to url.
func Navigate(url string) Action {
	return ActionFunc(func(sse *datastar.ServerSentEventGenerator) error {
		return sse.Redirect(url)
	})
}

type streamResponse struct {
	actions []Action
}

func (s streamResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
	sse := datastar.NewSSE(w, r)
	for _, a := range s.actions {
		if err := a.Apply(sse); err != nil {
			return err
		}
	}
	return nil
}

// Stream writes actions in order to a datastar stream. Non-datastar
// requests get 204 No Content.
func Stream(actions ...Action) Response {
	return streamResponse{actions: actions}
}

// Run applies actions to the request's stream, opening it if needed.
func Run(ctx Context, actions ...Action) error {
	sse := ctx.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	for _, a := range actions {
		if err := a.Apply(sse); err != nil {
			return err
		}
	}
	return nil
}

type redirectResponse struct {
	url string
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).Redirect(rr.url)
	}
	http.Redirect(w, r, rr.url, http.StatusSeeOther)
	return nil
}

// Redirect navigates to url through datastar or with 303 See Other.
func Redirect(url string) Response {
	return redirectResponse{url: url}
}
