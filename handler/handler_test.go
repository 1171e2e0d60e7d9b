package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/pkg/logger"
)

func text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func datastarRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("Accept", "text/event-stream")
	r.Header.Set(handler.DataStarHeader, "true")
	return r
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, handler.IsDataStar(plain))

	accept := httptest.NewRequest(http.MethodGet, "/", nil)
	accept.Header.Set("Accept", "text/event-stream")
	assert.True(t, handler.IsDataStar(accept))

	header := httptest.NewRequest(http.MethodGet, "/", nil)
	header.Header.Set(handler.DataStarHeader, "true")
	assert.True(t, handler.IsDataStar(header))

	query := httptest.NewRequest(http.MethodGet, "/?datastar=%7B%7D", nil)
	assert.True(t, handler.IsDataStar(query))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	type signals struct {
		Titel string `json:"titel"`
	}

	t.Run("binds signals before rendering", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, req signals) handler.Response {
			return handler.Templ(text("<p>"+req.Titel+"</p>"), handler.WithTarget("#out"))
		}, handler.WithBinders(handler.Signals()))

		rec := httptest.NewRecorder()
		h(rec, datastarRequest(http.MethodPost, "/", `{"titel":"Fundament"}`))

		body := rec.Body.String()
		assert.Contains(t, body, "event: datastar-patch-elements")
		assert.Contains(t, body, "selector #out")
		assert.Contains(t, body, "<p>Fundament</p>")
	})

	t.Run("plain request renders html", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
			return handler.Templ(text("<h1>Bautagebuch</h1>"))
		}, handler.WithBinders(handler.Signals()))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "<h1>Bautagebuch</h1>", rec.Body.String())
	})

	t.Run("bind error goes to error handler", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(func(ctx handler.Context, req signals) handler.Response {
			t.Fatal("handler must not run")
			return nil
		},
			handler.WithBinders(handler.Signals()),
			handler.WithErrorHandler(func(ctx handler.Context, err error) { got = err }),
		)

		h(httptest.NewRecorder(), datastarRequest(http.MethodPost, "/", `{broken`))
		assert.ErrorIs(t, got, handler.ErrBadRequest)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response { return nil })

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), handler.MessageInternal)
	})

	t.Run("empty response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response { return handler.Empty() })

		rec := httptest.NewRecorder()
		h(rec, datastarRequest(http.MethodGet, "/", ""))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("fail reaches error handler", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
			return handler.Fail(handler.ErrNotFound)
		}, handler.WithErrorHandler(func(ctx handler.Context, err error) { got = err }))

		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNotFound)
	})
}

func TestStream(t *testing.T) {
	t.Parallel()

	t.Run("writes actions in order", func(t *testing.T) {
		t.Parallel()
		resp := handler.Stream(
			handler.Element(text(`<div id="a">1</div>`)),
			handler.Remove("#b"),
			handler.SetSignals(map[string]any{"count": 2}),
		)

		rec := httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, datastarRequest(http.MethodGet, "/", "")))

		body := rec.Body.String()
		first := strings.Index(body, `<div id="a">1</div>`)
		second := strings.Index(body, "selector #b")
		third := strings.Index(body, "datastar-patch-signals")
		require.True(t, first >= 0 && second >= 0 && third >= 0, body)
		assert.Less(t, first, second)
		assert.Less(t, second, third)
		assert.Contains(t, body, "mode remove")
		assert.Contains(t, body, `"count":2`)
	})

	t.Run("no content for plain requests", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Stream(handler.Remove("#x")).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/eintraege").Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/eintraege", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/eintraege").Render(rec, datastarRequest(http.MethodPost, "/", "")))
	assert.Contains(t, rec.Body.String(), "/eintraege")
}

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		code int
		msg  string
		typ  string
	}{
		{"http error", handler.NewHTTPError(http.StatusConflict, "Doppelter Eintrag"), http.StatusConflict, "Doppelter Eintrag", "warning"},
		{"wrapped http error", errors.Join(errors.New("x"), handler.NewHTTPError(http.StatusNotFound, "weg")), http.StatusNotFound, "weg", "warning"},
		{"bad request", handler.ErrBadRequest, http.StatusBadRequest, handler.MessageBadRequest, "warning"},
		{"not found", handler.ErrNotFound, http.StatusNotFound, handler.MessageNotFound, "warning"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, handler.MessageInternal, "error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			info := handler.Classify(tc.err)
			assert.Equal(t, tc.code, info.StatusCode)
			assert.Equal(t, tc.msg, info.Message)
			assert.Equal(t, tc.typ, info.Type)
		})
	}
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(logger.Nop(), handler.ErrorHandlerConfig{
		ErrorToast: func(p handler.ErrorToastParams) templ.Component {
			return text(`<div class="toast">` + p.Message + `</div>`)
		},
	})

	t.Run("datastar gets a toast", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		r := datastarRequest(http.MethodPost, "/", "")
		eh(handler.NewContext(rec, r), errors.New("boom"))

		body := rec.Body.String()
		assert.Contains(t, body, "selector #toast-container")
		assert.Contains(t, body, "mode append")
		assert.Contains(t, body, handler.MessageInternal)
	})

	t.Run("plain gets status", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
