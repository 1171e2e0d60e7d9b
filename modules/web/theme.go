package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/pkg/cookie"
	"github.com/borrmann/bautagebuch/pkg/theme"
	"github.com/borrmann/bautagebuch/pkg/toast"
)

// Themes serves the light/dark switch.
type Themes struct {
	cookies *cookie.Manager
	toasts  *toast.Manager
	logger  *slog.Logger
}

// Manager resolves the theme of a request from the preference cookie and
// the system client hint.
func (h *Themes) Manager(w http.ResponseWriter, r *http.Request) *theme.Manager {
	return theme.NewManager(r.Context(),
		theme.NewCookieStore(h.cookies, w, r),
		theme.NewHeaderSystem(r),
		theme.WithLogger(h.logger),
	)
}

func (h *Themes) toggle(ctx handler.Context, _ struct{}) handler.Response {
	m := h.Manager(ctx.ResponseWriter(), ctx.Request())
	defer m.Close()

	t, msg := m.Toggle(ctx)
	notify(ctx, h.toasts, h.logger, SessionID(ctx), (*toast.Manager).Info, msg)

	return handler.Stream(
		handler.Element(ThemeToggle(t)),
		handler.Script(applyTheme(t)),
	)
}

// applyTheme switches the document to t without a reload.
func applyTheme(t theme.Theme) string {
	return fmt.Sprintf(
		`document.documentElement.dataset.theme=%[1]s;`+
			`document.body.classList.remove("theme-light","theme-dark");`+
			`document.body.classList.add("theme-"+%[1]s);`+
			`document.querySelector('meta[name="theme-color"]')?.setAttribute("content",%[2]s)`,
		jsString(t.String()), jsString(t.MetaColor()),
	)
}
