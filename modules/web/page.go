package web

import (
	"log/slog"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/pkg/logger"
	"github.com/borrmann/bautagebuch/pkg/theme"
	"github.com/borrmann/bautagebuch/pkg/toast"
)

// Pages renders the site diary page.
type Pages struct {
	defs      []FormDef
	forms     *Forms
	tables    *Tables
	uploads   *Uploads
	dashboard *Dashboard
	themes    *Themes
	toasts    *toast.Manager
	logger    *slog.Logger
}

func (h *Pages) index(ctx handler.Context, _ struct{}) handler.Response {
	session := SessionID(ctx)
	w := ctx.ResponseWriter()

	m := h.themes.Manager(w, ctx.Request())
	defer m.Close()
	w.Header().Set("Accept-CH", theme.ClientHintHeader)
	w.Header().Add("Vary", theme.ClientHintHeader)

	forms := make([]FormCardData, 0, len(h.defs))
	for _, d := range h.defs {
		forms = append(forms, FormCardData{Def: d, Values: h.forms.Values(ctx, session, d.ID)})
	}

	materials, err := h.tables.View(session, MaterialsTableID)
	if err != nil {
		return handler.Fail(err)
	}

	toasts, err := h.toasts.List(ctx, session)
	if err != nil {
		h.logger.LogAttrs(ctx, slog.LevelWarn, "failed to list toasts",
			logger.Component("toast"),
			logger.Error(err),
		)
	}

	return handler.Templ(Page(PageData{
		Theme:     m.Current(),
		Forms:     forms,
		Materials: materials,
		Stats:     h.dashboard.Cards(),
		Uploads:   h.uploads.Items(session),
		Toasts:    toasts,
	}))
}
