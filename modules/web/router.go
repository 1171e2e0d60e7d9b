package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/pkg/autosave"
	"github.com/borrmann/bautagebuch/pkg/broadcast"
	"github.com/borrmann/bautagebuch/pkg/cookie"
	"github.com/borrmann/bautagebuch/pkg/form"
	"github.com/borrmann/bautagebuch/pkg/format"
	"github.com/borrmann/bautagebuch/pkg/httpserver"
	"github.com/borrmann/bautagebuch/pkg/logger"
	"github.com/borrmann/bautagebuch/pkg/toast"
	"github.com/borrmann/bautagebuch/pkg/upload"
	"github.com/borrmann/bautagebuch/pkg/validator"
)

// Deps are the collaborators of the web layer.
type Deps struct {
	Logger   *slog.Logger
	Cookies  *cookie.Manager
	Backend  Backend
	Saver    *autosave.Saver
	Toasts   *toast.Manager
	Streams  broadcast.Broadcaster[[]handler.Action]
	Uploads  *upload.LocalStore
	Format   *format.Formatter
	Catalog  *Catalog
	Messages *validator.Messages

	Forms        []FormDef     // DefaultForms when empty
	Stats        []StatCard    // DefaultStats when empty
	PollInterval time.Duration // api.DefaultPollInterval when zero

	Static http.Handler // serves /static/*, optional
	Checks []httpserver.HealthCheck
}

// Router wires every endpoint of the site diary.
func Router(d Deps) (chi.Router, error) {
	l := d.Logger
	if l == nil {
		l = logger.Nop()
	}
	if len(d.Forms) == 0 {
		d.Forms = DefaultForms()
	}
	if len(d.Stats) == 0 {
		d.Stats = DefaultStats()
	}
	if d.Format == nil {
		d.Format = format.German(nil)
	}
	if d.Catalog == nil {
		d.Catalog = NewCatalog(d.Format, DefaultMaterials()...)
	}

	eval := validator.NewEvaluator(
		validator.WithMessages(d.Messages),
		validator.WithLogger(l),
		validator.WithUniqueChecker(validator.UniqueCheckerFunc(func(_ context.Context, _, value string) (bool, error) {
			return !d.Catalog.HasName(value), nil
		})),
	)
	forms, err := NewForms(d.Forms, d.Backend, d.Saver, d.Toasts, l, form.WithEvaluator(eval))
	if err != nil {
		return nil, err
	}

	tables := NewTables(l)
	tables.Register(MaterialsTableID, d.Catalog, true)

	themes := &Themes{cookies: d.Cookies, toasts: d.Toasts, logger: l}
	uploads := NewUploads(d.Uploads, d.Toasts, l)
	materials := NewMaterials(d.Backend, d.Catalog, tables, d.Toasts, l)
	dashboard := NewDashboard(d.Backend, d.Stats, d.PollInterval, d.Format, l)
	events := &Events{streams: d.Streams, toasts: d.Toasts, logger: l}
	pages := &Pages{
		defs:      d.Forms,
		forms:     forms,
		tables:    tables,
		uploads:   uploads,
		dashboard: dashboard,
		themes:    themes,
		toasts:    d.Toasts,
		logger:    l,
	}

	errs := handler.WithErrorHandler(handler.NewErrorHandler(l, handler.ErrorHandlerConfig{
		ErrorToast: ErrorToast,
	}))
	signals := handler.WithBinders(handler.Signals())

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(l),
		middleware.Recoverer,
	)

	r.Get("/health/live", httpserver.HealthHandler(l))
	r.Get("/health/ready", httpserver.HealthHandler(l, d.Checks...))
	if d.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", d.Static))
	}

	r.Group(func(r chi.Router) {
		r.Use(Sessions(d.Cookies))

		r.Get("/", handler.Wrap(pages.index, errs))
		r.Get("/events", handler.Wrap(events.stream, errs))
		r.Post("/toasts/{id}/close", handler.Wrap(events.closeToast, errs))

		r.Route("/forms/{form}", func(r chi.Router) {
			r.Post("/blur/{field}", handler.Wrap(forms.blur, signals, errs))
			r.Post("/input/{field}", handler.Wrap(forms.input, signals, errs))
			r.Post("/submit", handler.Wrap(forms.submit, signals, errs))
			r.Post("/reset", handler.Wrap(forms.reset, signals, errs))
		})

		r.Post("/theme/toggle", handler.Wrap(themes.toggle, errs))

		r.Get("/tables/{table}/sort", handler.Wrap(tables.sort, errs))
		r.Get("/tables/{table}/filter", handler.Wrap(tables.filter, signals, errs))

		r.Get("/materials/{id}/info", handler.Wrap(materials.info, errs))
		r.Delete("/materials/{id}", handler.Wrap(materials.remove, errs))

		r.Get("/dashboard/stats", handler.Wrap(dashboard.stream, errs))

		if d.Uploads != nil {
			r.Post("/uploads/preview", handler.Wrap(uploads.preview, errs))
			r.Post("/uploads/remove/{index}", handler.Wrap(uploads.remove, errs))
		}
	})

	return r, nil
}
