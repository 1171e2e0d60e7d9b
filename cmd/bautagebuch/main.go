// Command bautagebuch serves the site diary.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/modules/web"
	"github.com/borrmann/bautagebuch/pkg/api"
	"github.com/borrmann/bautagebuch/pkg/autosave"
	"github.com/borrmann/bautagebuch/pkg/broadcast"
	"github.com/borrmann/bautagebuch/pkg/config"
	"github.com/borrmann/bautagebuch/pkg/cookie"
	"github.com/borrmann/bautagebuch/pkg/format"
	"github.com/borrmann/bautagebuch/pkg/httpserver"
	"github.com/borrmann/bautagebuch/pkg/i18n"
	"github.com/borrmann/bautagebuch/pkg/logger"
	"github.com/borrmann/bautagebuch/pkg/redis"
	"github.com/borrmann/bautagebuch/pkg/toast"
	"github.com/borrmann/bautagebuch/pkg/upload"
	"github.com/borrmann/bautagebuch/pkg/validator"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	TimeZone string `env:"APP_TIMEZONE" envDefault:"Europe/Berlin"`

	HTTP   httpserver.Config
	Redis  redis.Config
	Cookie cookie.Config

	APIBaseURL   string        `env:"API_BASE_URL" envDefault:"http://localhost:5000"`
	APICSRFToken string        `env:"API_CSRF_TOKEN"`
	APIRateLimit float64       `env:"API_RATE_LIMIT" envDefault:"0"` // requests per second, 0 disables
	APIRateBurst int           `env:"API_RATE_BURST" envDefault:"5"`
	PollInterval time.Duration `env:"DASHBOARD_POLL_INTERVAL" envDefault:"30s"`

	AutosaveDelay time.Duration `env:"AUTOSAVE_DELAY" envDefault:"2s"`
	AutosaveTTL   time.Duration `env:"AUTOSAVE_TTL" envDefault:"168h"`

	UploadDir     string `env:"UPLOAD_DIR" envDefault:"./data/uploads"`
	UploadBaseURL string `env:"UPLOAD_BASE_URL" envDefault:"/files"`
	StaticDir     string `env:"STATIC_DIR" envDefault:"./static"`
	MessagesFile  string `env:"VALIDATION_MESSAGES_FILE"`
}

func main() {
	if err := config.LoadEnv(); err != nil {
		slog.Error("failed to load .env", logger.Error(err))
		os.Exit(1)
	}
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, "bautagebuch"),
		logger.WithContextExtractors(
			web.SessionLogExtractor,
			func(ctx context.Context) (slog.Attr, bool) {
				if id := middleware.GetReqID(ctx); id != "" {
					return logger.RequestID(id), true
				}
				return slog.Attr{}, false
			},
		),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Warn("unknown time zone, using local time", slog.String("tz", cfg.TimeZone), logger.Error(err))
		loc = time.Local
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	var checks []httpserver.HealthCheck
	var store autosave.Store = autosave.NewMemoryStore()
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		store = autosave.NewRedisStore(client, cfg.AutosaveTTL)
		checks = append(checks, redis.Healthcheck(client))
	} else {
		log.Info("REDIS_URL not set, auto-save snapshots stay in memory")
	}

	streams := broadcast.NewMemoryBroadcaster[[]handler.Action](32)
	defer func() { _ = streams.Close() }()

	toasts := toast.NewManager(toast.NewMemoryStorage(), web.NewStreamDeliverer(streams, log), toast.WithLogger(log))
	defer toasts.Stop()

	saver := autosave.NewSaver(store,
		autosave.WithDelay(cfg.AutosaveDelay),
		autosave.WithNotifier(toasts),
		autosave.WithLogger(log),
	)
	defer saver.Stop()

	uploads, err := upload.NewLocalStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		return err
	}

	var messages *validator.Messages
	if cfg.MessagesFile != "" {
		adapter, err := i18n.NewFileAdapter(cfg.MessagesFile)
		if err != nil {
			return err
		}
		messages, err = validator.LoadMessages(ctx, adapter,
			i18n.WithLogger(log),
			i18n.WithMissingTranslationsLogging(cfg.Env != logger.EnvProduction),
		)
		if err != nil {
			return err
		}
	}

	clientOpts := []api.Option{api.WithLogger(log)}
	if cfg.APICSRFToken != "" {
		clientOpts = append(clientOpts, api.WithCSRFToken(cfg.APICSRFToken))
	}
	if cfg.APIRateLimit > 0 {
		clientOpts = append(clientOpts, api.WithRateLimit(rate.Limit(cfg.APIRateLimit), cfg.APIRateBurst))
	}
	backend := api.NewClient(cfg.APIBaseURL, clientOpts...)

	var static http.Handler
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		static = http.FileServer(http.Dir(cfg.StaticDir))
	}

	router, err := web.Router(web.Deps{
		Logger:       log,
		Cookies:      cookies,
		Backend:      backend,
		Saver:        saver,
		Toasts:       toasts,
		Streams:      streams,
		Uploads:      uploads,
		Format:       format.German(loc),
		Messages:     messages,
		PollInterval: cfg.PollInterval,
		Static:       static,
		Checks:       checks,
	})
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}
