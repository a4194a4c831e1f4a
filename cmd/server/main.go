package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ousadiats/website/internal/contact"
	"github.com/ousadiats/website/internal/ledger"
	"github.com/ousadiats/website/pkg/clientip"
	"github.com/ousadiats/website/pkg/config"
	"github.com/ousadiats/website/pkg/email"
	"github.com/ousadiats/website/pkg/httpserver"
	"github.com/ousadiats/website/pkg/logger"
	"github.com/ousadiats/website/web"
)

type appConfig struct {
	Name string `env:"APP_NAME" envDefault:"ousadia-website"`
	Env  string `env:"APP_ENV" envDefault:"development"`
}

func main() {
	var (
		app        appConfig
		httpCfg    httpserver.Config
		companyCfg contact.Config
		mailCfg    email.Config
		smtpCfg    email.SMTPConfig
		ledgerCfg  ledger.Config
	)
	config.MustLoad(&app)
	config.MustLoad(&httpCfg)
	config.MustLoad(&companyCfg)
	config.MustLoad(&mailCfg)
	config.MustLoad(&smtpCfg)
	config.MustLoad(&ledgerCfg)

	log := logger.New(
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), httpCfg, companyCfg, mailCfg, smtpCfg, ledgerCfg, log); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	httpCfg httpserver.Config,
	companyCfg contact.Config,
	mailCfg email.Config,
	smtpCfg email.SMTPConfig,
	ledgerCfg ledger.Config,
	log *slog.Logger,
) error {
	sender, err := newSender(mailCfg, smtpCfg)
	if err != nil {
		return fmt.Errorf("mail transport: %w", err)
	}
	log.Info("mail transport ready", slog.String("transport", mailCfg.Transport))

	fileLedger, err := ledger.New(ledgerCfg)
	if err != nil {
		return fmt.Errorf("ledger: %w", err)
	}

	composer, err := contact.NewComposer(companyCfg)
	if err != nil {
		return fmt.Errorf("composer: %w", err)
	}

	svc := contact.NewService(companyCfg, composer, sender, fileLedger, log)
	handler := contact.NewHandler(svc, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(clientip.Middleware)
	r.Use(requestLogger(log))

	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	web.Register(r)
	handler.Register(r)

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// newSender selects the delivery transport. Postmark is the production
// default; smtp serves self-hosted setups and dev writes messages to disk.
func newSender(cfg email.Config, smtpCfg email.SMTPConfig) (email.Sender, error) {
	switch cfg.Transport {
	case "postmark":
		return email.NewPostmarkSender(cfg)
	case "smtp":
		return email.NewSMTPSender(cfg, smtpCfg)
	case "dev":
		return email.NewDevSender(cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}
}

// requestLogger emits one structured line per completed request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("ip", clientip.GetIPFromContext(r.Context())),
			)
		})
	}
}
