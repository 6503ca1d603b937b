package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds the optional Sentry integration settings.
type SentryConfig struct {
	DSN         string `env:"CUSTOMFIELDS_SENTRY_DSN"`
	Environment string `env:"CUSTOMFIELDS_SENTRY_ENVIRONMENT" envDefault:"production"`
}

// NewWithSentry creates a logger writing JSON to stdout and mirroring
// warnings and errors to Sentry. An empty DSN or a failed Sentry init
// degrades to stdout-only.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})

	if cfg.DSN == "" {
		return slog.New(newContextHandler(stdout, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("sentry init failed", slog.String("error", err.Error()))
		return slog.New(newContextHandler(stdout, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	combined := &fanoutHandler{handlers: []slog.Handler{stdout, sentryHandler}}
	return slog.New(newContextHandler(combined, extractors...))
}
