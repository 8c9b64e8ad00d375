// Package logging builds the process logger: colourised tint output in development and
// JSON lines in production.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"surfcast/shared/config"
)

func New(cfg config.LoggingConfig, appName string) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, appName)
}

func NewWithWriter(w io.Writer, cfg config.LoggingConfig, appName string) *slog.Logger {
	level, err := config.ParseLogLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	if cfg.AppEnv != "prod" {
		h := tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})
		return slog.New(h).With("app", appName)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(h).With(
		"app", appName,
		"env", cfg.AppEnv,
	)
}
