package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. The component name tells the API
// server and the worker apart when both log to the same sink; production
// deployments set LOG_FORMAT=json for ingestion.
func NewLogger(cfg *Config, component string) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}

	var handler slog.Handler
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With(slog.String("component", component))
}
