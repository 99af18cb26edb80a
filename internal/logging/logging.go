// Package logging configures the process-wide slog logger and hands out
// subsystem-scoped loggers to the bridge, registrar and service layers.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var root atomic.Pointer[slog.Logger]

// ParseLevel maps a textual level (debug, info, warn, error) to slog.Level.
// Unknown values default to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init installs a text handler writing to output at the given level and makes
// it the slog default. Call it once at CLI startup.
func Init(level slog.Level, output io.Writer) *slog.Logger {
	if output == nil {
		output = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
	root.Store(logger)
	slog.SetDefault(logger)
	return logger
}

// For returns a logger tagged with the given subsystem.
func For(subsystem string) *slog.Logger {
	logger := root.Load()
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("subsystem", subsystem))
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
