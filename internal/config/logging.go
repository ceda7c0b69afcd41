package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogging configures the global slog default logger with the given
// level and format ("json" for JSON output, anything else for text). All
// output goes to os.Stderr, keeping stdout clean for rendered query
// output. Safe to call multiple times.
func SetupLogging(level slog.Level, format string) {
	SetupLoggingWithWriter(level, format, os.Stderr)
}

// SetupLoggingWithWriter is SetupLogging with an explicit writer, used by
// tests to capture log output.
func SetupLoggingWithWriter(level slog.Level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ResolveLogLevel determines the slog.Level from the --verbose flag and the
// RECON_DEBUG environment variable. Priority (highest to lowest):
// RECON_DEBUG=1, then --verbose, then the info default.
func ResolveLogLevel(verbose bool) slog.Level {
	if os.Getenv("RECON_DEBUG") == "1" {
		return slog.LevelDebug
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// ResolveLogFormat reads RECON_LOG_FORMAT ("json" or "text", case
// insensitive; defaults to "text").
func ResolveLogFormat() string {
	if strings.EqualFold(os.Getenv("RECON_LOG_FORMAT"), "json") {
		return "json"
	}
	return "text"
}

// NewLogger returns a child logger with a "component" attribute, for
// per-package scoped logging.
func NewLogger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
