// Package config provides flag/env/toml configuration loading and logging
// setup for the jsonai CLI. This package is a foundational cross-cutting
// concern used by every other internal package.
//
// The logging subsystem uses log/slog exclusively, directed at stderr so
// stdout stays clean JSON for piping into other tools.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogging configures the global slog default logger with the given
// level and format ("json" or text). Output always goes to os.Stderr.
// Idempotent: safe to call more than once.
func SetupLogging(level slog.Level, format string) {
	SetupLoggingWithWriter(level, format, os.Stderr)
}

// SetupLoggingWithWriter is SetupLogging with an explicit writer, used by
// tests to capture log output in a buffer.
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

// ResolveLogLevel determines the slog.Level from CLI flags and environment,
// in priority order: JSONAI_DEBUG=1 > --verbose > --quiet > info.
func ResolveLogLevel(verbose, quiet bool) slog.Level {
	if os.Getenv("JSONAI_DEBUG") == "1" {
		return slog.LevelDebug
	}
	if verbose {
		return slog.LevelDebug
	}
	if quiet {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ResolveLogFormat reads JSONAI_LOG_FORMAT and returns "json" or "text".
func ResolveLogFormat() string {
	if strings.EqualFold(os.Getenv("JSONAI_LOG_FORMAT"), "json") {
		return "json"
	}
	return "text"
}

// NewLogger returns a child logger tagged with a "component" attribute.
func NewLogger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
