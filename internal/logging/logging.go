// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler returns a text or JSON handler writing to w at the given level.
func NewHandler(w io.Writer, level string, json bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Setup installs the default logger. Everything goes to stderr so stdout
// stays clean for command output.
func Setup(level string, json bool) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, level, json)))
}
