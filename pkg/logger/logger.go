// Package logger builds the process-wide *slog.Logger. Text output goes
// through charmbracelet/log for terminals; JSON output is plain slog for log
// shippers and Lambda.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Format names accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New writes to stderr. See NewWithWriter.
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter returns a logger at the given level ("debug", "info",
// "warn", "error") in the given format ("text" or "json"). Unknown values
// fall back to info and text.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)

	if strings.EqualFold(format, FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(lvl),
		ReportTimestamp: true,
	}))
}

// Service tags every record with the service name and build version.
func Service(l *slog.Logger, name, version string) *slog.Logger {
	return l.With(slog.Group("service", "name", name, "version", version))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps a level name to slog.Level, case-insensitively.
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
