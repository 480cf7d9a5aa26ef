// Package logging builds the slog loggers used by the library and CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Format selects the log output encoding.
type Format string

const (
	// FormatText is colourised, human-oriented output.
	FormatText Format = "text"
	// FormatJSON is one JSON object per line.
	FormatJSON Format = "json"
)

// Options configures New.
type Options struct {
	Level   slog.Level
	Format  Format
	NoColor bool
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	if opts.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.Level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		TimeFormat: time.TimeOnly,
		NoColor:    opts.NoColor,
	}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithComponent returns a child logger tagged with component.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// ParseFormat parses text or json.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return FormatText, fmt.Errorf("invalid log format %q", s)
}
