// Package logger holds the process-wide structured logger used by objpool.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the global logger instance. It's initialized to discard all output by default.
// Call Init() to enable logging.
var L *slog.Logger = slog.New(slog.DiscardHandler)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Writer  io.Writer  // Destination. Default: os.Stderr
	Format  Format     // Handler format. Default: FormatText
	Level   slog.Level // Minimum log level. Default: LevelInfo
}

// Init configures logging. Call from main() before any log calls.
// If opts.Enabled is false, all log output is discarded.
func Init(opts Options) error {
	if !opts.Enabled {
		L = slog.New(slog.DiscardHandler)
		return nil
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	switch opts.Format {
	case "", FormatText:
		L = slog.New(slog.NewTextHandler(w, handlerOpts))
	case FormatJSON:
		L = slog.New(slog.NewJSONHandler(w, handlerOpts))
	default:
		return fmt.Errorf("logger: unknown format %q", opts.Format)
	}
	return nil
}

// ParseLevel maps debug/info/warn/error to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logger: %w", err)
	}
	return lvl, nil
}
