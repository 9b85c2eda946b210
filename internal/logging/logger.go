// Package logging defines the structured-logging interface used across the
// cellar and its slog and zap implementations.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "wine saved", "id", w.ID, "archived", w.IsArchived)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}

// Format selects the Logger implementation built by New.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatZap  Format = "zap"
)

// New builds a Logger writing to w. Unknown levels fall back to info.
func New(format Format, level string, w io.Writer) (Logger, error) {
	switch format {
	case FormatText, FormatJSON, "":
		return NewSlogLogger(slog.New(newSlogHandler(format, level, w))), nil
	case FormatZap:
		return NewZapLogger(level, w), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Nop discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
