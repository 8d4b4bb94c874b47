// internal/logger/logger.go
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New builds a slog.Logger writing to stderr. format is "json" for log
// aggregation or anything else for human-readable text.
func New(format string) *slog.Logger {
	return NewWithOutput(format, os.Stderr)
}

func NewWithOutput(format string, w io.Writer) *slog.Logger {
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, nil)
	} else {
		h = slog.NewTextHandler(w, nil)
	}
	return slog.New(h)
}

// Discard returns a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
