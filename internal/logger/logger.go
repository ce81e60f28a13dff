// Package logger builds the per-instance structured loggers used by the grid.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// New returns a text logger writing to w when enabled, and a logger that
// drops every record otherwise. A nil w writes to stderr.
func New(enabled bool, w io.Writer) *slog.Logger {
	if !enabled {
		return Discard()
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Discard returns a logger with no output.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// OpenFile opens path for appending and returns a logger writing to it along
// with the file to close on shutdown.
func OpenFile(path string) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	l := New(true, f)
	l.Info("logger initialized", "path", path)
	return l, f, nil
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h discardHandler) WithGroup(string) slog.Handler { return h }
