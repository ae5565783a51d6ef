// Package logging builds the slog logger shared by the CLI and terminal UI.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w.
// debug enables debug records; quiet limits output to errors. Otherwise
// warnings and errors are shown.
func New(w io.Writer, debug, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case debug:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
