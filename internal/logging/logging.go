// Package logging builds the structured logger shared by commands and services.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w when debug is set and a discarding
// logger otherwise.
func New(w io.Writer, debug bool) *slog.Logger {
	if !debug {
		return Discard()
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
