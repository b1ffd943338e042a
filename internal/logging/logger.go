// Package logging builds the slog loggers shared by the intake hosts.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns the application logger at the given level. Output goes to
// stderr so an interactive session keeps stdout for the survey itself.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: normalizeKeys,
	}))
}

// NewNop returns a logger that discards everything. Library entry points
// default to it so hosts opt in to log output.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// normalizeKeys folds the "error" attribute onto "err" so adapters and the
// runtime produce one searchable key.
func normalizeKeys(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}
