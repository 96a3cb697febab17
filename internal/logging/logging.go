// Package logging configures the process-wide logger. Debug and info
// records are emitted only when debug mode is on; warnings and errors
// always pass. The TUI owns the terminal, so records go to a file, never
// to stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup creates a *slog.Logger writing to logPath, sets it as the
// default, and returns it along with a close function for the underlying
// file. When the file cannot be opened the logger discards everything.
func Setup(logPath string, debug bool) (*slog.Logger, func() error) {
	lvl := slog.LevelWarn
	if debug {
		lvl = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	closeFn := func() error { return nil }
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err == nil {
			if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
				w = f
				closeFn = f.Close
			}
		}
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closeFn
}
