// Package logging builds the slog logger every hypract command uses.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the level and destination.
type Options struct {
	Level string
	// File, when set, receives log output instead of Stderr.
	File   string
	Stderr io.Writer
}

// ParseLevel maps a config level name to a slog level. Unknown names are
// treated as warning.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New returns a text logger for opts. The returned closer releases the log
// file, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	var w io.Writer = opts.Stderr
	if w == nil {
		w = os.Stderr
	}
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		f, err := OpenRotating(opts.File, defaultMaxSizeMB, defaultMaxFiles)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closer = f
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	}))
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
