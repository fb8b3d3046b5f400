// Package logging configures the default slog logger to write JSON records
// to a size-rotated log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 30
)

// Options describes logger construction parameters.
type Options struct {
	Path  string
	Level string
}

// New returns a logger writing to opts.Path and the writer backing it. When
// Path is empty, records are discarded.
func New(opts Options) (*slog.Logger, io.WriteCloser) {
	var w io.WriteCloser = nopCloser{io.Discard}

	if opts.Path != "" {
		w = &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	})

	return slog.New(handler), w
}

// Setup installs a logger as the slog default. Debug records are kept when
// MOODTRACK_DEBUG is set.
func Setup(path string) io.Closer {
	level := "info"
	if os.Getenv("MOODTRACK_DEBUG") != "" {
		level = "debug"
	}

	logger, w := New(Options{
		Path:  path,
		Level: level,
	})

	slog.SetDefault(logger)

	return w
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
