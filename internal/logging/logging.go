// Package logging configures the process-wide slog logger: JSON records
// into a size-rotated file in the data directory, optionally mirrored to
// stderr for --verbose runs.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup builds the logger writing to logFile. With verbose set, debug-level
// text output is also written to stderr.
func Setup(logFile string, verbose bool) *slog.Logger {
	fileWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		Compress:   true,
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if verbose {
		handler = newTeeHandler(
			slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{Level: level}),
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
		)
	} else {
		handler = slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
