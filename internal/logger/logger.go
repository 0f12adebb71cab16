// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package logger configures the slog logger used for diagnostics.
//
// Diagnostics (warnings about the tag configuration, debug traces, errors)
// are written to stderr so stdout carries only the progress lines a pipeline
// log is read for.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a case-insensitive level name to a slog.Level.
// Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// InitLogger initializes and returns a new slog.Logger with the specified log
// level writing to w, and sets it as the default global logger. A nil w
// writes to stderr.
//
// Example usage:
//
//	logger := InitLogger("debug", os.Stderr)
//	logger.Debug("Detailed information", "key", "value")
//	logger.Warn("Warning message")
func InitLogger(level string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	handler := slog.NewTextHandler(w, opts)
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
