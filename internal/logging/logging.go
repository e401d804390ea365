// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging holds the shared charmbracelet/log logger for rigrun-elements.
//
// Log output goes to stderr by default. Inside a running Bubble Tea program
// stderr is usually hidden behind the alt screen, so the demo redirects the
// logger to a file via Configure.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "ELEMENTS_LOG_LEVEL"

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, log.InfoLevel)
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Prefix:          "elements",
	})
	l.SetLevel(level)
	return l
}

// Logger returns the package logger.
func Logger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// With returns a child logger tagged with the given component name.
func With(component string) *log.Logger {
	return Logger().With("component", component)
}

// Configure replaces the package logger.
// level precedence: ELEMENTS_LOG_LEVEL > level argument > info.
// An empty file keeps stderr; otherwise the file is opened for append.
func Configure(level, file string) (io.Closer, error) {
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = env
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, err
		}
		out, closer = f, f
	}

	mu.Lock()
	logger = newLogger(out, ParseLevel(level))
	mu.Unlock()
	return closer, nil
}

// SetOutput points the package logger at w, keeping the current level.
// Tests use it to capture or silence output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, logger.GetLevel())
}

// ParseLevel converts a level name to a log.Level. Unknown names map to info.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
