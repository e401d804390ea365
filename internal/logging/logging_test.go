// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{" warn ", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"info", log.InfoLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseLevel(tc.in), "ParseLevel(%q)", tc.in)
	}
}

func TestConfigureFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "elements.log")

	closer, err := Configure("debug", path)
	require.NoError(t, err)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	Logger().Debug("timer armed", "delay", "500ms")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timer armed")
}

func TestConfigureEnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	_, err := Configure("debug", "")
	require.NoError(t, err)
	assert.Equal(t, log.ErrorLevel, Logger().GetLevel())

	t.Setenv(EnvLogLevel, "")
	_, err = Configure("info", "")
	require.NoError(t, err)
}

func TestWithTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	With("disclosure").Info("hello")
	assert.Contains(t, buf.String(), "component=disclosure")
}
