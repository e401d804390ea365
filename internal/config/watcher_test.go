// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	var (
		mu   sync.Mutex
		seen []*Config
	)
	w, err := NewWatcher(path, 20*time.Millisecond, func(c *Config) {
		mu.Lock()
		seen = append(seen, c)
		mu.Unlock()
	})
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	cfg := Default()
	cfg.Reasoning.AutoCloseMs = 800
	require.NoError(t, SaveTOML(cfg, path))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1].Reasoning.AutoCloseMs == 800
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_SkipsInvalidEdits(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	calls := make(chan *Config, 8)
	w, err := NewWatcher(path, 20*time.Millisecond, func(c *Config) { calls <- c })
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"neon\"\n"), 0600))
	// unrelated files in the same directory are ignored too
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1"), 0600))

	select {
	case c := <-calls:
		t.Fatalf("unexpected reload: %+v", c.UI)
	case <-time.After(300 * time.Millisecond):
	}
}
