// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// rigrun-elements.
//
// # Key Types
//
//   - Config: main configuration structure
//   - PanelConfig: auto-close timing for the Reasoning and Chain of Thought panels
//   - CodeBlockConfig: copy timeout and highlight styles
//   - Watcher: hot reload of the config file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (ELEMENTS_*), including those from a local .env
//   - ~/.rigrun-elements/config.toml (or $ELEMENTS_CONFIG)
//   - Built-in defaults
//
// # Preferences
//
// The deep dive preference lives in ui.deep_dive. EnsurePreferences writes
// it on first run so later runs always find a recorded value.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	delay := cfg.Reasoning.AutoCloseDelay()
package config
