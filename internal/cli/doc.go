// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the elements command line.
//
// Commands:
//
//	elements demo [reasoning|chain|code|shimmer|image|all]
//	elements prompt [message...] [--model id] [--search] [--deep-dive] [--manual]
//	elements models
//	elements config [show|path|init|get|set]
//
// Every command loads .env, then the config file (--config, $ELEMENTS_CONFIG
// or ~/.rigrun-elements/config.toml), then ELEMENTS_* overrides, and
// configures logging before it runs.
package cli
