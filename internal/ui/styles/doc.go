// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for rigrun-elements.
//
// # Colors
//
// Every color is a lipgloss.AdaptiveColor pair. Theme resolves each pair
// once for the configured mode so a forced "light" theme works even on a
// terminal that reports a dark background.
//
// # Accessibility
//
// Status is never conveyed by color alone: StatusIndicators pairs every
// state with an ASCII marker ([OK], [X], [*]).
//
// # Usage
//
//	theme := styles.NewTheme(cfg.UI.Theme)
//	header := theme.PanelTitle.Render("Reasoning")
package styles
