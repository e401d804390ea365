// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdown renders content with glamour, caching the last result. It is
// shared by pointer so value-receiver View methods can fill the cache.
type markdown struct {
	mu       sync.Mutex
	style    string
	width    int
	renderer *glamour.TermRenderer
	source   string
	output   string
}

func newMarkdown(isDark bool) *markdown {
	style := "light"
	if isDark {
		style = "dark"
	}
	return &markdown{style: style}
}

// Render returns content rendered for width. Plain content is returned when
// glamour cannot build a renderer or fails on the input.
func (m *markdown) Render(content string, width int) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.renderer != nil && width == m.width && content == m.source {
		return m.output
	}

	if m.renderer == nil || width != m.width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		m.renderer = r
		m.width = width
	}

	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	m.source = content
	m.output = strings.Trim(out, "\n")
	return m.output
}
