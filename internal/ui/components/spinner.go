// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

// =============================================================================
// INLINE SPINNER
// =============================================================================

// InlineSpinner is a minimal spinner for use inside a header line.
type InlineSpinner struct {
	spinner spinner.Model
	style   lipgloss.Style
	active  bool
}

// NewInlineSpinner creates an ASCII spinner from cfg drawn in style.
func NewInlineSpinner(cfg styles.SpinnerConfig, style lipgloss.Style) InlineSpinner {
	s := spinner.New()
	s.Spinner = cfg.Bubbles()
	return InlineSpinner{spinner: s, style: style}
}

// Start begins the spinner.
func (i *InlineSpinner) Start() tea.Cmd {
	if i.active {
		return nil
	}
	i.active = true
	return i.spinner.Tick
}

// Stop ends the spinner. Its outstanding tick is dropped by Update.
func (i *InlineSpinner) Stop() {
	i.active = false
}

// IsActive returns whether the spinner is currently running.
func (i InlineSpinner) IsActive() bool {
	return i.active
}

// Update handles messages. Ticks for other spinners are ignored by the
// bubbles model itself.
func (i InlineSpinner) Update(msg tea.Msg) (InlineSpinner, tea.Cmd) {
	if !i.active {
		return i, nil
	}
	var cmd tea.Cmd
	i.spinner, cmd = i.spinner.Update(msg)
	return i, cmd
}

// View renders just the spinner frame.
func (i InlineSpinner) View() string {
	if !i.active {
		return ""
	}
	return i.style.Render(i.spinner.View())
}
