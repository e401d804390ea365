// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

// =============================================================================
// SCROLL VIEW - Scrollable area with "more above/below" indicators
// =============================================================================

// ScrollKeys are the bindings a ScrollView reacts to.
type ScrollKeys struct {
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// DefaultScrollKeys leaves the arrow keys and space to the elements.
func DefaultScrollKeys() ScrollKeys {
	return ScrollKeys{
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "bottom")),
	}
}

// wheelLines is how far one mouse wheel notch scrolls.
const wheelLines = 3

// ScrollView shows tall content in a fixed height. It follows the bottom
// while content grows until the user scrolls up.
type ScrollView struct {
	vp         viewport.Model
	content    string
	keys       ScrollKeys
	theme      *styles.Theme
	width      int
	height     int
	ready      bool
	autoScroll bool
}

// NewScrollView creates a ScrollView. It passes content through until
// SetSize is called.
func NewScrollView(theme *styles.Theme) ScrollView {
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()
	return ScrollView{
		vp:         vp,
		keys:       DefaultScrollKeys(),
		theme:      theme,
		width:      80,
		height:     20,
		autoScroll: true,
	}
}

// SetSize sets the outer dimensions. Indicator rows come out of height.
func (s *ScrollView) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width = width
	s.height = height
	s.vp.Width = width
	s.vp.Height = max(1, height-2)
	s.ready = true
	if s.autoScroll {
		s.vp.GotoBottom()
	}
}

// SetContent replaces the content, keeping the offset unless following.
func (s *ScrollView) SetContent(content string) {
	s.content = content
	s.vp.SetContent(content)
	if s.autoScroll {
		s.vp.GotoBottom()
	}
}

// SetFollow turns following on or off.
func (s *ScrollView) SetFollow(on bool) {
	s.autoScroll = on
	if on {
		s.vp.GotoBottom()
	}
}

// ScrollUp moves up and stops following.
func (s *ScrollView) ScrollUp(n int) {
	s.vp.LineUp(n)
	s.autoScroll = s.vp.AtBottom()
}

// ScrollDown moves down; reaching the bottom resumes following.
func (s *ScrollView) ScrollDown(n int) {
	s.vp.LineDown(n)
	s.autoScroll = s.vp.AtBottom()
}

// ScrollToTop jumps to the first line.
func (s *ScrollView) ScrollToTop() {
	s.vp.GotoTop()
	s.autoScroll = s.vp.AtBottom()
}

// ScrollToBottom jumps to the last line and resumes following.
func (s *ScrollView) ScrollToBottom() {
	s.vp.GotoBottom()
	s.autoScroll = true
}

// AtTop reports whether the first line is visible.
func (s ScrollView) AtTop() bool { return s.vp.AtTop() }

// AtBottom reports whether the last line is visible.
func (s ScrollView) AtBottom() bool { return s.vp.AtBottom() }

// Following reports whether new content scrolls into view.
func (s ScrollView) Following() bool { return s.autoScroll }

// Offset is the first visible line.
func (s ScrollView) Offset() int { return s.vp.YOffset }

// Ready reports whether SetSize has been called.
func (s ScrollView) Ready() bool { return s.ready }

// Update handles paging keys and the mouse wheel.
func (s ScrollView) Update(msg tea.Msg) (ScrollView, tea.Cmd) {
	if !s.ready {
		return s, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.PageUp):
			s.ScrollUp(s.vp.Height)
		case key.Matches(msg, s.keys.PageDown):
			s.ScrollDown(s.vp.Height)
		case key.Matches(msg, s.keys.Top):
			s.ScrollToTop()
		case key.Matches(msg, s.keys.Bottom):
			s.ScrollToBottom()
		}
	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp:
			s.ScrollUp(wheelLines)
		case tea.MouseWheelDown:
			s.ScrollDown(wheelLines)
		}
	}
	return s, nil
}

// View renders the visible window with indicators. Before SetSize it
// returns the content unchanged.
func (s ScrollView) View() string {
	if !s.ready {
		return s.content
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.renderTopIndicator(), s.vp.View(), s.renderBottomIndicator())
}

// =============================================================================
// SCROLL INDICATORS
// =============================================================================

func (s ScrollView) indicatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Width(s.width).Align(lipgloss.Center)
}

func (s ScrollView) renderTopIndicator() string {
	if s.AtTop() {
		return ""
	}
	th := s.theme
	return s.indicatorStyle().Render(
		th.StepConnector.Render("^") + " " + th.ImageMeta.Render("more above") + " " + th.StepConnector.Render("^"))
}

func (s ScrollView) renderBottomIndicator() string {
	if s.AtBottom() {
		return ""
	}
	th := s.theme
	maxOffset := max(0, s.vp.TotalLineCount()-s.vp.Height)
	pos := fmt.Sprintf(" [%d/%d] ", s.vp.YOffset+1, maxOffset+1)
	return s.indicatorStyle().Render(
		th.StepConnector.Render("v") + th.PanelTitle.Render(pos) + th.ImageMeta.Render("more below") + " " + th.StepConnector.Render("v"))
}
