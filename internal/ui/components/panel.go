// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/rigrun-elements/internal/disclosure"
	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
	"github.com/jeranaias/rigrun-elements/internal/util"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ToggleMsg flips the open state of the panel with ID.
type ToggleMsg struct {
	ID string
}

// SetOpenMsg requests an open state for the panel with ID.
type SetOpenMsg struct {
	ID   string
	Open bool
}

// HostOpenMsg pushes a new host-owned value to a controlled panel.
type HostOpenMsg struct {
	ID   string
	Open bool
}

// =============================================================================
// KEY BINDINGS
// =============================================================================

// PanelKeyMap holds the bindings a focused panel responds to.
type PanelKeyMap struct {
	Toggle key.Binding
}

// DefaultPanelKeyMap returns enter/space to toggle.
func DefaultPanelKeyMap() PanelKeyMap {
	return PanelKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "expand/collapse"),
		),
	}
}

// =============================================================================
// PANEL OPTIONS
// =============================================================================

// PanelOptions configures the disclosure behavior shared by collapsible
// panels.
type PanelOptions struct {
	// ID addresses messages to this panel; generated when empty.
	ID string

	// Open makes the panel controlled. Later host values arrive via
	// HostOpenMsg or SetHostOpen.
	Open *bool

	// DefaultOpen is the initial state of an uncontrolled panel.
	DefaultOpen bool

	// OnOpenChange is told about every open/close attempt.
	OnOpenChange func(bool)

	// Streaming is the initial streaming signal.
	Streaming bool

	// AutoCloseDelay overrides the panel's default collapse delay.
	AutoCloseDelay time.Duration

	Theme  *styles.Theme
	Logger *log.Logger
}

// panel owns the controller and the event-loop scheduler that drives its
// timer. It is embedded by the concrete panels.
type panel struct {
	id      string
	ctrl    *disclosure.Controller
	sched   *disclosure.TickScheduler
	theme   *styles.Theme
	keys    PanelKeyMap
	focused bool
	width   int
}

func newPanel(opts PanelOptions, defaultDelay time.Duration) panel {
	id := opts.ID
	if id == "" {
		id = newID()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	delay := opts.AutoCloseDelay
	if delay <= 0 {
		delay = defaultDelay
	}

	sched := disclosure.NewTickScheduler()
	ctrl := disclosure.New(disclosure.Options{
		Open:           opts.Open,
		DefaultOpen:    opts.DefaultOpen,
		OnOpenChange:   opts.OnOpenChange,
		IsStreaming:    opts.Streaming,
		AutoCloseDelay: delay,
		Scheduler:      sched,
		Logger:         opts.Logger,
	})

	return panel{
		id:    id,
		ctrl:  ctrl,
		sched: sched,
		theme: theme,
		keys:  DefaultPanelKeyMap(),
		width: 80,
	}
}

// ID returns the panel id used to address messages.
func (p panel) ID() string { return p.id }

// Controller exposes the disclosure controller.
func (p panel) Controller() *disclosure.Controller { return p.ctrl }

// IsOpen reports whether the content region is shown.
func (p panel) IsOpen() bool { return p.ctrl.Open() }

// Focused reports keyboard focus.
func (p panel) Focused() bool { return p.focused }

// Focus gives the panel keyboard focus.
func (p *panel) Focus() { p.focused = true }

// Blur removes keyboard focus.
func (p *panel) Blur() { p.focused = false }

// SetWidth sets the render width.
func (p *panel) SetWidth(w int) { p.width = w }

// Toggle flips the open state as a header activation would.
func (p *panel) Toggle() tea.Cmd {
	p.ctrl.Toggle()
	return p.sched.Cmd()
}

// SetOpen requests an open state.
func (p *panel) SetOpen(open bool) tea.Cmd {
	p.ctrl.SetOpen(open)
	return p.sched.Cmd()
}

// SetHostOpen pushes a new host-owned value to a controlled panel.
func (p *panel) SetHostOpen(open bool) tea.Cmd {
	p.ctrl.SetHostOpen(open)
	return p.sched.Cmd()
}

// reportStreaming forwards the streaming signal and returns any timer tick.
func (p *panel) reportStreaming(streaming bool) tea.Cmd {
	p.ctrl.ReportStreaming(streaming)
	return p.sched.Cmd()
}

// Dispose stops the panel's timers. The panel renders closed afterwards.
func (p *panel) Dispose() {
	p.ctrl.Dispose()
}

// handle processes the messages common to every panel and reports whether
// msg was consumed.
func (p *panel) handle(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case disclosure.FireMsg:
		if p.sched.Update(msg) {
			return true, p.sched.Cmd()
		}
		return false, nil

	case ToggleMsg:
		if msg.ID != p.id {
			return false, nil
		}
		return true, p.Toggle()

	case SetOpenMsg:
		if msg.ID != p.id {
			return false, nil
		}
		return true, p.SetOpen(msg.Open)

	case HostOpenMsg:
		if msg.ID != p.id {
			return false, nil
		}
		return true, p.SetHostOpen(msg.Open)

	case tea.KeyMsg:
		if p.focused && key.Matches(msg, p.keys.Toggle) {
			return true, p.Toggle()
		}
	}
	return false, nil
}

// header lays out "lead title ... trailing chevron" on one line, truncating
// the title to fit.
func (p panel) header(lead, title, trailing string) string {
	th := p.theme
	chevron := styles.ChevronClosed
	if p.IsOpen() {
		chevron = styles.ChevronOpen
	}
	chev := th.PanelChevron.Render(chevron)

	fixed := lipgloss.Width(lead) + lipgloss.Width(trailing) + lipgloss.Width(chev) + 3
	titleWidth := p.width - fixed
	if titleWidth < 4 {
		titleWidth = 4
	}
	titleText := th.PanelTitle.Render(util.TruncateWidth(title, titleWidth))

	left := titleText
	if lead != "" {
		left = lead + " " + titleText
	}
	right := chev
	if trailing != "" {
		right = trailing + " " + chev
	}

	gap := p.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right

	if p.focused {
		return th.PanelHeaderFocused.Render(line)
	}
	return th.PanelHeader.Render(line)
}
