// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-elements/internal/disclosure"
	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

// =============================================================================
// CHAIN OF THOUGHT
// =============================================================================

// ChainAutoCloseDelay is how long a chain of thought stays open after
// streaming stops.
const ChainAutoCloseDelay = disclosure.ChainAutoCloseDelay

// TitleChainOfThought is the default header title.
const TitleChainOfThought = "Chain of Thought"

// StepStatus is the progress of one step.
type StepStatus int

const (
	StepComplete StepStatus = iota // default
	StepActive
	StepPending
)

// String returns the status name.
func (s StepStatus) String() string {
	switch s {
	case StepComplete:
		return "complete"
	case StepActive:
		return "active"
	case StepPending:
		return "pending"
	default:
		return "unknown"
	}
}

// ParseStepStatus maps a status name to a StepStatus. Unknown names are
// complete.
func ParseStepStatus(s string) StepStatus {
	switch strings.ToLower(s) {
	case "active":
		return StepActive
	case "pending":
		return StepPending
	default:
		return StepComplete
	}
}

// Step is one entry in a chain of thought.
type Step struct {
	ID          string
	Label       string
	Description string
	Status      StepStatus

	// Icon is the glyph shown for pending steps; "." when empty.
	Icon string

	// SearchResults are shown as badges (typically hostnames).
	SearchResults []string

	Image        *GeneratedImage
	ImageCaption string

	// Text is free-form detail shown under the step.
	Text string
}

// ChainOfThoughtOptions configures a ChainOfThought panel.
type ChainOfThoughtOptions struct {
	PanelOptions

	// Title replaces TitleChainOfThought.
	Title string
}

// ChainOfThought is a collapsible list of reasoning steps.
type ChainOfThought struct {
	panel

	title     string
	steps     []Step
	streaming bool
	spinner   InlineSpinner
}

// NewChainOfThought creates a chain of thought panel.
func NewChainOfThought(opts ChainOfThoughtOptions) ChainOfThought {
	p := newPanel(opts.PanelOptions, ChainAutoCloseDelay)
	title := opts.Title
	if title == "" {
		title = TitleChainOfThought
	}
	return ChainOfThought{
		panel:     p,
		title:     title,
		streaming: opts.Streaming,
		spinner:   NewInlineSpinner(styles.LineSpinner, p.theme.StepActive),
	}
}

// Title returns the header title.
func (c ChainOfThought) Title() string { return c.title }

// Steps returns a copy of the steps.
func (c ChainOfThought) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}

// AddStep appends a step and returns its id.
func (c *ChainOfThought) AddStep(s Step) (string, tea.Cmd) {
	if s.ID == "" {
		s.ID = newID()
	}
	c.steps = append(c.steps, s)
	return s.ID, c.syncSpinner()
}

// UpdateStep applies fn to the step with id. Returns false when no such
// step exists.
func (c *ChainOfThought) UpdateStep(id string, fn func(*Step)) (bool, tea.Cmd) {
	for i := range c.steps {
		if c.steps[i].ID == id {
			fn(&c.steps[i])
			return true, c.syncSpinner()
		}
	}
	return false, nil
}

// SetStepStatus changes the status of the step with id.
func (c *ChainOfThought) SetStepStatus(id string, status StepStatus) (bool, tea.Cmd) {
	return c.UpdateStep(id, func(s *Step) { s.Status = status })
}

// IsStreaming reports the last streaming signal.
func (c ChainOfThought) IsStreaming() bool { return c.streaming }

// SetStreaming reports a change of the streaming signal.
func (c *ChainOfThought) SetStreaming(on bool) tea.Cmd {
	c.streaming = on
	return c.reportStreaming(on)
}

// syncSpinner runs the spinner exactly while a step is active.
func (c *ChainOfThought) syncSpinner() tea.Cmd {
	for _, s := range c.steps {
		if s.Status == StepActive {
			return c.spinner.Start()
		}
	}
	c.spinner.Stop()
	return nil
}

// Update handles panel messages, key presses and spinner ticks.
func (c ChainOfThought) Update(msg tea.Msg) (ChainOfThought, tea.Cmd) {
	if ok, cmd := c.handle(msg); ok {
		return c, cmd
	}
	var cmd tea.Cmd
	c.spinner, cmd = c.spinner.Update(msg)
	return c, cmd
}

// View renders the header and, when open, the steps.
func (c ChainOfThought) View() string {
	th := c.theme
	out := c.header(th.PanelIcon.Render("(.)"), c.title, "")
	if !c.IsOpen() || len(c.steps) == 0 {
		return out
	}

	var lines []string
	for i, s := range c.steps {
		lines = append(lines, c.renderStep(s, i == len(c.steps)-1))
	}
	return out + "\n" + strings.Join(lines, "\n")
}

// glyphWidth is the width of the widest status glyph, "[OK]".
const glyphWidth = 4

func (c ChainOfThought) glyph(s Step) string {
	th := c.theme
	var g string
	switch s.Status {
	case StepActive:
		if frame := c.spinner.View(); frame != "" {
			g = th.StepActive.Render("[") + frame + th.StepActive.Render("]")
		} else {
			g = th.StepActive.Render(styles.StatusIndicators.Active)
		}
	case StepPending:
		icon := s.Icon
		if icon == "" {
			icon = "."
		}
		g = th.StepPending.Render("[" + icon + "]")
	default:
		g = th.StepComplete.Render(styles.StatusIndicators.Success)
	}
	if pad := glyphWidth - lipgloss.Width(g); pad > 0 {
		g += strings.Repeat(" ", pad)
	}
	return g
}

func (c ChainOfThought) renderStep(s Step, last bool) string {
	th := c.theme

	label := s.Label
	switch s.Status {
	case StepActive:
		label = th.StepActive.Render(label)
	case StepPending:
		label = th.StepPending.Render(label)
	default:
		label = th.PanelTitle.Render(label)
	}

	lines := []string{
		th.StepConnector.Render(styles.RenderTreeLine(last)) + c.glyph(s) + " " + label,
	}

	cont := styles.TreeChars.Pipe + "  "
	if last {
		cont = "   "
	}
	cont = th.StepConnector.Render(cont) + strings.Repeat(" ", glyphWidth+1)
	detailWidth := contentWidth(c.width, lipgloss.Width(cont))
	wrap := lipgloss.NewStyle().Width(detailWidth)

	var detail []string
	if s.Description != "" {
		detail = append(detail, th.StepPending.Render(wrap.Render(s.Description)))
	}
	if len(s.SearchResults) > 0 {
		badges := make([]string, len(s.SearchResults))
		for i, r := range s.SearchResults {
			badges[i] = th.SearchBadge.Render(r)
		}
		detail = append(detail, wrap.Render(strings.Join(badges, " ")))
	}
	if s.Image != nil {
		img := NewImage(*s.Image, s.ImageCaption, th)
		detail = append(detail, img.Summary())
		if s.ImageCaption != "" {
			detail = append(detail, th.ImageCaption.Render(wrap.Render(s.ImageCaption)))
		}
	}
	if s.Text != "" {
		detail = append(detail, wrap.Render(s.Text))
	}

	for _, block := range detail {
		for _, l := range strings.Split(block, "\n") {
			lines = append(lines, cont+l)
		}
	}
	return strings.Join(lines, "\n")
}
