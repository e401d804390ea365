// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigrun-elements/internal/disclosure"
	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

// =============================================================================
// REASONING PANEL
// =============================================================================

// ReasoningAutoCloseDelay is how long a reasoning panel stays open after the
// model stops thinking.
const ReasoningAutoCloseDelay = disclosure.DefaultAutoCloseDelay

// NarrowWidth is the width below which badges use compact numbers.
const NarrowWidth = 60

// Reasoning titles.
const (
	TitleReasoning = "Reasoning"
	TitleThinking  = "Thinking..."
	TitleThoughts  = "Thoughts"
)

// ReasoningOptions configures a Reasoning panel.
type ReasoningOptions struct {
	PanelOptions

	// Title replaces the derived header title.
	Title string
}

// Reasoning is a collapsible panel showing a model's thinking. It opens
// while the model streams and collapses shortly after it stops.
//
// A plain panel (NewReasoning) is titled "Reasoning" and driven by
// SetStreaming. A section (NewReasoningSection) derives its title and
// streaming state from the thinking time, the way a chat transcript shows
// a finished or in-progress thought.
type Reasoning struct {
	panel

	title   string
	content string

	section bool
	timed   bool
	elapsed time.Duration

	streaming bool
	pulse     InlineSpinner
	spinner   InlineSpinner
	md        *markdown
}

// NewReasoning creates a plain reasoning panel.
func NewReasoning(opts ReasoningOptions) Reasoning {
	p := newPanel(opts.PanelOptions, ReasoningAutoCloseDelay)
	r := Reasoning{
		panel:     p,
		title:     opts.Title,
		streaming: opts.Streaming,
		pulse:     NewInlineSpinner(styles.PulseSpinner, p.theme.PulseDot),
		spinner:   NewInlineSpinner(styles.LineSpinner, p.theme.PanelChevron),
		md:        newMarkdown(p.theme.IsDark),
	}
	r.pulse.active = r.streaming
	r.spinner.active = r.streaming
	return r
}

// NewReasoningSection creates a reasoning panel for a transcript entry.
// elapsed nil means the thinking time is unknown; zero means the model is
// still thinking.
func NewReasoningSection(opts ReasoningOptions, content string, elapsed *time.Duration) Reasoning {
	if elapsed != nil && *elapsed == 0 {
		opts.Streaming = true
	}
	r := NewReasoning(opts)
	r.section = true
	r.content = content
	if elapsed != nil {
		r.timed = true
		r.elapsed = *elapsed
	}
	return r
}

// Init starts the spinners of a panel constructed while streaming.
func (r Reasoning) Init() tea.Cmd {
	if !r.streaming {
		return nil
	}
	return tea.Batch(r.pulse.spinner.Tick, r.spinner.spinner.Tick)
}

// =============================================================================
// STATE
// =============================================================================

// Content returns the reasoning text.
func (r Reasoning) Content() string { return r.content }

// SetContent replaces the reasoning text.
func (r *Reasoning) SetContent(s string) { r.content = s }

// AppendContent adds a streamed chunk.
func (r *Reasoning) AppendContent(chunk string) { r.content += chunk }

// IsStreaming reports whether the model is still thinking.
func (r Reasoning) IsStreaming() bool { return r.streaming }

// SetStreaming reports a change of the streaming signal.
func (r *Reasoning) SetStreaming(on bool) tea.Cmd {
	r.streaming = on
	var cmds []tea.Cmd
	if on {
		cmds = append(cmds, r.pulse.Start(), r.spinner.Start())
	} else {
		r.pulse.Stop()
		r.spinner.Stop()
	}
	cmds = append(cmds, r.reportStreaming(on))
	return tea.Batch(cmds...)
}

// StartThinking marks the section as in progress (thinking time zero).
func (r *Reasoning) StartThinking() tea.Cmd {
	r.timed = true
	r.elapsed = 0
	return r.SetStreaming(true)
}

// FinishThinking records the total thinking time. A zero duration is
// treated as still thinking.
func (r *Reasoning) FinishThinking(d time.Duration) tea.Cmd {
	r.timed = true
	r.elapsed = d
	return r.SetStreaming(d == 0)
}

// Title returns the header title.
func (r Reasoning) Title() string {
	if r.title != "" {
		return r.title
	}
	if !r.section {
		return TitleReasoning
	}
	switch {
	case !r.timed:
		return TitleThoughts
	case r.elapsed == 0:
		return TitleThinking
	default:
		return "Thought for " + fmtSeconds(r.elapsed.Seconds()) + " seconds"
	}
}

// CharacterBadge returns the completed-reasoning badge text for width.
func (r Reasoning) CharacterBadge(width int) string {
	n := utf8.RuneCountInString(r.content)
	if width < NarrowWidth {
		return fmtThousands(n)
	}
	return fmtNumber(n) + " characters"
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update handles panel messages, key presses and spinner ticks.
func (r Reasoning) Update(msg tea.Msg) (Reasoning, tea.Cmd) {
	if ok, cmd := r.handle(msg); ok {
		return r, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	r.pulse, cmd = r.pulse.Update(msg)
	cmds = append(cmds, cmd)
	r.spinner, cmd = r.spinner.Update(msg)
	cmds = append(cmds, cmd)
	return r, tea.Batch(cmds...)
}

// View renders the header and, when open, the content.
func (r Reasoning) View() string {
	th := r.theme

	var lead, trailing string
	if r.streaming {
		lead = r.pulse.View()
	}
	if r.section {
		if r.streaming {
			trailing = r.spinner.View()
		} else {
			trailing = th.StatusBadge.Render(
				th.StepComplete.Render(styles.StatusIndicators.Success) + " " + r.CharacterBadge(r.width))
		}
	}

	out := r.header(lead, r.Title(), trailing)
	if !r.IsOpen() || r.content == "" {
		return out
	}

	body := r.md.Render(r.content, contentWidth(r.width, 4))
	return out + "\n" + th.PanelContent.Render(body)
}
