// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-elements/internal/disclosure"
)

func newTestReasoning(opts ReasoningOptions) Reasoning {
	opts.Theme = testTheme()
	if opts.AutoCloseDelay == 0 {
		opts.AutoCloseDelay = 5 * time.Millisecond
	}
	return NewReasoning(opts)
}

func durationPtr(d time.Duration) *time.Duration { return &d }

func TestReasoningTitles(t *testing.T) {
	base := ReasoningOptions{PanelOptions: PanelOptions{Theme: testTheme()}}

	assert.Equal(t, TitleReasoning, NewReasoning(base).Title())

	custom := base
	custom.Title = "Scratchpad"
	assert.Equal(t, "Scratchpad", NewReasoning(custom).Title())

	tests := []struct {
		name    string
		elapsed *time.Duration
		want    string
	}{
		{"unknown", nil, TitleThoughts},
		{"thinking", durationPtr(0), TitleThinking},
		{"done", durationPtr(2500 * time.Millisecond), "Thought for 2.5 seconds"},
		{"rounded", durationPtr(12345 * time.Millisecond), "Thought for 12.3 seconds"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReasoningSection(base, "x", tc.elapsed)
			assert.Equal(t, tc.want, r.Title())
		})
	}
}

func TestReasoningSectionStreamsWhileThinking(t *testing.T) {
	base := ReasoningOptions{PanelOptions: PanelOptions{Theme: testTheme()}}

	r := NewReasoningSection(base, "", durationPtr(0))
	assert.True(t, r.IsStreaming())
	assert.True(t, r.IsOpen(), "a thinking section opens immediately")
	assert.NotNil(t, r.Init())

	done := NewReasoningSection(base, "", durationPtr(time.Second))
	assert.False(t, done.IsStreaming())
	assert.False(t, done.IsOpen())
	assert.Nil(t, done.Init())
}

func TestReasoningCharacterBadge(t *testing.T) {
	r := NewReasoningSection(ReasoningOptions{PanelOptions: PanelOptions{Theme: testTheme()}},
		strings.Repeat("a", 1234), durationPtr(time.Second))

	assert.Equal(t, "1,234 characters", r.CharacterBadge(80))
	assert.Equal(t, "1.2k", r.CharacterBadge(40))

	r.SetContent("日本語")
	assert.Equal(t, "3 characters", r.CharacterBadge(80))
}

func TestReasoningAutoOpenAndClose(t *testing.T) {
	var changes []bool
	r := newTestReasoning(ReasoningOptions{PanelOptions: PanelOptions{
		OnOpenChange: func(open bool) { changes = append(changes, open) },
	}})
	require.False(t, r.IsOpen())

	r.SetStreaming(true)
	assert.True(t, r.IsOpen())
	assert.Equal(t, []bool{true}, changes)

	cmd := r.SetStreaming(false)
	assert.True(t, r.IsOpen(), "stays open until the delay elapses")
	assert.Equal(t, disclosure.StateOpenPendingClose, r.Controller().State())

	ticks := fires(runCmd(cmd))
	require.Len(t, ticks, 1)

	r, _ = r.Update(ticks[0])
	assert.False(t, r.IsOpen())
	assert.Equal(t, []bool{true, false}, changes)
}

func TestReasoningStreamingResumesBeforeClose(t *testing.T) {
	r := newTestReasoning(ReasoningOptions{})

	r.SetStreaming(true)
	ticks := fires(runCmd(r.SetStreaming(false)))
	require.Len(t, ticks, 1)

	r.SetStreaming(true)
	r, _ = r.Update(ticks[0])
	assert.True(t, r.IsOpen(), "a cancelled close must not fire")
}

func TestReasoningFinishThinking(t *testing.T) {
	r := NewReasoningSection(ReasoningOptions{PanelOptions: PanelOptions{
		Theme: testTheme(), AutoCloseDelay: 5 * time.Millisecond,
	}}, "step one", durationPtr(0))
	require.True(t, r.IsOpen())

	cmd := r.FinishThinking(3 * time.Second)
	assert.Equal(t, "Thought for 3.0 seconds", r.Title())
	assert.False(t, r.IsStreaming())

	for _, m := range fires(runCmd(cmd)) {
		r, _ = r.Update(m)
	}
	assert.False(t, r.IsOpen())
}

func TestReasoningToggleMessages(t *testing.T) {
	r := newTestReasoning(ReasoningOptions{PanelOptions: PanelOptions{ID: "r1"}})

	r, _ = r.Update(ToggleMsg{ID: "other"})
	assert.False(t, r.IsOpen())

	r, _ = r.Update(ToggleMsg{ID: "r1"})
	assert.True(t, r.IsOpen())

	r, _ = r.Update(SetOpenMsg{ID: "r1", Open: false})
	assert.False(t, r.IsOpen())
}

func TestReasoningKeyboardToggle(t *testing.T) {
	r := newTestReasoning(ReasoningOptions{})
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	r, _ = r.Update(enter)
	assert.False(t, r.IsOpen(), "unfocused panels ignore keys")

	r.Focus()
	r, _ = r.Update(enter)
	assert.True(t, r.IsOpen())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, r.IsOpen())
}

func TestReasoningControlled(t *testing.T) {
	var changes []bool
	r := newTestReasoning(ReasoningOptions{PanelOptions: PanelOptions{
		ID:           "c",
		Open:         disclosure.Bool(false),
		OnOpenChange: func(open bool) { changes = append(changes, open) },
	}})

	r.SetStreaming(true)
	assert.Equal(t, []bool{true}, changes, "the host is asked to open")
	assert.False(t, r.IsOpen(), "but owns the state")

	r, _ = r.Update(HostOpenMsg{ID: "c", Open: true})
	assert.True(t, r.IsOpen())
}

func TestReasoningView(t *testing.T) {
	r := newTestReasoning(ReasoningOptions{})
	r.SetWidth(60)
	r.SetContent("The answer involves **photosynthesis**.")

	closed := r.View()
	assert.Contains(t, closed, TitleReasoning)
	assert.Contains(t, closed, ">")
	assert.NotContains(t, closed, "photosynthesis")

	r.Toggle()
	open := r.View()
	assert.Contains(t, open, "v")
	assert.Contains(t, open, "photosynthesis")
}

func TestReasoningSectionViewBadge(t *testing.T) {
	r := NewReasoningSection(ReasoningOptions{PanelOptions: PanelOptions{Theme: testTheme()}},
		strings.Repeat("b", 2048), durationPtr(4*time.Second))
	r.SetWidth(80)

	v := r.View()
	assert.Contains(t, v, "Thought for 4.0 seconds")
	assert.Contains(t, v, "[OK] 2,048 characters")

	r.SetWidth(40)
	assert.Contains(t, r.View(), "2k")
}

func TestReasoningDispose(t *testing.T) {
	r := newTestReasoning(ReasoningOptions{})
	r.SetStreaming(true)
	cmd := r.SetStreaming(false)

	r.Dispose()
	assert.False(t, r.IsOpen())

	for _, m := range fires(runCmd(cmd)) {
		r, _ = r.Update(m)
	}
	assert.False(t, r.IsOpen())
	assert.Equal(t, disclosure.StateDisposed, r.Controller().State())
}
