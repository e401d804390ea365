// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/rigrun-elements/internal/disclosure"
	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

// testTheme is a dark theme that renders without color codes.
func testTheme() *styles.Theme {
	return styles.NewThemeWithProfile(true, termenv.Ascii)
}

// runCmd executes cmd and flattens batches into the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// fires returns the disclosure timer messages among msgs.
func fires(msgs []tea.Msg) []tea.Msg {
	var out []tea.Msg
	for _, m := range msgs {
		if _, ok := m.(disclosure.FireMsg); ok {
			out = append(out, m)
		}
	}
	return out
}

func TestFmtNumber(t *testing.T) {
	assert.Equal(t, "0", fmtNumber(0))
	assert.Equal(t, "999", fmtNumber(999))
	assert.Equal(t, "1,234", fmtNumber(1234))
	assert.Equal(t, "1,234,567", fmtNumber(1234567))
}

func TestFmtThousands(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0k"},
		{50, "0.1k"},
		{1234, "1.2k"},
		{1250, "1.3k"},
		{12000, "12k"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, fmtThousands(tc.n), tc.n)
	}
}

func TestFmtSeconds(t *testing.T) {
	assert.Equal(t, "2.5", fmtSeconds(2.5))
	assert.Equal(t, "12.0", fmtSeconds(12))
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 76, contentWidth(80, 4))
	assert.Equal(t, 10, contentWidth(5, 4))
}
