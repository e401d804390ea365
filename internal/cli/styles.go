// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for CLI output.

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-elements/internal/util"
)

const (
	labelWidth = 28

	// maxRuleWidth caps separators on wide terminals.
	maxRuleWidth = 72
)

var (
	// TitleStyle is used for command titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(labelWidth)

	// ValueStyle is used for values
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// DimStyle is used for hints
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// RuleWidth is the width of listing output: the terminal width, capped.
func RuleWidth() int {
	return min(GetTerminalWidth(), maxRuleWidth)
}

// RenderSeparator renders a horizontal rule width columns wide.
func RenderSeparator(width int) string {
	return RenderConditional(SeparatorStyle, strings.Repeat("=", max(width, 1)))
}

// RenderConditional applies style only when colors are enabled.
func RenderConditional(style lipgloss.Style, text string) string {
	if !ColorsEnabled() {
		return text
	}
	return style.Render(text)
}

// RenderKeyValue renders one "label value" row fitted to width columns.
// Values that do not fit are truncated.
func RenderKeyValue(label, value string, width int) string {
	if room := width - labelWidth; room > 0 {
		value = util.TruncateWidth(value, room)
	}
	if !ColorsEnabled() {
		return util.PadRight(label, labelWidth) + value
	}
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}
