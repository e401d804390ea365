// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeDark  = "dark"
	ModeLight = "light"
	ModeAuto  = "auto"
)

// Theme holds the resolved styles for every element.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// DISCLOSURE PANEL STYLES
	// ==========================================================================

	PanelHeader        lipgloss.Style
	PanelHeaderFocused lipgloss.Style
	PanelTitle         lipgloss.Style
	PanelChevron       lipgloss.Style
	PanelIcon          lipgloss.Style
	PanelContent       lipgloss.Style
	PulseDot           lipgloss.Style
	StatusBadge        lipgloss.Style

	// ==========================================================================
	// CHAIN OF THOUGHT STYLES
	// ==========================================================================

	StepComplete    lipgloss.Style
	StepActive      lipgloss.Style
	StepPending     lipgloss.Style
	StepDescription lipgloss.Style
	StepConnector   lipgloss.Style
	SearchBadge     lipgloss.Style
	ImageCaption    lipgloss.Style
	SkeletonBlock   lipgloss.Style

	// ==========================================================================
	// CODE BLOCK STYLES
	// ==========================================================================

	CodeBlock     lipgloss.Style
	CodeLangBadge lipgloss.Style
	CodeCopyBtn   lipgloss.Style
	CodeCopied    lipgloss.Style
	CodeLineNum   lipgloss.Style

	// ==========================================================================
	// IMAGE STYLES
	// ==========================================================================

	ImageFrame   lipgloss.Style
	ImageAlt     lipgloss.Style
	ImageMeta    lipgloss.Style
	ImageError   lipgloss.Style
	SectionTitle lipgloss.Style

	// ==========================================================================
	// TOAST STYLES
	// ==========================================================================

	ToastError lipgloss.Style
	ToastTitle lipgloss.Style
	ToastBody  lipgloss.Style
}

// NewTheme creates a theme for mode ("dark", "light" or "auto").
// Auto asks the terminal for its background; unknown modes fall back to auto.
func NewTheme(mode string) *Theme {
	return NewThemeWithProfile(IsDarkMode(mode), termenv.ColorProfile())
}

// IsDarkMode resolves a theme mode to dark or light.
func IsDarkMode(mode string) bool {
	switch strings.ToLower(mode) {
	case ModeDark:
		return true
	case ModeLight:
		return false
	default:
		return termenv.HasDarkBackground()
	}
}

// NewThemeWithProfile creates a theme without probing the terminal.
func NewThemeWithProfile(isDark bool, profile termenv.Profile) *Theme {
	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// Color resolves an adaptive color for this theme's background.
func (t *Theme) Color(c lipgloss.AdaptiveColor) lipgloss.Color {
	if t.IsDark {
		return lipgloss.Color(c.Dark)
	}
	return lipgloss.Color(c.Light)
}

// Hex returns the resolved hex string of an adaptive color.
func (t *Theme) Hex(c lipgloss.AdaptiveColor) string {
	return string(t.Color(c))
}

// ChromaStyle picks the highlight style name for this theme.
func (t *Theme) ChromaStyle(dark, light string) string {
	if t.IsDark {
		return dark
	}
	return light
}

// PlainOnly reports whether the terminal cannot show color at all.
func (t *Theme) PlainOnly() bool {
	return t.ColorProfile == termenv.Ascii
}

func (t *Theme) initStyles() {
	c := t.Color

	// Panels
	t.PanelHeader = lipgloss.NewStyle().
		Foreground(c(TextSecondary))
	t.PanelHeaderFocused = t.PanelHeader.
		Foreground(c(Cyan)).
		Underline(true)
	t.PanelTitle = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Bold(true)
	t.PanelChevron = lipgloss.NewStyle().
		Foreground(c(TextMuted))
	t.PanelIcon = lipgloss.NewStyle().
		Foreground(c(Purple)).
		Bold(true)
	t.PanelContent = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(c(Overlay)).
		PaddingLeft(1).
		MarginLeft(1)
	t.PulseDot = lipgloss.NewStyle().
		Foreground(c(Amber)).
		Bold(true)
	t.StatusBadge = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Background(c(SurfaceDim)).
		Padding(0, 1)

	// Chain of thought
	t.StepComplete = lipgloss.NewStyle().Foreground(c(Emerald))
	t.StepActive = lipgloss.NewStyle().Foreground(c(Blue)).Bold(true)
	t.StepPending = lipgloss.NewStyle().Foreground(c(TextMuted))
	t.StepDescription = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		PaddingLeft(5)
	t.StepConnector = lipgloss.NewStyle().Foreground(c(OverlayDim))
	t.SearchBadge = lipgloss.NewStyle().
		Foreground(c(Cyan)).
		Background(c(SurfaceDim)).
		Padding(0, 1)
	t.ImageCaption = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Italic(true)
	t.SkeletonBlock = lipgloss.NewStyle().Foreground(c(Overlay))

	// Code blocks
	t.CodeBlock = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(Overlay)).
		Padding(0, 1)
	t.CodeLangBadge = lipgloss.NewStyle().
		Foreground(c(Purple)).
		Bold(true)
	t.CodeCopyBtn = lipgloss.NewStyle().
		Foreground(c(TextMuted))
	t.CodeCopied = lipgloss.NewStyle().
		Foreground(c(Emerald)).
		Bold(true)
	t.CodeLineNum = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	// Images
	t.ImageFrame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(OverlayDim)).
		Padding(0, 1)
	t.ImageAlt = lipgloss.NewStyle().
		Foreground(c(TextPrimary)).
		Bold(true)
	t.ImageMeta = lipgloss.NewStyle().Foreground(c(TextMuted))
	t.ImageError = lipgloss.NewStyle().Foreground(c(Rose))
	t.SectionTitle = lipgloss.NewStyle().
		Foreground(c(Purple)).
		Bold(true).
		MarginBottom(1)

	// Toasts
	t.ToastError = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(Rose)).
		Padding(0, 1)
	t.ToastTitle = lipgloss.NewStyle().
		Foreground(c(Rose)).
		Bold(true)
	t.ToastBody = lipgloss.NewStyle().Foreground(c(TextPrimary))
}
