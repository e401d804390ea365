// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

// =============================================================================
// SKELETON - Loading placeholder: a shimmer caption over placeholder blocks
// =============================================================================

// SkeletonKind selects the caption, sweep speed and block layout.
type SkeletonKind int

const (
	// SkeletonDefault waits for a response: two text bars.
	SkeletonDefault SkeletonKind = iota
	// SkeletonSearch waits for web results: a row of result tiles.
	SkeletonSearch
	// SkeletonVideo waits for video results: thumbnail cards.
	SkeletonVideo
	// SkeletonRetrieve waits for a fetched page: paragraph bars.
	SkeletonRetrieve
)

// SkeletonKinds lists every kind in display order.
var SkeletonKinds = []SkeletonKind{SkeletonDefault, SkeletonSearch, SkeletonVideo, SkeletonRetrieve}

type skeletonPreset struct {
	name     string
	text     string
	duration time.Duration
}

var skeletonPresets = map[SkeletonKind]skeletonPreset{
	SkeletonDefault:  {"default", "Generating response...", styles.ShimmerDuration},
	SkeletonSearch:   {"search", "Searching the web for relevant information...", 1200 * time.Millisecond},
	SkeletonVideo:    {"video", "Finding relevant videos...", 1300 * time.Millisecond},
	SkeletonRetrieve: {"retrieve", "Retrieving content from the web page...", 1400 * time.Millisecond},
}

// String returns the kind's short name.
func (k SkeletonKind) String() string {
	if p, ok := skeletonPresets[k]; ok {
		return p.name
	}
	return "unknown"
}

const (
	skeletonGap = 2
	// skeletonNarrow is the width below which grids halve their columns.
	skeletonNarrow = 60

	skeletonTileRows  = 3
	skeletonThumbRows = 4
)

// SkeletonOptions configures a Skeleton. Zero Text and Duration take the
// kind's preset.
type SkeletonOptions struct {
	Kind     SkeletonKind
	Text     string
	Duration time.Duration
	Width    int
	Theme    *styles.Theme
}

// Skeleton stands in for content that has not arrived yet.
type Skeleton struct {
	kind    SkeletonKind
	shimmer Shimmer
	width   int
	theme   *styles.Theme
}

// NewSkeleton creates a stopped skeleton.
func NewSkeleton(opts SkeletonOptions) Skeleton {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	preset, ok := skeletonPresets[opts.Kind]
	if !ok {
		opts.Kind = SkeletonDefault
		preset = skeletonPresets[SkeletonDefault]
	}
	text := opts.Text
	if text == "" {
		text = preset.text
	}
	d := opts.Duration
	if d <= 0 {
		d = preset.duration
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	return Skeleton{
		kind:    opts.Kind,
		shimmer: NewShimmer(ShimmerOptions{Text: text, Duration: d, Theme: theme}),
		width:   width,
		theme:   theme,
	}
}

// Kind returns the layout kind.
func (s Skeleton) Kind() SkeletonKind { return s.kind }

// Text returns the caption.
func (s Skeleton) Text() string { return s.shimmer.Text() }

// Duration returns the caption's sweep duration.
func (s Skeleton) Duration() time.Duration { return s.shimmer.duration }

// Running reports whether the caption is animating.
func (s Skeleton) Running() bool { return s.shimmer.Running() }

// SetWidth sets the render width.
func (s *Skeleton) SetWidth(w int) {
	if w > 0 {
		s.width = w
	}
}

// Start begins the caption sweep.
func (s *Skeleton) Start() tea.Cmd { return s.shimmer.Start() }

// Stop freezes the caption.
func (s *Skeleton) Stop() { s.shimmer.Stop() }

// Update routes shimmer ticks.
func (s Skeleton) Update(msg tea.Msg) (Skeleton, tea.Cmd) {
	var cmd tea.Cmd
	s.shimmer, cmd = s.shimmer.Update(msg)
	return s, cmd
}

// View renders the caption above the placeholder blocks. A caption wider
// than the skeleton does not widen the blocks.
func (s Skeleton) View() string {
	return s.shimmer.View() + "\n\n" + s.blocks()
}

func (s Skeleton) blocks() string {
	w := s.width
	switch s.kind {
	case SkeletonSearch:
		cols := 4
		if w < skeletonNarrow {
			cols = 2
		}
		tiles := make([]string, 4)
		for i := range tiles {
			tiles[i] = s.block(s.cellWidth(cols), skeletonTileRows)
		}
		return s.grid(tiles, cols)
	case SkeletonVideo:
		cols := 2
		if w < skeletonNarrow {
			cols = 1
		}
		cw := s.cellWidth(cols)
		cards := make([]string, 4)
		for i := range cards {
			cards[i] = lipgloss.JoinVertical(lipgloss.Left,
				s.block(cw, skeletonThumbRows),
				s.block(fraction(cw, 3, 4), 1),
				s.block(fraction(cw, 1, 2), 1))
		}
		return s.grid(cards, cols)
	case SkeletonRetrieve:
		return lipgloss.JoinVertical(lipgloss.Left,
			s.block(w, 1), "", s.block(w, 1), "", s.block(fraction(w, 3, 4), 1))
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			s.block(w, 1), "", s.block(fraction(w, 3, 4), 1))
	}
}

// cellWidth splits the width into cols cells separated by gaps.
func (s Skeleton) cellWidth(cols int) int {
	return max(1, (s.width-skeletonGap*(cols-1))/cols)
}

// grid lays cells out cols per row with a blank line between rows.
func (s Skeleton) grid(cells []string, cols int) string {
	gap := strings.Repeat(" ", skeletonGap)
	var rows []string
	for i := 0; i < len(cells); i += cols {
		end := min(i+cols, len(cells))
		row := make([]string, 0, 2*(end-i))
		for j, c := range cells[i:end] {
			if j > 0 {
				row = append(row, gap)
			}
			row = append(row, c)
		}
		if len(rows) > 0 {
			rows = append(rows, "")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// block renders a w by h placeholder.
func (s Skeleton) block(w, h int) string {
	fill := "░"
	if s.theme.PlainOnly() {
		fill = "."
	}
	line := s.theme.SkeletonBlock.Render(strings.Repeat(fill, max(w, 1)))
	lines := make([]string, max(h, 1))
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func fraction(w, num, den int) int {
	return max(1, w*num/den)
}
