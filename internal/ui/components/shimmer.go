// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

// =============================================================================
// SHIMMER TEXT
// =============================================================================

// ShimmerOptions configures a Shimmer.
type ShimmerOptions struct {
	Text string

	// Duration is the length of one left-to-right sweep.
	Duration time.Duration

	// Spread scales the highlight band with the text length: the band is
	// len(text)*Spread percent of the text width.
	Spread float64

	// Easing shapes the sweep; defaults to styles.EaseLinear.
	Easing styles.EasingFunc

	Theme *styles.Theme
}

// ShimmerTickMsg repaints the shimmer with id.
type ShimmerTickMsg struct {
	id  string
	gen uint64
}

// Shimmer is muted text with a brighter band sweeping across it, repeating
// until stopped.
type Shimmer struct {
	id       string
	text     []rune
	duration time.Duration
	spread   float64
	easing   styles.EasingFunc
	theme    *styles.Theme
	base     colorful.Color
	peak     colorful.Color

	now     func() time.Time
	start   time.Time
	running bool
	gen     uint64
}

// NewShimmer creates a stopped shimmer.
func NewShimmer(opts ShimmerOptions) Shimmer {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	d := opts.Duration
	if d <= 0 {
		d = styles.ShimmerDuration
	}
	spread := opts.Spread
	if spread <= 0 {
		spread = styles.ShimmerSpread
	}

	easing := opts.Easing
	if easing == nil {
		easing = styles.EaseLinear
	}

	base, err := colorful.Hex(theme.Hex(styles.TextMuted))
	if err != nil {
		base = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	peak, err := colorful.Hex(theme.Hex(styles.TextPrimary))
	if err != nil {
		peak = colorful.Color{R: 1, G: 1, B: 1}
	}

	return Shimmer{
		id:       newID(),
		text:     []rune(opts.Text),
		duration: d,
		spread:   spread,
		easing:   easing,
		theme:    theme,
		base:     base,
		peak:     peak,
		now:      time.Now,
	}
}

// Text returns the shimmering text.
func (s Shimmer) Text() string { return string(s.text) }

// Running reports whether the sweep is animating.
func (s Shimmer) Running() bool { return s.running }

// Start begins (or restarts) the sweep.
func (s *Shimmer) Start() tea.Cmd {
	s.running = true
	s.start = s.now()
	s.gen++
	return s.tick()
}

// Stop freezes the shimmer as plain muted text.
func (s *Shimmer) Stop() {
	s.running = false
	s.gen++
}

func (s Shimmer) tick() tea.Cmd {
	id, gen := s.id, s.gen
	return tea.Tick(styles.ShimmerFrame(), func(time.Time) tea.Msg {
		return ShimmerTickMsg{id: id, gen: gen}
	})
}

// Update schedules the next frame while running.
func (s Shimmer) Update(msg tea.Msg) (Shimmer, tea.Cmd) {
	if m, ok := msg.(ShimmerTickMsg); ok && m.id == s.id && m.gen == s.gen && s.running {
		return s, s.tick()
	}
	return s, nil
}

// BandWidth returns the highlight band width in cells.
func (s Shimmer) BandWidth() int {
	n := len(s.text)
	if n == 0 {
		return 0
	}
	bw := int(math.Round(float64(n) * float64(n) * s.spread / 100))
	lo := 2
	if n < lo {
		lo = n
	}
	if bw < lo {
		bw = lo
	}
	if bw > n {
		bw = n
	}
	return bw
}

// Progress returns the sweep position in [0, 1) after elapsed.
func (s Shimmer) Progress(elapsed time.Duration) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	p := s.easing(float64(elapsed%s.duration) / float64(s.duration))
	return min(max(p, 0), math.Nextafter(1, 0))
}

// Intensities returns the highlight strength in [0, 1] of every rune at
// sweep position p.
func (s Shimmer) Intensities(p float64) []float64 {
	n := len(s.text)
	out := make([]float64, n)
	bw := float64(s.BandWidth())
	if bw == 0 {
		return out
	}
	half := bw / 2
	center := (float64(n)-bw)*p + half
	for i := range out {
		d := math.Abs(float64(i) + 0.5 - center)
		v := 1 - d/half
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}

// Frame renders the text at elapsed time into the sweep.
func (s Shimmer) Frame(elapsed time.Duration) string {
	muted := lipgloss.NewStyle().Foreground(s.theme.Color(styles.TextMuted))
	if !s.running || s.theme.PlainOnly() {
		return muted.Render(string(s.text))
	}

	var b strings.Builder
	for i, v := range s.Intensities(s.Progress(elapsed)) {
		c := s.base.BlendLab(s.peak, v).Clamped().Hex()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(s.text[i])))
	}
	return b.String()
}

// View renders the current frame.
func (s Shimmer) View() string {
	return s.Frame(s.now().Sub(s.start))
}
