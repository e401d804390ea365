// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

func TestShimmerDefaults(t *testing.T) {
	s := NewShimmer(ShimmerOptions{Text: "Loading", Theme: testTheme()})
	assert.Equal(t, styles.ShimmerDuration, s.duration)
	assert.Equal(t, styles.ShimmerSpread, s.spread)
	assert.False(t, s.Running())
	assert.Equal(t, "Loading", s.Text())
}

func TestShimmerBandWidth(t *testing.T) {
	tests := []struct {
		text   string
		spread float64
		want   int
	}{
		{"", 2, 0},
		{"a", 2, 1},
		{"Thinking", 2, 2},                       // 8*8*2% = 1.28 -> min 2
		{"Generating a response", 2, 9},          // 21*21*2% = 8.82
		{"Searching through many sources", 2, 18}, // 30*30*2% = 18
		{"Searching through many sources", 10, 30},
	}
	for _, tc := range tests {
		s := NewShimmer(ShimmerOptions{Text: tc.text, Spread: tc.spread, Theme: testTheme()})
		assert.Equal(t, tc.want, s.BandWidth(), tc.text)
	}
}

func TestShimmerProgressWraps(t *testing.T) {
	s := NewShimmer(ShimmerOptions{Text: "x", Duration: time.Second, Theme: testTheme()})
	assert.InDelta(t, 0, s.Progress(0), 1e-9)
	assert.InDelta(t, 0.5, s.Progress(500*time.Millisecond), 1e-9)
	assert.InDelta(t, 0.25, s.Progress(2250*time.Millisecond), 1e-9)
	assert.InDelta(t, 0, s.Progress(-time.Second), 1e-9)
}

func TestShimmerEasing(t *testing.T) {
	s := NewShimmer(ShimmerOptions{
		Text:     "x",
		Duration: time.Second,
		Easing:   styles.EaseInOutQuad,
		Theme:    testTheme(),
	})
	assert.InDelta(t, 0.125, s.Progress(250*time.Millisecond), 1e-9)
	assert.InDelta(t, 0.5, s.Progress(500*time.Millisecond), 1e-9)
	assert.Less(t, s.Progress(999*time.Millisecond), 1.0)
}

func TestShimmerBandSweepsLeftToRight(t *testing.T) {
	s := NewShimmer(ShimmerOptions{Text: "Searching through many sources", Theme: testTheme()})

	peak := func(p float64) int {
		best, at := -1.0, -1
		for i, v := range s.Intensities(p) {
			if v > best {
				best, at = v, i
			}
		}
		return at
	}

	start, mid, end := peak(0), peak(0.5), peak(0.99)
	assert.Less(t, start, mid)
	assert.Less(t, mid, end)

	for _, v := range s.Intensities(0.3) {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestShimmerTicks(t *testing.T) {
	s := NewShimmer(ShimmerOptions{Text: "Loading", Theme: testTheme()})

	cmd := s.Start()
	require.NotNil(t, cmd)
	msg := cmd()

	s, next := s.Update(msg)
	assert.NotNil(t, next, "running shimmer keeps ticking")

	s.Stop()
	_, next = s.Update(msg)
	assert.Nil(t, next, "stale tick after stop")

	restart := s.Start()
	_, next = s.Update(msg)
	assert.Nil(t, next, "tick from the previous run is ignored")
	assert.NotNil(t, restart)
}

func TestShimmerFramePlain(t *testing.T) {
	s := NewShimmer(ShimmerOptions{Text: "Loading", Theme: styles.NewThemeWithProfile(true, termenv.Ascii)})
	s.Start()
	assert.Equal(t, "Loading", s.Frame(300*time.Millisecond))
}

func TestShimmerFrameKeepsText(t *testing.T) {
	s := NewShimmer(ShimmerOptions{Text: "Loading", Theme: styles.NewThemeWithProfile(true, termenv.TrueColor)})
	s.Start()
	frame := s.Frame(time.Second)
	for _, r := range "Loading" {
		assert.Contains(t, frame, string(r))
	}
}
