// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-elements/internal/ui/styles"
)

// blockLines drops the caption line.
func blockLines(view string) []string {
	return strings.Split(view, "\n")[1:]
}

// barLengths returns the placeholder fill count of every line below the
// caption that has any.
func barLengths(view string) []int {
	var out []int
	for _, line := range blockLines(view) {
		if n := strings.Count(line, "."); n > 0 {
			out = append(out, n)
		}
	}
	return out
}

func TestSkeletonPresets(t *testing.T) {
	tests := []struct {
		kind     SkeletonKind
		name     string
		text     string
		duration time.Duration
	}{
		{SkeletonDefault, "default", "Generating response...", styles.ShimmerDuration},
		{SkeletonSearch, "search", "Searching the web for relevant information...", 1200 * time.Millisecond},
		{SkeletonVideo, "video", "Finding relevant videos...", 1300 * time.Millisecond},
		{SkeletonRetrieve, "retrieve", "Retrieving content from the web page...", 1400 * time.Millisecond},
	}
	for _, tc := range tests {
		s := NewSkeleton(SkeletonOptions{Kind: tc.kind, Theme: testTheme()})
		assert.Equal(t, tc.name, tc.kind.String())
		assert.Equal(t, tc.text, s.Text(), tc.name)
		assert.Equal(t, tc.duration, s.Duration(), tc.name)
		assert.False(t, s.Running())
	}
	assert.Equal(t, "unknown", SkeletonKind(99).String())
}

func TestSkeletonOverrides(t *testing.T) {
	s := NewSkeleton(SkeletonOptions{
		Kind:     SkeletonSearch,
		Text:     "Looking up sources...",
		Duration: 500 * time.Millisecond,
		Theme:    testTheme(),
	})
	assert.Equal(t, "Looking up sources...", s.Text())
	assert.Equal(t, 500*time.Millisecond, s.Duration())

	unknown := NewSkeleton(SkeletonOptions{Kind: SkeletonKind(42), Theme: testTheme()})
	assert.Equal(t, SkeletonDefault, unknown.Kind())
}

func TestSkeletonDefaultBars(t *testing.T) {
	s := NewSkeleton(SkeletonOptions{Width: 40, Theme: testTheme()})
	v := s.View()
	assert.True(t, strings.HasPrefix(v, "Generating response..."))
	assert.Equal(t, []int{40, 30}, barLengths(v))
}

func TestSkeletonRetrieveBars(t *testing.T) {
	s := NewSkeleton(SkeletonOptions{Kind: SkeletonRetrieve, Width: 40, Theme: testTheme()})
	assert.Equal(t, []int{40, 40, 30}, barLengths(s.View()))
}

func TestSkeletonSearchTiles(t *testing.T) {
	s := NewSkeleton(SkeletonOptions{Kind: SkeletonSearch, Width: 80, Theme: testTheme()})
	wide := barLengths(s.View())
	require.Len(t, wide, skeletonTileRows, "one row of tiles")
	// four 18-wide tiles
	assert.Equal(t, 4*18, wide[0])

	s.SetWidth(40)
	narrow := barLengths(s.View())
	require.Len(t, narrow, 2*skeletonTileRows, "two rows of two")
	assert.Equal(t, 2*19, narrow[0])
}

func TestSkeletonVideoCards(t *testing.T) {
	s := NewSkeleton(SkeletonOptions{Kind: SkeletonVideo, Width: 80, Theme: testTheme()})
	rows := barLengths(s.View())
	// two rows of cards: thumbnail rows, then the 3/4 and 1/2 bars
	require.Len(t, rows, 2*(skeletonThumbRows+2))
	assert.Equal(t, 2*39, rows[0])
	assert.Equal(t, 2*29, rows[skeletonThumbRows])
	assert.Equal(t, 2*19, rows[skeletonThumbRows+1])
}

func TestSkeletonFitsWidth(t *testing.T) {
	for _, kind := range SkeletonKinds {
		for _, w := range []int{30, 59, 60, 100} {
			s := NewSkeleton(SkeletonOptions{Kind: kind, Width: w, Theme: testTheme()})
			for _, line := range blockLines(s.View()) {
				assert.LessOrEqual(t, lipgloss.Width(line), w, "%s at %d", kind, w)
			}
		}
	}
}

func TestSkeletonTicks(t *testing.T) {
	s := NewSkeleton(SkeletonOptions{Kind: SkeletonSearch, Theme: testTheme()})
	cmd := s.Start()
	require.NotNil(t, cmd)
	assert.True(t, s.Running())
	msg := cmd()

	s, next := s.Update(msg)
	assert.NotNil(t, next, "running caption keeps ticking")

	other := NewShimmer(ShimmerOptions{Text: "x", Theme: testTheme()})
	_, next = s.Update(other.Start()())
	assert.Nil(t, next, "another shimmer's tick is ignored")

	s.Stop()
	_, next = s.Update(msg)
	assert.Nil(t, next)
}
