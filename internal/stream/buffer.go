// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stream

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultBatchSize = 15
	DefaultMaxFPS    = 30
	maxFPSLimit      = 60
)

// =============================================================================
// BUFFER
// =============================================================================

// Buffer batches tokens for rendering. Content is released when either the
// batch size is reached or a frame interval has passed since the last flush.
//
// Write is called from the producer; Flush from the Bubble Tea loop.
type Buffer struct {
	mu         sync.Mutex
	buf        strings.Builder
	tokenCount int
	lastFlush  time.Time

	batchSize int
	maxFPS    int
	interval  time.Duration

	now func() time.Time
}

// NewBuffer creates a buffer with the default batch size and frame rate.
func NewBuffer() *Buffer {
	return NewBufferWithConfig(DefaultBatchSize, DefaultMaxFPS)
}

// NewBufferWithConfig creates a buffer with custom thresholds. Invalid
// values fall back to the defaults.
func NewBufferWithConfig(batchSize, maxFPS int) *Buffer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if maxFPS <= 0 || maxFPS > maxFPSLimit {
		maxFPS = DefaultMaxFPS
	}
	b := &Buffer{
		batchSize: batchSize,
		maxFPS:    maxFPS,
		interval:  frameInterval(maxFPS),
		now:       time.Now,
	}
	b.lastFlush = b.now()
	return b
}

func frameInterval(fps int) time.Duration {
	return time.Second / time.Duration(fps)
}

// Write adds a token.
func (b *Buffer) Write(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.WriteString(token)
	b.tokenCount++
}

// Flush returns the accumulated content if a threshold was reached.
func (b *Buffer) Flush() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.shouldFlushLocked() {
		return "", false
	}
	return b.takeLocked(), true
}

// ForceFlush returns whatever is buffered regardless of thresholds.
func (b *Buffer) ForceFlush() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.buf.Len() == 0 {
		return "", false
	}
	return b.takeLocked(), true
}

// ShouldFlush reports whether Flush would release content.
func (b *Buffer) ShouldFlush() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shouldFlushLocked()
}

func (b *Buffer) shouldFlushLocked() bool {
	if b.buf.Len() == 0 {
		return false
	}
	if b.tokenCount >= b.batchSize {
		return true
	}
	return b.now().Sub(b.lastFlush) >= b.interval
}

func (b *Buffer) takeLocked() string {
	s := b.buf.String()
	b.buf.Reset()
	b.tokenCount = 0
	b.lastFlush = b.now()
	return s
}

// Reset drops buffered content.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
	b.tokenCount = 0
	b.lastFlush = b.now()
}

// Pending returns the number of tokens waiting.
func (b *Buffer) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tokenCount
}

// Interval returns the minimum time between time-based flushes.
func (b *Buffer) Interval() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.interval
}

// SetMaxFPS updates the frame cap. Values outside 1..60 are ignored.
func (b *Buffer) SetMaxFPS(fps int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if fps > 0 && fps <= maxFPSLimit {
		b.maxFPS = fps
		b.interval = frameInterval(fps)
	}
}

// =============================================================================
// FRAME TICK
// =============================================================================

// FrameMsg asks the host to flush the buffer.
type FrameMsg struct {
	Time time.Time
}

// FrameCmd schedules the next FrameMsg one frame interval from now.
func (b *Buffer) FrameCmd() tea.Cmd {
	return tea.Tick(b.Interval(), func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}
