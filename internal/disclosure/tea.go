// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package disclosure

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// BUBBLE TEA SCHEDULER
// =============================================================================

// FireMsg is delivered by a TickScheduler tick. Route it back through
// TickScheduler.Update.
type FireMsg struct {
	sched *TickScheduler
	id    uint64
}

// TickScheduler runs timer callbacks on the Bubble Tea event loop instead of
// on timer goroutines. AfterFunc queues a tea.Tick; the owning model returns
// Cmd() from its Update and hands every message to Update, which runs the
// callback if the timer was not stopped in the meantime.
type TickScheduler struct {
	mu     sync.Mutex
	nextID uint64
	timers map[uint64]func()
	queued []tea.Cmd
}

// NewTickScheduler creates an empty scheduler.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{timers: make(map[uint64]func())}
}

type tickTimer struct {
	sched *TickScheduler
	id    uint64
}

// Stop implements Timer.
func (t tickTimer) Stop() bool {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	if _, ok := t.sched.timers[t.id]; !ok {
		return false
	}
	delete(t.sched.timers, t.id)
	return true
}

// AfterFunc implements Scheduler.
func (s *TickScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.timers[id] = f
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return FireMsg{sched: s, id: id}
	}))
	return tickTimer{sched: s, id: id}
}

// Cmd drains the ticks queued since the last call. Returns nil when nothing
// is queued.
func (s *TickScheduler) Cmd() tea.Cmd {
	s.mu.Lock()
	cmds := s.queued
	s.queued = nil
	s.mu.Unlock()

	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

// Update runs the callback for a FireMsg that belongs to this scheduler and
// reports whether msg was one. Ticks for stopped timers are swallowed.
func (s *TickScheduler) Update(msg tea.Msg) bool {
	fm, ok := msg.(FireMsg)
	if !ok || fm.sched != s {
		return false
	}

	s.mu.Lock()
	f, live := s.timers[fm.id]
	delete(s.timers, fm.id)
	s.mu.Unlock()

	if live {
		f()
	}
	return true
}

// Pending returns the number of timers that have neither fired nor stopped.
func (s *TickScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
