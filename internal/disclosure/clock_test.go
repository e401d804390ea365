// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package disclosure

import (
	"sort"
	"sync"
	"time"
)

// fakeClock is a manual Scheduler. Timers fire only inside Advance, in
// deadline order, on the calling goroutine.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due timers.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		var due []*fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && t.at <= target {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			break
		}
		sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
		next := due[0]
		next.fired = true
		c.now = next.at
		c.mu.Unlock()
		next.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// Live returns the number of timers that can still fire.
func (c *fakeClock) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Armed returns how many timers were ever scheduled.
func (c *fakeClock) Armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// leakyScheduler ignores Stop and hands callbacks to the test, modelling a
// callback that was already queued when its timer was cancelled.
type leakyScheduler struct {
	callbacks []func()
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return false }

func (l *leakyScheduler) AfterFunc(_ time.Duration, f func()) Timer {
	l.callbacks = append(l.callbacks, f)
	return leakyTimer{}
}

// recorder captures OnOpenChange notifications.
type recorder struct {
	mu    sync.Mutex
	calls []bool
}

func (r *recorder) record(open bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, open)
}

func (r *recorder) Calls() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.calls...)
}
