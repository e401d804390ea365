// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package disclosure

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/rigrun-elements/internal/logging"
)

// =============================================================================
// MODE AND STATE
// =============================================================================

// Mode says who owns the open state.
type Mode int

const (
	// Uncontrolled controllers own their state.
	Uncontrolled Mode = iota
	// Controlled controllers mirror the host's value and only propose changes.
	Controlled
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Controlled {
		return "controlled"
	}
	return "uncontrolled"
}

// State is the observable disclosure state.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateOpenPendingClose
	StateDisposed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateOpenPendingClose:
		return "open-pending-close"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Auto-close delays used by the panels.
const (
	DefaultAutoCloseDelay = 500 * time.Millisecond
	ChainAutoCloseDelay   = 1000 * time.Millisecond
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a Controller.
type Options struct {
	// Open makes the controller Controlled with this initial host value.
	Open *bool
	// DefaultOpen seeds the state of an Uncontrolled controller.
	DefaultOpen bool
	// OnOpenChange is called with every proposed state, in both modes.
	OnOpenChange func(open bool)
	// IsStreaming is the streaming signal at construction time.
	IsStreaming bool
	// AutoCloseDelay defaults to DefaultAutoCloseDelay.
	AutoCloseDelay time.Duration
	// Scheduler defaults to WallClock.
	Scheduler Scheduler
	// Logger defaults to the package logger.
	Logger *log.Logger
}

// Bool returns a pointer to b, for Options.Open.
func Bool(b bool) *bool { return &b }

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller governs the open state of one panel. Create one per panel and
// call Dispose when the panel goes away. It is safe for concurrent use;
// OnOpenChange is never called with the internal lock held.
type Controller struct {
	mu sync.Mutex

	mode      Mode
	open      bool // internal state, or the last host value when Controlled
	streaming bool
	delay     time.Duration

	onOpenChange func(bool)
	scheduler    Scheduler
	logger       *log.Logger

	pending  Timer
	gen      uint64
	disposed bool
}

// New builds a controller. A streaming signal at construction opens the
// panel straight away.
func New(opts Options) *Controller {
	c := &Controller{
		mode:         Uncontrolled,
		open:         opts.DefaultOpen,
		delay:        opts.AutoCloseDelay,
		onOpenChange: opts.OnOpenChange,
		scheduler:    opts.Scheduler,
		logger:       opts.Logger,
	}
	if opts.Open != nil {
		c.mode = Controlled
		c.open = *opts.Open
	}
	if c.delay <= 0 {
		c.delay = DefaultAutoCloseDelay
	}
	if c.scheduler == nil {
		c.scheduler = WallClock{}
	}
	if c.logger == nil {
		c.logger = logging.With("disclosure")
	}

	if opts.IsStreaming {
		c.ReportStreaming(true)
	}
	return c
}

// Mode returns the ownership mode chosen at construction.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Open returns the effective open state. A disposed controller reports false.
func (c *Controller) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.disposed && c.open
}

// Streaming returns the last reported streaming signal.
func (c *Controller) Streaming() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.disposed && c.streaming
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.disposed:
		return StateDisposed
	case !c.open:
		return StateClosed
	case c.pending != nil:
		return StateOpenPendingClose
	default:
		return StateOpen
	}
}

// AutoCloseDelay returns the delay used for the next armed close.
func (c *Controller) AutoCloseDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delay
}

// SetAutoCloseDelay changes the delay for closes armed after this call.
// A pending close keeps its original deadline.
func (c *Controller) SetAutoCloseDelay(d time.Duration) {
	if d <= 0 {
		d = DefaultAutoCloseDelay
	}
	c.mu.Lock()
	c.delay = d
	c.mu.Unlock()
}

// SetOpen proposes a new open state. Uncontrolled controllers apply it;
// Controlled ones leave their state alone. OnOpenChange is called either way.
// Closing cancels any pending auto-close.
func (c *Controller) SetOpen(next bool) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	notify := c.setOpenLocked(next)
	c.mu.Unlock()

	notify()
}

// Toggle flips the effective open state, as a header click would.
func (c *Controller) Toggle() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	notify := c.setOpenLocked(!c.open)
	c.mu.Unlock()

	notify()
}

// SetHostOpen records the host's value for a Controlled controller.
// Uncontrolled controllers ignore it.
func (c *Controller) SetHostOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	if c.mode != Controlled {
		c.logger.Debug("host value ignored", "mode", c.mode)
		return
	}
	c.open = open
	if !open {
		c.cancelLocked()
	}
}

// ReportStreaming feeds the streaming signal. Starting opens the panel
// immediately; stopping while open arms a single delayed close that later
// reports do not restart.
func (c *Controller) ReportStreaming(streaming bool) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.streaming = streaming

	notify := func() {}
	switch {
	case streaming:
		c.cancelLocked()
		if !c.open {
			notify = c.setOpenLocked(true)
		}
	case c.open && c.pending == nil:
		c.armLocked()
	}
	c.mu.Unlock()

	notify()
}

// Dispose cancels any pending close and deactivates the controller.
// Calling it more than once is harmless.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.cancelLocked()
	c.disposed = true
}

// Disposed reports whether Dispose has been called.
func (c *Controller) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// =============================================================================
// INTERNALS (caller holds c.mu)
// =============================================================================

// setOpenLocked applies next and returns the notification to run after
// unlocking.
func (c *Controller) setOpenLocked(next bool) func() {
	if !next {
		c.cancelLocked()
	}
	if c.mode == Uncontrolled {
		c.open = next
	}

	cb := c.onOpenChange
	if cb == nil {
		return func() {}
	}
	return func() { cb(next) }
}

func (c *Controller) armLocked() {
	c.gen++
	gen := c.gen
	c.pending = c.scheduler.AfterFunc(c.delay, func() { c.fire(gen) })
	c.logger.Debug("auto-close armed", "delay", c.delay, "gen", gen)
}

func (c *Controller) cancelLocked() {
	if c.pending == nil {
		return
	}
	c.pending.Stop()
	c.pending = nil
	c.gen++
	c.logger.Debug("auto-close cancelled", "gen", c.gen)
}

// fire runs the deferred close armed with generation gen.
func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.disposed || c.pending == nil || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	notify := c.setOpenLocked(false)
	c.mu.Unlock()

	c.logger.Debug("auto-close fired", "gen", gen)
	notify()
}
