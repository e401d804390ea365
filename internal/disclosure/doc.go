// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package disclosure decides whether a collapsible panel (Reasoning, Chain of
Thought) is expanded.

A Controller reconciles three inputs: the initial default, explicit host
control, and a streaming signal pushed by the host on every content update.

# Modes

The mode is fixed when the controller is built. Passing Options.Open makes
the controller Controlled: the host owns the open state, SetOpen only
notifies OnOpenChange, and the host pushes its next value with SetHostOpen.
Without Options.Open the controller is Uncontrolled and owns the state,
seeded from Options.DefaultOpen.

# Streaming

	ReportStreaming(true)   open immediately, cancel any pending close
	ReportStreaming(false)  if open, close after AutoCloseDelay (one timer, never restarted)

# State machine

	Closed           --streaming=true-->   Open
	Closed           --toggle-->           Open
	Open             --streaming=false-->  OpenPendingClose
	OpenPendingClose --streaming=true-->   Open
	OpenPendingClose --timer-->            Closed
	OpenPendingClose --toggle closed-->    Closed
	Open             --toggle closed-->    Closed

# Timers

Timers come from a Scheduler. WallClock uses time.AfterFunc; TickScheduler
runs them as tea.Tick messages on the Bubble Tea event loop. Every armed timer
carries a generation number, and cancellation bumps the generation, so a
callback that was already queued when the timer was cancelled or the
controller was disposed does nothing.

# Usage

	ctrl := disclosure.New(disclosure.Options{AutoCloseDelay: 500 * time.Millisecond})
	defer ctrl.Dispose()

	ctrl.ReportStreaming(true)  // panel opens
	ctrl.ReportStreaming(false) // panel closes 500ms later
*/
package disclosure
