// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the Bubble Tea elements of rigrun-elements.
//
// # Components
//
//   - Reasoning: collapsible panel for model thinking, auto-opens while
//     streaming and collapses 500ms after
//   - ChainOfThought: collapsible list of steps with status glyphs, search
//     result badges and images; collapses 1000ms after streaming stops
//   - CodeBlock: chroma-highlighted code with a clipboard copy action
//   - Shimmer: loading text with a sweeping highlight
//   - Image, ImageSection: descriptions of generated images
//   - ToastManager: transient notifications (copy failures)
//   - ScrollView: fixed-height window over tall content
//
// # Disclosure
//
// Reasoning and ChainOfThought each own a disclosure.Controller driven by a
// disclosure.TickScheduler, so their auto-close timers run on the program's
// event loop. Hosts must pass every message to the component's Update and
// return the command it produces; timer ticks arrive as disclosure.FireMsg.
//
// # Usage
//
//	r := components.NewReasoning(components.ReasoningOptions{})
//	cmd := r.SetStreaming(true)
//	...
//	r, cmd = r.Update(msg)
package components
