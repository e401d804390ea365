// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stream feeds text into the UI the way an LLM response arrives.
//
// Simulator replays a canned response as rate-limited token messages,
// Buffer batches those tokens to a capped frame rate, and ThinkParser
// separates <think> reasoning from the answer as tokens arrive.
package stream
