// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package demo is the interactive showcase run by "elements demo".
//
// One Bubble Tea model hosts every element: a Reasoning panel fed by a
// simulated reasoning-model stream, a Chain of Thought panel whose steps
// advance on a timer, a code block with copy, shimmer text and a generated
// image section. Config edits arrive as ConfigMsg while it runs.
//
// Keys:
//
//	tab / shift+tab   move focus between panels
//	enter / space     toggle the focused panel
//	c / y             copy the focused code block
//	d                 toggle DeepDive (persisted)
//	r                 replay
//	pgup / pgdn       scroll (also home, end and the mouse wheel)
//	q / ctrl+c        quit
package demo
