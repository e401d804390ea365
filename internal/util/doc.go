// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the elements packages.
//
// # Key Functions
//
// String Utilities (display width aware, via go-runewidth):
//   - TruncateWidth: cut a string to a column budget with an ellipsis
//   - PadRight: pad a string to a column width
//   - StringWidth: terminal column width of a string
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	title := util.TruncateWidth(header, width-4)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
