// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

var numberPrinter = message.NewPrinter(language.English)

// fmtNumber formats a number with thousand separators.
func fmtNumber(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// fmtThousands renders n in thousands with one decimal, rounded to the
// nearest hundred: 1234 -> "1.2k", 50 -> "0.1k".
func fmtThousands(n int) string {
	v := math.Round(float64(n)/100) / 10
	return strconv.FormatFloat(v, 'f', -1, 64) + "k"
}

// fmtSeconds renders a duration in seconds with one decimal.
func fmtSeconds(secs float64) string {
	return strconv.FormatFloat(secs, 'f', 1, 64)
}

// newID returns a fresh component id.
func newID() string {
	return uuid.NewString()
}

// contentWidth is the usable width inside a bordered, padded box.
func contentWidth(width, chrome int) int {
	w := width - chrome
	if w < 10 {
		return 10
	}
	return w
}
