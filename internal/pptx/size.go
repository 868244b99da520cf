// Copyright (c) 2025, the translate-pptx contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package pptx

// CJK glyphs carry more visual weight than Latin text at the same point
// size, so small sizes gain a point when a presentation is translated to
// English. Body, subtitle and title sizes keep their value.
var englishSizeMap = map[float64]float64{
	8:  9,
	9:  10,
	10: 11,
	11: 12,
	12: 13,
	14: 14,
	16: 16,
	18: 18,
	20: 20,
	22: 22,
	24: 24,
	28: 28,
	32: 32,
	36: 36,
	44: 44,
}

// englishPointSize returns the point size to use for English text replacing
// text of the given size. Paragraphs without an explicit size (pt == 0)
// default to 11pt.
func englishPointSize(pt float64) float64 {
	if pt == 0 {
		return 11
	}
	if mapped, ok := englishSizeMap[pt]; ok {
		return mapped
	}
	if pt < 12 {
		return pt + 1
	}
	return pt
}
