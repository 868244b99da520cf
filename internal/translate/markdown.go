// Copyright (c) 2025, the translate-pptx contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package translate

import "strings"

// stripMarkdownFence returns the content of the first ``` or ```json fence
// in a model response, or the trimmed response itself when no fence is
// present. Models regularly wrap JSON answers in a fence despite being told
// not to.
func stripMarkdownFence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.LastIndex(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	return strings.TrimSpace(s)
}
