// Copyright (c) 2025, the translate-pptx contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package translate

import (
	"fmt"
	"strings"
)

// promptNop answers with the JSON payload embedded in the prompt, wrapped in
// a markdown fence. It exercises the full response path without calling any
// provider, which makes it useful for testing the pipeline end to end.
func promptNop(prompt string) (string, error) {
	const marker = "Original JSON:\n"
	i := strings.Index(prompt, marker)
	if i < 0 {
		return "", fmt.Errorf("prompt carries no JSON payload")
	}
	payload := prompt[i+len(marker):]
	if j := strings.Index(payload, "\n\nReturn only"); j >= 0 {
		payload = payload[:j]
	}
	return "```json\n" + payload + "\n```", nil
}
