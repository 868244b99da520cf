// Copyright (c) 2025, the translate-pptx contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package translate

import (
	"fmt"
	"strings"
)

// Backend represents the AI service provider
type Backend string

const (
	BackendOpenAI   Backend = "openai"
	BackendDeepSeek Backend = "deepseek"
	BackendGoogleAI Backend = "googleai"
	BackendNop      Backend = "nop"
)

const (
	defaultOpenAIModel   = "gpt-4o-2024-11-20"
	defaultDeepSeekModel = "deepseek-ai/DeepSeek-V3.2-Exp"

	// SiliconFlow serves DeepSeek models over an OpenAI-compatible API.
	deepSeekBaseURL = "https://api.siliconflow.cn/v1"
)

// ServiceConfig holds the configuration for the translation service
type ServiceConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Verbose bool
	Backend Backend
	// RPM is the maximum number of requests per minute
	// if set to 0, no rate limiting is applied
	RPM int
}

// BackendForModel routes a model identifier to the backend that serves it.
func BackendForModel(model string) (Backend, error) {
	lower := strings.ToLower(model)
	switch {
	case lower == "nop":
		return BackendNop, nil
	case strings.Contains(lower, "gpt-4o"):
		return BackendOpenAI, nil
	case strings.Contains(lower, "deepseek"):
		return BackendDeepSeek, nil
	case strings.Contains(lower, "gemini"):
		return BackendGoogleAI, nil
	}
	return "", fmt.Errorf("unknown model: %s", model)
}

// translationPrompt is the single prompt sent per presentation. The whole
// slide/shape/text structure goes out as one JSON array and must come back
// shaped exactly the same.
const translationPrompt = `Translate the following JSON array to %s.

CRITICAL REQUIREMENTS:
1. You MUST preserve the EXACT JSON structure - same number of arrays, same nesting levels, SAME ORDER
2. Translate ONLY the text content, NOT the structure
3. DO NOT reorder, sort, or rearrange any elements - keep the EXACT same sequence
4. The first string in the original MUST be the first string in the translation
5. The last string in the original MUST be the last string in the translation
6. Translate ALL text including company names, but keep proper names and abbreviations that are already English unchanged
7. PRESERVE ALL line breaks (\n), spaces, and empty strings EXACTLY as they appear in the original
8. If a string contains \n (newline), the translated string MUST also contain \n at the same positions
9. Return ONLY the translated JSON array, no explanations

Original JSON:
%s

Return only the translated JSON array:`
