// Copyright (c) 2025, the translate-pptx contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package translate

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

func (s *Service) promptGoogleAI(ctx context.Context, prompt string) (string, error) {
	result, err := s.googleClient.Models.GenerateContent(ctx, s.config.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("no response from Google AI")
	}

	candidate := result.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Google AI")
	}

	return candidate.Content.Parts[0].Text, nil
}
