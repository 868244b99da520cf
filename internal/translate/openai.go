// Copyright (c) 2025, the translate-pptx contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package translate

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// promptChat sends the prompt through the OpenAI-compatible chat API. Both
// the OpenAI and SiliconFlow (DeepSeek) backends use this path; they differ
// only in base URL and default model.
func (s *Service) promptChat(ctx context.Context, prompt string) (string, error) {
	resp, err := s.openaiClient.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.config.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", s.config.Backend)
	}

	if s.verbose {
		s.logger.Debug().
			Str("model", s.config.Model).
			Int("response_len", len(resp.Choices[0].Message.Content)).
			Msg("chat completion received")
	}

	return resp.Choices[0].Message.Content, nil
}
