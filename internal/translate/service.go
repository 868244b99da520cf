// Copyright (c) 2025, the translate-pptx contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"google.golang.org/genai"
)

// Service translates presentation text structures using AI models
type Service struct {
	openaiClient *openai.Client
	googleClient *genai.Client
	config       ServiceConfig
	verbose      bool
	logger       zerolog.Logger
	breaker      *gobreaker.CircuitBreaker
	// rate limiter fields
	rateLimiter   *time.Ticker
	rateLimiterMu sync.Mutex
}

// NewService creates a new translation service
func NewService(config ServiceConfig) (*Service, error) {
	// The nop backend never talks to a provider
	if config.APIKey == "" && config.Backend != BackendNop {
		return nil, fmt.Errorf("API key is required for %s backend", config.Backend)
	}

	service := &Service{
		config:  config,
		verbose: config.Verbose,
		logger:  zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger(),
	}

	// initialize rate limiter if RPM is set
	if config.RPM > 0 {
		interval := time.Minute / time.Duration(config.RPM)
		service.rateLimiter = time.NewTicker(interval)
		service.logger.Info().
			Int("rpm", config.RPM).
			Dur("interval", interval).
			Msg("rate limiter initialized")
	}

	service.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "translate",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	switch config.Backend {
	case BackendOpenAI:
		if service.config.Model == "" {
			service.config.Model = defaultOpenAIModel
		}
		clientConfig := openai.DefaultConfig(config.APIKey)
		if config.BaseURL != "" {
			clientConfig.BaseURL = config.BaseURL
		}
		service.openaiClient = openai.NewClientWithConfig(clientConfig)
	case BackendDeepSeek:
		if service.config.Model == "" {
			service.config.Model = defaultDeepSeekModel
		}
		clientConfig := openai.DefaultConfig(config.APIKey)
		clientConfig.BaseURL = deepSeekBaseURL
		if config.BaseURL != "" {
			clientConfig.BaseURL = config.BaseURL
		}
		service.openaiClient = openai.NewClientWithConfig(clientConfig)
	case BackendGoogleAI:
		if config.Model == "" {
			return nil, fmt.Errorf("model must be specified for Google AI backend")
		}
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  config.APIKey,
			Backend: genai.BackendGoogleAI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Google AI client: %w", err)
		}
		service.googleClient = client
	case BackendNop:
	default:
		return nil, fmt.Errorf("unsupported backend: %s", config.Backend)
	}

	return service, nil
}

// waitForRateLimit waits for the rate limiter if it's configured
func (s *Service) waitForRateLimit(ctx context.Context) error {
	if s.rateLimiter == nil {
		return nil
	}

	s.rateLimiterMu.Lock()
	defer s.rateLimiterMu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.rateLimiter.C:
		return nil
	}
}

// Close cleans up resources used by the service
func (s *Service) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// Translate sends the whole slide/shape/text structure through the backend
// in a single prompt and reconciles the response against the original.
// A response that cannot be parsed keeps the original text rather than
// failing the run; structural damage falls back per slide or per shape.
func (s *Service) Translate(ctx context.Context, texts [][][]string, targetLang string) ([][][]string, error) {
	payload, err := marshalStructure(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode text structure: %w", err)
	}

	s.logger.Debug().
		Int("slides", len(texts)).
		Str("target_lang", targetLang).
		Str("backend", string(s.config.Backend)).
		Msg("starting translation")

	raw, err := s.complete(ctx, fmt.Sprintf(translationPrompt, targetLang, payload))
	if err != nil {
		return nil, err
	}

	var translated [][][]string
	if err := json.Unmarshal([]byte(stripMarkdownFence(raw)), &translated); err != nil {
		s.logger.Warn().
			Err(err).
			Msg("response is not the expected JSON structure, keeping original text")
		return texts, nil
	}

	return s.reconcile(texts, translated), nil
}

// marshalStructure encodes the structure as indented JSON without escaping
// non-ASCII text, so the model sees the source language as written.
func marshalStructure(texts [][][]string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(texts); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// reconcile validates the translated structure against the original and
// substitutes original content wherever the model changed the shape of the
// data.
func (s *Service) reconcile(original, translated [][][]string) [][][]string {
	if len(translated) != len(original) {
		s.logger.Warn().
			Int("expected", len(original)).
			Int("received", len(translated)).
			Msg("slide count mismatch, keeping original text")
		return original
	}

	for i := range original {
		if len(translated[i]) != len(original[i]) {
			s.logger.Warn().
				Int("slide", i).
				Int("expected", len(original[i])).
				Int("received", len(translated[i])).
				Msg("shape count mismatch, keeping original slide")
			translated[i] = original[i]
			continue
		}
		for j := range original[i] {
			if len(translated[i][j]) != len(original[i][j]) {
				s.logger.Warn().
					Int("slide", i).
					Int("shape", j).
					Msg("text count mismatch, keeping original shape")
				translated[i][j] = original[i][j]
			}
		}
	}
	return translated
}

// complete sends one prompt to the configured backend, retrying with
// exponential backoff when the provider rate-limits. All calls go through
// the circuit breaker so a failing provider stops being hammered.
func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	const maxAttempts = 5
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := s.waitForRateLimit(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait interrupted: %w", err)
		}

		result, err := s.breaker.Execute(func() (interface{}, error) {
			switch s.config.Backend {
			case BackendOpenAI, BackendDeepSeek:
				return s.promptChat(ctx, prompt)
			case BackendGoogleAI:
				return s.promptGoogleAI(ctx, prompt)
			case BackendNop:
				return promptNop(prompt)
			default:
				return nil, fmt.Errorf("unsupported backend: %s", s.config.Backend)
			}
		})
		if err != nil {
			if isRateLimited(err) {
				lastErr = err
				if err := s.rateLimitBackoff(ctx, attempt); err != nil {
					return "", fmt.Errorf("rate limit backoff interrupted: %w", err)
				}
				continue
			}
			return "", err
		}
		return result.(string), nil
	}

	return "", fmt.Errorf("max retries exceeded due to rate limits: %w", lastErr)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota")
}

// rateLimitBackoff implements exponential backoff for rate limits
func (s *Service) rateLimitBackoff(ctx context.Context, attempt int) error {
	backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}

	s.logger.Warn().
		Int("attempt", attempt).
		Dur("backoff", backoff).
		Msg("rate limit hit, backing off")

	timer := time.NewTimer(backoff)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
