// Copyright (c) 2025, the translate-pptx contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearAPIKeyEnv blanks every key variable so the environment override
// chain starts from a known state.
func clearAPIKeyEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SILICONFLOW_API_KEY", "SILICONFLOW_MODEL", "SILICONFLOW_RPM",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_RPM",
		"GOOGLE_AI_API_KEY", "GOOGLE_AI_MODEL", "GOOGLE_AI_RPM",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	clearAPIKeyEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `backend = "openai"
model = "gpt-4o-2024-11-20"
api_key = "file-key"
rpm = 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Backend)
	assert.Equal(t, "gpt-4o-2024-11-20", cfg.Model)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 30, cfg.RPM)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfig_EnvSelectsDeepSeek(t *testing.T) {
	clearAPIKeyEnv(t)
	t.Setenv("SILICONFLOW_API_KEY", "sf-key")
	t.Setenv("SILICONFLOW_MODEL", "deepseek-ai/DeepSeek-V3.2-Exp")
	t.Setenv("SILICONFLOW_RPM", "10")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "deepseek", cfg.Backend)
	assert.Equal(t, "sf-key", cfg.APIKey)
	assert.Equal(t, "deepseek-ai/DeepSeek-V3.2-Exp", cfg.Model)
	assert.Equal(t, 10, cfg.RPM)
}

func TestLoadConfig_EnvPrecedence(t *testing.T) {
	clearAPIKeyEnv(t)
	// SiliconFlow wins over OpenAI when both are set.
	t.Setenv("SILICONFLOW_API_KEY", "sf-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "deepseek", cfg.Backend)
	assert.Equal(t, "sf-key", cfg.APIKey)
}

func TestLoadConfig_EnvSelectsGoogleAI(t *testing.T) {
	clearAPIKeyEnv(t)
	t.Setenv("GOOGLE_AI_API_KEY", "g-key")
	t.Setenv("GOOGLE_AI_MODEL", "gemini-2.0-flash")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "googleai", cfg.Backend)
	assert.Equal(t, "g-key", cfg.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
}

func TestResolveAPIKey(t *testing.T) {
	clearAPIKeyEnv(t)
	t.Setenv("OPENAI_API_KEY", "oa-key")

	cfg := &Config{APIKey: "fallback"}
	// The backend's own variable wins even when the chain picked another key.
	assert.Equal(t, "oa-key", cfg.ResolveAPIKey("openai"))
	// Backends without a dedicated variable fall back to the loaded key.
	assert.Equal(t, "fallback", cfg.ResolveAPIKey("deepseek"))
	assert.Equal(t, "fallback", cfg.ResolveAPIKey("nop"))
}
