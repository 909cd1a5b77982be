package config

import (
	"testing"

	"github.com/WanderWise/wander-wise-backend/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test-key-for-config-loading")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DefaultModel, cfg.OpenAI.Model)
	assert.Equal(t, DefaultBaseURL, cfg.OpenAI.BaseURL)
	assert.Equal(t, 3, cfg.Pipeline.MaxAttempts)
	assert.Equal(t, 250, cfg.Pipeline.RetryBaseMs)
	assert.Equal(t, 300, cfg.Pipeline.RunTimeoutSeconds)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_ModelOverride(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test-key-for-config-loading")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestLoadConfig_InvalidBaseURL(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test-key-for-config-loading")
	t.Setenv("OPENAI_BASE_URL", "not a url")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidateConfig_PipelinePolicy(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Port: "8080", AllowedOrigins: []string{"*"}},
		OpenAI: OpenAIConfig{
			APIKey:         "sk-test",
			Model:          DefaultModel,
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 60,
		},
		Pipeline: PipelineConfig{MaxAttempts: 0, RetryBaseMs: 250, RunTimeoutSeconds: 300},
	}

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max attempts")
}
