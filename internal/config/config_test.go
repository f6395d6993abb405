package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/content")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SERPER_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("USE_BROWSER", "")
	t.Setenv("LLM_CALL_TIMEOUT", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.False(t, cfg.UseBrowser)
	assert.Zero(t, cfg.CallTimeout)
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("USE_BROWSER", "true")
	t.Setenv("LLM_CALL_TIMEOUT", "90s")
	t.Setenv("JWT_SECRET", "hmac-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, 90*time.Second, cfg.CallTimeout)
	assert.Equal(t, "hmac-secret", cfg.JWTSecret)
}

func TestLoadRejectsBadValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)

	setBaseEnv(t)
	t.Setenv("LLM_CALL_TIMEOUT", "ninety seconds")
	_, err = Load()
	assert.Error(t, err)
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidateRequiresProviderKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("GEMINI_API_KEY", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	setBaseEnv(t)
	t.Setenv("LLM_PROVIDER", "openai")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLMProvider)
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_PROVIDER")
}
