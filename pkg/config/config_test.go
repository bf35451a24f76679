package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, "qwen3-max", cfg.LLM.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
	assert.Equal(t, "Asia/Shanghai", cfg.Agent.DefaultTimezone)
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"llm": {"model": "glm-4", "api_key": "k", "base_url": "https://example.com/v1"},
		"agent": {"default_timezone": "Europe/London", "sessions_dir": "/tmp/sessions"},
		"log": {"debug": true}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "glm-4", cfg.LLM.Model)
	assert.Equal(t, "k", cfg.LLM.APIKey)
	assert.Equal(t, "Europe/London", cfg.Agent.DefaultTimezone)
	assert.Equal(t, "/tmp/sessions", cfg.Agent.SessionsDir)
	assert.True(t, cfg.Log.Debug)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"llm": {"model": "from-file"}}`), 0o644))

	t.Setenv("HOURGLASS_LLM_MODEL", "from-env")
	t.Setenv("HOURGLASS_AGENT_DEFAULT_TIMEZONE", "Asia/Tokyo")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.LLM.Model)
	assert.Equal(t, "Asia/Tokyo", cfg.Agent.DefaultTimezone)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
