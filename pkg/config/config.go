package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type LLMConfig struct {
	Model       string  `json:"model" env:"HOURGLASS_LLM_MODEL"`
	APIKey      string  `json:"api_key" env:"HOURGLASS_LLM_API_KEY"`
	BaseURL     string  `json:"base_url" env:"HOURGLASS_LLM_BASE_URL"`
	MaxTokens   int     `json:"max_tokens" env:"HOURGLASS_LLM_MAX_TOKENS"`
	Temperature float64 `json:"temperature" env:"HOURGLASS_LLM_TEMPERATURE"`
}

type AgentConfig struct {
	DefaultTimezone string `json:"default_timezone" env:"HOURGLASS_AGENT_DEFAULT_TIMEZONE"`
	SessionsDir     string `json:"sessions_dir" env:"HOURGLASS_AGENT_SESSIONS_DIR"`
}

type LogConfig struct {
	File  string `json:"file" env:"HOURGLASS_LOG_FILE"`
	Debug bool   `json:"debug" env:"HOURGLASS_LOG_DEBUG"`
}

type Config struct {
	LLM   LLMConfig   `json:"llm"`
	Agent AgentConfig `json:"agent"`
	Log   LogConfig   `json:"log"`
}

// Load reads the JSON config file if present, overlays environment
// variables, and applies defaults. A missing file is not an error:
// the env-only path is the common deployment mode.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// DefaultPath returns ~/.hourglass/config.json, or "" when the home
// directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hourglass", "config.json")
}

func (c *Config) applyDefaults() {
	if c.LLM.Model == "" {
		c.LLM.Model = "qwen3-max"
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.LLM.Temperature < 0 {
		c.LLM.Temperature = 0
	}
	if c.Agent.DefaultTimezone == "" {
		c.Agent.DefaultTimezone = "Asia/Shanghai"
	}
}
