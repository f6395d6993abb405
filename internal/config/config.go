// Package config provides environment-driven configuration for the content engine.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration. Values come from the
// environment (a .env file is loaded by main before this runs).
type Config struct {
	Port         int
	DatabaseURL  string
	GeminiAPIKey string
	SerperAPIKey string

	// LLMProvider selects the generation backend: "gemini" (default) or "openai".
	LLMProvider  string
	OpenAIAPIKey string

	// JWTSecret enables bearer-token parsing on per-user endpoints.
	// When empty, every request runs with anonymous scope.
	JWTSecret string

	// UseBrowser enables the headless-browser fallback for articles that
	// render their content with JavaScript.
	UseBrowser bool

	// CallTimeout bounds each outbound call when non-zero. The default of
	// zero waits indefinitely.
	CallTimeout time.Duration
}

// Load reads configuration from the environment. DatabaseURL and the
// generation API key are required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         8080,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		SerperAPIKey: os.Getenv("SERPER_API_KEY"),
		LLMProvider:  os.Getenv("LLM_PROVIDER"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("USE_BROWSER"); v != "" {
		useBrowser, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid USE_BROWSER %q: %w", v, err)
		}
		cfg.UseBrowser = useBrowser
	}

	if v := os.Getenv("LLM_CALL_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_CALL_TIMEOUT %q: %w", v, err)
		}
		cfg.CallTimeout = timeout
	}

	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "gemini"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings for the selected provider are present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	switch c.LLMProvider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q (expected gemini or openai)", c.LLMProvider)
	}
	return nil
}
