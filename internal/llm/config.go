package llm

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the LLM subsystem.
type Config struct {
	LogCalls     bool
	Endpoint     string
	APIKey       string
	Model        string
	TimeoutMs    int
	MaxRetries   int
	RetryBackoff time.Duration
	Temperature  float64
	MaxTokens    int
}

// DefaultConfig returns a Config with sensible defaults. The endpoint
// and model default to Groq's free tier.
func DefaultConfig() Config {
	return Config{
		LogCalls:     false,
		Endpoint:     "https://api.groq.com/openai",
		Model:        "llama-3.3-70b-versatile",
		TimeoutMs:    30000,
		MaxRetries:   2,
		RetryBackoff: 500 * time.Millisecond,
		Temperature:  0.7,
		MaxTokens:    4096,
	}
}

// LoadConfig reads LLM configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("BRIEFGEN_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("BRIEFGEN_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("BRIEFGEN_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("BRIEFGEN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("BRIEFGEN_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("BRIEFGEN_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("BRIEFGEN_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("BRIEFGEN_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			cfg.Temperature = f
		}
	}

	return cfg
}
