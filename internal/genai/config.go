package genai

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures an LLM provider.
type Config struct {
	// Provider is "anthropic", "openai" or "mock".
	Provider string

	AnthropicAPIKey string
	AnthropicModel  string // default "claude-haiku-4-5-20251001"

	OpenAIAPIKey  string
	OpenAIModel   string // default "gpt-4o-mini"
	OpenAIBaseURL string // optional override for compatible APIs

	// Timeout bounds a single completion call.
	Timeout time.Duration
}

// DefaultConfig returns the provider defaults.
func DefaultConfig() Config {
	return Config{
		Provider:       "anthropic",
		AnthropicModel: "claude-haiku-4-5-20251001",
		OpenAIModel:    "gpt-4o-mini",
		Timeout:        30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from LUMI_* environment variables,
// falling back to the standard provider key env vars for discovery.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("LUMI_GENAI_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if k := os.Getenv("LUMI_ANTHROPIC_API_KEY"); k != "" {
		cfg.AnthropicAPIKey = k
	} else if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.AnthropicAPIKey = k
	}
	if m := os.Getenv("LUMI_ANTHROPIC_MODEL"); m != "" {
		cfg.AnthropicModel = m
	}
	if k := os.Getenv("LUMI_OPENAI_API_KEY"); k != "" {
		cfg.OpenAIAPIKey = k
	} else if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.OpenAIAPIKey = k
	}
	if m := os.Getenv("LUMI_OPENAI_MODEL"); m != "" {
		cfg.OpenAIModel = m
	}
	if u := os.Getenv("LUMI_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAIBaseURL = u
	}

	// No provider selected explicitly: pick whichever key is present.
	if os.Getenv("LUMI_GENAI_PROVIDER") == "" {
		switch {
		case cfg.AnthropicAPIKey != "":
			cfg.Provider = "anthropic"
		case cfg.OpenAIAPIKey != "":
			cfg.Provider = "openai"
		}
	}

	return cfg
}

// Validate checks that the selected provider has its key.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("LUMI_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("LUMI_OPENAI_API_KEY is required for the openai provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown genai provider: %q", c.Provider)
	}
	return nil
}

// NewProvider creates the configured Provider.
func NewProvider(cfg Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case "anthropic":
		return newAnthropicProvider(cfg)
	case "openai":
		return newOpenAIProvider(cfg)
	case "mock":
		return NewMockProvider(), nil
	}
	return nil, fmt.Errorf("unknown genai provider: %q", cfg.Provider)
}
