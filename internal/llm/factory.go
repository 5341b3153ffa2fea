package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Provider identifies a model backend.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
)

// ProviderConfig is the resolved provider selection.
type ProviderConfig struct {
	Provider Provider
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// DetectProvider resolves a provider from environment variables, in
// priority order ANTHROPIC > OPENAI > GEMINI. Used when the config
// file names no provider.
func DetectProvider() (*ProviderConfig, error) {
	candidates := []struct {
		envVar   string
		provider Provider
	}{
		{"ANTHROPIC_API_KEY", ProviderAnthropic},
		{"OPENAI_API_KEY", ProviderOpenAI},
		{"GEMINI_API_KEY", ProviderGemini},
	}

	for _, c := range candidates {
		if key := os.Getenv(c.envVar); key != "" {
			return &ProviderConfig{Provider: c.provider, APIKey: key}, nil
		}
	}

	return nil, fmt.Errorf("no model provider configured: set ANTHROPIC_API_KEY, OPENAI_API_KEY, or GEMINI_API_KEY")
}

// NewClient builds a Client for the resolved provider.
func NewClient(ctx context.Context, pc *ProviderConfig) (Client, error) {
	switch pc.Provider {
	case ProviderAnthropic:
		cfg := DefaultAnthropicConfig(pc.APIKey)
		if pc.Model != "" {
			cfg.Model = pc.Model
		}
		if pc.BaseURL != "" {
			cfg.BaseURL = pc.BaseURL
		}
		if pc.Timeout > 0 {
			cfg.Timeout = pc.Timeout
		}
		return NewAnthropicClientWithConfig(cfg), nil

	case ProviderOpenAI:
		cfg := DefaultOpenAIConfig(pc.APIKey)
		if pc.Model != "" {
			cfg.Model = pc.Model
		}
		if pc.BaseURL != "" {
			cfg.BaseURL = pc.BaseURL
		}
		if pc.Timeout > 0 {
			cfg.Timeout = pc.Timeout
		}
		return NewOpenAIClientWithConfig(cfg), nil

	case ProviderGemini:
		cfg := DefaultGeminiConfig(pc.APIKey)
		if pc.Model != "" {
			cfg.Model = pc.Model
		}
		return NewGeminiClientWithConfig(ctx, cfg)

	default:
		return nil, fmt.Errorf("unknown provider %q", pc.Provider)
	}
}
