// Package config loads refactorkit configuration from a YAML file and
// assembles the immutable per-run pipeline configuration from it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"refactorkit/internal/logging"
	"refactorkit/internal/refactor"
)

// Config holds all refactorkit configuration.
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Refactor RefactorConfig `yaml:"refactor"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LLMConfig configures the model collaborator.
type LLMConfig struct {
	Provider string `yaml:"provider"` // anthropic, openai, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// RefactorConfig is the recognized configuration surface of the
// pipeline: one enable flag per concern (all default false), the
// artifact size ceiling, the output mode, and optional extra
// instructions embedded verbatim into every pass.
type RefactorConfig struct {
	EnableSecurity        bool `yaml:"enable_security"`
	EnablePerformance     bool `yaml:"enable_performance"`
	EnableMemory          bool `yaml:"enable_memory"`
	EnableCorrectness     bool `yaml:"enable_correctness"`
	EnableMaintainability bool `yaml:"enable_maintainability"`
	EnableReliability     bool `yaml:"enable_reliability"`

	MaxCodeSizeTokens      int    `yaml:"max_code_size_tokens"`
	JSONOutput             bool   `yaml:"json_output"`
	AdditionalInstructions string `yaml:"additional_instructions"`
}

// LoggingConfig mirrors logging.Config in YAML form.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Dir        string          `yaml:"dir"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultMaxCodeSizeTokens is used when the config names no ceiling.
const DefaultMaxCodeSizeTokens = 20000

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Refactor: RefactorConfig{
			MaxCodeSizeTokens: DefaultMaxCodeSizeTokens,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   ".refactorkit/logs",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is
// not an error; defaults apply. The API key may also arrive via
// environment, resolved by the llm provider factory.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Refactor.MaxCodeSizeTokens <= 0 {
		cfg.Refactor.MaxCodeSizeTokens = DefaultMaxCodeSizeTokens
	}

	return cfg, nil
}

// ParsedTimeout parses the LLM timeout string. Returns zero when the
// string is empty or invalid, which lets the client apply its default.
func (c *LLMConfig) ParsedTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Pipeline assembles the immutable per-run pipeline configuration.
// Constructed once and threaded through every component; nothing in
// the pipeline reads this package afterwards.
func (c *Config) Pipeline() *refactor.PipelineConfig {
	enabled := map[refactor.Concern]bool{}
	if c.Refactor.EnableSecurity {
		enabled[refactor.ConcernSecurity] = true
	}
	if c.Refactor.EnablePerformance {
		enabled[refactor.ConcernPerformance] = true
	}
	if c.Refactor.EnableMemory {
		enabled[refactor.ConcernMemory] = true
	}
	if c.Refactor.EnableCorrectness {
		enabled[refactor.ConcernCorrectness] = true
	}
	if c.Refactor.EnableMaintainability {
		enabled[refactor.ConcernMaintainability] = true
	}
	if c.Refactor.EnableReliability {
		enabled[refactor.ConcernReliability] = true
	}

	return &refactor.PipelineConfig{
		EnabledConcerns:   enabled,
		MaxArtifactTokens: c.Refactor.MaxCodeSizeTokens,
		StructuredOutput:  c.Refactor.JSONOutput,
		UserInstructions:  c.Refactor.AdditionalInstructions,
	}
}

// LoggingSettings converts the YAML logging block to the logging
// package's config type.
func (c *Config) LoggingSettings() logging.Config {
	return logging.Config{
		DebugMode:  c.Logging.DebugMode,
		Dir:        c.Logging.Dir,
		Level:      c.Logging.Level,
		Categories: c.Logging.Categories,
	}
}
