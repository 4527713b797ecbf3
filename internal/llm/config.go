package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the companion's language model.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter",
	// "mock" or "none". "none" disables generation; the app falls back to
	// the bundled content pack.
	Provider string `yaml:"provider"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration `yaml:"timeout"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"` // OpenAI-compatible endpoints
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// ProviderNone turns generation off.
const ProviderNone = "none"

// DefaultConfig returns the built-in defaults. Generation is off until a
// provider is chosen or discovered.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderNone,
		Anthropic:  AnthropicConfig{Model: "claude-haiku-4-5"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-2.5-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ApplyEnv overlays LUMI_* variables on cfg.
func ApplyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Provider, "LUMI_LLM_PROVIDER")
	set(&cfg.Anthropic.APIKey, "LUMI_ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "LUMI_ANTHROPIC_MODEL")
	set(&cfg.OpenAI.APIKey, "LUMI_OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "LUMI_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "LUMI_OPENAI_BASE_URL")
	set(&cfg.Gemini.APIKey, "LUMI_GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "LUMI_GEMINI_MODEL")
	set(&cfg.OpenRouter.APIKey, "LUMI_OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "LUMI_OPENROUTER_MODEL")
	if v := os.Getenv("LUMI_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
}

// ConfigFromEnv returns the defaults overlaid with LUMI_* variables.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// Discover fills in a provider from the vendors' standard API key
// variables when cfg has none selected. Order: Gemini, OpenAI, Anthropic,
// OpenRouter. It reports whether a provider was found.
func Discover(cfg *Config) bool {
	if cfg.Enabled() {
		return true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider, cfg.Gemini.APIKey = "gemini", k
		return true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider, cfg.OpenAI.APIKey = "openai", k
		return true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider, cfg.Anthropic.APIKey = "anthropic", k
		return true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider, cfg.OpenRouter.APIKey = "openrouter", k
		return true
	}
	return false
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// Model returns the model name of the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.Model
	case "openai":
		return c.OpenAI.Model
	case "gemini":
		return c.Gemini.Model
	case "openrouter":
		return c.OpenRouter.Model
	case "mock":
		return "mock"
	default:
		return ""
	}
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	missing := func(key string) error {
		return fmt.Errorf("%s is required for the %s provider", key, c.Provider)
	}
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return missing("LUMI_ANTHROPIC_API_KEY")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return missing("LUMI_OPENAI_API_KEY")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return missing("LUMI_GEMINI_API_KEY")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return missing("LUMI_OPENROUTER_API_KEY")
		}
	case "mock", ProviderNone, "":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
