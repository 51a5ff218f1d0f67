package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Config selects and configures one provider.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenAIConfig
	Gemini     GeminiConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIConfig also serves OpenAI-compatible APIs such as OpenRouter.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns defaults with no provider selected.
func DefaultConfig() Config {
	return Config{
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenAIConfig{
			Model:   "google/gemini-2.0-flash-001",
			BaseURL: defaultOpenRouterBaseURL,
		},
		Gemini: GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// ConfigFromEnv reads SIAGA_LLM_* and SIAGA_<PROVIDER>_* variables over the
// defaults. Provider stays empty unless SIAGA_LLM_PROVIDER is set.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "SIAGA_LLM_PROVIDER")

	setFromEnv(&cfg.Anthropic.APIKey, "SIAGA_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "SIAGA_ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "SIAGA_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "SIAGA_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "SIAGA_OPENAI_BASE_URL")

	setFromEnv(&cfg.OpenRouter.APIKey, "SIAGA_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "SIAGA_OPENROUTER_MODEL")

	setFromEnv(&cfg.Gemini.APIKey, "SIAGA_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "SIAGA_GEMINI_MODEL")

	return cfg
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig picks the first provider whose standard API key variable
// is set, in the order Anthropic, OpenAI, Gemini, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	switch {
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "SIAGA_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "SIAGA_OPENAI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "SIAGA_OPENROUTER_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "SIAGA_GEMINI_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
