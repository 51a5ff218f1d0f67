package llm

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// NewProvider builds the configured provider. Calls go through retry, then
// logging, then the SDK.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		or := cfg.OpenRouter
		if or.BaseURL == "" {
			or.BaseURL = defaultOpenRouterBaseURL
		}
		base, err = NewOpenAIProvider(or)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, logger), cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from SIAGA_LLM_PROVIDER, or from the
// first standard API key variable found. It returns a nil Provider and nil
// error when nothing is configured.
func NewProviderFromEnv(ctx context.Context, logger *zap.Logger) (Provider, error) {
	var cfg Config
	if os.Getenv("SIAGA_LLM_PROVIDER") != "" {
		cfg = ConfigFromEnv()
	} else {
		var ok bool
		if cfg, ok = DiscoverConfig(); !ok {
			return nil, nil
		}
	}
	return NewProvider(ctx, cfg, logger)
}
