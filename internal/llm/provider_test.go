package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"one"`)},
		MockResponse{Content: json.RawMessage(`"two"`)},
	)
	for _, want := range []string{`"one"`, `"two"`} {
		resp, err := mock.Generate(context.Background(), Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(resp.Content) != want {
			t.Fatalf("expected %s, got %s", want, resp.Content)
		}
	}

	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable on empty queue, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"summary":"x"}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: testSchemaAdvice()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Content: okContent})
	mock.Generate(context.Background(), Request{System: "counsellor"})

	calls := mock.Calls()
	if len(calls) != 1 || calls[0].System != "counsellor" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if id := CorrelationIDFrom(ctx); id != "" {
		t.Fatalf("expected empty correlation ID, got %q", id)
	}

	ctx = WithCorrelationID(WithPurpose(ctx, "advice"), "a-1")
	if p := PurposeFrom(ctx); p != "advice" {
		t.Fatalf("expected 'advice', got %q", p)
	}
	if id := CorrelationIDFrom(ctx); id != "a-1" {
		t.Fatalf("expected 'a-1', got %q", id)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: OpenAIConfig{APIKey: "k"}}, false},
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"empty provider", Config{}, true},
		{"unknown provider", Config{Provider: "llama"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SIAGA_LLM_PROVIDER", "SIAGA_ANTHROPIC_API_KEY", "SIAGA_OPENAI_API_KEY",
		"SIAGA_OPENROUTER_API_KEY", "SIAGA_GEMINI_API_KEY",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("SIAGA_LLM_PROVIDER", "openrouter")
	t.Setenv("SIAGA_OPENROUTER_API_KEY", "or-key")
	t.Setenv("SIAGA_OPENROUTER_MODEL", "anthropic/claude-haiku-4.5")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenRouter {
		t.Fatalf("expected openrouter, got %q", cfg.Provider)
	}
	if cfg.OpenRouter.APIKey != "or-key" || cfg.OpenRouter.Model != "anthropic/claude-haiku-4.5" {
		t.Fatalf("unexpected openrouter config: %+v", cfg.OpenRouter)
	}
	if cfg.OpenRouter.BaseURL != defaultOpenRouterBaseURL {
		t.Fatalf("expected default base URL, got %q", cfg.OpenRouter.BaseURL)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "o" {
		t.Fatalf("expected openai to win over gemini, got %+v", cfg)
	}
}

func TestNewProviderFromEnv(t *testing.T) {
	clearProviderEnv(t)
	p, err := NewProviderFromEnv(context.Background(), zap.NewNop())
	if err != nil || p != nil {
		t.Fatalf("expected no provider, got %v, %v", p, err)
	}

	t.Setenv("SIAGA_LLM_PROVIDER", "mock")
	p, err = NewProviderFromEnv(context.Background(), zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != ProviderMock {
		t.Fatalf("expected mock provider, got %q", p.ModelID())
	}

	t.Setenv("SIAGA_LLM_PROVIDER", "anthropic")
	if _, err := NewProviderFromEnv(context.Background(), zap.NewNop()); err == nil {
		t.Fatal("expected error for anthropic without key")
	}
}

func TestLoggingProvider(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mock := NewMockProvider(
		MockResponse{Content: okContent, Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, zap.New(core))

	ctx := WithCorrelationID(WithPurpose(context.Background(), "advice"), "a-1")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	ok := entries[0].ContextMap()
	if ok["purpose"] != "advice" || ok["assessment_id"] != "a-1" || ok["input_tokens"] != int64(10) {
		t.Fatalf("unexpected success fields: %v", ok)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("expected failure at warn, got %s", entries[1].Level)
	}
	if p.ModelID() != ProviderMock {
		t.Fatalf("expected ModelID to delegate, got %q", p.ModelID())
	}
}
