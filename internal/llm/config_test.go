package llm

import (
	"testing"
	"time"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"TEACHVAL_LLM_PROVIDER", "TEACHVAL_ANTHROPIC_API_KEY", "TEACHVAL_OPENAI_API_KEY",
		"TEACHVAL_GEMINI_API_KEY", "TEACHVAL_OPENROUTER_API_KEY", "TEACHVAL_LLM_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("TEACHVAL_LLM_PROVIDER", "openai")
	t.Setenv("TEACHVAL_OPENAI_API_KEY", "sk-test")
	t.Setenv("TEACHVAL_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.OpenAI.APIKey)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	// Defaults survive for untouched fields.
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q", cfg.OpenAI.Model)
	}
}

func TestDiscoverConfigPriority(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-anthropic")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	// OpenAI outranks Anthropic in the probe order.
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
}

func TestDiscoverConfigNoKeys(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Error("expected discovery to fail with no keys set")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("anthropic provider without a key must not validate")
	}

	cfg.Anthropic.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider needs no key: %v", err)
	}

	cfg.Provider = "something-else"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown provider must not validate")
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := WithPurpose(t.Context(), "question-gen")
	if got := PurposeFrom(ctx); got != "question-gen" {
		t.Errorf("PurposeFrom = %q", got)
	}
	if got := PurposeFrom(t.Context()); got != "unknown" {
		t.Errorf("PurposeFrom(no label) = %q", got)
	}
}
