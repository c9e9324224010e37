package llmprovider_test

import (
	"errors"
	"testing"

	"ticket-triage/config"
	"ticket-triage/pkg/llmprovider"
)

func TestInitializeProviders(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		if _, err := llmprovider.InitializeProviders(nil); err == nil {
			t.Fatal("expected error for nil config")
		}
	})

	t.Run("no enabled providers", func(t *testing.T) {
		cfg := &config.LLMConfig{Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: false, APIKey: "k"},
		}}
		_, err := llmprovider.InitializeProviders(cfg)
		if !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
			t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
		}
	})

	t.Run("sorted by priority", func(t *testing.T) {
		cfg := &config.LLMConfig{Providers: []config.ProviderConfig{
			{Name: "deepseek", Enabled: true, Priority: 2, APIKey: "k2"},
			{Name: "gemini", Enabled: true, Priority: 1, APIKey: "k1"},
		}}
		providers, err := llmprovider.InitializeProviders(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(providers) != 2 {
			t.Fatalf("expected 2 providers, got %d", len(providers))
		}
		if providers[0].Name() != "gemini" {
			t.Errorf("expected gemini first, got %s", providers[0].Name())
		}
		if providers[1].Name() != "deepseek" {
			t.Errorf("expected deepseek second, got %s", providers[1].Name())
		}
	})

	t.Run("broken provider is skipped", func(t *testing.T) {
		cfg := &config.LLMConfig{Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 1}, // no API key
			{Name: "deepseek", Enabled: true, Priority: 2, APIKey: "k2"},
		}}
		providers, err := llmprovider.InitializeProviders(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(providers) != 1 || providers[0].Name() != "deepseek" {
			t.Fatalf("expected only deepseek, got %v", providers)
		}
	})

	t.Run("all providers broken", func(t *testing.T) {
		cfg := &config.LLMConfig{Providers: []config.ProviderConfig{
			{Name: "unknown-llm", Enabled: true, Priority: 1, APIKey: "k"},
		}}
		if _, err := llmprovider.InitializeProviders(cfg); err == nil {
			t.Fatal("expected error when no provider initializes")
		}
	})
}
