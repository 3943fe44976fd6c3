package audio

import (
	"context"
	"errors"
	"testing"
)

func TestProviderWithFallback(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	fallback := &mockProvider{name: "fallback"}

	provider := NewProviderWithFallback(primary, fallback)

	// Successful primary
	ctx := context.Background()
	if _, err := provider.Synthesize(ctx, "test", "Zephyr"); err != nil {
		t.Errorf("Synthesize() unexpected error: %v", err)
	}
	if primary.synthesizeCalls != 1 {
		t.Errorf("Expected 1 primary call, got %d", primary.synthesizeCalls)
	}
	if fallback.synthesizeCalls != 0 {
		t.Errorf("Expected 0 fallback calls, got %d", fallback.synthesizeCalls)
	}

	// Primary failure, fallback success
	primary.synthesizeErr = errors.New("primary failed")
	primary.synthesizeCalls = 0

	if _, err := provider.Synthesize(ctx, "test", "Zephyr"); err != nil {
		t.Errorf("Synthesize() unexpected error: %v", err)
	}
	if primary.synthesizeCalls != 1 {
		t.Errorf("Expected 1 primary call, got %d", primary.synthesizeCalls)
	}
	if fallback.synthesizeCalls != 1 {
		t.Errorf("Expected 1 fallback call, got %d", fallback.synthesizeCalls)
	}

	// Both fail
	fallback.synthesizeErr = errors.New("fallback failed")
	if _, err := provider.Synthesize(ctx, "test", "Zephyr"); err == nil {
		t.Error("Synthesize() expected error when both providers fail")
	}
}

func TestProviderWithFallbackName(t *testing.T) {
	provider := NewProviderWithFallback(
		&mockProvider{name: "primary"},
		&mockProvider{name: "fallback"},
	)

	expected := "primary (fallback: fallback)"
	if provider.Name() != expected {
		t.Errorf("Name() = %v, want %v", provider.Name(), expected)
	}
}

func TestProviderWithFallbackIsAvailable(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	fallback := &mockProvider{name: "fallback"}

	provider := NewProviderWithFallback(primary, fallback)

	// Both available
	if err := provider.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() unexpected error: %v", err)
	}

	// Primary unavailable, fallback available
	primary.availableErr = errors.New("primary unavailable")
	if err := provider.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() unexpected error when fallback available: %v", err)
	}

	// Both unavailable
	fallback.availableErr = errors.New("fallback unavailable")
	if err := provider.IsAvailable(); err == nil {
		t.Error("IsAvailable() expected error when both providers unavailable")
	}
}

func TestOpenAIProviderVoiceMapping(t *testing.T) {
	p := NewOpenAIProvider("key")

	if got := p.mapVoice("NOVA"); got != "nova" {
		t.Errorf("mapVoice(NOVA) = %s, want nova", got)
	}
	if got := p.mapVoice("Zephyr"); got != "alloy" {
		t.Errorf("mapVoice(Zephyr) = %s, want default alloy", got)
	}
}

func TestOpenAIProviderRequiresKey(t *testing.T) {
	p := NewOpenAIProvider("")
	if err := p.IsAvailable(); err == nil {
		t.Error("IsAvailable() expected error without API key")
	}
	if _, err := p.Synthesize(context.Background(), "test", "alloy"); err == nil {
		t.Error("Synthesize() expected error without API key")
	}
}
