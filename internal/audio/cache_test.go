package audio

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// mockProvider implements SpeechProvider for testing
type mockProvider struct {
	name            string
	synthesizeErr   error
	availableErr    error
	synthesizeCalls int
}

func (m *mockProvider) Synthesize(ctx context.Context, text, voice string) (string, error) {
	m.synthesizeCalls++
	if m.synthesizeErr != nil {
		return "", m.synthesizeErr
	}
	return fmt.Sprintf("payload-%s-%s-%d", text, voice, m.synthesizeCalls), nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) IsAvailable() error {
	return m.availableErr
}

func TestSynthesizeCacheHitShortCircuits(t *testing.T) {
	provider := &mockProvider{name: "mock"}
	s := NewSynthesizer(provider)
	ctx := context.Background()

	first := s.Synthesize(ctx, "hello", "Zephyr")
	if first == "" {
		t.Fatal("Expected payload on first synthesis")
	}
	if provider.synthesizeCalls != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.synthesizeCalls)
	}

	second := s.Synthesize(ctx, "hello", "Zephyr")
	if second != first {
		t.Errorf("Cache hit returned different payload: %q vs %q", second, first)
	}
	if provider.synthesizeCalls != 1 {
		t.Errorf("Cache hit should not call provider, got %d calls", provider.synthesizeCalls)
	}
}

func TestSynthesizeDistinctVoicesAreDistinctKeys(t *testing.T) {
	provider := &mockProvider{name: "mock"}
	s := NewSynthesizer(provider)
	ctx := context.Background()

	s.Synthesize(ctx, "hello", "Zephyr")
	s.Synthesize(ctx, "hello", "Kore")

	if provider.synthesizeCalls != 2 {
		t.Errorf("Expected 2 provider calls for 2 voices, got %d", provider.synthesizeCalls)
	}
}

func TestSynthesizeFailureReturnsEmpty(t *testing.T) {
	provider := &mockProvider{name: "mock", synthesizeErr: errors.New("backend down")}
	s := NewSynthesizer(provider)

	payload := s.Synthesize(context.Background(), "hello", "Zephyr")
	if payload != "" {
		t.Errorf("Expected empty payload on failure, got %q", payload)
	}

	// A failure must not be cached
	provider.synthesizeErr = nil
	payload = s.Synthesize(context.Background(), "hello", "Zephyr")
	if payload == "" {
		t.Error("Expected successful retry after failure")
	}
}

func TestSynthesizeEmptyTextNoDispatch(t *testing.T) {
	provider := &mockProvider{name: "mock"}
	s := NewSynthesizer(provider)

	if payload := s.Synthesize(context.Background(), "", "Zephyr"); payload != "" {
		t.Errorf("Expected empty payload for empty text, got %q", payload)
	}
	if provider.synthesizeCalls != 0 {
		t.Errorf("Empty text must not reach the provider, got %d calls", provider.synthesizeCalls)
	}
}

func TestVoiceCache(t *testing.T) {
	c := NewVoiceCache()

	if _, ok := c.Get("hello", "Zephyr"); ok {
		t.Error("Expected miss on empty cache")
	}

	c.Put("hello", "Zephyr", "payload1")
	if got, ok := c.Get("hello", "Zephyr"); !ok || got != "payload1" {
		t.Errorf("Get() = %q, %v; want payload1, true", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}
