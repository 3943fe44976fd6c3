// Package testutil provides shared mocks for the generation and audio
// interfaces used across package tests.
package testutil

import (
	"context"
	"sync"

	"codeberg.org/snonux/wordwise/internal/gen"
)

// MockGenerator implements the explorer's Generator interface with
// substitutable behavior per call.
type MockGenerator struct {
	mu sync.Mutex

	TranslateFunc   func(text, targetLabel string) (string, error)
	RichContextFunc func(text, sourceLabel, targetLabel string) (*gen.RichContext, error)
	ChatFunc        func(message, contextStr string, history []gen.ChatTurn) (string, error)
	ImageFunc       func(subject, definition, story string) (string, error)
	SVGFunc         func(subject, definition, story string) (string, error)

	TranslateCalls   int
	RichContextCalls int
	ChatCalls        int
	ImageCalls       int
	SVGCalls         int
}

func (m *MockGenerator) Translate(ctx context.Context, text, targetLabel string) (string, error) {
	m.mu.Lock()
	m.TranslateCalls++
	fn := m.TranslateFunc
	m.mu.Unlock()
	if fn == nil {
		return "", nil
	}
	return fn(text, targetLabel)
}

func (m *MockGenerator) RichContextFor(ctx context.Context, text, sourceLabel, targetLabel string) (*gen.RichContext, error) {
	m.mu.Lock()
	m.RichContextCalls++
	fn := m.RichContextFunc
	m.mu.Unlock()
	if fn == nil {
		return &gen.RichContext{
			Definition:            "definition",
			Story:                 "story",
			Translation:           "translation",
			DefinitionTranslation: "definition translation",
			StoryTranslation:      "story translation",
		}, nil
	}
	return fn(text, sourceLabel, targetLabel)
}

func (m *MockGenerator) Chat(ctx context.Context, message, contextStr string, history []gen.ChatTurn) (string, error) {
	m.mu.Lock()
	m.ChatCalls++
	fn := m.ChatFunc
	m.mu.Unlock()
	if fn == nil {
		return "reply", nil
	}
	return fn(message, contextStr, history)
}

func (m *MockGenerator) Image(ctx context.Context, subject, definition, story string) (string, error) {
	m.mu.Lock()
	m.ImageCalls++
	fn := m.ImageFunc
	m.mu.Unlock()
	if fn == nil {
		return "data:image/png;base64,AAAA", nil
	}
	return fn(subject, definition, story)
}

func (m *MockGenerator) SVG(ctx context.Context, subject, definition, story string) (string, error) {
	m.mu.Lock()
	m.SVGCalls++
	fn := m.SVGFunc
	m.mu.Unlock()
	if fn == nil {
		return `<svg viewBox="0 0 1 1"></svg>`, nil
	}
	return fn(subject, definition, story)
}

// Calls returns the per-capability call counts.
func (m *MockGenerator) Calls() (translate, richContext, chat, image, svg int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TranslateCalls, m.RichContextCalls, m.ChatCalls, m.ImageCalls, m.SVGCalls
}

// MockSynthesizer records synthesis requests and returns canned payloads.
type MockSynthesizer struct {
	mu       sync.Mutex
	Payload  string // returned for every request; "" means unavailable
	Requests []string
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text, voice string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, text+"|"+voice)
	return m.Payload
}

// Requested reports whether a (text, voice) pair was synthesized.
func (m *MockSynthesizer) Requested(text, voice string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Requests {
		if r == text+"|"+voice {
			return true
		}
	}
	return false
}

// RequestCount returns how many synthesis requests arrived.
func (m *MockSynthesizer) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// MockPlayer records playback requests and exposes their end callbacks so
// tests can complete playbacks deliberately.
type MockPlayer struct {
	mu        sync.Mutex
	PlayCalls int
	StopCalls int
	Payloads  []string
	endings   []func()
}

func (m *MockPlayer) Play(payload string, onEnded func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayCalls++
	m.Payloads = append(m.Payloads, payload)
	m.endings = append(m.endings, onEnded)
	return nil
}

func (m *MockPlayer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StopCalls++
}

// FinishPlayback fires the end callback of playback number idx (0-based).
func (m *MockPlayer) FinishPlayback(idx int) {
	m.mu.Lock()
	var fn func()
	if idx >= 0 && idx < len(m.endings) {
		fn = m.endings[idx]
	}
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Counts returns the play and stop call counts.
func (m *MockPlayer) Counts() (plays, stops int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PlayCalls, m.StopCalls
}
