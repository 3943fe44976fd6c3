package audio

import (
	"context"
	"log"
	"sync"
)

// VoiceCache stores synthesized payloads keyed by (text, voice). It lives
// for the process lifetime, is never evicted and never persisted. Async
// completions may race to write it; identical keys always carry identical
// payloads, so last write wins harmlessly.
type VoiceCache struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewVoiceCache creates an empty cache
func NewVoiceCache() *VoiceCache {
	return &VoiceCache{entries: make(map[string]string)}
}

func cacheKey(text, voice string) string {
	return text + "|" + voice
}

// Get returns the cached payload for (text, voice), if present
func (c *VoiceCache) Get(text, voice string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[cacheKey(text, voice)]
	return payload, ok
}

// Put stores a payload for (text, voice)
func (c *VoiceCache) Put(text, voice, payload string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(text, voice)] = payload
}

// Len returns the number of cached entries
func (c *VoiceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Synthesizer is the cache-first front of the speech pipeline. It is owned
// by the application session, not a package-level global, so tests can
// substitute providers freely.
type Synthesizer struct {
	cache    *VoiceCache
	provider SpeechProvider
}

// NewSynthesizer creates a synthesizer with its own cache.
func NewSynthesizer(provider SpeechProvider) *Synthesizer {
	return &Synthesizer{
		cache:    NewVoiceCache(),
		provider: provider,
	}
}

// Synthesize returns the payload for (text, voice). A cache hit
// short-circuits the network call entirely. On backend failure it logs and
// returns "". Callers treat an empty payload as "no audio available",
// never as an error to surface.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voice string) string {
	if text == "" {
		return ""
	}

	if payload, ok := s.cache.Get(text, voice); ok {
		return payload
	}

	payload, err := s.provider.Synthesize(ctx, text, voice)
	if err != nil {
		log.Printf("Warning: speech synthesis failed for %q: %v", text, err)
		return ""
	}

	s.cache.Put(text, voice, payload)
	return payload
}
