package audio

import (
	"context"
	"fmt"
	"log"
)

// SpeechProvider defines the interface for text-to-speech providers. The
// returned payload is base64-encoded PCM in the package's fixed format.
type SpeechProvider interface {
	// Synthesize generates speech for text with the given voice
	Synthesize(ctx context.Context, text, voice string) (string, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  SpeechProvider
	fallback SpeechProvider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback SpeechProvider) SpeechProvider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Synthesize tries the primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Synthesize(ctx context.Context, text, voice string) (string, error) {
	payload, err := p.primary.Synthesize(ctx, text, voice)
	if err != nil {
		log.Printf("Primary provider (%s) failed: %v. Falling back to %s",
			p.primary.Name(), err, p.fallback.Name())
		return p.fallback.Synthesize(ctx, text, voice)
	}
	return payload, nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
