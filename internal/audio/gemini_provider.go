package audio

import (
	"context"
	"fmt"

	"codeberg.org/snonux/wordwise/internal/gen"
)

// GeminiProvider synthesizes speech through the generation client.
type GeminiProvider struct {
	client *gen.Client
}

// NewGeminiProvider creates the primary TTS provider.
func NewGeminiProvider(client *gen.Client) *GeminiProvider {
	return &GeminiProvider{client: client}
}

// Synthesize generates speech via the Gemini TTS model.
func (p *GeminiProvider) Synthesize(ctx context.Context, text, voice string) (string, error) {
	return p.client.Speech(ctx, text, voice)
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks if the provider is configured
func (p *GeminiProvider) IsAvailable() error {
	if p.client == nil {
		return fmt.Errorf("Gemini client not configured")
	}
	return nil
}
