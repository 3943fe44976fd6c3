package gen

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"
)

// Config holds the backend connection settings.
type Config struct {
	APIKey     string
	TextModel  string // chat, translation, rich context, SVG
	ImageModel string // raster illustration
	TTSModel   string // speech synthesis
}

// DefaultConfig returns the default model selection.
func DefaultConfig(apiKey string) *Config {
	return &Config{
		APIKey:     apiKey,
		TextModel:  "gemini-2.5-flash",
		ImageModel: "gemini-2.5-flash-image",
		TTSModel:   "gemini-2.5-flash-preview-tts",
	}
}

// Client wraps the Gemini API behind capability-specific calls. All requests
// pass through a shared circuit breaker so that a dead backend trips fast
// instead of being hammered by pre-warm loops.
type Client struct {
	genai   *genai.Client
	config  *Config
	breaker *gobreaker.CircuitBreaker[*genai.GenerateContentResponse]
}

// NewClient creates a generation client for the given configuration.
func NewClient(ctx context.Context, config *Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("generation config is required")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		genai:   gc,
		config:  config,
		breaker: newBreaker(),
	}, nil
}

// newBreaker builds the shared circuit breaker. Five consecutive failures
// open it; it half-opens again after 30 seconds.
func newBreaker() *gobreaker.CircuitBreaker[*genai.GenerateContentResponse] {
	return gobreaker.NewCircuitBreaker[*genai.GenerateContentResponse](gobreaker.Settings{
		Name:    "gemini",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// generate runs one GenerateContent request through the circuit breaker.
func (c *Client) generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.breaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return c.genai.Models.GenerateContent(ctx, model, contents, cfg)
	})
}

// inlineData returns the first inline binary part of a response, or nil.
func inlineData(resp *genai.GenerateContentResponse) *genai.Blob {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData
			}
		}
	}
	return nil
}
