package audio

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// openAIVoices are the voices the OpenAI TTS endpoint accepts.
var openAIVoices = map[string]bool{
	"alloy": true, "ash": true, "ballad": true, "coral": true, "echo": true,
	"fable": true, "onyx": true, "nova": true, "sage": true, "shimmer": true,
	"verse": true,
}

// OpenAIProvider is the fallback TTS provider. OpenAI can emit raw 24kHz
// 16-bit mono PCM, which matches the payload format exactly.
type OpenAIProvider struct {
	client       *openai.Client
	apiKey       string
	model        string
	defaultVoice string
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		client:       openai.NewClient(apiKey),
		apiKey:       apiKey,
		model:        "gpt-4o-mini-tts",
		defaultVoice: "alloy",
	}
}

// Synthesize generates speech using OpenAI TTS. Voices that don't exist on
// OpenAI's side are mapped to the default voice.
func (p *OpenAIProvider) Synthesize(ctx context.Context, text, voice string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.model),
		Input:          text,
		Voice:          openai.SpeechVoice(p.mapVoice(voice)),
		ResponseFormat: openai.SpeechResponseFormatPcm,
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	raw, err := io.ReadAll(response)
	if err != nil {
		return "", fmt.Errorf("failed to read audio data: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("no audio data received from OpenAI")
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

// mapVoice translates a requested voice to one OpenAI accepts.
func (p *OpenAIProvider) mapVoice(voice string) string {
	if v := strings.ToLower(voice); openAIVoices[v] {
		return v
	}
	return p.defaultVoice
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}
