package gen

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"
)

// Speech synthesizes text with the given prebuilt voice. The returned
// payload is base64-encoded 16-bit little-endian PCM, mono, 24kHz, the
// fixed format of the audio subsystem.
func (c *Client) Speech(ctx context.Context, text, voice string) (string, error) {
	resp, err := c.generate(ctx, c.config.TTSModel, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech call failed: %w", err)
	}

	blob := inlineData(resp)
	if blob == nil {
		return "", fmt.Errorf("no audio data returned")
	}
	return base64.StdEncoding.EncodeToString(blob.Data), nil
}
