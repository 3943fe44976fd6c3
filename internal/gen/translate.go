package gen

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Translate renders text into the target language. It is the low-latency
// call of the pipeline: single field in, single field out.
func (c *Client) Translate(ctx context.Context, text, targetLabel string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate %q into %s. Respond with only the translation, nothing else.",
		text, targetLabel)

	resp, err := c.generate(ctx, c.config.TextModel, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.3),
		MaxOutputTokens: 256,
	})
	if err != nil {
		return "", fmt.Errorf("translate call failed: %w", err)
	}

	translation := strings.TrimSpace(resp.Text())
	if translation == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return translation, nil
}
