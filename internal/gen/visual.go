package gen

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// illustrationPrompt builds the shared subject description for both visual
// calls. Definition and story are optional enrichment.
func illustrationPrompt(subject, definition, story string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "An illustration for the vocabulary term %q on a language-learning flashcard.", subject)
	if definition != "" {
		fmt.Fprintf(&b, " Meaning: %s.", definition)
	}
	if story != "" {
		fmt.Fprintf(&b, " Context: %s.", story)
	}
	b.WriteString(" Simple, clear, memorable. No text in the image.")
	return b.String()
}

// Image generates a raster illustration and returns it as an embeddable
// data URI. An empty string means the backend produced no image.
func (c *Client) Image(ctx context.Context, subject, definition, story string) (string, error) {
	resp, err := c.generate(ctx, c.config.ImageModel,
		genai.Text(illustrationPrompt(subject, definition, story)),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		})
	if err != nil {
		return "", fmt.Errorf("image call failed: %w", err)
	}

	blob := inlineData(resp)
	if blob == nil {
		return "", nil
	}
	mime := blob.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(blob.Data)), nil
}

// SVG generates a vector illustration as self-contained markup. The backend
// tends to wrap output in code fences; those are stripped. An empty string
// means no usable vector came back.
func (c *Client) SVG(ctx context.Context, subject, definition, story string) (string, error) {
	prompt := illustrationPrompt(subject, definition, story) +
		" Respond with a single complete <svg> element with a responsive viewBox," +
		" no external references, and nothing outside the markup."

	resp, err := c.generate(ctx, c.config.TextModel, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.6),
	})
	if err != nil {
		return "", fmt.Errorf("svg call failed: %w", err)
	}

	return ExtractSVG(resp.Text()), nil
}

// ExtractSVG cleans code-fence decoration from markup and returns the <svg>
// element, or "" when no root tag is present.
func ExtractSVG(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```svg")
	cleaned = strings.TrimPrefix(cleaned, "```xml")
	cleaned = strings.TrimPrefix(cleaned, "```html")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "<svg")
	if start < 0 {
		return ""
	}
	cleaned = cleaned[start:]

	if end := strings.LastIndex(cleaned, "</svg>"); end >= 0 {
		cleaned = cleaned[:end+len("</svg>")]
	}
	return cleaned
}
