package gen

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// RichContext is the full explanation payload for one lookup. All five
// fields are mandatory in the response schema.
type RichContext struct {
	Definition            string `json:"definition"`
	Story                 string `json:"story"`
	Translation           string `json:"translation"`
	DefinitionTranslation string `json:"definitionTranslation"`
	StoryTranslation      string `json:"storyTranslation"`
}

var richContextSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"definition": {
			Type:        genai.TypeString,
			Description: "A clear, learner-friendly definition in the source language",
		},
		"story": {
			Type:        genai.TypeString,
			Description: "A short example story or sentence using the term, in the source language",
		},
		"translation": {
			Type:        genai.TypeString,
			Description: "The term rendered in the target language",
		},
		"definitionTranslation": {
			Type:        genai.TypeString,
			Description: "The definition rendered in the target language",
		},
		"storyTranslation": {
			Type:        genai.TypeString,
			Description: "The story rendered in the target language",
		},
	},
	Required: []string{"definition", "story", "translation", "definitionTranslation", "storyTranslation"},
}

// RichContextFor fetches definition, example story and their translations
// for a term. Unlike the degrade-and-continue calls, failures here propagate
// to the caller, which owns the user-visible handling.
func (c *Client) RichContextFor(ctx context.Context, text, sourceLabel, targetLabel string) (*RichContext, error) {
	prompt := fmt.Sprintf(
		"You are helping a %s speaker learn %s. For the term %q, provide a definition "+
			"and a short, memorable example story in %s, plus the term, definition and "+
			"story rendered in %s.",
		sourceLabel, targetLabel, text, sourceLabel, targetLabel)

	resp, err := c.generate(ctx, c.config.TextModel, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.7),
		ResponseMIMEType: "application/json",
		ResponseSchema:   richContextSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("rich context call failed: %w", err)
	}

	return decodeRichContext(resp.Text())
}

// decodeRichContext parses the structured response. A schema violation is a
// parse failure; the caller maps it to a recoverable error.
func decodeRichContext(raw string) (*RichContext, error) {
	var rc RichContext
	if err := json.Unmarshal([]byte(raw), &rc); err != nil {
		return nil, fmt.Errorf("malformed rich context response: %w", err)
	}
	if rc.Definition == "" || rc.Story == "" || rc.Translation == "" ||
		rc.DefinitionTranslation == "" || rc.StoryTranslation == "" {
		return nil, fmt.Errorf("rich context response missing required fields")
	}
	return &rc, nil
}
