// Package card owns the persistent flashcard collection.
package card

import (
	"time"

	"codeberg.org/snonux/wordwise/internal"
)

// VisualType identifies the kind of illustration attached to a card.
type VisualType string

const (
	VisualImage VisualType = "image"
	VisualSVG   VisualType = "svg"
	VisualVideo VisualType = "video"
)

// Flashcard is one saved vocabulary card. Immutable once created, except
// for deletion through the store.
type Flashcard struct {
	ID                    string     `json:"id"`
	SourceText            string     `json:"sourceText"`
	Definition            string     `json:"definition"`
	Story                 string     `json:"story"`
	Translation           string     `json:"translation"`
	DefinitionTranslation string     `json:"definitionTranslation"`
	StoryTranslation      string     `json:"storyTranslation"`
	SourceLangCode        string     `json:"sourceLangCode"`
	TargetLangCode        string     `json:"targetLangCode"`
	CreatedAt             time.Time  `json:"createdAt"`
	VisualType            VisualType `json:"visualType,omitempty"`
	VisualContent         string     `json:"visualContent,omitempty"` // data URI or vector markup
}

// New creates a flashcard with a fresh timestamp-derived ID.
func New(sourceText string) Flashcard {
	return Flashcard{
		ID:         internal.GenerateCardID(sourceText),
		SourceText: sourceText,
		CreatedAt:  time.Now(),
	}
}
