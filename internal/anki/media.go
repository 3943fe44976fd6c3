package anki

import (
	"encoding/base64"
	"fmt"
	"strings"

	"codeberg.org/snonux/wordwise/internal/card"
)

// mediaFile is one decoded visual ready for packaging.
type mediaFile struct {
	Name string // filename referenced from the note
	Data []byte
}

// extractMedia turns a card's visual payload into a packageable media file.
// Raster visuals arrive as data URIs, vector visuals as raw markup.
func extractMedia(c card.Flashcard) (*mediaFile, error) {
	if c.VisualContent == "" {
		return nil, nil
	}

	base := sanitizeBase(c.ID)
	switch c.VisualType {
	case card.VisualSVG:
		return &mediaFile{
			Name: base + ".svg",
			Data: []byte(c.VisualContent),
		}, nil
	case card.VisualImage:
		mime, data, err := decodeDataURI(c.VisualContent)
		if err != nil {
			return nil, err
		}
		return &mediaFile{
			Name: base + extensionFor(mime),
			Data: data,
		}, nil
	default:
		// Video payloads are opaque; not packageable
		return nil, nil
	}
}

// decodeDataURI splits a data:<mime>;base64,<payload> URI.
func decodeDataURI(uri string) (mime string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return "", nil, fmt.Errorf("malformed data URI")
	}

	meta := uri[len("data:"):comma]
	mime = strings.TrimSuffix(meta, ";base64")
	if mime == meta {
		return "", nil, fmt.Errorf("unsupported data URI encoding")
	}

	data, err = base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return "", nil, fmt.Errorf("invalid data URI payload: %w", err)
	}
	return mime, data, nil
}

func extensionFor(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

func sanitizeBase(id string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, id)
}
