package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
	"unicode"
)

// GenerateCardID creates a unique ID for a flashcard based on timestamp and
// the source text.
// Format: epochMillis_md5(sourceText)[:8]
func GenerateCardID(sourceText string) string {
	epochMillis := time.Now().UnixNano() / 1000000

	hash := md5.Sum([]byte(sourceText))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	result := ""
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			result += string(r)
		} else {
			result += "_"
		}
	}
	return result
}
