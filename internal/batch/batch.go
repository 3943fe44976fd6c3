// Package batch processes a word list file into saved flashcards without
// the GUI.
package batch

import (
	"fmt"
	"log"
	"os"
	"strings"

	"codeberg.org/snonux/wordwise/internal/card"
	"codeberg.org/snonux/wordwise/internal/explore"
)

// Entry is one line of a word list file.
type Entry struct {
	SourceText  string
	Translation string // optional, overrides the generated translation
}

// ReadWordFile parses a word list. Supported line formats:
//   - "word"                    the word alone, translation is generated
//   - "word = translation"      translation provided, generation still
//     fills definition and story
//
// Blank lines and lines starting with '#' are skipped.
func ReadWordFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if before, after, found := strings.Cut(line, "="); found {
			word := strings.TrimSpace(before)
			translation := strings.TrimSpace(after)
			if word == "" {
				// A translation with no word is not lookupable
				continue
			}
			entries = append(entries, Entry{SourceText: word, Translation: translation})
			continue
		}

		entries = append(entries, Entry{SourceText: line})
	}

	return entries, nil
}

// Summary reports the outcome of a batch run.
type Summary struct {
	Processed int
	Saved     int
	Skipped   int // duplicates already in the store
	Failed    int
}

// Runner looks up each entry and saves the resulting flashcard.
type Runner struct {
	explorer *explore.Explorer
	store    *card.Store
}

// NewRunner creates a batch runner over an explorer and a store.
func NewRunner(explorer *explore.Explorer, store *card.Store) *Runner {
	return &Runner{explorer: explorer, store: store}
}

// Run processes the entries sequentially. Failures are logged and counted,
// never fatal, so one bad word does not abort the run.
func (r *Runner) Run(entries []Entry) Summary {
	var summary Summary

	for _, entry := range entries {
		summary.Processed++
		log.Printf("Processing %q", entry.SourceText)

		r.explorer.SearchAndWait(entry.SourceText)

		c, err := r.explorer.Commit()
		if err != nil {
			log.Printf("Warning: no result for %q: %v", entry.SourceText, err)
			summary.Failed++
			continue
		}
		if entry.Translation != "" {
			c.Translation = entry.Translation
		}
		if c.Translation == "" {
			log.Printf("Warning: lookup produced nothing for %q", entry.SourceText)
			summary.Failed++
			continue
		}

		if err := r.store.Add(c); err != nil {
			log.Printf("Skipping %q: %v", entry.SourceText, err)
			summary.Skipped++
			continue
		}
		summary.Saved++
	}

	return summary
}
