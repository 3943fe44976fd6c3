package card

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store holds the flashcard collection in memory and mirrors it to a single
// JSON file. The whole collection is serialized and restored as a unit; it
// is read once at load and written on every change.
type Store struct {
	path  string
	mu    sync.Mutex
	cards []Flashcard
}

// DefaultStorePath returns the XDG-style state location for the collection.
func DefaultStorePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "wordwise", "flashcards.json")
}

// NewStore creates a store backed by the given file and loads whatever is
// there. Corrupt data falls back to an empty collection with a log entry,
// it never crashes the application.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to read flashcard store: %v", err)
		}
		return
	}

	var cards []Flashcard
	if err := json.Unmarshal(data, &cards); err != nil {
		log.Printf("Warning: corrupt flashcard store, starting empty: %v", err)
		return
	}
	s.cards = cards
}

// persist writes the collection. Write failures are logged, not propagated;
// the in-memory collection stays authoritative for the session.
func (s *Store) persist() {
	data, err := json.MarshalIndent(s.cards, "", "  ")
	if err != nil {
		log.Printf("Warning: failed to serialize flashcards: %v", err)
		return
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Warning: failed to create store directory: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		log.Printf("Warning: failed to write flashcard store: %v", err)
	}
}

// Add prepends the card (most recent first). A card whose sourceText
// matches an existing one case-insensitively is rejected as a no-op.
func (s *Store) Add(c Flashcard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.cards {
		if strings.EqualFold(existing.SourceText, c.SourceText) {
			return fmt.Errorf("card for %q already exists", c.SourceText)
		}
	}

	s.cards = append([]Flashcard{c}, s.cards...)
	s.persist()
	return nil
}

// Remove deletes the card with the given ID. Removing an absent ID is a
// no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.cards {
		if c.ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			s.persist()
			return
		}
	}
}

// Cards returns a snapshot of the collection, most recent first.
func (s *Store) Cards() []Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Flashcard, len(s.cards))
	copy(out, s.cards)
	return out
}

// Len returns the number of stored cards.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// Path returns the location of the durable slot.
func (s *Store) Path() string {
	return s.path
}
