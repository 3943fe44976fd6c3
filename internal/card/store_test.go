package card

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "flashcards.json"))
}

func TestAddDedupIsCaseInsensitive(t *testing.T) {
	s := tempStore(t)

	if err := s.Add(New("Hello")); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	if err := s.Add(New("hello")); err == nil {
		t.Error("Add() expected dedup rejection for case-variant sourceText")
	}
	if s.Len() != 1 {
		t.Errorf("Expected exactly 1 card, got %d", s.Len())
	}
}

func TestAddPrependsMostRecentFirst(t *testing.T) {
	s := tempStore(t)

	s.Add(New("first"))
	s.Add(New("second"))

	cards := s.Cards()
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].SourceText != "second" || cards[1].SourceText != "first" {
		t.Errorf("Expected most-recent-first ordering, got %s, %s",
			cards[0].SourceText, cards[1].SourceText)
	}
}

func TestRemoveNonExistentIsNoOp(t *testing.T) {
	s := tempStore(t)
	s.Add(New("hello"))

	s.Remove("no-such-id")
	if s.Len() != 1 {
		t.Errorf("Remove() of absent ID changed the collection, len=%d", s.Len())
	}
}

func TestRemove(t *testing.T) {
	s := tempStore(t)
	c := New("hello")
	s.Add(c)

	s.Remove(c.ID)
	if s.Len() != 0 {
		t.Errorf("Expected empty collection after removal, got %d", s.Len())
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashcards.json")

	s := NewStore(path)
	c := New("hello")
	c.Translation = "你好"
	c.SourceLangCode = "en-US"
	c.TargetLangCode = "zh-CN"
	s.Add(c)

	reloaded := NewStore(path)
	cards := reloaded.Cards()
	if len(cards) != 1 {
		t.Fatalf("Expected 1 card after reload, got %d", len(cards))
	}
	if cards[0].Translation != "你好" {
		t.Errorf("Translation not restored, got %q", cards[0].Translation)
	}
	if cards[0].ID != c.ID {
		t.Errorf("ID not restored, got %q want %q", cards[0].ID, c.ID)
	}
}

func TestCorruptStoreFallsBackToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashcards.json")
	if err := os.WriteFile(path, []byte(`{"not": "an array"`), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	if s.Len() != 0 {
		t.Errorf("Expected empty collection for corrupt data, got %d", s.Len())
	}

	// The store must remain usable afterwards
	if err := s.Add(New("hello")); err != nil {
		t.Errorf("Add() after corrupt load failed: %v", err)
	}
}

func TestPartialCardIsStorable(t *testing.T) {
	s := tempStore(t)

	// Committing before rich context completes: definition/story empty
	c := New("hello")
	c.Translation = "你好"
	if err := s.Add(c); err != nil {
		t.Fatalf("Add() rejected partial card: %v", err)
	}

	got := s.Cards()[0]
	if got.Definition != "" || got.Story != "" {
		t.Error("Expected empty definition/story on partial card")
	}
	if got.Translation != "你好" {
		t.Errorf("Translation lost on partial card: %q", got.Translation)
	}
}
