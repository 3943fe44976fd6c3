package batch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/wordwise/internal/card"
	"codeberg.org/snonux/wordwise/internal/explore"
	genpkg "codeberg.org/snonux/wordwise/internal/gen"
	"codeberg.org/snonux/wordwise/internal/lang"
	"codeberg.org/snonux/wordwise/internal/testutil"
)

var errGeneration = errors.New("generation failed")

func TestReadWordFile(t *testing.T) {
	tmpDir := t.TempDir()
	wordFile := filepath.Join(tmpDir, "words.txt")

	content := `apple
pear = 梨

# a comment
banana = 香蕉
  orange
= 苹果
`
	if err := os.WriteFile(wordFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write word file: %v", err)
	}

	entries, err := ReadWordFile(wordFile)
	if err != nil {
		t.Fatalf("ReadWordFile() error = %v", err)
	}

	want := []Entry{
		{SourceText: "apple"},
		{SourceText: "pear", Translation: "梨"},
		{SourceText: "banana", Translation: "香蕉"},
		{SourceText: "orange"},
	}

	if len(entries) != len(want) {
		t.Fatalf("Expected %d entries, got %d: %v", len(want), len(entries), entries)
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("Entry %d = %+v, want %+v", i, entries[i], w)
		}
	}
}

func TestReadWordFile_Missing(t *testing.T) {
	_, err := ReadWordFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func newTestRunner(t *testing.T, gen *testutil.MockGenerator) (*Runner, *card.Store) {
	t.Helper()

	storePath := filepath.Join(t.TempDir(), "flashcards.json")
	store := card.NewStore(storePath)

	source, _ := lang.ByCode("en-US")
	target, _ := lang.ByCode("zh-CN")
	explorer := explore.New(t.Context(), gen, &testutil.MockSynthesizer{}, &testutil.MockPlayer{}, source, target)

	return NewRunner(explorer, store), store
}

func TestRun(t *testing.T) {
	gen := &testutil.MockGenerator{
		TranslateFunc: func(text, targetLabel string) (string, error) {
			return "译文", nil
		},
	}
	runner, store := newTestRunner(t, gen)

	summary := runner.Run([]Entry{
		{SourceText: "apple"},
		{SourceText: "pear", Translation: "手动译文"},
	})

	if summary.Processed != 2 || summary.Saved != 2 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if store.Len() != 2 {
		t.Fatalf("Expected 2 stored cards, got %d", store.Len())
	}

	// Store prepends, so "pear" is first
	cards := store.Cards()
	if cards[0].Translation != "手动译文" {
		t.Errorf("Provided translation not preserved: %q", cards[0].Translation)
	}
	if cards[1].Translation != "译文" {
		t.Errorf("Generated translation not used: %q", cards[1].Translation)
	}
}

func TestRun_SkipsDuplicates(t *testing.T) {
	runner, store := newTestRunner(t, &testutil.MockGenerator{})

	summary := runner.Run([]Entry{
		{SourceText: "apple"},
		{SourceText: "Apple"},
	})

	if summary.Saved != 1 || summary.Skipped != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 stored card, got %d", store.Len())
	}
}

func TestRun_CountsFailures(t *testing.T) {
	gen := &testutil.MockGenerator{
		TranslateFunc: func(text, targetLabel string) (string, error) {
			return "", errGeneration
		},
		RichContextFunc: func(text, sourceLabel, targetLabel string) (*genpkg.RichContext, error) {
			return nil, errGeneration
		},
	}
	runner, store := newTestRunner(t, gen)

	summary := runner.Run([]Entry{{SourceText: "apple"}})

	if summary.Failed != 1 || summary.Saved != 0 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if store.Len() != 0 {
		t.Errorf("Expected empty store, got %d cards", store.Len())
	}
}
