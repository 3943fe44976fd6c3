package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/wordwise/internal/card"
)

func TestNewExporter(t *testing.T) {
	exp := NewExporter("Test Deck")

	if exp == nil {
		t.Fatal("NewExporter returned nil")
	}

	if exp.deckName != "Test Deck" {
		t.Errorf("Expected deck name 'Test Deck', got '%s'", exp.deckName)
	}

	if exp.CardCount() != 0 {
		t.Errorf("Expected empty card list, got %d cards", exp.CardCount())
	}

	if exp.deckID == exp.modelID {
		t.Error("Deck and model IDs must differ")
	}
}

func TestDecodeDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png bytes"))

	mime, data, err := decodeDataURI("data:image/png;base64," + payload)
	if err != nil {
		t.Fatalf("decodeDataURI() error = %v", err)
	}
	if mime != "image/png" {
		t.Errorf("Expected mime 'image/png', got '%s'", mime)
	}
	if string(data) != "png bytes" {
		t.Errorf("Expected payload 'png bytes', got '%s'", string(data))
	}

	invalid := []string{
		"image/png;base64,AAAA",        // missing scheme
		"data:image/png;base64",        // no payload
		"data:image/png,AAAA",          // not base64-encoded
		"data:image/png;base64,!!not!", // bad base64
	}
	for _, uri := range invalid {
		if _, _, err := decodeDataURI(uri); err == nil {
			t.Errorf("Expected error for URI %q", uri)
		}
	}
}

func TestExtractMedia(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("jpeg bytes"))

	c := card.Flashcard{
		ID:            "1700000000_abcd1234",
		VisualType:    card.VisualImage,
		VisualContent: "data:image/jpeg;base64," + payload,
	}

	m, err := extractMedia(c)
	if err != nil {
		t.Fatalf("extractMedia() error = %v", err)
	}
	if m == nil {
		t.Fatal("Expected media file, got nil")
	}
	if !strings.HasSuffix(m.Name, ".jpg") {
		t.Errorf("Expected .jpg filename, got '%s'", m.Name)
	}
	if string(m.Data) != "jpeg bytes" {
		t.Errorf("Unexpected media data: %q", m.Data)
	}

	svg := card.Flashcard{
		ID:            "1700000001_ef567890",
		VisualType:    card.VisualSVG,
		VisualContent: `<svg viewBox="0 0 1 1"></svg>`,
	}
	m, err = extractMedia(svg)
	if err != nil {
		t.Fatalf("extractMedia() error = %v", err)
	}
	if m == nil || !strings.HasSuffix(m.Name, ".svg") {
		t.Fatalf("Expected .svg media file, got %+v", m)
	}

	none, err := extractMedia(card.Flashcard{ID: "x"})
	if err != nil {
		t.Fatalf("extractMedia() error = %v", err)
	}
	if none != nil {
		t.Error("Expected nil media for card without visual")
	}
}

func TestExport(t *testing.T) {
	tempDir := t.TempDir()

	payload := base64.StdEncoding.EncodeToString([]byte("test image data"))

	exp := NewExporter("Test Vocabulary Deck")
	exp.AddCard(card.Flashcard{
		ID:            "1700000000_11112222",
		SourceText:    "apple",
		Translation:   "苹果",
		Definition:    "A round fruit",
		Story:         "She ate an apple.",
		VisualType:    card.VisualImage,
		VisualContent: "data:image/png;base64," + payload,
	})
	exp.AddCard(card.Flashcard{
		ID:          "1700000003_33334444",
		SourceText:  "pear",
		Translation: "梨",
	})

	outputPath := filepath.Join(tempDir, "test.apkg")
	if err := exp.Export(outputPath); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Failed to open APKG as zip: %v", err)
	}
	defer reader.Close()

	required := map[string]bool{
		"collection.anki2": false,
		"media":            false,
		"0":                false, // the one visual
	}
	for _, file := range reader.File {
		if _, ok := required[file.Name]; ok {
			required[file.Name] = true
		}
	}
	for name, found := range required {
		if !found {
			t.Errorf("Required file '%s' not found in APKG", name)
		}
	}
}

func TestCreateDatabase(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.anki2")

	exp := NewExporter("Test Deck")
	exp.AddCard(card.Flashcard{
		ID:          "1700000000_aabbccdd",
		SourceText:  "cat",
		Translation: "猫",
		Definition:  "A small domestic animal",
	})

	if err := exp.createDatabase(dbPath); err != nil {
		t.Fatalf("createDatabase() error = %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("Database file was not created")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var noteCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&noteCount); err != nil {
		t.Fatalf("Failed to count notes: %v", err)
	}
	if noteCount != 1 {
		t.Errorf("Expected 1 note, got %d", noteCount)
	}

	// Forward and reverse card per note
	var cardCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&cardCount); err != nil {
		t.Fatalf("Failed to count cards: %v", err)
	}
	if cardCount != 2 {
		t.Errorf("Expected 2 cards, got %d", cardCount)
	}

	var fields string
	if err := db.QueryRow("SELECT flds FROM notes").Scan(&fields); err != nil {
		t.Fatalf("Failed to read note fields: %v", err)
	}
	parts := strings.Split(fields, "\x1f")
	if len(parts) != len(noteFieldNames) {
		t.Fatalf("Expected %d fields, got %d", len(noteFieldNames), len(parts))
	}
	if parts[0] != "cat" || parts[1] != "猫" {
		t.Errorf("Unexpected field values: %v", parts[:2])
	}
}
