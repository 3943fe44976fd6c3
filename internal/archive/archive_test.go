package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArchiveStore(t *testing.T) {
	tmpDir := t.TempDir()

	storePath := filepath.Join(tmpDir, "flashcards.json")
	if err := os.WriteFile(storePath, []byte("[]"), 0644); err != nil {
		t.Fatalf("Failed to create store file: %v", err)
	}

	archivePath, err := ArchiveStore(storePath)
	if err != nil {
		t.Fatalf("ArchiveStore failed: %v", err)
	}

	if _, err := os.Stat(storePath); !os.IsNotExist(err) {
		t.Error("Store file still exists after archiving")
	}

	if _, err := os.Stat(archivePath); err != nil {
		t.Fatalf("Archived file not found: %v", err)
	}

	name := filepath.Base(archivePath)
	if !strings.HasPrefix(name, "flashcards-") || !strings.HasSuffix(name, ".json") {
		t.Errorf("Unexpected archive name: %s", name)
	}

	data, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatalf("Failed to read archived file: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Archived content changed: %s", data)
	}
}

func TestArchiveStore_NonExistentFile(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := ArchiveStore(filepath.Join(tmpDir, "missing.json"))
	if err == nil {
		t.Error("Expected error for non-existent store file")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestArchiveStore_MultipleArchives(t *testing.T) {
	tmpDir := t.TempDir()
	storePath := filepath.Join(tmpDir, "flashcards.json")

	var archived []string
	for i := 0; i < 2; i++ {
		if err := os.WriteFile(storePath, []byte("[]"), 0644); err != nil {
			t.Fatalf("Failed to create store file: %v", err)
		}
		path, err := ArchiveStore(storePath)
		if err != nil {
			t.Fatalf("ArchiveStore failed on iteration %d: %v", i, err)
		}
		archived = append(archived, path)
	}

	if archived[0] == archived[1] {
		t.Error("Archive names are not unique")
	}
}
