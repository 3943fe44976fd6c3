// Package archive moves the flashcard store aside so a fresh collection
// can be started without losing the old one.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveStore moves the store file into an archive directory next to it,
// renamed with a timestamp. The next store load starts empty.
func ArchiveStore(storePath string) (string, error) {
	if _, err := os.Stat(storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store file does not exist: %s", storePath)
	}

	archiveDir := filepath.Join(filepath.Dir(storePath), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(storePath), filepath.Ext(storePath))
	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s.json", base, timestamp))

	// On a timestamp collision, extend with microseconds
	if _, err := os.Stat(archivePath); err == nil {
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s.json", base, timestamp))
	}

	if err := os.Rename(storePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive store file: %w", err)
	}

	return archivePath, nil
}
