// Package anki exports the saved flashcard collection as an Anki package
// (.apkg): a zip holding a sqlite collection plus numbered media files.
package anki
