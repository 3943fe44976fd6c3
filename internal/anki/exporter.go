package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/wordwise/internal/card"
)

// Exporter builds an .apkg file from saved flashcards.
type Exporter struct {
	deckName string
	deckID   int64
	modelID  int64
	cards    []card.Flashcard
	media    map[string]int // note filename -> media number
	counter  int
}

// NewExporter creates an exporter for the given deck name. Deck and model
// IDs derive from the current time so repeated exports do not collide.
func NewExporter(deckName string) *Exporter {
	now := time.Now().UnixMilli()
	return &Exporter{
		deckName: deckName,
		deckID:   now,
		modelID:  now + 1,
		media:    make(map[string]int),
	}
}

// AddCard queues a flashcard for export.
func (e *Exporter) AddCard(c card.Flashcard) {
	e.cards = append(e.cards, c)
}

// CardCount returns how many cards are queued.
func (e *Exporter) CardCount() int {
	return len(e.cards)
}

// Export writes the .apkg file to outputPath.
func (e *Exporter) Export(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "wordwise_export_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Media first so the filename map exists before notes reference it
	if err := e.writeMediaFiles(tempDir); err != nil {
		return fmt.Errorf("failed to write media files: %w", err)
	}
	if err := e.writeMediaMapping(tempDir); err != nil {
		return fmt.Errorf("failed to write media mapping: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := e.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := e.zipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	return nil
}

// writeMediaFiles decodes each card's visual into a numbered file in
// tempDir and records its note-facing filename.
func (e *Exporter) writeMediaFiles(tempDir string) error {
	for _, c := range e.cards {
		m, err := extractMedia(c)
		if err != nil {
			return fmt.Errorf("card %s: %w", c.ID, err)
		}
		if m == nil {
			continue
		}
		if _, exists := e.media[m.Name]; exists {
			continue
		}

		target := filepath.Join(tempDir, fmt.Sprintf("%d", e.counter))
		if err := os.WriteFile(target, m.Data, 0644); err != nil {
			return fmt.Errorf("failed to write media for card %s: %w", c.ID, err)
		}
		e.media[m.Name] = e.counter
		e.counter++
	}
	return nil
}

// writeMediaMapping writes the "media" JSON file mapping numbers to names.
func (e *Exporter) writeMediaMapping(tempDir string) error {
	mapping := make(map[string]string)
	for name, num := range e.media {
		mapping[fmt.Sprintf("%d", num)] = name
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(tempDir, "media"), data, 0644)
}

func (e *Exporter) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := e.createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if err := e.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := e.insertNotesAndCards(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return nil
}

func (e *Exporter) createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY,
			crt integer NOT NULL,
			mod integer NOT NULL,
			scm integer NOT NULL,
			ver integer NOT NULL,
			dty integer NOT NULL,
			usn integer NOT NULL,
			ls integer NOT NULL,
			conf text NOT NULL,
			models text NOT NULL,
			decks text NOT NULL,
			dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY,
			guid text NOT NULL,
			mid integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			tags text NOT NULL,
			flds text NOT NULL,
			sfld text NOT NULL,
			csum integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY,
			nid integer NOT NULL,
			did integer NOT NULL,
			ord integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			type integer NOT NULL,
			queue integer NOT NULL,
			due integer NOT NULL,
			ivl integer NOT NULL,
			factor integer NOT NULL,
			reps integer NOT NULL,
			lapses integer NOT NULL,
			left integer NOT NULL,
			odue integer NOT NULL,
			odid integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE revlog (
			id integer PRIMARY KEY,
			cid integer NOT NULL,
			usn integer NOT NULL,
			ease integer NOT NULL,
			ivl integer NOT NULL,
			lastIvl integer NOT NULL,
			factor integer NOT NULL,
			time integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE TABLE graves (
			usn integer NOT NULL,
			oid integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE INDEX ix_notes_csum ON notes (csum)`,
		`CREATE INDEX ix_notes_usn ON notes (usn)`,
		`CREATE INDEX ix_cards_usn ON cards (usn)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
		`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
		`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
		`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

func (e *Exporter) insertCollection(db *sql.DB) error {
	now := time.Now().Unix()

	decks := map[string]interface{}{
		"1": deckConfig(1, "Default", "", now),
		fmt.Sprintf("%d", e.deckID): deckConfig(
			e.deckID, e.deckName, "Vocabulary cards created by Wordwise", now),
	}
	decksJSON, _ := json.Marshal(decks)

	models := map[string]interface{}{
		fmt.Sprintf("%d", e.modelID): e.noteTypeConfig(),
	}
	modelsJSON, _ := json.Marshal(models)

	conf := map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      fmt.Sprintf("%d", e.modelID),
		"dayLearnFirst": false,
	}
	confJSON, _ := json.Marshal(conf)

	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	}
	dconfJSON, _ := json.Marshal(dconf)

	query := `INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(query,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver (schema version)
		0,        // dty
		0,        // usn
		0,        // ls
		string(confJSON),
		string(modelsJSON),
		string(decksJSON),
		string(dconfJSON),
		"{}", // tags
	)
	return err
}

func deckConfig(id int64, name, desc string, now int64) map[string]interface{} {
	return map[string]interface{}{
		"id":               id,
		"name":             name,
		"mod":              now,
		"desc":             desc,
		"collapsed":        false,
		"dyn":              0,
		"conf":             1,
		"usn":              0,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
		"browserCollapsed": false,
		"extendNew":        10,
		"extendRev":        50,
	}
}

// noteFieldNames is the field order of the Wordwise note type. It must
// match the field join order in insertNotesAndCards.
var noteFieldNames = []string{
	"Source",
	"Translation",
	"Definition",
	"Story",
	"DefinitionTranslation",
	"StoryTranslation",
	"Visual",
}

func (e *Exporter) noteTypeConfig() map[string]interface{} {
	flds := make([]map[string]interface{}, len(noteFieldNames))
	for i, name := range noteFieldNames {
		size := 20
		if name == "Story" || name == "StoryTranslation" {
			size = 16
		}
		flds[i] = map[string]interface{}{
			"name":   name,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   size,
			"media":  []string{},
		}
	}

	return map[string]interface{}{
		"id":    e.modelID,
		"name":  "Vocabulary from Wordwise (Basic + Reverse)",
		"type":  0,
		"mod":   time.Now().Unix(),
		"usn":   -1,
		"sortf": 0,
		"did":   e.deckID,
		"req":   [][]interface{}{{0, "all", []int{0}}, {1, "all", []int{1}}},
		"vers":  []int{},
		"tags":  []string{},
		"latexPre": `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`,
		"latexPost": `\end{document}`,
		"flds":      flds,
		"tmpls": []map[string]interface{}{
			{
				"name":  "Forward",
				"ord":   0,
				"qfmt":  forwardFront,
				"afmt":  forwardBack,
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
			{
				"name":  "Reverse",
				"ord":   1,
				"qfmt":  reverseFront,
				"afmt":  reverseBack,
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
		},
		"css": cardCSS,
	}
}

const forwardFront = `<div class="front">
{{#Visual}}
<div class="visual-container">
{{Visual}}
</div>
{{/Visual}}
<div class="source">{{Source}}</div>
</div>`

const forwardBack = `{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="translation">{{Translation}}</div>
{{#Definition}}
<div class="definition">{{Definition}}</div>
{{/Definition}}
{{#DefinitionTranslation}}
<div class="translation-aid">{{DefinitionTranslation}}</div>
{{/DefinitionTranslation}}
{{#Story}}
<div class="story">{{Story}}</div>
{{/Story}}
{{#StoryTranslation}}
<div class="translation-aid">{{StoryTranslation}}</div>
{{/StoryTranslation}}
</div>`

const reverseFront = `<div class="front">
<div class="translation">{{Translation}}</div>
</div>`

const reverseBack = `{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="source">{{Source}}</div>
{{#Visual}}
<div class="visual-container">
{{Visual}}
</div>
{{/Visual}}
{{#Definition}}
<div class="definition">{{Definition}}</div>
{{/Definition}}
{{#Story}}
<div class="story">{{Story}}</div>
{{/Story}}
</div>`

const cardCSS = `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #333;
  background-color: white;
}

.front, .back {
  padding: 20px;
}

.visual-container {
  margin: 20px auto;
  max-width: 400px;
}

.visual-container img {
  max-width: 100%;
  height: auto;
  border-radius: 8px;
  box-shadow: 0 2px 8px rgba(0,0,0,0.1);
}

.source {
  font-size: 28px;
  font-weight: bold;
  color: #2c3e50;
  margin: 20px 0;
}

.translation {
  font-size: 32px;
  font-weight: bold;
  color: #c0392b;
  margin: 20px 0;
}

.definition {
  font-size: 18px;
  color: #555;
  margin: 15px 0;
}

.story {
  font-size: 16px;
  color: #555;
  margin: 15px 0;
  font-style: italic;
}

.translation-aid {
  font-size: 14px;
  color: #7f8c8d;
  margin: 5px 0 15px 0;
}

hr#answer {
  margin: 30px 0;
  border: 0;
  border-top: 1px solid #ecf0f1;
}`

func (e *Exporter) insertNotesAndCards(db *sql.DB) error {
	now := time.Now()

	for i, c := range e.cards {
		// Two cards per note, so leave ID space for both
		noteID := now.UnixMilli() + int64(i*3)
		forwardID := noteID + 1
		reverseID := noteID + 2

		visualField := ""
		if m, err := extractMedia(c); err == nil && m != nil {
			if _, ok := e.media[m.Name]; ok {
				visualField = fmt.Sprintf(`<img src="%s">`, m.Name)
			}
		}

		// Field separator is ASCII 31, per the Anki schema
		fields := strings.Join([]string{
			c.SourceText,
			c.Translation,
			c.Definition,
			c.Story,
			c.DefinitionTranslation,
			c.StoryTranslation,
			visualField,
		}, "\x1f")

		guid := fmt.Sprintf("ww_%s", c.ID)

		noteQuery := `INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := db.Exec(noteQuery,
			noteID,       // id
			guid,         // guid
			e.modelID,    // mid
			now.Unix(),   // mod
			-1,           // usn
			"",           // tags
			fields,       // flds
			c.SourceText, // sfld (sort field)
			0,            // csum
			0,            // flags
			"",           // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		cardQuery := `INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		for ord, cardID := range []int64{forwardID, reverseID} {
			_, err = db.Exec(cardQuery,
				cardID,               // id
				noteID,               // nid
				e.deckID,             // did
				ord,                  // ord (template index)
				now.Unix(),           // mod
				-1,                   // usn
				0,                    // type (0=new)
				0,                    // queue (0=new)
				noteID+int64(ord),    // due (position for new cards)
				0,                    // ivl
				0,                    // factor
				0,                    // reps
				0,                    // lapses
				0,                    // left
				0,                    // odue
				0,                    // odid
				0,                    // flags
				"",                   // data
			)
			if err != nil {
				return fmt.Errorf("failed to insert card: %w", err)
			}
		}
	}

	return nil
}

func (e *Exporter) zipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)
	defer archive.Close()

	return filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(tempDir, path)
		if err != nil {
			return err
		}

		writer, err := archive.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
}
