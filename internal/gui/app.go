// Package gui implements the interactive Fyne front end. It renders the
// explorer's view model and forwards every user action back to it.
package gui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/wordwise/internal"
	"codeberg.org/snonux/wordwise/internal/anki"
	"codeberg.org/snonux/wordwise/internal/card"
	"codeberg.org/snonux/wordwise/internal/explore"
	"codeberg.org/snonux/wordwise/internal/lang"
)

// Config holds GUI application configuration
type Config struct {
	AutoPlay bool   // play the subject's audio when a lookup completes
	Voice    string // overrides the per-language voice when set
	DeckName string // deck name for Anki export
}

// Application represents the main GUI application
type Application struct {
	app    fyne.App
	window fyne.Window

	explorer *explore.Explorer
	store    *card.Store
	config   Config

	// Input section
	wordInput    *widget.Entry
	sourceSelect *widget.Select
	targetSelect *widget.Select
	submitButton *ttwidget.Button

	// Result section
	subjectLabel     *widget.Label
	translationLabel *widget.Label
	definitionLabel  *widget.Label
	defTransLabel    *widget.Label
	storyLabel       *widget.Label
	storyTransLabel  *widget.Label

	playSubjectBtn     *ttwidget.Button
	playTranslationBtn *ttwidget.Button
	playDefinitionBtn  *ttwidget.Button
	playStoryBtn       *ttwidget.Button

	// Visual section
	visualDisplay  *VisualDisplay
	regenImageBtn  *ttwidget.Button
	regenVectorBtn *ttwidget.Button

	// Chat section
	chatHistory *widget.Entry
	chatInput   *widget.Entry
	chatSendBtn *ttwidget.Button

	// Toolbar
	prevCardBtn *ttwidget.Button
	nextCardBtn *ttwidget.Button
	saveButton  *ttwidget.Button
	deleteBtn   *ttwidget.Button

	// Status
	statusLabel *widget.Label
	logViewer   *LogViewer

	// Saved-card browsing. -1 means the live lookup is shown.
	browseIndex int

	// Subject whose audio auto-play already fired
	autoPlayed string
}

// New creates a new GUI application around an explorer and a store.
func New(explorer *explore.Explorer, store *card.Store, config Config) *Application {
	a := &Application{
		app:         app.NewWithID("org.codeberg.snonux.wordwise"),
		explorer:    explorer,
		store:       store,
		config:      config,
		browseIndex: -1,
	}

	a.setupUI()

	explorer.SetOnChange(func() {
		fyne.Do(a.refresh)
	})

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("Wordwise v%s - Language Flashcard Explorer", internal.Version))
	a.window.Resize(fyne.NewSize(900, 750))

	a.wordInput = widget.NewEntry()
	a.wordInput.SetPlaceHolder("Word or phrase to explore...")
	a.wordInput.OnSubmitted = func(string) {
		a.onSubmit()
		a.window.Canvas().Unfocus()
	}

	a.submitButton = ttwidget.NewButton("", a.onSubmit)
	a.submitButton.Icon = theme.SearchIcon()

	source, target := a.explorer.Languages()
	a.sourceSelect = widget.NewSelect(lang.Labels(), func(string) { a.onLanguageChange() })
	a.targetSelect = widget.NewSelect(lang.Labels(), func(string) { a.onLanguageChange() })
	a.sourceSelect.SetSelected(source.Label)
	a.targetSelect.SetSelected(target.Label)

	langRow := container.NewHBox(
		widget.NewLabel("From:"), a.sourceSelect,
		widget.NewLabel("To:"), a.targetSelect,
	)

	inputSection := container.NewVBox(
		container.NewBorder(nil, nil, nil, a.submitButton, a.wordInput),
		langRow,
	)

	// Result labels with per-field play buttons
	a.subjectLabel = newResultLabel(true)
	a.translationLabel = newResultLabel(true)
	a.definitionLabel = newResultLabel(false)
	a.defTransLabel = newResultLabel(false)
	a.storyLabel = newResultLabel(false)
	a.storyTransLabel = newResultLabel(false)

	a.playSubjectBtn = a.newPlayButton(func() { a.onToggleAudio("subject") })
	a.playTranslationBtn = a.newPlayButton(func() { a.onToggleAudio("translation") })
	a.playDefinitionBtn = a.newPlayButton(func() { a.onToggleAudio("definition") })
	a.playStoryBtn = a.newPlayButton(func() { a.onToggleAudio("story") })

	resultSection := container.NewVBox(
		container.NewBorder(nil, nil, nil, a.playSubjectBtn, a.subjectLabel),
		container.NewBorder(nil, nil, nil, a.playTranslationBtn, a.translationLabel),
		widget.NewSeparator(),
		container.NewBorder(nil, nil, nil, a.playDefinitionBtn, a.definitionLabel),
		a.defTransLabel,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, nil, a.playStoryBtn, a.storyLabel),
		a.storyTransLabel,
	)

	// Visual pane
	a.visualDisplay = NewVisualDisplay()
	a.regenImageBtn = ttwidget.NewButtonWithIcon("", theme.FileImageIcon(), func() {
		a.explorer.RegenerateVisual(card.VisualImage)
	})
	a.regenVectorBtn = ttwidget.NewButtonWithIcon("", theme.ColorPaletteIcon(), func() {
		a.explorer.RegenerateVisual(card.VisualSVG)
	})
	visualSection := container.NewStack(a.visualDisplay)

	// Chat pane
	a.chatHistory = widget.NewMultiLineEntry()
	a.chatHistory.Disable()
	a.chatHistory.Wrapping = fyne.TextWrapWord
	chatScroll := container.NewScroll(a.chatHistory)
	chatScroll.SetMinSize(fyne.NewSize(0, 120))

	a.chatInput = widget.NewEntry()
	a.chatInput.SetPlaceHolder("Ask about this word...")
	a.chatInput.OnSubmitted = func(string) { a.onSendChat() }
	a.chatSendBtn = ttwidget.NewButtonWithIcon("", theme.MailSendIcon(), a.onSendChat)

	chatSection := container.NewBorder(
		widget.NewLabel("Tutor chat:"),
		container.NewBorder(nil, nil, nil, a.chatSendBtn, a.chatInput),
		nil, nil,
		chatScroll,
	)

	displaySection := container.NewHSplit(
		container.NewVScroll(resultSection),
		container.NewVSplit(visualSection, chatSection),
	)
	displaySection.SetOffset(0.55)

	// Toolbar
	a.prevCardBtn = ttwidget.NewButtonWithIcon("", theme.NavigateBackIcon(), a.onPrevCard)
	a.nextCardBtn = ttwidget.NewButtonWithIcon("", theme.NavigateNextIcon(), a.onNextCard)
	a.saveButton = ttwidget.NewButtonWithIcon("", theme.DocumentCreateIcon(), a.onSave)
	a.deleteBtn = ttwidget.NewButtonWithIcon("", theme.DeleteIcon(), a.onDelete)
	a.deleteBtn.Importance = widget.DangerImportance
	exportButton := ttwidget.NewButtonWithIcon("", theme.UploadIcon(), a.onExportToAnki)
	helpButton := ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHelp)

	toolbar := container.NewHBox(
		a.prevCardBtn,
		a.nextCardBtn,
		widget.NewSeparator(),
		a.saveButton,
		a.deleteBtn,
		widget.NewSeparator(),
		a.regenImageBtn,
		a.regenVectorBtn,
		widget.NewSeparator(),
		exportButton,
		helpButton,
	)

	a.statusLabel = widget.NewLabel("Ready")
	a.logViewer = NewLogViewer()

	statusSection := container.NewVBox(
		a.statusLabel,
		widget.NewSeparator(),
		a.logViewer,
	)

	content := container.NewBorder(
		container.NewVBox(
			toolbar,
			widget.NewSeparator(),
			inputSection,
		),
		statusSection,
		nil, nil,
		displaySection,
	)

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips(exportButton, helpButton)

	a.refresh()
}

func (a *Application) setupTooltips(exportButton, helpButton *ttwidget.Button) {
	a.submitButton.SetToolTip("Look up the word")
	a.playSubjectBtn.SetToolTip("Play the word")
	a.playTranslationBtn.SetToolTip("Play the translation")
	a.playDefinitionBtn.SetToolTip("Play the definition")
	a.playStoryBtn.SetToolTip("Play the story")
	a.regenImageBtn.SetToolTip("Regenerate as raster illustration")
	a.regenVectorBtn.SetToolTip("Regenerate as vector illustration")
	a.prevCardBtn.SetToolTip("Previous saved card")
	a.nextCardBtn.SetToolTip("Next saved card")
	a.saveButton.SetToolTip("Save this card")
	a.deleteBtn.SetToolTip("Delete the shown saved card")
	a.chatSendBtn.SetToolTip("Send to tutor")
	exportButton.SetToolTip("Export collection to Anki")
	helpButton.SetToolTip("Show help")
}

// onShowHelp displays a short usage summary.
func (a *Application) onShowHelp() {
	dialog.ShowInformation("Wordwise",
		`Type a word or phrase and press Enter to explore it.

Play buttons speak each field; pressing again stops playback.
The illustration can be regenerated as a raster image or vector art.
Save adds the current card to your collection; the arrow buttons
browse saved cards, newest first. Export writes an Anki deck.`,
		a.window)
}

// LogViewer exposes the log pane so main can hook it into log output.
func (a *Application) LogViewer() *LogViewer {
	return a.logViewer
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

func newResultLabel(bold bool) *widget.Label {
	l := widget.NewLabel("")
	l.Wrapping = fyne.TextWrapWord
	if bold {
		l.TextStyle = fyne.TextStyle{Bold: true}
	}
	return l
}

func (a *Application) newPlayButton(onTapped func()) *ttwidget.Button {
	b := ttwidget.NewButtonWithIcon("", theme.MediaPlayIcon(), onTapped)
	return b
}

// onSubmit starts a lookup for the entered word.
func (a *Application) onSubmit() {
	text := strings.TrimSpace(a.wordInput.Text)
	if text == "" {
		a.statusLabel.SetText("Enter a word first")
		return
	}
	a.browseIndex = -1
	a.autoPlayed = ""
	a.explorer.Search(text)
}

func (a *Application) onLanguageChange() {
	source, err := lang.ByLabel(a.sourceSelect.Selected)
	if err != nil {
		return
	}
	target, err := lang.ByLabel(a.targetSelect.Selected)
	if err != nil {
		return
	}
	a.explorer.SetLanguages(source, target)
}

// audioUnit resolves the text and voice behind a play button id.
func (a *Application) audioUnit(id string) (text, voice string) {
	source, target := a.explorer.Languages()
	result := a.explorer.Result()

	sourceVoice := source.DefaultVoice
	targetVoice := target.DefaultVoice
	if a.config.Voice != "" {
		sourceVoice = a.config.Voice
		targetVoice = a.config.Voice
	}

	switch id {
	case "subject":
		return a.explorer.Subject(), sourceVoice
	case "translation":
		return result.Translation, targetVoice
	case "definition":
		return result.Definition, sourceVoice
	case "story":
		return result.Story, sourceVoice
	}
	return "", ""
}

func (a *Application) onToggleAudio(id string) {
	text, voice := a.audioUnit(id)
	if text == "" {
		return
	}
	a.explorer.ToggleAudio(id, text, voice)
}

func (a *Application) onSendChat() {
	message := strings.TrimSpace(a.chatInput.Text)
	if message == "" {
		return
	}
	a.chatInput.SetText("")
	a.explorer.SendChat(message)
}

// onSave commits the current lookup to the store.
func (a *Application) onSave() {
	c, err := a.explorer.Commit()
	if err != nil {
		a.statusLabel.SetText("Nothing to save yet")
		return
	}
	if err := a.store.Add(c); err != nil {
		a.statusLabel.SetText(fmt.Sprintf("Not saved: %v", err))
		return
	}
	a.statusLabel.SetText(fmt.Sprintf("Saved %q (%d cards total)", c.SourceText, a.store.Len()))
}

// onDelete removes the saved card currently being browsed.
func (a *Application) onDelete() {
	cards := a.store.Cards()
	if a.browseIndex < 0 || a.browseIndex >= len(cards) {
		a.statusLabel.SetText("Navigate to a saved card to delete it")
		return
	}
	victim := cards[a.browseIndex]
	dialog.ShowConfirm("Delete card",
		fmt.Sprintf("Delete the saved card for %q?", victim.SourceText),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			a.store.Remove(victim.ID)
			if a.browseIndex >= a.store.Len() {
				a.browseIndex = a.store.Len() - 1
			}
			a.showBrowsedCard()
		}, a.window)
}

// onPrevCard and onNextCard step through the saved collection, newest
// first. Stepping past the newest card returns to the live lookup.
func (a *Application) onPrevCard() {
	if a.browseIndex+1 < a.store.Len() {
		a.browseIndex++
		a.showBrowsedCard()
	}
}

func (a *Application) onNextCard() {
	if a.browseIndex < 0 {
		return
	}
	a.browseIndex--
	if a.browseIndex < 0 {
		a.refresh()
		return
	}
	a.showBrowsedCard()
}

// showBrowsedCard renders a saved card instead of the live lookup.
func (a *Application) showBrowsedCard() {
	cards := a.store.Cards()
	if a.browseIndex < 0 || a.browseIndex >= len(cards) {
		a.browseIndex = -1
		a.refresh()
		return
	}
	c := cards[a.browseIndex]

	a.subjectLabel.SetText(c.SourceText)
	a.translationLabel.SetText(c.Translation)
	a.definitionLabel.SetText(c.Definition)
	a.defTransLabel.SetText(c.DefinitionTranslation)
	a.storyLabel.SetText(c.Story)
	a.storyTransLabel.SetText(c.StoryTranslation)
	a.chatHistory.SetText("")

	if c.VisualContent != "" {
		a.visualDisplay.SetVisual(c.VisualType, c.VisualContent)
	} else {
		a.visualDisplay.Clear()
	}

	a.statusLabel.SetText(fmt.Sprintf("Saved card %d of %d", a.browseIndex+1, len(cards)))
}

// onExportToAnki writes the saved collection as an .apkg next to the store.
func (a *Application) onExportToAnki() {
	cards := a.store.Cards()
	if len(cards) == 0 {
		a.statusLabel.SetText("No saved cards to export")
		return
	}

	exporter := anki.NewExporter(a.config.DeckName)
	for _, c := range cards {
		exporter.AddCard(c)
	}

	outputPath := filepath.Join(filepath.Dir(a.store.Path()), internal.SanitizeFilename(a.config.DeckName)+".apkg")
	if err := exporter.Export(outputPath); err != nil {
		dialog.ShowError(fmt.Errorf("export failed: %w", err), a.window)
		return
	}

	log.Printf("Exported %d cards to %s", len(cards), outputPath)
	dialog.ShowInformation("Export complete",
		fmt.Sprintf("Exported %d cards to:\n%s", len(cards), outputPath), a.window)
}

// refresh renders the explorer snapshot. Runs on the Fyne thread.
func (a *Application) refresh() {
	if a.browseIndex >= 0 {
		// Browsing a saved card, leave the pane alone
		return
	}

	state := a.explorer.State()
	subject := a.explorer.Subject()
	result := a.explorer.Result()

	switch state {
	case explore.Idle:
		a.subjectLabel.SetText("")
		a.statusLabel.SetText("Ready")
	case explore.Searching:
		a.subjectLabel.SetText(subject)
		a.statusLabel.SetText(fmt.Sprintf("Looking up %q...", subject))
	case explore.PartiallyPopulated:
		a.subjectLabel.SetText(subject)
		a.statusLabel.SetText("Generating definition and story...")
	case explore.FullyPopulated:
		a.subjectLabel.SetText(subject)
		a.statusLabel.SetText("Lookup complete")
	}

	a.translationLabel.SetText(orSkeleton(result.Translation, state))
	a.definitionLabel.SetText(orSkeleton(result.Definition, state))
	a.defTransLabel.SetText(result.DefinitionTranslation)
	a.storyLabel.SetText(orSkeleton(result.Story, state))
	a.storyTransLabel.SetText(result.StoryTranslation)

	visualType, visual := a.explorer.Visual()
	switch {
	case visual != "":
		a.visualDisplay.SetVisual(visualType, visual)
	case state == explore.Searching || state == explore.PartiallyPopulated || state == explore.FullyPopulated:
		a.visualDisplay.SetGenerating()
	default:
		a.visualDisplay.Clear()
	}

	a.refreshChat()
	a.refreshAudioButtons()

	if a.config.AutoPlay && state == explore.FullyPopulated && subject != "" && a.autoPlayed != subject {
		a.autoPlayed = subject
		a.onToggleAudio("subject")
	}
}

func (a *Application) refreshChat() {
	turns, pending := a.explorer.Chat()
	var b strings.Builder
	for _, turn := range turns {
		speaker := "Tutor"
		if turn.Role == "user" {
			speaker = "You"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, turn.Text)
	}
	if pending {
		b.WriteString("Tutor: ...\n")
	}
	a.chatHistory.SetText(b.String())
}

func (a *Application) refreshAudioButtons() {
	active, loading := a.explorer.AudioState()
	buttons := map[string]*ttwidget.Button{
		"subject":     a.playSubjectBtn,
		"translation": a.playTranslationBtn,
		"definition":  a.playDefinitionBtn,
		"story":       a.playStoryBtn,
	}
	for id, btn := range buttons {
		switch {
		case active == id:
			btn.SetIcon(theme.MediaStopIcon())
		case loading == id:
			btn.SetIcon(theme.MediaPauseIcon())
		default:
			btn.SetIcon(theme.MediaPlayIcon())
		}
	}
}

// orSkeleton substitutes a placeholder while a lookup is in flight.
func orSkeleton(text string, state explore.State) string {
	if text != "" {
		return text
	}
	if state == explore.Searching || state == explore.PartiallyPopulated {
		return "..."
	}
	return ""
}
