// Package explore drives a single lookup: it sequences the generation
// calls, merges partial results into the view model, and scopes audio,
// chat and visual sub-actions to the current lookup.
package explore

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"codeberg.org/snonux/wordwise/internal/card"
	"codeberg.org/snonux/wordwise/internal/gen"
	"codeberg.org/snonux/wordwise/internal/lang"
)

// Generator is the subset of generation calls the explorer drives.
// Implemented by gen.Client; tests substitute mocks.
type Generator interface {
	Translate(ctx context.Context, text, targetLabel string) (string, error)
	RichContextFor(ctx context.Context, text, sourceLabel, targetLabel string) (*gen.RichContext, error)
	Chat(ctx context.Context, message, contextStr string, history []gen.ChatTurn) (string, error)
	Image(ctx context.Context, subject, definition, story string) (string, error)
	SVG(ctx context.Context, subject, definition, story string) (string, error)
}

// Synthesizer produces cached speech payloads; empty means unavailable.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) string
}

// Player owns exclusive audio playback.
type Player interface {
	Play(payload string, onEnded func()) error
	Stop()
}

// Explorer is the state machine behind one exploration view. All mutable
// state is guarded by mu; late-arriving completions are discarded by
// comparing the lookup sequence captured at dispatch time.
type Explorer struct {
	gen    Generator
	synth  Synthesizer
	player Player
	ctx    context.Context

	mu           sync.Mutex
	seq          int
	state        State
	subject      string
	result       Result
	visualType   card.VisualType
	visual       string
	chat         []gen.ChatTurn
	chatPending  bool
	audioActive  string
	audioLoading string
	source       lang.Option
	target       lang.Option

	onChange func()
}

// New creates an explorer bound to the given session context and language
// pair.
func New(ctx context.Context, g Generator, synth Synthesizer, player Player, source, target lang.Option) *Explorer {
	return &Explorer{
		gen:        g,
		synth:      synth,
		player:     player,
		ctx:        ctx,
		state:      Idle,
		visualType: card.VisualImage,
		source:     source,
		target:     target,
	}
}

// SetOnChange registers the UI refresh callback. It is invoked after every
// state mutation, from whatever goroutine completed the work.
func (e *Explorer) SetOnChange(fn func()) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

// SetLanguages switches the ambient language pair. Takes effect on the next
// search.
func (e *Explorer) SetLanguages(source, target lang.Option) {
	e.mu.Lock()
	e.source = source
	e.target = target
	e.mu.Unlock()
	e.notify()
}

// Languages returns the active pair.
func (e *Explorer) Languages() (source, target lang.Option) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source, e.target
}

func (e *Explorer) notify() {
	e.mu.Lock()
	fn := e.onChange
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Search starts a new lookup. Empty input is rejected before any dispatch.
// All consequences of the previous lookup (pending completions, playback,
// visual, chat) are discarded.
func (e *Explorer) Search(text string) {
	if seq, src, tgt, ok := e.beginLookup(text); ok {
		go e.runLookup(seq, strings.TrimSpace(text), src, tgt)
	}
}

// SearchAndWait runs the full lookup pipeline synchronously. Used by the
// headless modes; pre-warm calls stay fire-and-forget.
func (e *Explorer) SearchAndWait(text string) {
	if seq, src, tgt, ok := e.beginLookup(text); ok {
		e.runLookup(seq, strings.TrimSpace(text), src, tgt)
	}
}

// beginLookup resets all per-lookup state and emits the empty result that
// drives skeleton rendering.
func (e *Explorer) beginLookup(text string) (int, lang.Option, lang.Option, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, lang.Option{}, lang.Option{}, false
	}

	e.mu.Lock()
	e.seq++
	seq := e.seq
	e.subject = text
	e.state = Searching
	e.result = Result{}
	e.visualType = card.VisualImage
	e.visual = ""
	e.chat = nil
	e.chatPending = false
	e.audioActive = ""
	e.audioLoading = ""
	src, tgt := e.source, e.target
	e.mu.Unlock()

	e.player.Stop()
	e.notify()
	return seq, src, tgt, true
}

// runLookup is the staged pipeline. The fast translation is fully observed
// before rich context is dispatched; failures log and leave the last good
// partial state.
func (e *Explorer) runLookup(seq int, text string, source, target lang.Option) {
	translation, err := e.gen.Translate(e.ctx, text, target.Label)
	if err != nil {
		log.Printf("Warning: fast translation failed for %q: %v", text, err)
		translation = ""
	}
	ok := e.apply(seq, func() {
		e.result.Translation = translation
		e.state = PartiallyPopulated
	})
	if !ok {
		return
	}

	e.prewarm(text, source.DefaultVoice)
	e.prewarm(translation, target.DefaultVoice)

	rc, err := e.gen.RichContextFor(e.ctx, text, source.Label, target.Label)
	if err != nil {
		log.Printf("Warning: rich context failed for %q: %v", text, err)
		return
	}
	ok = e.apply(seq, func() {
		merged := Result{
			Translation:           rc.Translation,
			Definition:            rc.Definition,
			Story:                 rc.Story,
			DefinitionTranslation: rc.DefinitionTranslation,
			StoryTranslation:      rc.StoryTranslation,
		}
		// Keep the fast translation when it already arrived
		if e.result.Translation != "" {
			merged.Translation = e.result.Translation
		}
		e.result = merged
		e.state = FullyPopulated
	})
	if !ok {
		return
	}

	e.prewarm(rc.Definition, source.DefaultVoice)
	e.prewarm(rc.Story, source.DefaultVoice)

	e.generateVisual(seq, card.VisualImage, text, rc.Definition, rc.Story)
}

// apply runs fn under the lock if the lookup identified by seq is still
// current. Stale completions are no-ops.
func (e *Explorer) apply(seq int, fn func()) bool {
	e.mu.Lock()
	if seq != e.seq {
		e.mu.Unlock()
		return false
	}
	fn()
	e.mu.Unlock()
	e.notify()
	return true
}

// prewarm populates the speech cache ahead of demand. The result is
// discarded; the primary flow never waits on it.
func (e *Explorer) prewarm(text, voice string) {
	if text == "" {
		return
	}
	go e.synth.Synthesize(e.ctx, text, voice)
}

// RegenerateVisual switches the active visual type, discards the previous
// content, and installs the regenerated result. Only valid once a lookup
// has partial data.
func (e *Explorer) RegenerateVisual(kind card.VisualType) {
	e.mu.Lock()
	if e.state == Idle || e.state == Searching {
		e.mu.Unlock()
		return
	}
	seq := e.seq
	subject := e.subject
	def, story := e.result.Definition, e.result.Story
	e.visualType = kind
	e.visual = ""
	e.mu.Unlock()
	e.notify()

	go e.generateVisual(seq, kind, subject, def, story)
}

func (e *Explorer) generateVisual(seq int, kind card.VisualType, subject, def, story string) {
	var content string
	var err error
	switch kind {
	case card.VisualSVG:
		content, err = e.gen.SVG(e.ctx, subject, def, story)
	default:
		content, err = e.gen.Image(e.ctx, subject, def, story)
	}
	if err != nil {
		log.Printf("Warning: %s generation failed for %q: %v", kind, subject, err)
		return
	}
	if content == "" {
		return
	}

	e.mu.Lock()
	if seq != e.seq || e.visualType != kind {
		e.mu.Unlock()
		return
	}
	e.visual = content
	e.mu.Unlock()
	e.notify()
}

// ToggleAudio plays or stops the audio unit identified by id. Requesting
// the already-active id stops it; anything else supersedes the current
// playback.
func (e *Explorer) ToggleAudio(id, text, voice string) {
	e.mu.Lock()
	if e.audioActive == id || e.audioLoading == id {
		e.audioActive = ""
		e.audioLoading = ""
		e.mu.Unlock()
		e.player.Stop()
		e.notify()
		return
	}
	seq := e.seq
	e.audioLoading = id
	e.audioActive = ""
	e.mu.Unlock()
	e.player.Stop()
	e.notify()

	go func() {
		payload := e.synth.Synthesize(e.ctx, text, voice)

		e.mu.Lock()
		if seq != e.seq || e.audioLoading != id {
			e.mu.Unlock()
			return
		}
		e.audioLoading = ""
		if payload == "" {
			e.mu.Unlock()
			e.notify()
			return
		}
		e.audioActive = id
		e.mu.Unlock()
		e.notify()

		err := e.player.Play(payload, func() {
			e.mu.Lock()
			// A newer request may have superseded this playback
			if seq == e.seq && e.audioActive == id {
				e.audioActive = ""
				e.mu.Unlock()
				e.notify()
				return
			}
			e.mu.Unlock()
		})
		if err != nil {
			log.Printf("Warning: playback failed: %v", err)
			e.mu.Lock()
			if e.audioActive == id {
				e.audioActive = ""
			}
			e.mu.Unlock()
			e.notify()
		}
	}()
}

// SendChat appends the user's message optimistically and asks the backend
// for a reply grounded in the current lookup. On failure the transcript
// keeps the user turn and only the pending flag clears.
func (e *Explorer) SendChat(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}

	e.mu.Lock()
	if e.subject == "" {
		e.mu.Unlock()
		return
	}
	seq := e.seq
	history := append([]gen.ChatTurn(nil), e.chat...)
	e.chat = append(e.chat, gen.ChatTurn{Role: "user", Text: message})
	e.chatPending = true
	contextStr := fmt.Sprintf("Term: %s\nDefinition: %s\nStory: %s",
		e.subject, e.result.Definition, e.result.Story)
	e.mu.Unlock()
	e.notify()

	go func() {
		reply, err := e.gen.Chat(e.ctx, message, contextStr, history)

		e.mu.Lock()
		if seq != e.seq {
			e.mu.Unlock()
			return
		}
		e.chatPending = false
		if err != nil {
			log.Printf("Warning: chat failed: %v", err)
			e.mu.Unlock()
			e.notify()
			return
		}
		e.chat = append(e.chat, gen.ChatTurn{Role: "model", Text: reply})
		e.mu.Unlock()
		e.notify()
	}()
}

// Commit builds a flashcard from the current lookup plus the active visual.
// It never blocks on completeness: a partially populated lookup yields a
// card with empty fields.
func (e *Explorer) Commit() (card.Flashcard, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.subject == "" {
		return card.Flashcard{}, fmt.Errorf("nothing to save")
	}

	c := card.New(e.subject)
	c.Translation = e.result.Translation
	c.Definition = e.result.Definition
	c.Story = e.result.Story
	c.DefinitionTranslation = e.result.DefinitionTranslation
	c.StoryTranslation = e.result.StoryTranslation
	c.SourceLangCode = e.source.Code
	c.TargetLangCode = e.target.Code
	if e.visual != "" {
		c.VisualType = e.visualType
		c.VisualContent = e.visual
	}
	return c, nil
}

// Snapshot accessors. Each returns a copy taken under the lock.

// State returns the current lifecycle phase.
func (e *Explorer) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Subject returns the current lookup's input text.
func (e *Explorer) Subject() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.subject
}

// Result returns the current view model.
func (e *Explorer) Result() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// Visual returns the active visual type and content ("" while absent).
func (e *Explorer) Visual() (card.VisualType, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visualType, e.visual
}

// Chat returns the transcript and whether a reply is pending.
func (e *Explorer) Chat() ([]gen.ChatTurn, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]gen.ChatTurn(nil), e.chat...), e.chatPending
}

// AudioState returns the active and loading audio identifiers.
func (e *Explorer) AudioState() (active, loading string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.audioActive, e.audioLoading
}
