// Package lang defines the fixed set of languages the application can
// translate between, together with the synthesis voices used for each.
package lang

import "fmt"

// Option describes one selectable language.
type Option struct {
	Code         string // BCP-47 style code, e.g. "en-US"
	Label        string // display name used in prompts and the UI
	DefaultVoice string // primary synthesis voice
	AltVoice     string // accent variant, empty when the language has only one
}

// Voices returns the usable voices for the language, default first.
func (o Option) Voices() []string {
	if o.AltVoice == "" {
		return []string{o.DefaultVoice}
	}
	return []string{o.DefaultVoice, o.AltVoice}
}

// options is the fixed language table. Voice names are Gemini TTS prebuilt
// voices; languages with more than one standard accent carry an alternate.
var options = []Option{
	{Code: "en-US", Label: "English", DefaultVoice: "Zephyr", AltVoice: "Puck"},
	{Code: "zh-CN", Label: "Chinese", DefaultVoice: "Kore"},
	{Code: "es-ES", Label: "Spanish", DefaultVoice: "Aoede", AltVoice: "Orus"},
	{Code: "fr-FR", Label: "French", DefaultVoice: "Leda"},
	{Code: "de-DE", Label: "German", DefaultVoice: "Charon"},
	{Code: "ja-JP", Label: "Japanese", DefaultVoice: "Fenrir"},
	{Code: "pt-BR", Label: "Portuguese", DefaultVoice: "Sulafat", AltVoice: "Enceladus"},
	{Code: "ko-KR", Label: "Korean", DefaultVoice: "Despina"},
}

// Options returns the full language table in display order.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// ByCode looks up a language by its code.
func ByCode(code string) (Option, error) {
	for _, o := range options {
		if o.Code == code {
			return o, nil
		}
	}
	return Option{}, fmt.Errorf("unknown language code: %s", code)
}

// Labels returns the display labels in table order, for select widgets.
func Labels() []string {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	return labels
}

// ByLabel looks up a language by its display label.
func ByLabel(label string) (Option, error) {
	for _, o := range options {
		if o.Label == label {
			return o, nil
		}
	}
	return Option{}, fmt.Errorf("unknown language: %s", label)
}
