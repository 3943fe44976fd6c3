package cli

import "codeberg.org/snonux/wordwise/internal/gen"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	SourceLang string
	TargetLang string
	Voice      string
	StorePath  string
	DeckName   string
	BatchFile  string
	ExportAnki bool
	Archive    bool
	ListVoices bool
	NoAutoPlay bool

	// Model overrides
	TextModel  string
	ImageModel string
	TTSModel   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	models := gen.DefaultConfig("")
	return &Flags{
		SourceLang: "en-US",
		TargetLang: "zh-CN",
		DeckName:   "Wordwise Vocabulary",
		TextModel:  models.TextModel,
		ImageModel: models.ImageModel,
		TTSModel:   models.TTSModel,
	}
}
