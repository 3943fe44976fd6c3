package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordwise/internal"
	"codeberg.org/snonux/wordwise/internal/card"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordwise [word]",
		Short: "AI Language Flashcard Explorer",
		Long: `wordwise looks up a word or phrase in your target language and builds
a flashcard from it: translation, definition, an example story, an
illustration and spoken audio, all generated via the Gemini API.

Examples:
  wordwise                        # Launch interactive GUI (default)
  wordwise apple                  # Look up "apple" headless and save the card
  wordwise --batch words.txt      # Process multiple words from file
  wordwise --export-anki          # Export the saved collection as .apkg`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.wordwise.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.SourceLang, "source", "s", flags.SourceLang, "Source language code (the language you speak)")
	cmd.Flags().StringVarP(&flags.TargetLang, "target", "t", flags.TargetLang, "Target language code (the language you learn)")
	cmd.Flags().StringVar(&flags.Voice, "voice", "", "Voice name for speech synthesis (default: per-language voice)")
	cmd.Flags().StringVar(&flags.StorePath, "store", card.DefaultStorePath(), "Flashcard store file")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process words from file (one per line, or 'word = translation')")
	cmd.Flags().BoolVar(&flags.ExportAnki, "export-anki", false, "Export the saved collection as an Anki .apkg file")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive the store file and start a fresh collection")
	cmd.Flags().BoolVar(&flags.ListVoices, "list-voices", false, "List supported languages and their voices")
	cmd.Flags().BoolVar(&flags.NoAutoPlay, "no-auto-play", false, "Disable automatic audio playback in GUI mode")

	// Model overrides
	cmd.Flags().StringVar(&flags.TextModel, "text-model", flags.TextModel, "Gemini model for text generation")
	cmd.Flags().StringVar(&flags.ImageModel, "image-model", flags.ImageModel, "Gemini model for illustration generation")
	cmd.Flags().StringVar(&flags.TTSModel, "tts-model", flags.TTSModel, "Gemini model for speech synthesis")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("language.source", cmd.Flags().Lookup("source"))
	viper.BindPFlag("language.target", cmd.Flags().Lookup("target"))
	viper.BindPFlag("audio.voice", cmd.Flags().Lookup("voice"))
	viper.BindPFlag("store.path", cmd.Flags().Lookup("store"))
	viper.BindPFlag("export.deck_name", cmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("models.text", cmd.Flags().Lookup("text-model"))
	viper.BindPFlag("models.image", cmd.Flags().Lookup("image-model"))
	viper.BindPFlag("models.tts", cmd.Flags().Lookup("tts-model"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".wordwise" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wordwise")
	}

	viper.SetEnvPrefix("WORDWISE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini_api_key")
}

// GetOpenAIKey retrieves the OpenAI API key used by the fallback speech
// provider, from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("openai_api_key")
}
