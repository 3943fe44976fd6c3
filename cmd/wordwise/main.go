package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/wordwise/internal"
	"codeberg.org/snonux/wordwise/internal/anki"
	"codeberg.org/snonux/wordwise/internal/archive"
	"codeberg.org/snonux/wordwise/internal/audio"
	"codeberg.org/snonux/wordwise/internal/batch"
	"codeberg.org/snonux/wordwise/internal/card"
	"codeberg.org/snonux/wordwise/internal/cli"
	"codeberg.org/snonux/wordwise/internal/explore"
	"codeberg.org/snonux/wordwise/internal/gen"
	"codeberg.org/snonux/wordwise/internal/gui"
	"codeberg.org/snonux/wordwise/internal/lang"
)

func main() {
	// Load .env if present so API keys can live next to the binary
	godotenv.Load()

	flags := cli.NewFlags()
	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(args, flags)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(args []string, flags *cli.Flags) error {
	// Modes that need no backend come first
	if flags.ListVoices {
		listVoices()
		return nil
	}

	if flags.Archive {
		archivePath, err := archive.ArchiveStore(storePath(flags))
		if err != nil {
			return fmt.Errorf("failed to archive store: %w", err)
		}
		fmt.Printf("Flashcard store archived to: %s\n", archivePath)
		return nil
	}

	if flags.ExportAnki {
		return exportAnki(flags)
	}

	source, err := lang.ByCode(flags.SourceLang)
	if err != nil {
		return err
	}
	target, err := lang.ByCode(flags.TargetLang)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := gen.NewClient(ctx, &gen.Config{
		APIKey:     cli.GetGeminiKey(),
		TextModel:  flags.TextModel,
		ImageModel: flags.ImageModel,
		TTSModel:   flags.TTSModel,
	})
	if err != nil {
		return err
	}

	synth := audio.NewSynthesizer(speechProvider(client))
	player := audio.NewPlayer()
	store := card.NewStore(storePath(flags))
	explorer := explore.New(ctx, client, synth, player, source, target)

	if flags.BatchFile != "" {
		entries, err := batch.ReadWordFile(flags.BatchFile)
		if err != nil {
			return err
		}
		summary := batch.NewRunner(explorer, store).Run(entries)
		fmt.Printf("Processed %d words: %d saved, %d skipped, %d failed\n",
			summary.Processed, summary.Saved, summary.Skipped, summary.Failed)
		return nil
	}

	if len(args) > 0 {
		return lookupSingleWord(explorer, store, args[0])
	}

	return runGUI(explorer, store, flags)
}

// speechProvider wires the Gemini TTS as primary with OpenAI as fallback
// when a key for it is configured.
func speechProvider(client *gen.Client) audio.SpeechProvider {
	gemini := audio.NewGeminiProvider(client)
	if key := cli.GetOpenAIKey(); key != "" {
		return audio.NewProviderWithFallback(gemini, audio.NewOpenAIProvider(key))
	}
	return gemini
}

func storePath(flags *cli.Flags) string {
	if flags.StorePath != "" {
		return flags.StorePath
	}
	return card.DefaultStorePath()
}

func listVoices() {
	fmt.Println("Supported languages and voices:")
	for _, opt := range lang.Options() {
		fmt.Printf("  %-6s %-22s", opt.Code, opt.Label)
		for i, voice := range opt.Voices() {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(voice)
		}
		fmt.Println()
	}
}

func lookupSingleWord(explorer *explore.Explorer, store *card.Store, word string) error {
	explorer.SearchAndWait(word)

	c, err := explorer.Commit()
	if err != nil {
		return fmt.Errorf("lookup produced no result for %q", word)
	}
	if err := store.Add(c); err != nil {
		return err
	}

	fmt.Printf("%s = %s\n", c.SourceText, c.Translation)
	if c.Definition != "" {
		fmt.Printf("Definition: %s\n", c.Definition)
	}
	if c.Story != "" {
		fmt.Printf("Story: %s\n", c.Story)
	}
	fmt.Printf("Saved to %s\n", store.Path())
	return nil
}

func exportAnki(flags *cli.Flags) error {
	store := card.NewStore(storePath(flags))
	cards := store.Cards()
	if len(cards) == 0 {
		return fmt.Errorf("no saved cards to export")
	}

	exporter := anki.NewExporter(flags.DeckName)
	for _, c := range cards {
		exporter.AddCard(c)
	}

	outputPath := filepath.Join(filepath.Dir(store.Path()), internal.SanitizeFilename(flags.DeckName)+".apkg")
	if err := exporter.Export(outputPath); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("Exported %d cards to: %s\n", len(cards), outputPath)
	return nil
}

func runGUI(explorer *explore.Explorer, store *card.Store, flags *cli.Flags) error {
	application := gui.New(explorer, store, gui.Config{
		AutoPlay: !flags.NoAutoPlay,
		Voice:    flags.Voice,
		DeckName: flags.DeckName,
	})

	// Mirror log output into the GUI's log pane
	log.SetOutput(io.MultiWriter(os.Stderr, application.LogViewer()))
	defer log.SetOutput(os.Stderr)

	application.Run()
	return nil
}
