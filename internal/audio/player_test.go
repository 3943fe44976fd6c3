package audio

import (
	"strings"
	"testing"
)

func TestPlayRejectsInvalidPayload(t *testing.T) {
	pl := NewPlayer()
	if err := pl.Play("not-base64!!!", nil); err == nil {
		t.Error("Play() expected error for invalid payload")
	}
}

func TestPlaybackCommandDarwin(t *testing.T) {
	cmd, err := playbackCommand("darwin", "clip.wav")
	if err != nil {
		t.Fatalf("playbackCommand() unexpected error: %v", err)
	}
	if cmd.Args[0] != "afplay" {
		t.Errorf("Expected afplay, got %v", cmd.Args)
	}
}

func TestPlaybackCommandWindowsBlocksUntilDone(t *testing.T) {
	cmd, err := playbackCommand("windows", "clip.wav")
	if err != nil {
		t.Fatalf("playbackCommand() unexpected error: %v", err)
	}

	joined := strings.Join(cmd.Args, " ")
	if !strings.Contains(joined, "PlaySync") {
		t.Errorf("Windows playback must block until the clip ends, got %v", cmd.Args)
	}
	if strings.Contains(joined, "start") {
		t.Errorf("Shell start returns before playback finishes, got %v", cmd.Args)
	}
}

func TestPlaybackCommandUnsupported(t *testing.T) {
	if _, err := playbackCommand("plan9", "clip.wav"); err == nil {
		t.Error("playbackCommand() expected error for unsupported platform")
	}
}
