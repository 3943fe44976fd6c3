package audio

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

// playback is one playable audio unit. Its onEnded callback fires exactly
// once, whether playback completes naturally or is superseded.
type playback struct {
	cmd     *exec.Cmd
	wavFile string
	onEnded func()
	once    sync.Once
}

func (p *playback) finish() {
	p.once.Do(func() {
		os.Remove(p.wavFile)
		if p.onEnded != nil {
			p.onEnded()
		}
	})
}

// Player owns the audio output. At most one playback is active at a time;
// starting a new one terminates whatever is currently playing.
type Player struct {
	mu      sync.Mutex
	current *playback
}

// NewPlayer creates an idle player.
func NewPlayer() *Player {
	return &Player{}
}

// Play decodes the base64 PCM payload, stops any in-flight playback and
// starts the new one. onEnded is invoked exactly once when playback
// completes or is superseded.
func (pl *Player) Play(payload string, onEnded func()) error {
	raw, err := decodePayload(payload)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "wordwise_*.wav")
	if err != nil {
		return fmt.Errorf("failed to create temp audio file: %w", err)
	}
	if _, err := f.Write(WrapWAV(raw)); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	f.Close()

	cmd, err := playbackCommand(runtime.GOOS, f.Name())
	if err != nil {
		os.Remove(f.Name())
		return err
	}

	pb := &playback{cmd: cmd, wavFile: f.Name(), onEnded: onEnded}

	pl.mu.Lock()
	prev := pl.current
	pl.current = pb
	pl.mu.Unlock()

	if prev != nil {
		stopPlayback(prev)
	}

	if err := cmd.Start(); err != nil {
		pl.mu.Lock()
		if pl.current == pb {
			pl.current = nil
		}
		pl.mu.Unlock()
		os.Remove(f.Name())
		return fmt.Errorf("failed to start playback: %w", err)
	}

	go func() {
		cmd.Wait()
		pl.mu.Lock()
		if pl.current == pb {
			pl.current = nil
		}
		pl.mu.Unlock()
		pb.finish()
	}()

	return nil
}

// Stop terminates the active playback. Stopping when nothing is playing is
// a no-op.
func (pl *Player) Stop() {
	pl.mu.Lock()
	cur := pl.current
	pl.current = nil
	pl.mu.Unlock()

	if cur != nil {
		stopPlayback(cur)
	}
}

func stopPlayback(pb *playback) {
	if pb.cmd != nil && pb.cmd.Process != nil {
		pb.cmd.Process.Kill()
	}
	pb.finish()
}

// playbackCommand builds the platform-specific player invocation. Every
// returned command blocks until the clip finishes, so waiting on it tracks
// actual playback end.
func playbackCommand(goos, wavFile string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("afplay", wavFile), nil
	case "linux":
		// Try multiple commands in order of preference
		if _, err := exec.LookPath("ffplay"); err == nil {
			return exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", wavFile), nil
		} else if _, err := exec.LookPath("play"); err == nil {
			// SoX play command
			return exec.Command("play", "-q", wavFile), nil
		} else if _, err := exec.LookPath("paplay"); err == nil {
			return exec.Command("paplay", wavFile), nil
		} else if _, err := exec.LookPath("aplay"); err == nil {
			return exec.Command("aplay", "-q", wavFile), nil
		}
		return nil, fmt.Errorf("no audio player found. Install ffplay, sox, paplay, or aplay")
	case "windows":
		// SoundPlayer.PlaySync keeps the process alive until the clip ends,
		// unlike "start" which returns as soon as the shell spawns
		script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", wavFile)
		return exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
