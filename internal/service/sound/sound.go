package sound

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// sampleRate is the WAV sample rate in Hz.
	sampleRate = 44100
	// bitDepth is the WAV sample size.
	bitDepth = 16
	// pcmFormat is the WAV audio format tag for linear PCM.
	pcmFormat = 1
)

var (
	// ErrUnsupportedOS indicates the current OS has no known player.
	ErrUnsupportedOS = errors.New("unsupported operating system")
	// ErrNoPlayer indicates none of the known players is installed.
	ErrNoPlayer = errors.New("no audio player found")
	// errEmptyTone is returned for tones that would produce no samples.
	errEmptyTone = errors.New("tone must have a positive frequency and duration")
)

// Tone is a plain sine beep.
type Tone struct {
	// Frequency is the pitch in Hz.
	Frequency float64
	// Duration is the length of the tone; playback stops by itself after it.
	Duration time.Duration
	// Volume is the gain in the range (0, 1].
	Volume float64
}

// WriteWAV encodes tone as 16-bit mono PCM.
func WriteWAV(w io.WriteSeeker, tone Tone) error {
	if tone.Frequency <= 0 || tone.Duration <= 0 {
		return errEmptyTone
	}

	count := int(int64(tone.Duration) * sampleRate / int64(time.Second))
	amplitude := tone.Volume * math.MaxInt16

	samples := make([]int, count)
	for i := range samples {
		phase := 2 * math.Pi * tone.Frequency * float64(i) / sampleRate
		samples[i] = int(amplitude * math.Sin(phase))
	}

	encoder := wav.NewEncoder(w, sampleRate, bitDepth, 1, pcmFormat)

	buffer := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}

	if err := encoder.Write(buffer); err != nil {
		return fmt.Errorf("encode tone: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finish tone: %w", err)
	}

	return nil
}

// Player plays tones with an external command.
type Player struct {
	// Command overrides the detected player; the WAV path is appended as the last argument.
	Command string
	// TempDir is where rendered tones are written; empty means os.TempDir.
	TempDir string
}

// Play renders tone to a temporary WAV file and plays it, blocking until the
// player exits or ctx is done:
// - Linux:   `aplay -q` or `paplay`
// - macOS:   `afplay`
// - Windows: PowerShell `Media.SoundPlayer`.
func (p *Player) Play(ctx context.Context, tone Tone) error {
	build, err := p.resolve()
	if err != nil {
		return err
	}

	file, err := os.CreateTemp(p.TempDir, "alarm-tone-*.wav")
	if err != nil {
		return fmt.Errorf("create tone file: %w", err)
	}

	path := file.Name()
	defer func() {
		_ = os.Remove(path)
	}()

	if err = WriteWAV(file, tone); err != nil {
		_ = file.Close()
		return err
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("close tone file: %w", err)
	}

	name, args := build(path)

	if err = exec.CommandContext(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("play tone with %s: %w", name, err)
	}

	return nil
}

// commandBuilder turns a WAV path into a player invocation.
type commandBuilder func(path string) (string, []string)

// resolve picks the player command for this host.
func (p *Player) resolve() (commandBuilder, error) {
	if fields := strings.Fields(p.Command); len(fields) > 0 {
		return func(path string) (string, []string) {
			return fields[0], append(fields[1:len(fields):len(fields)], path)
		}, nil
	}

	switch runtime.GOOS {
	case "linux":
		if _, err := exec.LookPath("aplay"); err == nil {
			return func(path string) (string, []string) {
				return "aplay", []string{"-q", path}
			}, nil
		}

		if _, err := exec.LookPath("paplay"); err == nil {
			return func(path string) (string, []string) {
				return "paplay", []string{path}
			}, nil
		}

		return nil, ErrNoPlayer
	case "darwin":
		return func(path string) (string, []string) {
			return "afplay", []string{path}
		}, nil
	case "windows":
		return func(path string) (string, []string) {
			script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", strings.ReplaceAll(path, "'", "''"))

			return "powershell.exe", []string{"-NoProfile", "-NonInteractive", "-Command", script}
		}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s: %w", runtime.GOOS, ErrUnsupportedOS)
	}
}
