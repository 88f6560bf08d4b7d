package host

import (
	"errors"

	"github.com/p47t/chip8/internal/beeper"
	"github.com/p47t/chip8/internal/config"
	"github.com/p47t/chip8/internal/logger"
	"github.com/p47t/chip8/internal/wavwriter"
)

// Audio is the set of beep outputs selected by the configuration.
type Audio struct {
	player *beeper.Player
	wav    *wavwriter.Recorder
}

// OpenAudio opens the audio device unless the configuration mutes it, and
// starts a WAV recording if one was asked for. Failing to open the audio
// device is not fatal: the program carries on silently.
func OpenAudio(cfg config.Config) *Audio {
	a := &Audio{}

	if !cfg.Mute {
		p, err := beeper.NewPlayer(beeper.NewTone(beeper.DefaultSampleRate, beeper.DefaultFrequency))
		if err != nil {
			logger.Logf(logTag, "no audio: %v", err)
		} else {
			a.player = p
		}
	}

	if cfg.WavFile != "" {
		a.wav = wavwriter.NewRecorder(cfg.WavFile, beeper.DefaultSampleRate)
		logger.Logf(logTag, "recording beeps to %s", cfg.WavFile)
	}

	return a
}

// Speakers returns the outputs to pass to NewRunner.
func (a *Audio) Speakers() []Speaker {
	var s []Speaker
	if a.player != nil {
		s = append(s, a.player)
	}
	if a.wav != nil {
		s = append(s, a.wav)
	}
	return s
}

// Close stops playback and writes any recording.
func (a *Audio) Close() error {
	var errs []error
	if a.player != nil {
		errs = append(errs, a.player.Close())
	}
	if a.wav != nil {
		errs = append(errs, a.wav.Close())
	}
	return errors.Join(errs...)
}
