// Package wavwriter captures the beep as 16 bit mono PCM and saves it as a
// WAV file. Samples are held in memory until Close, which is fine for the few
// minutes a CHIP-8 session lasts.
package wavwriter

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/p47t/chip8/internal/beeper"
	"github.com/p47t/chip8/internal/logger"
)

const (
	logTag    = "wav"
	bitDepth  = 16
	formatPCM = 1
	numChans  = 1
	fullScale = 0x7FFF
)

// Recorder is a host speaker that renders the tone into a sample buffer
// instead of an audio device.
type Recorder struct {
	path string
	tone *beeper.Tone
	pcm  []int

	// elapsed time shorter than one sample, carried into the next call
	carry time.Duration
	block []float32
}

func NewRecorder(path string, sampleRate int) *Recorder {
	return &Recorder{
		path: path,
		tone: beeper.NewTone(sampleRate, beeper.DefaultFrequency),
	}
}

// Sound appends delta worth of samples, then starts the tone if beep is set,
// so a beep is heard from the following call onwards.
func (r *Recorder) Sound(delta time.Duration, beep bool) {
	perSecond := time.Duration(r.tone.SampleRate())

	elapsed := r.carry + delta
	count := int(elapsed * perSecond / time.Second)
	r.carry = elapsed - time.Duration(count)*time.Second/perSecond

	if count > 0 {
		if cap(r.block) < count {
			r.block = make([]float32, count)
		}
		block := r.block[:count]
		r.tone.Samples(block)
		for _, v := range block {
			r.pcm = append(r.pcm, int(v*fullScale))
		}
	}

	if beep {
		r.tone.Beep()
	}
}

// Samples is the length of the recording so far.
func (r *Recorder) Samples() int {
	return len(r.pcm)
}

// Close encodes the recording into the file given to NewRecorder.
func (r *Recorder) Close() (err error) {
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing wav file: %w", cerr)
		}
	}()

	rate := r.tone.SampleRate()
	enc := wav.NewEncoder(f, rate, bitDepth, numChans, formatPCM)
	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: rate},
		Data:           r.pcm,
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}

	logger.Logf(logTag, "saved %d samples to %s", len(r.pcm), r.path)
	return nil
}
