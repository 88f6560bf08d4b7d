// Package beeper produces the CHIP-8 beep: a square wave that sounds for one
// 60Hz frame each time the host is told to beep.
package beeper

import (
	"encoding/binary"
	"math"
	"sync"
)

const (
	DefaultSampleRate = 44100
	DefaultFrequency  = 440.0
	defaultVolume     = 0.25
	framesPerSecond   = 60
)

// Tone is a square wave generator. It is silent until Beep is called.
//
// Samples are requested by the audio backend on its own goroutine while
// Beep is called from the emulation loop, so access is serialised.
type Tone struct {
	crit sync.Mutex

	sampleRate int
	halfPeriod float64
	volume     float32

	// samples of tone still to be produced
	remaining int

	// position in the wave, in samples
	phase float64
}

func NewTone(sampleRate int, frequency float64) *Tone {
	return &Tone{
		sampleRate: sampleRate,
		halfPeriod: float64(sampleRate) / frequency / 2,
		volume:     defaultVolume,
	}
}

func (t *Tone) SampleRate() int {
	return t.sampleRate
}

// Beep sounds the tone for (at least) the next frame.
func (t *Tone) Beep() {
	t.crit.Lock()
	defer t.crit.Unlock()

	frame := t.sampleRate / framesPerSecond
	if t.remaining < frame {
		t.remaining = frame
	}
}

// Sounding returns true if the tone has samples left to play.
func (t *Tone) Sounding() bool {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.remaining > 0
}

// Samples fills dst with the next mono samples in the range -1.0 to 1.0.
func (t *Tone) Samples(dst []float32) {
	t.crit.Lock()
	defer t.crit.Unlock()

	for i := range dst {
		dst[i] = t.next()
	}
}

func (t *Tone) next() float32 {
	if t.remaining == 0 {
		// restart the wave from the rising edge next time
		t.phase = 0
		return 0
	}
	t.remaining--

	v := t.volume
	if math.Mod(t.phase, 2*t.halfPeriod) >= t.halfPeriod {
		v = -v
	}
	t.phase++
	return v
}

// Read implements io.Reader, producing 32 bit little-endian float samples.
func (t *Tone) Read(p []byte) (int, error) {
	samples := make([]float32, len(p)/4)
	t.Samples(samples)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	for i := len(samples) * 4; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}
