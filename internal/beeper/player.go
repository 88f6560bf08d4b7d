package beeper

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/p47t/chip8/internal/logger"
)

const logTag = "beeper"

// Player plays a Tone through the system's audio device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	tone   *Tone
}

// NewPlayer opens the audio device. Only one Player can exist at a time.
func NewPlayer(tone *Tone) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   tone.SampleRate(),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	p := &Player{
		ctx:  ctx,
		tone: tone,
	}
	p.player = ctx.NewPlayer(tone)
	p.player.Play()

	logger.Logf(logTag, "playing at %dHz", tone.SampleRate())
	return p, nil
}

// Sound sustains the tone when the machine beeps.
func (p *Player) Sound(_ time.Duration, beep bool) {
	if beep {
		p.tone.Beep()
	}
}

func (p *Player) Close() error {
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}
