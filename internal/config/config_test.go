package config

import (
	"errors"
	"io"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseRGB(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in  string
		out RGB
		ok  bool
	}{
		{"0xFF8000", 0xFF8000, true},
		{"#00ff00", 0x00FF00, true},
		{"123456", 0x123456, true},
		{"0", 0, true},
		{"", 0, false},
		{"#", 0, false},
		{"1234567", 0, false},
		{"red", 0, false},
	}

	for _, test := range tests {
		c, err := ParseRGB(test.in)
		if test.ok {
			assert.NoError(t, err)
			assert.Equal(t, test.out, c)
		} else {
			assert.True(t, errors.Is(err, ErrBadColor))
		}
	}
}

func TestRGBChannels(t *testing.T) {
	t.Parallel()

	c := RGB(0xFF8000)
	assert.Equal(t, uint8(0xFF), c.R8())
	assert.Equal(t, uint8(0x80), c.G8())
	assert.Equal(t, uint8(0x00), c.B8())
	assert.Equal(t, float32(1), c.R())
	assert.Equal(t, float32(0), c.B())
	assert.Equal(t, "0xFF8000", c.String())
}

func TestParseDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse("chip8", []string{"game.ch8"}, io.Discard)
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", cfg.ROMPath)
	assert.Equal(t, DefaultBackground, cfg.Background)
	assert.Equal(t, DefaultSprite, cfg.Sprite)
	assert.Equal(t, DefaultScale, cfg.Scale)
	assert.False(t, cfg.Mute)
}

func TestParseOptions(t *testing.T) {
	t.Parallel()

	args := []string{
		"--background-color", "#102030",
		"--sprite-color", "0x00FF00",
		"--scale", "4",
		"--seed", "99",
		"--mute",
		"--wav", "out.wav",
		"-q",
		"game.ch8",
	}
	cfg, err := Parse("chip8", args, io.Discard)
	assert.NoError(t, err)
	assert.Equal(t, RGB(0x102030), cfg.Background)
	assert.Equal(t, RGB(0x00FF00), cfg.Sprite)
	assert.Equal(t, 4, cfg.Scale)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.True(t, cfg.Mute)
	assert.Equal(t, "out.wav", cfg.WavFile)
	assert.True(t, cfg.Quiet)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse("chip8", nil, io.Discard)
	assert.True(t, errors.Is(err, ErrUsage))

	_, err = Parse("chip8", []string{"--scale", "0", "game.ch8"}, io.Discard)
	assert.True(t, errors.Is(err, ErrBadScale))

	_, err = Parse("chip8", []string{"--sprite-color", "nope", "game.ch8"}, io.Discard)
	assert.True(t, errors.Is(err, ErrBadColor))
}
