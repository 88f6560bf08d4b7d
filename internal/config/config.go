// Package config parses the command line shared by the interpreter's host
// programs.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrUsage    = errors.New("missing rom file")
	ErrBadColor = errors.New("invalid color")
	ErrBadScale = errors.New("invalid scale")
)

const (
	DefaultBackground RGB = 0x000000
	DefaultSprite     RGB = 0xFFFFFF
	DefaultScale          = 10
	maxScale              = 40
)

// RGB is a 24 bit colour, 0xRRGGBB.
type RGB uint32

func (c RGB) R8() uint8 { return uint8(c >> 16) }
func (c RGB) G8() uint8 { return uint8(c >> 8) }
func (c RGB) B8() uint8 { return uint8(c) }

// R, G and B return the channels in the range 0.0 to 1.0
func (c RGB) R() float32 { return float32(c.R8()) / 255 }
func (c RGB) G() float32 { return float32(c.G8()) / 255 }
func (c RGB) B() float32 { return float32(c.B8()) / 255 }

func (c RGB) String() string {
	return fmt.Sprintf("0x%06X", uint32(c))
}

// ParseRGB accepts 0xRRGGBB, #RRGGBB or RRGGBB.
func ParseRGB(s string) (RGB, error) {
	v := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(v, "0x"), strings.HasPrefix(v, "0X"):
		v = v[2:]
	case strings.HasPrefix(v, "#"):
		v = v[1:]
	}
	if len(v) == 0 || len(v) > 6 {
		return 0, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return RGB(n), nil
}

// Config holds the options for a host program.
type Config struct {
	ROMPath    string
	Background RGB
	Sprite     RGB
	Scale      int
	Seed       int64
	Mute       bool
	WavFile    string
	Quiet      bool
}

// Parse reads the program arguments (without the program name). Usage
// information goes to output when parsing fails.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	var cfg Config
	var background, sprite string

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(output)
	flags.Usage = func() {
		fmt.Fprintf(output, "usage: %s [options] <rom file>\n\n", name)
		flags.PrintDefaults()
	}

	flags.StringVar(&background, "background-color", DefaultBackground.String(), "background color as RGB hex")
	flags.StringVar(&sprite, "sprite-color", DefaultSprite.String(), "sprite color as RGB hex")
	flags.IntVar(&cfg.Scale, "scale", DefaultScale, "size of one CHIP-8 pixel on screen")
	flags.Int64Var(&cfg.Seed, "seed", 0, "seed for the random number generator, 0 seeds from the clock")
	flags.BoolVar(&cfg.Mute, "mute", false, "do not play the beep")
	flags.StringVar(&cfg.WavFile, "wav", "", "record the beep to a WAV file")
	flags.BoolVar(&cfg.Quiet, "q", false, "do not echo the log")

	if err := flags.Parse(args); err != nil {
		return cfg, err
	}

	if flags.NArg() == 0 {
		flags.Usage()
		return cfg, ErrUsage
	}
	cfg.ROMPath = flags.Arg(0)

	var err error
	if cfg.Background, err = ParseRGB(background); err != nil {
		return cfg, fmt.Errorf("background-color: %w", err)
	}
	if cfg.Sprite, err = ParseRGB(sprite); err != nil {
		return cfg, fmt.Errorf("sprite-color: %w", err)
	}

	if cfg.Scale < 1 || cfg.Scale > maxScale {
		return cfg, fmt.Errorf("%w: %d (must be 1 to %d)", ErrBadScale, cfg.Scale, maxScale)
	}

	return cfg, nil
}

func (cfg Config) String() string {
	return fmt.Sprintf("rom=%s background=%v sprite=%v scale=%d seed=%d mute=%v wav=%q",
		cfg.ROMPath, cfg.Background, cfg.Sprite, cfg.Scale, cfg.Seed, cfg.Mute, cfg.WavFile)
}
