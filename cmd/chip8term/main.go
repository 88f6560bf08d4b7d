// Command chip8term runs a CHIP-8 program in a text terminal. Each character
// cell shows two pixels using half block characters, so the screen needs at
// least 64 columns and 16 rows.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	chip8 "github.com/p47t/chip8"
	"github.com/p47t/chip8/internal/config"
	"github.com/p47t/chip8/internal/host"
	"github.com/p47t/chip8/internal/keymap"
	"github.com/p47t/chip8/internal/logger"
	"github.com/p47t/chip8/internal/random"
	"github.com/p47t/chip8/internal/rom"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const (
	logTag = "chip8term"

	// terminals report key presses but not releases. a key stays down for
	// this long after its last press; auto-repeat keeps it down
	keyHold = 100 * time.Millisecond

	stepInterval = 100 * time.Microsecond
)

func main() {
	cfg, err := config.Parse("chip8term", os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) && !errors.Is(err, config.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	logger.Logf(logTag, "version %s", buildinfo.Version(version, commit, date))
	logger.Log(logTag, cfg.String())

	err = run(cfg)

	// the log is not echoed while the screen is in use
	if !cfg.Quiet {
		logger.Tail(os.Stderr, 10)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	data, err := rom.Load(cfg.ROMPath)
	if err != nil {
		return err
	}

	sys := chip8.NewSystem(random.NewRandom(cfg.Seed))
	if err := sys.LoadROM(data); err != nil {
		return err
	}

	term, err := OpenTerminal(cfg)
	if err != nil {
		return err
	}
	defer term.Close()

	audio := host.OpenAudio(cfg)
	defer func() {
		if err := audio.Close(); err != nil {
			logger.Logf(logTag, "closing audio: %v", err)
		}
	}()

	runner := host.NewRunner(sys, term, audio.Speakers()...)
	latch := keymap.NewLatch(keyHold)
	input := term.Input()

	runner.Start(time.Now())
	for {
		now := time.Now()

	drain:
		for {
			select {
			case chunk, ok := <-input:
				if !ok {
					return nil
				}
				keys, quit := decodeInput(chunk)
				if quit {
					logger.Log(logTag, runner.Summary())
					return nil
				}
				for _, k := range keys {
					if latch.Press(k, now) {
						_ = sys.SetKey(k, true)
					}
				}
			default:
				break drain
			}
		}

		for _, k := range latch.Expire(now) {
			_ = sys.SetKey(k, false)
		}

		if err := runner.Step(now); err != nil {
			return err
		}

		time.Sleep(stepInterval)
	}
}
