// Package host drives a chip8.System from wall-clock time. It is shared by
// the windowed and terminal programs, which provide the Display and the
// Speakers.
package host

import (
	"fmt"
	"time"

	chip8 "github.com/p47t/chip8"
	"github.com/p47t/chip8/internal/logger"
)

const logTag = "host"

// Display presents the framebuffer.
type Display interface {
	Draw(fb *chip8.Framebuffer) error
}

// Speaker is told how much time has passed on every step and whether the
// machine beeped at the end of it.
type Speaker interface {
	Sound(delta time.Duration, beep bool)
}

// Runner measures the time between steps and feeds it to the system.
type Runner struct {
	sys      *chip8.System
	display  Display
	speakers []Speaker

	last    time.Time
	started bool

	// statistics for the exit summary
	Steps  int64
	Frames int64
	Beeps  int64
}

func NewRunner(sys *chip8.System, display Display, speakers ...Speaker) *Runner {
	return &Runner{
		sys:      sys,
		display:  display,
		speakers: speakers,
	}
}

// Start sets the reference time for the first step. Steps before Start
// measure from the time of the first step.
func (r *Runner) Start(now time.Time) {
	r.last = now
	r.started = true
}

// Step ticks the system with the time elapsed since the previous step. A
// fault in the running program is returned as an error wrapping the
// *chip8.Fault.
func (r *Runner) Step(now time.Time) (err error) {
	if !r.started {
		r.Start(now)
	}
	delta := now.Sub(r.last)
	r.last = now

	result, err := r.tick(delta)
	if err != nil {
		return err
	}
	r.Steps++

	if result.FramebufferChanged {
		fb := r.sys.Framebuffer()
		if err := r.display.Draw(&fb); err != nil {
			return fmt.Errorf("drawing frame: %w", err)
		}
		r.Frames++
	}

	if result.Beep {
		r.Beeps++
	}
	for _, s := range r.speakers {
		s.Sound(delta, result.Beep)
	}

	return nil
}

func (r *Runner) tick(delta time.Duration) (result chip8.TickResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			f := chip8.AsFault(rec)
			if f == nil {
				panic(rec)
			}
			logger.Log(logTag, f.Error())
			err = fmt.Errorf("emulation stopped: %w", f)
		}
	}()
	return r.sys.Tick(delta), nil
}

// Summary describes the run so far.
func (r *Runner) Summary() string {
	return fmt.Sprintf("%d steps, %d instructions, %d frames, %d beeps",
		r.Steps, r.sys.Cycles(), r.Frames, r.Beeps)
}
