package chip8

import "time"

// TimerPeriod is the interval between delay and sound timer decrements,
// approximately 60Hz.
const TimerPeriod = 16666 * time.Microsecond

// TickResult reports what the host needs to act on after a Tick.
type TickResult struct {
	// the framebuffer was written to and should be presented again
	FramebufferChanged bool

	// a timer interrupt fired while the sound timer was running. the host
	// should sound the beep for one frame
	Beep bool
}

// Tick advances the machine by delta, the wall-clock time since the previous
// call. At most one instruction and at most one timer interrupt happen per
// call however large delta is, so the host should call Tick much more often
// than the instruction rate.
//
// Tick panics with a *Fault if the program does something undefined.
func (sys *System) Tick(delta time.Duration) TickResult {
	var result TickResult

	if delta < 0 {
		delta = 0
	}

	sys.nextInstruction = saturatingSub(sys.nextInstruction, delta)
	if sys.nextInstruction == 0 {
		sys.nextInstruction = sys.cpu.Cycle(&sys.mem, &sys.gfx, sys)
		if sys.gfx.isDirty() {
			result.FramebufferChanged = true
			sys.gfx.setDirty(false)
		}
	}

	sys.nextTimerTick = saturatingSub(sys.nextTimerTick, delta)
	if sys.nextTimerTick == 0 {
		sys.nextTimerTick = TimerPeriod
		result.Beep = sys.updateTimer()
	}

	return result
}

// updateTimer decrements both timers and returns true if the sound timer
// was running
func (sys *System) updateTimer() bool {
	if sys.delayTimer > 0 {
		sys.delayTimer--
	}
	if sys.soundTimer > 0 {
		sys.soundTimer--
		return true
	}
	return false
}

func saturatingSub(d, delta time.Duration) time.Duration {
	if delta >= d {
		return 0
	}
	return d - delta
}
