package chip8

import (
	"fmt"
	"time"

	"github.com/p47t/chip8/internal/logger"
	"github.com/p47t/chip8/internal/random"
)

const logTag = "chip8"

// System is a complete CHIP-8 machine. It is not safe for concurrent use:
// the host must interleave calls to Tick, SetKey and Framebuffer.
type System struct {
	cpu  CPU
	mem  Memory
	gfx  Graphics
	keys Keypad
	rng  Random

	delayTimer uint8
	soundTimer uint8

	// time left until the next instruction and the next 60Hz timer tick
	nextInstruction time.Duration
	nextTimerTick   time.Duration

	romLoaded bool
}

// NewSystem returns an initialised machine that takes random numbers from
// rng. A nil rng uses a time seeded generator.
func NewSystem(rng Random) *System {
	if rng == nil {
		rng = random.NewRandom(0)
	}
	sys := &System{rng: rng}
	sys.Initialize()
	return sys
}

// Initialize returns the machine to its power-on state: memory cleared with
// the font installed and the program counter at StartAddress. Any loaded
// ROM is discarded.
func (sys *System) Initialize() {
	sys.cpu.reset()
	sys.mem.clear()
	sys.gfx.clear()
	sys.gfx.setDirty(false)
	sys.keys.clear()

	sys.delayTimer = 0
	sys.soundTimer = 0
	sys.nextInstruction = 0
	sys.nextTimerTick = 0
	sys.romLoaded = false
}

// LoadROM copies rom into memory at StartAddress. A ROM can only be loaded
// once per Initialize.
func (sys *System) LoadROM(rom []byte) error {
	if sys.romLoaded {
		return ErrROMAlreadyLoaded
	}
	if err := sys.mem.loadROM(rom); err != nil {
		return fmt.Errorf("loading %d byte rom: %w", len(rom), err)
	}
	sys.romLoaded = true
	logger.Logf(logTag, "loaded %d byte rom at 0x%03x", len(rom), StartAddress)
	return nil
}

// SetKey records the state of hex key index (0x0-0xF). Key changes should be
// applied before the Tick that is to observe them.
func (sys *System) SetKey(index int, pressed bool) error {
	if err := sys.keys.set(index, pressed); err != nil {
		logger.Logf(logTag, "ignoring key %d", index)
		return fmt.Errorf("key %d: %w", index, err)
	}
	return nil
}

// Framebuffer returns a copy of the display.
func (sys *System) Framebuffer() Framebuffer {
	return sys.gfx.buffer
}

func (sys *System) GetPixel(x, y uint8) bool {
	return sys.gfx.getPixel(x, y)
}

// Cycles returns the number of instructions executed since Initialize.
func (sys *System) Cycles() int64 {
	return sys.cpu.cycles
}
