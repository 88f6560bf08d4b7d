package chip8

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestOneInstructionPerTick(t *testing.T) {
	t.Parallel()

	sys := newTestSystem(t, 0x60, 0x01, 0x60, 0x02, 0x60, 0x03)
	sys.Tick(time.Hour)
	assert.Equal(t, int64(1), sys.Cycles())
	sys.Tick(time.Hour)
	assert.Equal(t, int64(2), sys.Cycles())
}

func TestInstructionDelay(t *testing.T) {
	t.Parallel()

	sys := newTestSystem(t, 0x60, 0x01, 0x60, 0x02)
	sys.Tick(0)
	assert.Equal(t, int64(1), sys.Cycles())

	// ld vx, byte waits 27us
	sys.Tick(26 * time.Microsecond)
	assert.Equal(t, int64(1), sys.Cycles())
	sys.Tick(time.Microsecond)
	assert.Equal(t, int64(2), sys.Cycles())
}

func TestInstructionRate(t *testing.T) {
	t.Parallel()

	rom := make([]byte, 0, 100)
	for i := 0; i < 50; i++ {
		rom = append(rom, 0x60, 0x01)
	}
	sys := newTestSystem(t, rom...)

	sys.Tick(0)
	for i := 0; i < 999; i++ {
		sys.Tick(time.Microsecond)
	}
	// executed at t = 0, 27, 54, ... 999us
	assert.Equal(t, int64(38), sys.Cycles())
}

func TestDrawIsSlow(t *testing.T) {
	t.Parallel()

	sys := newTestSystem(t, 0xD0, 0x11, 0x60, 0x01)
	sys.Tick(0)
	sys.Tick(22733 * time.Microsecond)
	assert.Equal(t, int64(1), sys.Cycles())
	sys.Tick(time.Microsecond)
	assert.Equal(t, int64(2), sys.Cycles())
}

func TestNegativeDelta(t *testing.T) {
	t.Parallel()

	sys := newTestSystem(t, 0x60, 0x01, 0x60, 0x02)
	sys.Tick(0)
	sys.Tick(-time.Second)
	assert.Equal(t, int64(1), sys.Cycles())
	assert.Equal(t, 27*time.Microsecond, sys.nextInstruction)
}

func TestFramebufferChangedReportedOnce(t *testing.T) {
	t.Parallel()

	sys := newTestSystem(t, 0xA0, 0x00, 0xD0, 0x15, 0x12, 0x04)
	r := sys.Tick(0)
	assert.False(t, r.FramebufferChanged)
	r = sys.Tick(time.Millisecond)
	assert.True(t, r.FramebufferChanged)
	assert.False(t, sys.gfx.isDirty())

	for i := 0; i < 100; i++ {
		r = sys.Tick(time.Millisecond)
		assert.False(t, r.FramebufferChanged)
	}
}

func TestDelayTimerCountsDown(t *testing.T) {
	t.Parallel()

	sys := newTestSystem(t, 0x60, 0x0A, 0xF0, 0x15, 0x12, 0x04)

	// the first tick also fires the timer, before the delay timer is set
	sys.Tick(0)
	sys.Tick(time.Millisecond)
	assert.Equal(t, uint8(10), sys.delayTimer)

	for i := 0; i < 4; i++ {
		r := sys.Tick(TimerPeriod)
		assert.False(t, r.Beep)
	}
	assert.Equal(t, uint8(6), sys.delayTimer)

	for i := 0; i < 20; i++ {
		sys.Tick(TimerPeriod)
	}
	assert.Equal(t, uint8(0), sys.delayTimer)
}

func TestAtMostOneTimerEventPerTick(t *testing.T) {
	t.Parallel()

	sys := newTestSystem(t, 0x60, 0x0A, 0xF0, 0x15, 0x12, 0x04)
	sys.Tick(0)
	sys.Tick(time.Millisecond)
	sys.Tick(time.Second)
	assert.Equal(t, uint8(9), sys.delayTimer)
	assert.Equal(t, TimerPeriod, sys.nextTimerTick)
}

func TestBeep(t *testing.T) {
	t.Parallel()

	sys := newTestSystem(t, 0x60, 0x02, 0xF0, 0x18)
	r := sys.Tick(0)
	assert.False(t, r.Beep)
	r = sys.Tick(27 * time.Microsecond)
	assert.False(t, r.Beep)
	assert.Equal(t, uint8(2), sys.soundTimer)

	r = sys.Tick(16667 * time.Microsecond)
	assert.True(t, r.Beep)
	assert.Equal(t, uint8(1), sys.soundTimer)

	r = sys.Tick(16667 * time.Microsecond)
	assert.True(t, r.Beep)
	assert.Equal(t, uint8(0), sys.soundTimer)

	r = sys.Tick(16667 * time.Microsecond)
	assert.False(t, r.Beep)
}
