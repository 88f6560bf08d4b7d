package chip8

import (
	"errors"
	"testing"
	"time"

	"github.com/p47t/chip8/internal/random"
	"github.com/retroenv/retrogolib/assert"
)

func TestNewSystem(t *testing.T) {
	t.Parallel()

	sys := NewSystem(nil)
	assert.Equal(t, uint16(StartAddress), sys.cpu.PC)
	assert.Equal(t, uint8(0), sys.cpu.SP)
	assert.Equal(t, font[:], sys.mem[FontAddress:FontAddress+len(font)])
	assert.Equal(t, uint8(0), sys.mem[len(font)])
	fb := sys.Framebuffer()
	assert.Equal(t, 0, fb.Lit())
	assert.False(t, fb.Pixel(0, 0))
	assert.Equal(t, int64(0), sys.Cycles())
}

func TestLoadROM(t *testing.T) {
	t.Parallel()

	sys := NewSystem(nil)
	assert.NoError(t, sys.LoadROM([]byte{0x12, 0x34}))
	assert.Equal(t, []uint8{0x12, 0x34}, sys.mem[StartAddress:StartAddress+2])

	err := sys.LoadROM([]byte{0x00})
	assert.True(t, errors.Is(err, ErrROMAlreadyLoaded))

	sys.Initialize()
	assert.Equal(t, uint8(0), sys.mem[StartAddress])
	assert.NoError(t, sys.LoadROM(make([]byte, MaxROMSize)))
}

func TestLoadROMTooLarge(t *testing.T) {
	t.Parallel()

	sys := NewSystem(nil)
	err := sys.LoadROM(make([]byte, MaxROMSize+1))
	assert.True(t, errors.Is(err, ErrROMTooLarge))

	// a failed load leaves the machine free to load again
	assert.NoError(t, sys.LoadROM([]byte{0x00}))
}

func TestSetKey(t *testing.T) {
	t.Parallel()

	sys := NewSystem(nil)
	assert.NoError(t, sys.SetKey(0, true))
	assert.NoError(t, sys.SetKey(15, true))
	assert.True(t, sys.keys[0])
	assert.True(t, sys.keys[15])
	assert.NoError(t, sys.SetKey(15, false))
	assert.False(t, sys.keys[15])

	assert.True(t, errors.Is(sys.SetKey(16, true), ErrKeyOutOfRange))
	assert.True(t, errors.Is(sys.SetKey(-1, true), ErrKeyOutOfRange))
}

func TestFramebufferIsACopy(t *testing.T) {
	t.Parallel()

	sys := NewSystem(nil)
	fb := sys.Framebuffer()
	fb[0] = true
	assert.False(t, sys.GetPixel(0, 0))
}

func TestFaultPanicsFromTick(t *testing.T) {
	t.Parallel()

	sys := newTestSystem(t, 0xFF, 0xFF)
	var fault *Fault
	func() {
		defer func() {
			fault = AsFault(recover())
		}()
		sys.Tick(0)
	}()

	assert.True(t, fault != nil)
	assert.True(t, errors.Is(fault, ErrUnknownOpcode))
	assert.Equal(t, uint16(0xFFFF), fault.Opcode)
	assert.Equal(t, "fault at 0x200 (opcode ffff): unknown opcode", fault.Error())
}

// a busy loop that exercises most instruction classes, including a draw
var benchmarkROM = []byte{
	0x60, 0x00, // 200: ld v0, 0
	0x61, 0x00, // 202: ld v1, 0
	0x70, 0x01, // 204: add v0, 1
	0x81, 0x04, // 206: add v1, v0
	0x82, 0x13, // 208: xor v2, v1
	0xC3, 0xFF, // 20a: rnd v3, 0xff
	0xA3, 0x00, // 20c: ld I, 0x300
	0xF3, 0x33, // 20e: ld b, v3
	0xF2, 0x55, // 210: ld [I], v2
	0xF3, 0x29, // 212: ld f, v3
	0xD0, 0x15, // 214: drw v0, v1, 5
	0x30, 0x40, // 216: se v0, 0x40
	0x12, 0x04, // 218: jp 0x204
	0x12, 0x00, // 21a: jp 0x200
}

func BenchmarkCycle(b *testing.B) {
	benchmarkRom(b, benchmarkROM, 10000)
}

func benchmarkRom(b *testing.B, rom []byte, cycles int) {
	sys := NewSystem(random.NewRandom(1))
	if err := sys.LoadROM(rom); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for i := 0; i < cycles; i++ {
			sys.Tick(time.Second)
		}
	}
}
