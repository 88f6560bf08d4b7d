package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDrawGlyph(t *testing.T) {
	t.Parallel()

	// ld I, 0 (glyph '0'); drw v0, v1, 5
	sys := newTestSystem(t, 0xA0, 0x00, 0xD0, 0x15)
	run(sys, 2)

	fb := sys.Framebuffer()
	assert.Equal(t, 14, fb.Lit())
	assert.Equal(t, uint8(0), sys.cpu.V[0xF])
	assert.True(t, fb.Pixel(0, 0))
	assert.True(t, fb.Pixel(3, 0))
	assert.False(t, fb.Pixel(4, 0))
	assert.True(t, fb.Pixel(0, 1))
	assert.False(t, fb.Pixel(1, 1))
	assert.True(t, fb.Pixel(3, 4))
	assert.True(t, sys.gfx.isDirty())
}

func TestDrawTwiceErases(t *testing.T) {
	t.Parallel()

	sys := newTestSystem(t, 0xA0, 0x00, 0xD0, 0x15, 0xD0, 0x15)
	run(sys, 3)

	fb := sys.Framebuffer()
	assert.Equal(t, 0, fb.Lit())
	assert.Equal(t, uint8(1), sys.cpu.V[0xF])
}

func TestDrawPartialOverlap(t *testing.T) {
	t.Parallel()

	// glyph '1' at (0,0) then glyph '0' at (0,0): both have a lit pixel in
	// column 2 of row 0
	sys := newTestSystem(t, 0x62, 0x01, 0xF2, 0x29, 0xD0, 0x15, 0xA0, 0x00, 0xD0, 0x15)
	run(sys, 3)
	assert.Equal(t, uint8(0), sys.cpu.V[0xF])
	run(sys, 2)
	assert.Equal(t, uint8(1), sys.cpu.V[0xF])
}

func TestDrawClipsAtEdges(t *testing.T) {
	t.Parallel()

	sys := newTestSystem(t, 0xA0, 0x00, 0xD0, 0x15)
	sys.cpu.V[0] = 63
	sys.cpu.V[1] = 31
	run(sys, 2)

	fb := sys.Framebuffer()
	assert.Equal(t, 1, fb.Lit())
	assert.True(t, fb.Pixel(63, 31))

	// nothing wrapped to the left edge or the top
	assert.False(t, fb.Pixel(0, 31))
	assert.False(t, fb.Pixel(63, 0))
	assert.False(t, fb.Pixel(0, 0))
}

func TestDrawOriginWraps(t *testing.T) {
	t.Parallel()

	// sprite data: a single pixel in the top left corner
	sys := newTestSystem(t, 0xA2, 0x04, 0xD0, 0x11, 0x80)
	sys.cpu.V[0] = 64
	sys.cpu.V[1] = 32
	run(sys, 2)

	fb := sys.Framebuffer()
	assert.Equal(t, 1, fb.Lit())
	assert.True(t, fb.Pixel(0, 0))
}

func TestDrawEveryPosition(t *testing.T) {
	t.Parallel()

	// full 8x15 sprite from the top of program memory at every origin
	for y := 0; y < 256; y += 7 {
		for x := 0; x < 256; x += 5 {
			var gfx Graphics
			var mem Memory
			for i := 0; i < 15; i++ {
				mem[0x300+i] = 0xFF
			}
			gfx.draw(&mem, 0x300, uint8(x), uint8(y), 15)

			sx, sy := x%GfxWidth, y%GfxHeight
			w, h := 8, 15
			if sx+w > GfxWidth {
				w = GfxWidth - sx
			}
			if sy+h > GfxHeight {
				h = GfxHeight - sy
			}
			assert.Equal(t, w*h, gfx.buffer.Lit())
		}
	}
}

func TestClearScreen(t *testing.T) {
	t.Parallel()

	sys := newTestSystem(t, 0xA0, 0x00, 0xD0, 0x15, 0x00, 0xE0)
	run(sys, 2)
	sys.gfx.setDirty(false)
	run(sys, 1)

	fb := sys.Framebuffer()
	assert.Equal(t, 0, fb.Lit())
	assert.True(t, sys.gfx.isDirty())
}

func TestPixelOutOfRange(t *testing.T) {
	t.Parallel()

	var fb Framebuffer
	for i := range fb {
		fb[i] = true
	}
	assert.False(t, fb.Pixel(-1, 0))
	assert.False(t, fb.Pixel(GfxWidth, 0))
	assert.False(t, fb.Pixel(0, GfxHeight))
	assert.True(t, fb.Pixel(GfxWidth-1, GfxHeight-1))
}
