package chip8

const (
	GfxWidth  = 64
	GfxHeight = 32
)

// Framebuffer is the monochrome display, row-major: index = y*GfxWidth + x.
// A true pixel is drawn in the sprite colour, false in the background colour.
type Framebuffer [GfxWidth * GfxHeight]bool

// Pixel reports whether the pixel at (x, y) is lit. Out of range coordinates
// are never lit.
func (fb *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= GfxWidth || y < 0 || y >= GfxHeight {
		return false
	}
	return fb[y*GfxWidth+x]
}

// Lit returns the number of lit pixels.
func (fb *Framebuffer) Lit() int {
	n := 0
	for _, p := range fb {
		if p {
			n++
		}
	}
	return n
}

type Graphics struct {
	buffer Framebuffer
	dirty  bool
}

func (g *Graphics) isDirty() bool {
	return g.dirty
}

func (g *Graphics) setDirty(dirty bool) {
	g.dirty = dirty
}

func (g *Graphics) clear() {
	for i := 0; i < len(g.buffer); i++ {
		g.buffer[i] = false
	}
	g.dirty = true
}

func (g *Graphics) getPixel(x, y uint8) bool {
	return g.buffer.Pixel(int(x), int(y))
}

// draw XORs an 8xh sprite read from mem at I onto the buffer with its top
// left corner at (x, y). The origin wraps around the screen but the sprite
// itself is clipped at the right and bottom edges. Returns true if any lit
// pixel was turned off.
func (g *Graphics) draw(mem *Memory, I uint16, x, y, h uint8) bool {
	hit := false
	sx := int(x) % GfxWidth
	sy := int(y) % GfxHeight
	for r := 0; r < int(h); r++ {
		row := sy + r
		if row >= GfxHeight {
			break
		}
		pixels := mem.read(I + uint16(r))
		for b := 0; b < 8; b++ {
			col := sx + b
			if col >= GfxWidth {
				break
			}
			// bit 7 is the leftmost pixel
			if pixels&(0x80>>uint(b)) == 0 {
				continue
			}
			offset := row*GfxWidth + col
			if g.buffer[offset] {
				hit = true
			}
			g.buffer[offset] = !g.buffer[offset]
			g.dirty = true
		}
	}
	return hit
}
