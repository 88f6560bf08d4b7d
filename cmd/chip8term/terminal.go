package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tm "github.com/buger/goterm"
	chip8 "github.com/p47t/chip8"
	"github.com/p47t/chip8/internal/config"
	"github.com/p47t/chip8/internal/keymap"
	"golang.org/x/term"
)

var ErrNotTerminal = errors.New("standard input is not a terminal")

const (
	screenColumns = chip8.GfxWidth
	screenRows    = chip8.GfxHeight / 2

	keyEscape = 0x1b
	keyCtrlC  = 0x03
)

// Terminal is the host.Display for a text terminal. It also owns the raw
// mode keyboard.
type Terminal struct {
	fd       int
	oldState *term.State
	input    chan []byte

	sprite     config.RGB
	background config.RGB
}

// OpenTerminal puts standard input into raw mode and clears the screen.
func OpenTerminal(cfg config.Config) (*Terminal, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	if w, h := tm.Width(), tm.Height(); w < screenColumns || h < screenRows {
		return nil, fmt.Errorf("terminal is %dx%d, need at least %dx%d", w, h, screenColumns, screenRows)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}

	t := &Terminal{
		fd:         fd,
		oldState:   oldState,
		input:      make(chan []byte, 16),
		sprite:     cfg.Sprite,
		background: cfg.Background,
	}
	go t.read()

	tm.Clear()
	tm.Output.WriteString("\x1b[?25l")
	tm.Flush()

	return t, nil
}

// read forwards chunks of standard input until it is closed. A chunk is what
// one read returns, so an escape sequence arrives in one piece.
func (t *Terminal) read() {
	defer close(t.input)
	buf := make([]byte, 32)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			t.input <- chunk
		}
		if err != nil {
			return
		}
	}
}

// Input returns the channel of raw keyboard input.
func (t *Terminal) Input() <-chan []byte {
	return t.input
}

// Draw implements the host.Display interface.
func (t *Terminal) Draw(fb *chip8.Framebuffer) error {
	tm.MoveCursor(1, 1)
	tm.Print(render(fb, t.sprite, t.background))
	tm.Flush()
	return nil
}

// Close shows the cursor again and restores the terminal mode.
func (t *Terminal) Close() {
	tm.MoveCursor(1, screenRows+1)
	tm.Print("\x1b[0m\x1b[?25h\r\n")
	tm.Flush()
	_ = term.Restore(t.fd, t.oldState)
}

// decodeInput returns the hex keys typed in one chunk of input and whether
// the user asked to quit. A lone escape quits; longer escape sequences such
// as cursor keys are ignored.
func decodeInput(chunk []byte) (keys []int, quit bool) {
	if len(chunk) > 0 && chunk[0] == keyEscape {
		return nil, len(chunk) == 1
	}
	for _, b := range chunk {
		if b == keyCtrlC {
			return keys, true
		}
		if k, ok := keymap.Rune(rune(b)); ok {
			keys = append(keys, k)
		}
	}
	return keys, false
}

// render draws the framebuffer as screenRows lines of half block characters.
// The top half of a cell is the even pixel row. Lines end with CRLF because
// the terminal is in raw mode.
func render(fb *chip8.Framebuffer, sprite, background config.RGB) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm",
		sprite.R8(), sprite.G8(), sprite.B8(),
		background.R8(), background.G8(), background.B8())

	for row := 0; row < screenRows; row++ {
		if row > 0 {
			sb.WriteString("\r\n")
		}
		for x := 0; x < screenColumns; x++ {
			top := fb.Pixel(x, row*2)
			bottom := fb.Pixel(x, row*2+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
	}

	sb.WriteString("\x1b[0m")
	return sb.String()
}
