// Package keymap translates host keys to CHIP-8 hex keys using the
// conventional layout, where the left hand side of a QWERTY keyboard stands
// in for the 4x4 hex keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
package keymap

import "unicode"

// Binding pairs a host key, named by its (upper case) character, with a hex
// key.
type Binding struct {
	Host rune
	Key  int
}

// Layout is the conventional mapping in keypad order.
var Layout = [16]Binding{
	{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xC},
	{'Q', 0x4}, {'W', 0x5}, {'E', 0x6}, {'R', 0xD},
	{'A', 0x7}, {'S', 0x8}, {'D', 0x9}, {'F', 0xE},
	{'Z', 0xA}, {'X', 0x0}, {'C', 0xB}, {'V', 0xF},
}

// Rune returns the hex key for a typed character. Letters are matched
// regardless of case.
func Rune(r rune) (int, bool) {
	r = unicode.ToUpper(r)
	for _, b := range Layout {
		if b.Host == r {
			return b.Key, true
		}
	}
	return 0, false
}
