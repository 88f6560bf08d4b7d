package chip8

const NumKeys = 16

// Keypad is the host's view of the hex keypad, indexed by key code 0x0-0xF.
type Keypad [NumKeys]bool

func (k *Keypad) clear() {
	for i := 0; i < len(k); i++ {
		k[i] = false
	}
}

func (k *Keypad) set(key int, pressed bool) error {
	if key < 0 || key >= NumKeys {
		return ErrKeyOutOfRange
	}
	k[key] = pressed
	return nil
}

// isPressed is used by the executor, so a key code taken from a register
// that is outside the keypad faults.
func (k *Keypad) isPressed(key uint8) bool {
	if int(key) >= NumKeys {
		panic(&Fault{Err: ErrKeyOutOfRange, Addr: uint16(key)})
	}
	return k[key]
}

// firstPressed returns the lowest-numbered key currently held down.
func (k *Keypad) firstPressed() (uint8, bool) {
	for i, pressed := range k {
		if pressed {
			return uint8(i), true
		}
	}
	return 0, false
}
