package keymap

import "time"

// Latch holds keys down for a period after they were last seen. It is for
// hosts, such as terminals, that report key presses but never releases.
// Auto-repeat keeps a held key latched.
type Latch struct {
	hold    time.Duration
	pressed [16]time.Time
	down    [16]bool
}

func NewLatch(hold time.Duration) *Latch {
	return &Latch{hold: hold}
}

// Press marks key as down at time now. It returns true if the key was not
// already down.
func (l *Latch) Press(key int, now time.Time) bool {
	if key < 0 || key >= len(l.down) {
		return false
	}
	l.pressed[key] = now
	if l.down[key] {
		return false
	}
	l.down[key] = true
	return true
}

// Expire releases keys that have not been pressed for the hold period and
// returns them.
func (l *Latch) Expire(now time.Time) []int {
	var released []int
	for key := range l.down {
		if l.down[key] && now.Sub(l.pressed[key]) >= l.hold {
			l.down[key] = false
			released = append(released, key)
		}
	}
	return released
}
