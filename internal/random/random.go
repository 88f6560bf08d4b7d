// Package random provides the random number generators used for the RND
// instruction. Random draws from a seeded math/rand source. Sequence repeats
// a fixed list of values and is useful when results must be predictable.
package random

import (
	"math/rand"
	"time"
)

// Random draws bytes from a math/rand source. Two generators made with the
// same non-zero seed produce the same bytes.
type Random struct {
	seed int64
	rnd  *rand.Rand
}

// NewRandom seeds a generator with seed, or with the clock when seed is 0.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{
		seed: seed,
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the generator was created with.
func (r *Random) Seed() int64 {
	return r.seed
}

func (r *Random) Uint8() uint8 {
	return uint8(r.rnd.Intn(256))
}

// Sequence returns its values in order, starting again from the first once
// they are exhausted. An empty Sequence always returns zero.
type Sequence struct {
	values []uint8
	next   int
}

func NewSequence(values ...uint8) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Uint8() uint8 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}
