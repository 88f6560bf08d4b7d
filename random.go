package chip8

// Random is the source of the random numbers used by the RND instruction.
// Values should be uniformly distributed over 0-255.
type Random interface {
	Uint8() uint8
}
