package chip8

import (
	"errors"
	"fmt"
)

// Configuration errors, returned to the caller.
var (
	ErrROMTooLarge      = fmt.Errorf("rom does not fit in %d bytes of program memory", MaxROMSize)
	ErrROMAlreadyLoaded = errors.New("rom already loaded")
	ErrKeyOutOfRange    = errors.New("key index out of range")
)

// Causes of a Fault. A Fault means the running program did something the
// machine has no defined behaviour for and emulation cannot continue.
var (
	ErrUnknownOpcode     = errors.New("unknown opcode")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrAddressOutOfRange = errors.New("address out of range")
)

// Fault is the value System.Tick panics with when the program faults. Hosts
// that want to report the fault rather than crash should recover it.
type Fault struct {
	PC     uint16 // address of the faulting instruction
	Opcode uint16
	Addr   uint16 // offending address, for ErrAddressOutOfRange
	Err    error
}

func (f *Fault) Error() string {
	switch {
	case errors.Is(f.Err, ErrAddressOutOfRange):
		return fmt.Sprintf("fault at 0x%03x (opcode %04x): %v: 0x%04x", f.PC, f.Opcode, f.Err, f.Addr)
	case errors.Is(f.Err, ErrKeyOutOfRange):
		return fmt.Sprintf("fault at 0x%03x (opcode %04x): %v: 0x%x", f.PC, f.Opcode, f.Err, f.Addr)
	}
	return fmt.Sprintf("fault at 0x%03x (opcode %04x): %v", f.PC, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// AsFault turns a recovered panic value back into a Fault. It returns nil
// when the value is not a Fault.
func AsFault(r interface{}) *Fault {
	if f, ok := r.(*Fault); ok {
		return f
	}
	return nil
}
