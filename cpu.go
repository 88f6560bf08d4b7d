package chip8

import "time"

const (
	StartAddress = 0x200
	RegCarry     = 0xF
	StackDepth   = 16
)

// Time the original interpreter spent on each instruction class. The pacer
// waits this long after executing an instruction before fetching the next.
const (
	delayNone     = 0
	delayCLS      = 109 * time.Microsecond
	delayFlow     = 105 * time.Microsecond
	delaySkipByte = 55 * time.Microsecond
	delaySkipReg  = 73 * time.Microsecond
	delayLoadByte = 27 * time.Microsecond
	delayAddByte  = 45 * time.Microsecond
	delayALU      = 200 * time.Microsecond
	delayLoadI    = 55 * time.Microsecond
	delayRnd      = 164 * time.Microsecond
	delayDraw     = 22734 * time.Microsecond
	delayTimerReg = 45 * time.Microsecond
	delayAddI     = 86 * time.Microsecond
	delayFont     = 91 * time.Microsecond
	delayBCD      = 927 * time.Microsecond
	delayRegBlock = 605 * time.Microsecond
)

type CPU struct {
	V     [16]uint8 // general-purpose registers
	I     uint16    // Index register
	PC    uint16    // program counter
	SP    uint8     // stack pointer, next free slot
	Stack [StackDepth]uint16

	opcode uint16 // instruction being executed
	cycles int64
}

func (cpu *CPU) reset() {
	cpu.PC = StartAddress
	cpu.I = 0
	cpu.SP = 0
	cpu.opcode = 0
	cpu.cycles = 0

	// clear stack
	for i := 0; i < len(cpu.Stack); i++ {
		cpu.Stack[i] = 0
	}

	// clear register V0-VF
	for i := 0; i < len(cpu.V); i++ {
		cpu.V[i] = 0
	}
}

// Cycle executes one instruction and returns how long to wait before the
// next one.
func (cpu *CPU) Cycle(mem *Memory, gfx *Graphics, sys *System) time.Duration {
	defer cpu.annotateFault(cpu.PC)
	delay := cpu.step(mem, gfx, sys)
	cpu.cycles++
	return delay
}

// annotateFault fills in where a fault raised below the CPU happened
func (cpu *CPU) annotateFault(pc uint16) {
	if r := recover(); r != nil {
		if f := AsFault(r); f != nil {
			f.PC = pc
			f.Opcode = cpu.opcode
		}
		panic(r)
	}
}

// decode and execute opcode
func (cpu *CPU) step(mem *Memory, gfx *Graphics, sys *System) time.Duration {
	cpu.opcode = 0
	opc := mem.fetchOpcode(cpu.PC)
	cpu.opcode = opc
	cpu.PC += 2

	x := uint8((opc & 0x0F00) >> 8)
	y := uint8((opc & 0x00F0) >> 4)
	n := uint8(opc & 0x000F)
	nn := uint8(opc & 0x00FF)
	nnn := opc & 0x0FFF

	switch opc & 0xF000 {
	case 0x0000:
		switch opc {
		case 0x0000: // 0x0000: No operation
			return delayNone
		case 0x00E0: // 0x00E0: Clears the screen
			cpu.cls(gfx)
			return delayCLS
		case 0x00EE: // 0x00EE: Returns from subroutine
			cpu.ret()
			return delayFlow
		}

	case 0x1000: // 0x1NNN: Jumps to address NNN
		cpu.jpAddr(nnn)
		return delayFlow

	case 0x2000: // 0x2NNN: Calls subroutine at NNN
		cpu.callAddr(nnn)
		return delayFlow

	case 0x3000: // 0x3XNN: Skips the next instruction if VX equals NN
		cpu.seVxByte(x, nn)
		return delaySkipByte

	case 0x4000: // 0x4XNN: Skips the next instruction if VX doesn't equal NN
		cpu.sneVxByte(x, nn)
		return delaySkipByte

	case 0x5000: // 0x5XY0: Skips the next instruction if VX equals VY
		if n == 0 {
			cpu.seVxVy(x, y)
			return delaySkipReg
		}

	case 0x6000: // 0x6XNN: Sets VX to NN
		cpu.ldVxByte(x, nn)
		return delayLoadByte

	case 0x7000: // 0x7XNN: Adds NN to VX, carry flag unchanged
		cpu.addVxByte(x, nn)
		return delayAddByte

	case 0x8000:
		switch n {
		case 0x0: // 0x8XY0: Sets VX to the value of VY
			cpu.ldVxVy(x, y)
		case 0x1: // 0x8XY1: Sets VX to "VX OR VY", clears VF
			cpu.orVxVy(x, y)
		case 0x2: // 0x8XY2: Sets VX to "VX AND VY", clears VF
			cpu.andVxVy(x, y)
		case 0x3: // 0x8XY3: Sets VX to "VX XOR VY", clears VF
			cpu.xorVxVy(x, y)
		case 0x4: // 0x8XY4: Adds VY to VX. VF is set to 1 on carry
			cpu.addVxVy(x, y)
		case 0x5: // 0x8XY5: VY is subtracted from VX. VF is set to 0 on borrow
			cpu.subVxVy(x, y)
		case 0x6: // 0x8XY6: Sets VX to VY shifted right by one. VF is the bit shifted out
			cpu.shrVxVy(x, y)
		case 0x7: // 0x8XY7: Sets VX to VY minus VX. VF is set to 0 on borrow
			cpu.subnVxVy(x, y)
		case 0xE: // 0x8XYE: Sets VX to VY shifted left by one. VF is the bit shifted out
			cpu.shlVxVy(x, y)
		default:
			cpu.unknownOp()
		}
		return delayALU

	case 0x9000: // 0x9XY0: Skips the next instruction if VX doesn't equal VY
		if n == 0 {
			cpu.sneVxVy(x, y)
			return delaySkipReg
		}

	case 0xA000: // ANNN: Sets I to the address NNN
		cpu.ldIAddr(nnn)
		return delayLoadI

	case 0xB000: // BNNN: Jumps to the address NNN plus V0
		cpu.jpV0Addr(nnn)
		return delayFlow

	case 0xC000: // CXNN: Sets VX to a random number and NN
		cpu.rndVxByte(sys.rng, x, nn)
		return delayRnd

	case 0xD000: // DXYN: Draws an 8xN sprite from I at coordinate (VX, VY)
		cpu.drwVxVyNibble(mem, gfx, x, y, n)
		return delayDraw

	case 0xE000:
		switch nn {
		case 0x9E: // EX9E: Skips the next instruction if the key stored in VX is pressed
			cpu.skpVx(&sys.keys, x)
			return delaySkipReg
		case 0xA1: // EXA1: Skips the next instruction if the key stored in VX isn't pressed
			cpu.sknpVx(&sys.keys, x)
			return delaySkipReg
		}

	case 0xF000:
		switch nn {
		case 0x07: // FX07: Sets VX to the value of the delay timer
			cpu.ldVxDT(sys, x)
			return delayTimerReg

		case 0x0A: // FX0A: A key press is awaited, and then stored in VX
			cpu.ldVxK(&sys.keys, x)
			return delayNone

		case 0x15: // FX15: Sets the delay timer to VX
			cpu.ldDTVx(sys, x)
			return delayTimerReg

		case 0x18: // FX18: Sets the sound timer to VX
			cpu.ldSTVx(sys, x)
			return delayTimerReg

		case 0x1E: // FX1E: Adds VX to I. VF is set when I leaves the address space
			cpu.addIVx(x)
			return delayAddI

		case 0x29: // FX29: Sets I to the location of the font glyph for the digit in VX
			cpu.ldFVx(x)
			return delayFont

		case 0x33: // FX33: Stores the BCD representation of VX at I, I+1 and I+2
			cpu.ldBVx(mem, x)
			return delayBCD

		case 0x55: // FX55: Stores V0 to VX in memory starting at address I
			cpu.ldIVx(mem, x)
			return delayRegBlock

		case 0x65: // FX65: Fills V0 to VX with values from memory starting at address I
			cpu.ldVxI(mem, x)
			return delayRegBlock
		}
	}

	cpu.unknownOp()
	return delayNone
}

func (cpu *CPU) unknownOp() {
	panic(&Fault{Err: ErrUnknownOpcode})
}

func (cpu *CPU) setCarry(carry uint8) {
	cpu.V[RegCarry] = carry
}

func (cpu *CPU) skipIf(cond bool) {
	if cond {
		cpu.PC += 2
	}
}

func (cpu *CPU) jpAddr(addr uint16) {
	cpu.PC = addr
}

func (cpu *CPU) callAddr(addr uint16) {
	if cpu.SP >= StackDepth {
		panic(&Fault{Err: ErrStackOverflow})
	}
	cpu.Stack[cpu.SP] = cpu.PC
	cpu.SP++
	cpu.PC = addr
}

func (cpu *CPU) ret() {
	if cpu.SP == 0 {
		panic(&Fault{Err: ErrStackUnderflow})
	}
	cpu.SP--
	cpu.PC = cpu.Stack[cpu.SP]
}

func (cpu *CPU) cls(gfx *Graphics) {
	gfx.clear()
}

func (cpu *CPU) seVxByte(x, val uint8) {
	cpu.skipIf(cpu.V[x] == val)
}

func (cpu *CPU) sneVxByte(x, val uint8) {
	cpu.skipIf(cpu.V[x] != val)
}

func (cpu *CPU) seVxVy(x, y uint8) {
	cpu.skipIf(cpu.V[x] == cpu.V[y])
}

func (cpu *CPU) sneVxVy(x, y uint8) {
	cpu.skipIf(cpu.V[x] != cpu.V[y])
}

func (cpu *CPU) ldVxByte(x, val uint8) {
	cpu.V[x] = val
}

func (cpu *CPU) addVxByte(x, val uint8) {
	cpu.V[x] += val
}

func (cpu *CPU) ldVxVy(x, y uint8) {
	cpu.V[x] = cpu.V[y]
}

func (cpu *CPU) orVxVy(x, y uint8) {
	cpu.V[x] |= cpu.V[y]
	cpu.setCarry(0)
}

func (cpu *CPU) andVxVy(x, y uint8) {
	cpu.V[x] &= cpu.V[y]
	cpu.setCarry(0)
}

func (cpu *CPU) xorVxVy(x, y uint8) {
	cpu.V[x] ^= cpu.V[y]
	cpu.setCarry(0)
}

// flag writes below happen after the result is stored so that VF holds the
// flag even when it is also the destination register

func (cpu *CPU) addVxVy(x, y uint8) {
	sum := uint16(cpu.V[x]) + uint16(cpu.V[y])
	cpu.V[x] = uint8(sum)
	if sum > 0xFF {
		cpu.setCarry(1)
	} else {
		cpu.setCarry(0)
	}
}

func (cpu *CPU) subVxVy(x, y uint8) {
	vx, vy := cpu.V[x], cpu.V[y]
	cpu.V[x] = vx - vy
	if vx >= vy {
		cpu.setCarry(1)
	} else {
		cpu.setCarry(0)
	}
}

func (cpu *CPU) subnVxVy(x, y uint8) {
	vx, vy := cpu.V[x], cpu.V[y]
	cpu.V[x] = vy - vx
	if vy >= vx {
		cpu.setCarry(1)
	} else {
		cpu.setCarry(0)
	}
}

func (cpu *CPU) shrVxVy(x, y uint8) {
	vy := cpu.V[y]
	cpu.V[x] = vy >> 1
	cpu.setCarry(vy & 0x01)
}

func (cpu *CPU) shlVxVy(x, y uint8) {
	vy := cpu.V[y]
	cpu.V[x] = vy << 1
	cpu.setCarry(vy >> 7)
}

func (cpu *CPU) ldIAddr(index uint16) {
	cpu.I = index
}

func (cpu *CPU) jpV0Addr(addr uint16) {
	cpu.PC = addr + uint16(cpu.V[0])
}

func (cpu *CPU) rndVxByte(rng Random, x, val uint8) {
	cpu.V[x] = rng.Uint8() & val
}

func (cpu *CPU) drwVxVyNibble(mem *Memory, gfx *Graphics, x, y, h uint8) {
	// sprite rows are one byte each, read from I onwards. I is left as it
	// was. VF reports whether any lit pixel was turned off
	if hit := gfx.draw(mem, cpu.I, cpu.V[x], cpu.V[y], h); hit {
		cpu.setCarry(1)
	} else {
		cpu.setCarry(0)
	}
}

func (cpu *CPU) skpVx(keys *Keypad, x uint8) {
	cpu.skipIf(keys.isPressed(cpu.V[x]))
}

func (cpu *CPU) sknpVx(keys *Keypad, x uint8) {
	cpu.skipIf(!keys.isPressed(cpu.V[x]))
}

func (cpu *CPU) ldVxDT(sys *System, x uint8) {
	cpu.V[x] = sys.delayTimer
}

// ldVxK latches on any key already held, not on a new key press
func (cpu *CPU) ldVxK(keys *Keypad, x uint8) {
	if key, ok := keys.firstPressed(); ok {
		cpu.V[x] = key
		return
	}
	cpu.PC -= 2 // try again in next cycle
}

func (cpu *CPU) ldDTVx(sys *System, x uint8) {
	sys.delayTimer = cpu.V[x]
}

func (cpu *CPU) ldSTVx(sys *System, x uint8) {
	sys.soundTimer = cpu.V[x]
}

func (cpu *CPU) addIVx(x uint8) {
	addr := cpu.I + uint16(cpu.V[x])
	if addr > 0x0FFF {
		cpu.I = addr & 0x0FFF
		cpu.setCarry(1)
	} else {
		cpu.I = addr
		cpu.setCarry(0)
	}
}

func (cpu *CPU) ldFVx(x uint8) {
	cpu.I = FontAddress + uint16(cpu.V[x]&0x0F)*fontGlyphSize
}

func (cpu *CPU) ldBVx(mem *Memory, x uint8) {
	v := cpu.V[x]
	mem.write(cpu.I, v/100)
	mem.write(cpu.I+1, (v/10)%10)
	mem.write(cpu.I+2, v%10)
}

func (cpu *CPU) ldIVx(mem *Memory, x uint8) {
	for i := uint8(0); i <= x; i++ {
		mem.write(cpu.I, cpu.V[i])
		cpu.I++
	}
}

func (cpu *CPU) ldVxI(mem *Memory, x uint8) {
	for i := uint8(0); i <= x; i++ {
		cpu.V[i] = mem.read(cpu.I)
		cpu.I++
	}
}
