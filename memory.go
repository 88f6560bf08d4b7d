package chip8

const (
	MemorySize  = 4096
	FontAddress = 0x000
	MaxROMSize  = MemorySize - StartAddress
)

// each glyph is 4 pixels wide, stored in the high nibble of 5 consecutive bytes
var font = [80]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

const fontGlyphSize = 5

type Memory [MemorySize]uint8

func (mem *Memory) clear() {
	for i := 0; i < len(mem); i++ {
		mem[i] = 0
	}
	copy(mem[FontAddress:], font[:])
}

func (mem *Memory) loadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return ErrROMTooLarge
	}
	copy(mem[StartAddress:], rom)
	return nil
}

// fetchOpcode reads the big-endian word at addr
func (mem *Memory) fetchOpcode(addr uint16) uint16 {
	return uint16(mem.read(addr))<<8 | uint16(mem.read(addr+1))
}

func (mem *Memory) read(addr uint16) uint8 {
	if int(addr) >= MemorySize {
		panic(&Fault{Err: ErrAddressOutOfRange, Addr: addr})
	}
	return mem[addr]
}

func (mem *Memory) write(addr uint16, val uint8) {
	if int(addr) >= MemorySize {
		panic(&Fault{Err: ErrAddressOutOfRange, Addr: addr})
	}
	mem[addr] = val
}
