// Package mem implements the flat 64KiB byte-addressable memory backing a
// Machine. There is no bank switching, no MMIO, and no protection: every
// address in 0x0000-0xFFFF is always readable and writable.
package mem

// Capacity is the size of the address space a Z80 can address.
const Capacity = 1 << 16

// Memory is a flat 64KiB byte store with little-endian word accessors.
type Memory [Capacity]uint8

// New returns a zeroed 64KiB memory.
func New() *Memory {
	return &Memory{}
}

// Read8 returns the byte at addr.
func (m *Memory) Read8(addr uint16) uint8 {
	return m[addr]
}

// Write8 stores value at addr. The write is immediately observable by any
// subsequent read at the same address.
func (m *Memory) Write8(addr uint16, value uint8) {
	m[addr] = value
}

// Read16 returns the little-endian word at addr: low byte at addr, high
// byte at addr+1 (wrapping modulo 2^16).
func (m *Memory) Read16(addr uint16) uint16 {
	low := uint16(m[addr])
	high := uint16(m[addr+1])
	return high<<8 | low
}

// Write16 stores value at addr as a little-endian word: low byte at addr,
// high byte at addr+1 (wrapping modulo 2^16).
func (m *Memory) Write16(addr uint16, value uint16) {
	m[addr] = uint8(value)
	m[addr+1] = uint8(value >> 8)
}

// LoadAt copies program into memory starting at addr. Returns false without
// modifying memory if the program would cross 0xFFFF.
func (m *Memory) LoadAt(program []uint8, addr uint16) bool {
	end := uint32(addr) + uint32(len(program))
	if end > Capacity {
		return false
	}
	copy(m[addr:], program)
	return true
}
