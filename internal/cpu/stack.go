package cpu

import "github.com/retrocore/z80vm/internal/mem"

// pushWord decrements SP by 2 and stores value little-endian: low byte at
// the new SP, high byte at SP+1 — the standard Z80 stack-grows-down convention.
func pushWord(s *State, m *mem.Memory, value uint16) {
	s.SP -= 2
	m.Write16(s.SP, value)
}

// popWord reads the word at SP and advances SP past it.
func popWord(s *State, m *mem.Memory) uint16 {
	value := m.Read16(s.SP)
	s.SP += 2
	return value
}
