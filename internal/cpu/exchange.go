package cpu

import "github.com/retrocore/z80vm/internal/mem"

// execExSPHL implements EX (SP), HL: swap HL with the word at the top of
// the stack, without moving SP.
func execExSPHL(s *State, m *mem.Memory) {
	sp := s.SP
	word := m.Read16(sp)
	m.Write16(sp, s.Main.HL())
	s.Main.SetHL(word)
}
