package cpu

import "github.com/retrocore/z80vm/internal/alu"

// Registers is one register bank: four 16-bit pairs, each addressable as a
// pair or as independent high/low 8-bit halves.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
}

// AF, BC, DE, HL return the pair's current 16-bit value.
func (r *Registers) AF() uint16 { return alu.GetWord(r.A, r.F) }
func (r *Registers) BC() uint16 { return alu.GetWord(r.B, r.C) }
func (r *Registers) DE() uint16 { return alu.GetWord(r.D, r.E) }
func (r *Registers) HL() uint16 { return alu.GetWord(r.H, r.L) }

// SetAF, SetBC, SetDE, SetHL assign the pair from a 16-bit value.
func (r *Registers) SetAF(v uint16) { r.A, r.F = alu.GetOctets(v) }
func (r *Registers) SetBC(v uint16) { r.B, r.C = alu.GetOctets(v) }
func (r *Registers) SetDE(v uint16) { r.D, r.E = alu.GetOctets(v) }
func (r *Registers) SetHL(v uint16) { r.H, r.L = alu.GetOctets(v) }

// State is the full architectural register file: the main bank, the shadow
// bank (swapped in bulk by EXX / EX AF,AF'), and the two free-standing
// 16-bit registers PC and SP.
type State struct {
	Main   Registers
	Shadow Registers
	PC     uint16
	SP     uint16

	halted bool
}

// F is shorthand for Main.F — instruction handlers address fields directly
// the way the teacher's own exec.go does, since that's the fast path; the
// RegID-based accessors in regid.go exist for the machine driver's public
// accessors and the debugger.
func (s *State) F() uint8 { return s.Main.F }

// SetF overwrites the flag byte wholesale.
func (s *State) SetF(v uint8) { s.Main.F = v }

// Halted reports whether the CPU has executed HALT and is freezing PC.
func (s *State) Halted() bool { return s.halted }

// Halt sets the halted flag.
func (s *State) Halt() { s.halted = true }

// Unhalt clears the halted flag (used when starting the machine at a fresh
// entry point).
func (s *State) Unhalt() { s.halted = false }

// ExchangeAF swaps AF with its shadow (EX AF,AF').
func (s *State) ExchangeAF() {
	s.Main.A, s.Shadow.A = s.Shadow.A, s.Main.A
	s.Main.F, s.Shadow.F = s.Shadow.F, s.Main.F
}

// ExchangeX swaps BC, DE, HL with their shadows as a set (EXX).
func (s *State) ExchangeX() {
	s.Main.B, s.Shadow.B = s.Shadow.B, s.Main.B
	s.Main.C, s.Shadow.C = s.Shadow.C, s.Main.C
	s.Main.D, s.Shadow.D = s.Shadow.D, s.Main.D
	s.Main.E, s.Shadow.E = s.Shadow.E, s.Main.E
	s.Main.H, s.Shadow.H = s.Shadow.H, s.Main.H
	s.Main.L, s.Shadow.L = s.Shadow.L, s.Main.L
}

// ExchangeDEHL swaps DE and HL in the main bank (EX DE,HL).
func (s *State) ExchangeDEHL() {
	s.Main.D, s.Main.H = s.Main.H, s.Main.D
	s.Main.E, s.Main.L = s.Main.L, s.Main.E
}
