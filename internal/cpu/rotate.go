package cpu

import (
	"github.com/retrocore/z80vm/internal/mem"
	"github.com/retrocore/z80vm/internal/opcode"
)

// execRotateCB dispatches the CB-prefix RLC/RRC/RL/RR/SLA/SRA/SRL/SLL
// family across all registers and (HL). Reports whether op was one of its
// own.
func execRotateCB(s *State, m *mem.Memory, op opcode.OpCode) bool {
	r := &s.Main
	f := &s.Main.F
	switch op {
	case opcode.RLC_A:
		r.A = execRlc(f, r.A)
	case opcode.RLC_B:
		r.B = execRlc(f, r.B)
	case opcode.RLC_C:
		r.C = execRlc(f, r.C)
	case opcode.RLC_D:
		r.D = execRlc(f, r.D)
	case opcode.RLC_E:
		r.E = execRlc(f, r.E)
	case opcode.RLC_H:
		r.H = execRlc(f, r.H)
	case opcode.RLC_L:
		r.L = execRlc(f, r.L)
	case opcode.RLC_HLI:
		addr := r.HL()
		m.Write8(addr, execRlc(f, m.Read8(addr)))

	case opcode.RRC_A:
		r.A = execRrc(f, r.A)
	case opcode.RRC_B:
		r.B = execRrc(f, r.B)
	case opcode.RRC_C:
		r.C = execRrc(f, r.C)
	case opcode.RRC_D:
		r.D = execRrc(f, r.D)
	case opcode.RRC_E:
		r.E = execRrc(f, r.E)
	case opcode.RRC_H:
		r.H = execRrc(f, r.H)
	case opcode.RRC_L:
		r.L = execRrc(f, r.L)
	case opcode.RRC_HLI:
		addr := r.HL()
		m.Write8(addr, execRrc(f, m.Read8(addr)))

	case opcode.RL_A:
		r.A = execRl(f, r.A)
	case opcode.RL_B:
		r.B = execRl(f, r.B)
	case opcode.RL_C:
		r.C = execRl(f, r.C)
	case opcode.RL_D:
		r.D = execRl(f, r.D)
	case opcode.RL_E:
		r.E = execRl(f, r.E)
	case opcode.RL_H:
		r.H = execRl(f, r.H)
	case opcode.RL_L:
		r.L = execRl(f, r.L)
	case opcode.RL_HLI:
		addr := r.HL()
		m.Write8(addr, execRl(f, m.Read8(addr)))

	case opcode.RR_A:
		r.A = execRr(f, r.A)
	case opcode.RR_B:
		r.B = execRr(f, r.B)
	case opcode.RR_C:
		r.C = execRr(f, r.C)
	case opcode.RR_D:
		r.D = execRr(f, r.D)
	case opcode.RR_E:
		r.E = execRr(f, r.E)
	case opcode.RR_H:
		r.H = execRr(f, r.H)
	case opcode.RR_L:
		r.L = execRr(f, r.L)
	case opcode.RR_HLI:
		addr := r.HL()
		m.Write8(addr, execRr(f, m.Read8(addr)))

	case opcode.SLA_A:
		r.A = execSla(f, r.A)
	case opcode.SLA_B:
		r.B = execSla(f, r.B)
	case opcode.SLA_C:
		r.C = execSla(f, r.C)
	case opcode.SLA_D:
		r.D = execSla(f, r.D)
	case opcode.SLA_E:
		r.E = execSla(f, r.E)
	case opcode.SLA_H:
		r.H = execSla(f, r.H)
	case opcode.SLA_L:
		r.L = execSla(f, r.L)
	case opcode.SLA_HLI:
		addr := r.HL()
		m.Write8(addr, execSla(f, m.Read8(addr)))

	case opcode.SRA_A:
		r.A = execSra(f, r.A)
	case opcode.SRA_B:
		r.B = execSra(f, r.B)
	case opcode.SRA_C:
		r.C = execSra(f, r.C)
	case opcode.SRA_D:
		r.D = execSra(f, r.D)
	case opcode.SRA_E:
		r.E = execSra(f, r.E)
	case opcode.SRA_H:
		r.H = execSra(f, r.H)
	case opcode.SRA_L:
		r.L = execSra(f, r.L)
	case opcode.SRA_HLI:
		addr := r.HL()
		m.Write8(addr, execSra(f, m.Read8(addr)))

	case opcode.SRL_A:
		r.A = execSrl(f, r.A)
	case opcode.SRL_B:
		r.B = execSrl(f, r.B)
	case opcode.SRL_C:
		r.C = execSrl(f, r.C)
	case opcode.SRL_D:
		r.D = execSrl(f, r.D)
	case opcode.SRL_E:
		r.E = execSrl(f, r.E)
	case opcode.SRL_H:
		r.H = execSrl(f, r.H)
	case opcode.SRL_L:
		r.L = execSrl(f, r.L)
	case opcode.SRL_HLI:
		addr := r.HL()
		m.Write8(addr, execSrl(f, m.Read8(addr)))

	case opcode.SLL_A:
		r.A = execSll(f, r.A)
	case opcode.SLL_B:
		r.B = execSll(f, r.B)
	case opcode.SLL_C:
		r.C = execSll(f, r.C)
	case opcode.SLL_D:
		r.D = execSll(f, r.D)
	case opcode.SLL_E:
		r.E = execSll(f, r.E)
	case opcode.SLL_H:
		r.H = execSll(f, r.H)
	case opcode.SLL_L:
		r.L = execSll(f, r.L)
	case opcode.SLL_HLI:
		addr := r.HL()
		m.Write8(addr, execSll(f, m.Read8(addr)))

	default:
		return false
	}
	return true
}

// Accumulator rotates (non-CB) and the CB-prefix rotate/shift family. Ported
// from the teacher's exec.go; the accumulator forms keep S/Z/P flags
// untouched while the CB forms recompute the full SZ53P flag set from the
// shifted result, exactly as real silicon does.

func (s *State) execRLCA() {
	a := s.Main.A
	s.Main.A = (a << 1) | (a >> 7)
	s.Main.F = (s.Main.F & (FlagP | FlagZ | FlagS)) | (s.Main.A & (FlagC | FlagX | FlagY))
}

func (s *State) execRRCA() {
	a := s.Main.A
	s.Main.F = (s.Main.F & (FlagP | FlagZ | FlagS)) | (a & FlagC)
	s.Main.A = (a >> 1) | (a << 7)
	s.Main.F |= s.Main.A & (FlagX | FlagY)
}

func (s *State) execRLA() {
	old := s.Main.A
	s.Main.A = (old << 1) | (s.Main.F & FlagC)
	s.Main.F = (s.Main.F & (FlagP | FlagZ | FlagS)) | (s.Main.A & (FlagX | FlagY)) | (old >> 7)
}

func (s *State) execRRA() {
	old := s.Main.A
	s.Main.A = (old >> 1) | (s.Main.F << 7)
	s.Main.F = (s.Main.F & (FlagP | FlagZ | FlagS)) | (s.Main.A & (FlagX | FlagY)) | (old & FlagC)
}

func execRlc(f *uint8, v uint8) uint8 {
	v = (v << 1) | (v >> 7)
	*f = (v & FlagC) | sz53pTable[v]
	return v
}

func execRrc(f *uint8, v uint8) uint8 {
	*f = v & FlagC
	v = (v >> 1) | (v << 7)
	*f |= sz53pTable[v]
	return v
}

func execRl(f *uint8, v uint8) uint8 {
	old := v
	v = (v << 1) | (*f & FlagC)
	*f = (old >> 7) | sz53pTable[v]
	return v
}

func execRr(f *uint8, v uint8) uint8 {
	old := v
	v = (v >> 1) | (*f << 7)
	*f = (old & FlagC) | sz53pTable[v]
	return v
}

func execSla(f *uint8, v uint8) uint8 {
	*f = v >> 7
	v <<= 1
	*f |= sz53pTable[v]
	return v
}

func execSra(f *uint8, v uint8) uint8 {
	*f = v & FlagC
	v = (v & 0x80) | (v >> 1)
	*f |= sz53pTable[v]
	return v
}

func execSrl(f *uint8, v uint8) uint8 {
	*f = v & FlagC
	v >>= 1
	*f |= sz53pTable[v]
	return v
}

// execSll is the undocumented "shift left, set bit 0" variant.
func execSll(f *uint8, v uint8) uint8 {
	*f = v >> 7
	v = (v << 1) | 0x01
	*f |= sz53pTable[v]
	return v
}
