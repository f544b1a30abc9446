package cpu

import (
	"github.com/retrocore/z80vm/internal/mem"
	"github.com/retrocore/z80vm/internal/opcode"
)

// execLoadRR handles the 49 register-to-register loads (7x7, including the
// 7 self-loads that are no-ops).
func execLoadRR(s *State, op opcode.OpCode) {
	r := &s.Main
	switch op {
	case opcode.LD_A_B:
		r.A = r.B
	case opcode.LD_A_C:
		r.A = r.C
	case opcode.LD_A_D:
		r.A = r.D
	case opcode.LD_A_E:
		r.A = r.E
	case opcode.LD_A_H:
		r.A = r.H
	case opcode.LD_A_L:
		r.A = r.L
	case opcode.LD_A_A:
	case opcode.LD_B_A:
		r.B = r.A
	case opcode.LD_B_B:
	case opcode.LD_B_C:
		r.B = r.C
	case opcode.LD_B_D:
		r.B = r.D
	case opcode.LD_B_E:
		r.B = r.E
	case opcode.LD_B_H:
		r.B = r.H
	case opcode.LD_B_L:
		r.B = r.L
	case opcode.LD_C_A:
		r.C = r.A
	case opcode.LD_C_B:
		r.C = r.B
	case opcode.LD_C_C:
	case opcode.LD_C_D:
		r.C = r.D
	case opcode.LD_C_E:
		r.C = r.E
	case opcode.LD_C_H:
		r.C = r.H
	case opcode.LD_C_L:
		r.C = r.L
	case opcode.LD_D_A:
		r.D = r.A
	case opcode.LD_D_B:
		r.D = r.B
	case opcode.LD_D_C:
		r.D = r.C
	case opcode.LD_D_D:
	case opcode.LD_D_E:
		r.D = r.E
	case opcode.LD_D_H:
		r.D = r.H
	case opcode.LD_D_L:
		r.D = r.L
	case opcode.LD_E_A:
		r.E = r.A
	case opcode.LD_E_B:
		r.E = r.B
	case opcode.LD_E_C:
		r.E = r.C
	case opcode.LD_E_D:
		r.E = r.D
	case opcode.LD_E_E:
	case opcode.LD_E_H:
		r.E = r.H
	case opcode.LD_E_L:
		r.E = r.L
	case opcode.LD_H_A:
		r.H = r.A
	case opcode.LD_H_B:
		r.H = r.B
	case opcode.LD_H_C:
		r.H = r.C
	case opcode.LD_H_D:
		r.H = r.D
	case opcode.LD_H_E:
		r.H = r.E
	case opcode.LD_H_H:
	case opcode.LD_H_L:
		r.H = r.L
	case opcode.LD_L_A:
		r.L = r.A
	case opcode.LD_L_B:
		r.L = r.B
	case opcode.LD_L_C:
		r.L = r.C
	case opcode.LD_L_D:
		r.L = r.D
	case opcode.LD_L_E:
		r.L = r.E
	case opcode.LD_L_H:
		r.L = r.H
	case opcode.LD_L_L:
	}
}

func execLoadImm(s *State, op opcode.OpCode, imm uint8) {
	switch op {
	case opcode.LD_A_N:
		s.Main.A = imm
	case opcode.LD_B_N:
		s.Main.B = imm
	case opcode.LD_C_N:
		s.Main.C = imm
	case opcode.LD_D_N:
		s.Main.D = imm
	case opcode.LD_E_N:
		s.Main.E = imm
	case opcode.LD_H_N:
		s.Main.H = imm
	case opcode.LD_L_N:
		s.Main.L = imm
	}
}

// execLoadMem handles every load that touches memory through (HL), (BC),
// (DE), or a literal (nn) address (the last is dispatched directly from
// execute's switch since it already has imm in hand; this covers the
// (HL)/(BC)/(DE) forms, which don't). Reports whether op was one of its own.
func execLoadMem(s *State, m *mem.Memory, op opcode.OpCode, imm uint16) bool {
	r := &s.Main
	switch op {
	case opcode.LD_A_HLI:
		r.A = m.Read8(r.HL())
	case opcode.LD_B_HLI:
		r.B = m.Read8(r.HL())
	case opcode.LD_C_HLI:
		r.C = m.Read8(r.HL())
	case opcode.LD_D_HLI:
		r.D = m.Read8(r.HL())
	case opcode.LD_E_HLI:
		r.E = m.Read8(r.HL())
	case opcode.LD_H_HLI:
		r.H = m.Read8(r.HL())
	case opcode.LD_L_HLI:
		r.L = m.Read8(r.HL())
	case opcode.LD_HLI_A:
		m.Write8(r.HL(), r.A)
	case opcode.LD_HLI_B:
		m.Write8(r.HL(), r.B)
	case opcode.LD_HLI_C:
		m.Write8(r.HL(), r.C)
	case opcode.LD_HLI_D:
		m.Write8(r.HL(), r.D)
	case opcode.LD_HLI_E:
		m.Write8(r.HL(), r.E)
	case opcode.LD_HLI_H:
		m.Write8(r.HL(), r.H)
	case opcode.LD_HLI_L:
		m.Write8(r.HL(), r.L)
	case opcode.LD_HLI_N:
		m.Write8(r.HL(), uint8(imm))
	case opcode.LD_A_BCI:
		r.A = m.Read8(r.BC())
	case opcode.LD_A_DEI:
		r.A = m.Read8(r.DE())
	case opcode.LD_BCI_A:
		m.Write8(r.BC(), r.A)
	case opcode.LD_DEI_A:
		m.Write8(r.DE(), r.A)
	default:
		return false
	}
	return true
}
