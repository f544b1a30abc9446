package cpu

import (
	"github.com/retrocore/z80vm/internal/mem"
	"github.com/retrocore/z80vm/internal/opcode"
)

// execJump dispatches JP/JP cc/JR/JR cc/DJNZ. PC already points past the
// instruction's full encoding by the time this runs, so a taken branch is
// just an overwrite of s.PC and a not-taken branch is a no-op. Reports
// whether op was one of its own.
func execJump(s *State, m *mem.Memory, op opcode.OpCode, imm uint16) bool {
	switch op {
	case opcode.JP_NN:
		s.PC = imm
	case opcode.JP_NZ_NN:
		if s.test(condNZ) {
			s.PC = imm
		}
	case opcode.JP_Z_NN:
		if s.test(condZ) {
			s.PC = imm
		}
	case opcode.JP_NC_NN:
		if s.test(condNC) {
			s.PC = imm
		}
	case opcode.JP_C_NN:
		if s.test(condC) {
			s.PC = imm
		}
	case opcode.JP_PO_NN:
		if s.test(condPO) {
			s.PC = imm
		}
	case opcode.JP_PE_NN:
		if s.test(condPE) {
			s.PC = imm
		}
	case opcode.JP_P_NN:
		if s.test(condP) {
			s.PC = imm
		}
	case opcode.JP_M_NN:
		if s.test(condM) {
			s.PC = imm
		}

	case opcode.JR_E:
		s.PC = jrDisplacement(s.PC, uint8(imm))
	case opcode.JR_NZ_E:
		if s.test(condNZ) {
			s.PC = jrDisplacement(s.PC, uint8(imm))
		}
	case opcode.JR_Z_E:
		if s.test(condZ) {
			s.PC = jrDisplacement(s.PC, uint8(imm))
		}
	case opcode.JR_NC_E:
		if s.test(condNC) {
			s.PC = jrDisplacement(s.PC, uint8(imm))
		}
	case opcode.JR_C_E:
		if s.test(condC) {
			s.PC = jrDisplacement(s.PC, uint8(imm))
		}
	case opcode.DJNZ_E:
		s.Main.B--
		if s.Main.B != 0 {
			s.PC = jrDisplacement(s.PC, uint8(imm))
		}

	default:
		return false
	}
	return true
}

// condition codes for the eight JP/JR/CALL/RET cc variants.
type condition int

const (
	condNZ condition = iota
	condZ
	condNC
	condC
	condPO
	condPE
	condP
	condM
)

func (s *State) test(cc condition) bool {
	f := s.Main.F
	switch cc {
	case condNZ:
		return f&FlagZ == 0
	case condZ:
		return f&FlagZ != 0
	case condNC:
		return f&FlagC == 0
	case condC:
		return f&FlagC != 0
	case condPO:
		return f&FlagP == 0
	case condPE:
		return f&FlagP != 0
	case condP:
		return f&FlagS == 0
	case condM:
		return f&FlagS != 0
	}
	panic("cpu: invalid condition")
}

// jrDisplacement interprets imm as the signed 8-bit relative displacement
// JR/DJNZ encode, and returns the target address. pc must already point
// past the full two-byte instruction; the displacement is measured from
// the displacement byte's own address, i.e. pc-1, matching spec.md §8's
// worked JR NZ loop example.
func jrDisplacement(pc uint16, imm uint8) uint16 {
	return uint16(int32(pc) - 1 + int32(int8(imm)))
}
