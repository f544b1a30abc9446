package cpu

import (
	"github.com/retrocore/z80vm/internal/mem"
	"github.com/retrocore/z80vm/internal/opcode"
)

// execCallRet dispatches CALL/CALL cc/RET/RET cc. PC already points past the
// instruction's full encoding, so CALL pushes that return address before
// jumping and RET simply restores PC from the stack. Reports whether op was
// one of its own.
func execCallRet(s *State, m *mem.Memory, op opcode.OpCode, imm uint16) bool {
	switch op {
	case opcode.CALL_NN:
		execCall(s, m, imm)
	case opcode.CALL_NZ_NN:
		execCallCC(s, m, condNZ, imm)
	case opcode.CALL_Z_NN:
		execCallCC(s, m, condZ, imm)
	case opcode.CALL_NC_NN:
		execCallCC(s, m, condNC, imm)
	case opcode.CALL_C_NN:
		execCallCC(s, m, condC, imm)
	case opcode.CALL_PO_NN:
		execCallCC(s, m, condPO, imm)
	case opcode.CALL_PE_NN:
		execCallCC(s, m, condPE, imm)
	case opcode.CALL_P_NN:
		execCallCC(s, m, condP, imm)
	case opcode.CALL_M_NN:
		execCallCC(s, m, condM, imm)

	case opcode.RET:
		s.PC = popWord(s, m)
	case opcode.RET_NZ:
		execRetCC(s, m, condNZ)
	case opcode.RET_Z:
		execRetCC(s, m, condZ)
	case opcode.RET_NC:
		execRetCC(s, m, condNC)
	case opcode.RET_C:
		execRetCC(s, m, condC)
	case opcode.RET_PO:
		execRetCC(s, m, condPO)
	case opcode.RET_PE:
		execRetCC(s, m, condPE)
	case opcode.RET_P:
		execRetCC(s, m, condP)
	case opcode.RET_M:
		execRetCC(s, m, condM)

	default:
		return false
	}
	return true
}

func execCall(s *State, m *mem.Memory, target uint16) {
	pushWord(s, m, s.PC)
	s.PC = target
}

func execCallCC(s *State, m *mem.Memory, cc condition, target uint16) {
	if s.test(cc) {
		execCall(s, m, target)
	}
}

func execRetCC(s *State, m *mem.Memory, cc condition) {
	if s.test(cc) {
		s.PC = popWord(s, m)
	}
}
