package cpu

import (
	"github.com/retrocore/z80vm/internal/mem"
	"github.com/retrocore/z80vm/internal/opcode"
)

// Decode identifies the instruction sitting at PC without mutating state or
// consuming operand bytes — the Machine driver uses this to resolve which
// per-opcode hooks apply before committing to execution.
//
// DD/FD (IX/IY) prefixes are recognized but not implemented: this core
// never models the index registers, so anything under those prefixes
// decodes to opcode.UNKNOWN and is skipped as a 2-byte NOP. Every other ED
// byte this core doesn't implement does the same.
func Decode(s *State, m *mem.Memory) opcode.OpCode {
	b := m.Read8(s.PC)
	prefix, op := opcode.LeadByte(b)
	switch prefix {
	case opcode.PrefixCB:
		return opcode.DecodeCB(m.Read8(s.PC + 1))
	case opcode.PrefixED:
		return opcode.DecodeED(m.Read8(s.PC + 1))
	case opcode.PrefixDD, opcode.PrefixFD:
		return opcode.UNKNOWN
	}
	return op
}

// Step fetches, decodes, and executes exactly one instruction, advancing PC
// and SP as the instruction dictates. It returns the opcode executed, its
// T-state cost, and whether advancing PC past the fetched instruction
// wrapped from 0xFFFF to 0x0000 — the PC-overflow-during-fetch condition the
// Machine driver must halt on, since execution past the end of memory has no
// defined semantics.
//
// If the CPU is halted, Step does not touch memory or PC at all: it simply
// reports opcode.HALT costing 4 T-states, the documented behavior of HALT
// spinning in place until the CPU is unhalted (Unhalt, which StartAt calls).
// Stop does not unhalt; the Machine driver's run loop ends as soon as the
// CPU halts.
func Step(s *State, m *mem.Memory) (opcode.OpCode, int, bool) {
	if s.Halted() {
		return opcode.HALT, opcode.TStates(opcode.HALT), false
	}

	startPC := s.PC
	b := m.Read8(startPC)
	prefix, op := opcode.LeadByte(b)

	pc := uint32(startPC)
	switch prefix {
	case opcode.PrefixCB:
		op = opcode.DecodeCB(m.Read8(startPC + 1))
		pc += 2
	case opcode.PrefixED:
		op = opcode.DecodeED(m.Read8(startPC + 1))
		if op == opcode.UNKNOWN {
			pc += 2
			wrapped := pc > 0xFFFF
			s.PC = uint16(pc)
			return opcode.UNKNOWN, opcode.TStates(opcode.UNKNOWN), wrapped
		}
		pc += 2
	case opcode.PrefixDD, opcode.PrefixFD:
		pc += 2
		wrapped := pc > 0xFFFF
		s.PC = uint16(pc)
		return opcode.UNKNOWN, opcode.TStates(opcode.UNKNOWN), wrapped
	default:
		pc++
	}

	var imm uint16
	switch {
	case opcode.HasImm16(op):
		imm = m.Read16(uint16(pc))
		pc += 2
	case opcode.HasImmediate(op):
		imm = uint16(m.Read8(uint16(pc)))
		pc++
	}
	wrapped := pc > 0xFFFF
	s.PC = uint16(pc)

	execute(s, m, op, imm)
	return op, opcode.TStates(op), wrapped
}

// execute carries out the body of a decoded instruction. PC already points
// past the full encoding (opcode, prefix, and any immediate) by the time
// this runs: JP/CALL overwrite PC with their absolute target, and JR/DJNZ
// compute their target from this PC plus the displacement.
func execute(s *State, m *mem.Memory, op opcode.OpCode, imm uint16) {
	switch {
	case op <= opcode.LD_L_L:
		execLoadRR(s, op)
		return
	case op <= opcode.LD_L_N:
		execLoadImm(s, op, uint8(imm))
		return
	case op <= opcode.CP_N:
		execALU(s, op, uint8(imm))
		return
	case op <= opcode.DEC_L:
		execIncDec(s, op)
		return
	}

	switch op {
	case opcode.RLCA:
		s.execRLCA()
	case opcode.RRCA:
		s.execRRCA()
	case opcode.RLA:
		s.execRLA()
	case opcode.RRA:
		s.execRRA()
	case opcode.DAA:
		s.execDaa()
	case opcode.CPL:
		s.execCPL()
	case opcode.SCF:
		s.execSCF()
	case opcode.CCF:
		s.execCCF()
	case opcode.NEG:
		s.execNEG()
	case opcode.NOP:
	case opcode.HALT:
		// Real silicon never advances PC past HALT: it keeps re-fetching
		// the same opcode every cycle until an interrupt or reset. PC is
		// rewound by one so it again points at the HALT byte rather than
		// the address after it.
		s.Halt()
		s.PC--

	case opcode.EX_AF_AF:
		s.ExchangeAF()
	case opcode.EXX:
		s.ExchangeX()
	case opcode.EX_DE_HL:
		s.ExchangeDEHL()
	case opcode.EX_SP_HL:
		execExSPHL(s, m)

	case opcode.INC_BC:
		s.Main.SetBC(s.Main.BC() + 1)
	case opcode.INC_DE:
		s.Main.SetDE(s.Main.DE() + 1)
	case opcode.INC_HL:
		s.Main.SetHL(s.Main.HL() + 1)
	case opcode.INC_SP:
		s.SP++
	case opcode.DEC_BC:
		s.Main.SetBC(s.Main.BC() - 1)
	case opcode.DEC_DE:
		s.Main.SetDE(s.Main.DE() - 1)
	case opcode.DEC_HL:
		s.Main.SetHL(s.Main.HL() - 1)
	case opcode.DEC_SP:
		s.SP--
	case opcode.ADD_HL_BC:
		hl := s.Main.HL()
		execAddHL(&s.Main.F, &hl, s.Main.BC())
		s.Main.SetHL(hl)
	case opcode.ADD_HL_DE:
		hl := s.Main.HL()
		execAddHL(&s.Main.F, &hl, s.Main.DE())
		s.Main.SetHL(hl)
	case opcode.ADD_HL_HL:
		hl := s.Main.HL()
		execAddHL(&s.Main.F, &hl, hl)
		s.Main.SetHL(hl)
	case opcode.ADD_HL_SP:
		hl := s.Main.HL()
		execAddHL(&s.Main.F, &hl, s.SP)
		s.Main.SetHL(hl)
	case opcode.LD_SP_HL:
		s.SP = s.Main.HL()

	case opcode.LD_BC_NN:
		s.Main.SetBC(imm)
	case opcode.LD_DE_NN:
		s.Main.SetDE(imm)
	case opcode.LD_HL_NN:
		s.Main.SetHL(imm)
	case opcode.LD_SP_NN:
		s.SP = imm

	case opcode.ADC_HL_BC:
		hl := s.Main.HL()
		execAdcHL(&s.Main.F, &hl, s.Main.BC())
		s.Main.SetHL(hl)
	case opcode.ADC_HL_DE:
		hl := s.Main.HL()
		execAdcHL(&s.Main.F, &hl, s.Main.DE())
		s.Main.SetHL(hl)
	case opcode.ADC_HL_HL:
		hl := s.Main.HL()
		execAdcHL(&s.Main.F, &hl, hl)
		s.Main.SetHL(hl)
	case opcode.ADC_HL_SP:
		hl := s.Main.HL()
		execAdcHL(&s.Main.F, &hl, s.SP)
		s.Main.SetHL(hl)
	case opcode.SBC_HL_BC:
		hl := s.Main.HL()
		execSbcHL(&s.Main.F, &hl, s.Main.BC())
		s.Main.SetHL(hl)
	case opcode.SBC_HL_DE:
		hl := s.Main.HL()
		execSbcHL(&s.Main.F, &hl, s.Main.DE())
		s.Main.SetHL(hl)
	case opcode.SBC_HL_HL:
		hl := s.Main.HL()
		execSbcHL(&s.Main.F, &hl, hl)
		s.Main.SetHL(hl)
	case opcode.SBC_HL_SP:
		hl := s.Main.HL()
		execSbcHL(&s.Main.F, &hl, s.SP)
		s.Main.SetHL(hl)

	case opcode.LD_NNI_A:
		m.Write8(imm, s.Main.A)
	case opcode.LD_A_NNI:
		s.Main.A = m.Read8(imm)
	case opcode.LD_NNI_HL:
		m.Write16(imm, s.Main.HL())
	case opcode.LD_HL_NNI:
		s.Main.SetHL(m.Read16(imm))

	case opcode.PUSH_AF:
		pushWord(s, m, s.Main.AF())
	case opcode.PUSH_BC:
		pushWord(s, m, s.Main.BC())
	case opcode.PUSH_DE:
		pushWord(s, m, s.Main.DE())
	case opcode.PUSH_HL:
		pushWord(s, m, s.Main.HL())
	case opcode.POP_AF:
		s.Main.SetAF(popWord(s, m))
	case opcode.POP_BC:
		s.Main.SetBC(popWord(s, m))
	case opcode.POP_DE:
		s.Main.SetDE(popWord(s, m))
	case opcode.POP_HL:
		s.Main.SetHL(popWord(s, m))

	default:
		execMemoryOrControlFlow(s, m, op, imm)
	}
}

// execMemoryOrControlFlow handles the (HL)/(BC)/(DE) memory family, the
// CB-prefix register+memory rotate/bit family, and JP/JR/CALL/RET — split
// out purely to keep execute's switch from becoming one unreadable slab.
func execMemoryOrControlFlow(s *State, m *mem.Memory, op opcode.OpCode, imm uint16) {
	if execLoadMem(s, m, op, imm) {
		return
	}
	if execALUMem(s, m, op) {
		return
	}
	if execRotateCB(s, m, op) {
		return
	}
	if execBitCB(s, m, op) {
		return
	}
	if execJump(s, m, op, imm) {
		return
	}
	if execCallRet(s, m, op, imm) {
		return
	}
	// opcode.UNKNOWN and anything else unreached: treated as a NOP.
}
