package cpu

import (
	"github.com/retrocore/z80vm/internal/alu"
	"github.com/retrocore/z80vm/internal/mem"
	"github.com/retrocore/z80vm/internal/opcode"
)

// execALU dispatches the 8-bit ADD/ADC/SUB/SBC/AND/XOR/OR/CP family. Register
// operands are read straight off s.Main; imm only matters for the _N variants.
func execALU(s *State, op opcode.OpCode, imm uint8) {
	r := &s.Main
	switch op {
	case opcode.ADD_A_B:
		s.execAdd(r.B)
	case opcode.ADD_A_C:
		s.execAdd(r.C)
	case opcode.ADD_A_D:
		s.execAdd(r.D)
	case opcode.ADD_A_E:
		s.execAdd(r.E)
	case opcode.ADD_A_H:
		s.execAdd(r.H)
	case opcode.ADD_A_L:
		s.execAdd(r.L)
	case opcode.ADD_A_A:
		s.execAdd(r.A)
	case opcode.ADD_A_N:
		s.execAdd(imm)

	case opcode.ADC_A_B:
		s.execAdc(r.B)
	case opcode.ADC_A_C:
		s.execAdc(r.C)
	case opcode.ADC_A_D:
		s.execAdc(r.D)
	case opcode.ADC_A_E:
		s.execAdc(r.E)
	case opcode.ADC_A_H:
		s.execAdc(r.H)
	case opcode.ADC_A_L:
		s.execAdc(r.L)
	case opcode.ADC_A_A:
		s.execAdc(r.A)
	case opcode.ADC_A_N:
		s.execAdc(imm)

	case opcode.SUB_B:
		s.execSub(r.B)
	case opcode.SUB_C:
		s.execSub(r.C)
	case opcode.SUB_D:
		s.execSub(r.D)
	case opcode.SUB_E:
		s.execSub(r.E)
	case opcode.SUB_H:
		s.execSub(r.H)
	case opcode.SUB_L:
		s.execSub(r.L)
	case opcode.SUB_A:
		s.execSub(r.A)
	case opcode.SUB_N:
		s.execSub(imm)

	case opcode.SBC_A_B:
		s.execSbc(r.B)
	case opcode.SBC_A_C:
		s.execSbc(r.C)
	case opcode.SBC_A_D:
		s.execSbc(r.D)
	case opcode.SBC_A_E:
		s.execSbc(r.E)
	case opcode.SBC_A_H:
		s.execSbc(r.H)
	case opcode.SBC_A_L:
		s.execSbc(r.L)
	case opcode.SBC_A_A:
		s.execSbc(r.A)
	case opcode.SBC_A_N:
		s.execSbc(imm)

	case opcode.AND_B:
		s.execAnd(r.B)
	case opcode.AND_C:
		s.execAnd(r.C)
	case opcode.AND_D:
		s.execAnd(r.D)
	case opcode.AND_E:
		s.execAnd(r.E)
	case opcode.AND_H:
		s.execAnd(r.H)
	case opcode.AND_L:
		s.execAnd(r.L)
	case opcode.AND_A:
		s.execAnd(r.A)
	case opcode.AND_N:
		s.execAnd(imm)

	case opcode.XOR_B:
		s.execXor(r.B)
	case opcode.XOR_C:
		s.execXor(r.C)
	case opcode.XOR_D:
		s.execXor(r.D)
	case opcode.XOR_E:
		s.execXor(r.E)
	case opcode.XOR_H:
		s.execXor(r.H)
	case opcode.XOR_L:
		s.execXor(r.L)
	case opcode.XOR_A:
		s.execXor(r.A)
	case opcode.XOR_N:
		s.execXor(imm)

	case opcode.OR_B:
		s.execOr(r.B)
	case opcode.OR_C:
		s.execOr(r.C)
	case opcode.OR_D:
		s.execOr(r.D)
	case opcode.OR_E:
		s.execOr(r.E)
	case opcode.OR_H:
		s.execOr(r.H)
	case opcode.OR_L:
		s.execOr(r.L)
	case opcode.OR_A:
		s.execOr(r.A)
	case opcode.OR_N:
		s.execOr(imm)

	case opcode.CP_B:
		s.execCp(r.B)
	case opcode.CP_C:
		s.execCp(r.C)
	case opcode.CP_D:
		s.execCp(r.D)
	case opcode.CP_E:
		s.execCp(r.E)
	case opcode.CP_H:
		s.execCp(r.H)
	case opcode.CP_L:
		s.execCp(r.L)
	case opcode.CP_A:
		s.execCp(r.A)
	case opcode.CP_N:
		s.execCp(imm)
	}
}

func execIncDec(s *State, op opcode.OpCode) {
	r := &s.Main
	switch op {
	case opcode.INC_A:
		execIncOctet(&s.Main.F, &r.A)
	case opcode.INC_B:
		execIncOctet(&s.Main.F, &r.B)
	case opcode.INC_C:
		execIncOctet(&s.Main.F, &r.C)
	case opcode.INC_D:
		execIncOctet(&s.Main.F, &r.D)
	case opcode.INC_E:
		execIncOctet(&s.Main.F, &r.E)
	case opcode.INC_H:
		execIncOctet(&s.Main.F, &r.H)
	case opcode.INC_L:
		execIncOctet(&s.Main.F, &r.L)
	case opcode.DEC_A:
		execDecOctet(&s.Main.F, &r.A)
	case opcode.DEC_B:
		execDecOctet(&s.Main.F, &r.B)
	case opcode.DEC_C:
		execDecOctet(&s.Main.F, &r.C)
	case opcode.DEC_D:
		execDecOctet(&s.Main.F, &r.D)
	case opcode.DEC_E:
		execDecOctet(&s.Main.F, &r.E)
	case opcode.DEC_H:
		execDecOctet(&s.Main.F, &r.H)
	case opcode.DEC_L:
		execDecOctet(&s.Main.F, &r.L)
	}
}

// execALUMem handles the 8-bit ALU family and INC/DEC against (HL) instead
// of a register. Reports whether op was one of its own.
func execALUMem(s *State, m *mem.Memory, op opcode.OpCode) bool {
	addr := s.Main.HL()
	switch op {
	case opcode.ADD_A_HLI:
		s.execAdd(m.Read8(addr))
	case opcode.ADC_A_HLI:
		s.execAdc(m.Read8(addr))
	case opcode.SUB_HLI:
		s.execSub(m.Read8(addr))
	case opcode.SBC_A_HLI:
		s.execSbc(m.Read8(addr))
	case opcode.AND_HLI:
		s.execAnd(m.Read8(addr))
	case opcode.XOR_HLI:
		s.execXor(m.Read8(addr))
	case opcode.OR_HLI:
		s.execOr(m.Read8(addr))
	case opcode.CP_HLI:
		s.execCp(m.Read8(addr))
	case opcode.INC_HLI:
		v := m.Read8(addr)
		execIncOctet(&s.Main.F, &v)
		m.Write8(addr, v)
	case opcode.DEC_HLI:
		v := m.Read8(addr)
		execDecOctet(&s.Main.F, &v)
		m.Write8(addr, v)
	default:
		return false
	}
	return true
}

// 8-bit and 16-bit arithmetic/logic instruction bodies. The addition family
// (ADD/ADC/INC/DEC/ADD HL/ADC HL, DEC as addition of the negated constant 1)
// computes its Carry/HalfCarry/Overflow bits from internal/alu's Result, the
// component the instruction set is meant to be built on. The subtraction
// family with an arbitrary operand (SUB/SBC/CP/SBC HL) still derives the
// same bits from the halfcarrySubTable/overflowSubTable lookup below instead
// of going through alu's two's-complement-addition route; see DESIGN.md for
// why that split is deliberate rather than leftover duplication. Either way,
// S/Z/5/3/(parity) still come from the precomputed sz53Table/sz53pTable —
// that part of the lookup-table trick isn't what the alu package replaces.

func (s *State) execAdd(value uint8) {
	r := alu.AddOctets(s.Main.A, value)
	s.Main.A = r.Value8()
	s.Main.F = bsel(r.Carry, FlagC, 0) |
		bsel(r.HalfCarry, FlagH, 0) |
		bsel(r.Overflow, FlagV, 0) |
		sz53Table[s.Main.A]
}

func (s *State) execAdc(value uint8) {
	r := alu.AddOctetsCarry(s.Main.A, value, s.Main.F&FlagC != 0)
	s.Main.A = r.Value8()
	s.Main.F = bsel(r.Carry, FlagC, 0) |
		bsel(r.HalfCarry, FlagH, 0) |
		bsel(r.Overflow, FlagV, 0) |
		sz53Table[s.Main.A]
}

func (s *State) execSub(value uint8) {
	a := s.Main.A
	diff := uint16(a) - uint16(value)
	lookup := ((a & 0x88) >> 3) | ((value & 0x88) >> 2) | uint8((diff&0x88)>>1)
	s.Main.A = uint8(diff)
	s.Main.F = bsel(diff&0x100 != 0, FlagC, 0) | FlagN |
		halfcarrySubTable[lookup&0x07] |
		overflowSubTable[lookup>>4] |
		sz53Table[s.Main.A]
}

func (s *State) execSbc(value uint8) {
	a := s.Main.A
	diff := uint16(a) - uint16(value) - uint16(s.Main.F&FlagC)
	lookup := ((a & 0x88) >> 3) | ((value & 0x88) >> 2) | uint8((diff&0x88)>>1)
	s.Main.A = uint8(diff)
	s.Main.F = bsel(diff&0x100 != 0, FlagC, 0) | FlagN |
		halfcarrySubTable[lookup&0x07] |
		overflowSubTable[lookup>>4] |
		sz53Table[s.Main.A]
}

func (s *State) execAnd(value uint8) {
	s.Main.A &= value
	s.Main.F = FlagH | sz53pTable[s.Main.A]
}

func (s *State) execOr(value uint8) {
	s.Main.A |= value
	s.Main.F = sz53pTable[s.Main.A]
}

func (s *State) execXor(value uint8) {
	s.Main.A ^= value
	s.Main.F = sz53pTable[s.Main.A]
}

func (s *State) execCp(value uint8) {
	a := s.Main.A
	diff := uint16(a) - uint16(value)
	lookup := (a & 0x88 >> 3) | ((value & 0x88) >> 2) | uint8((diff&0x88)>>1)
	s.Main.F = bsel(diff&0x100 != 0, FlagC, bsel(diff != 0, 0, FlagZ)) |
		FlagN |
		halfcarrySubTable[lookup&0x07] |
		overflowSubTable[lookup>>4] |
		(value & (FlagX | FlagY)) |
		uint8(diff&uint16(FlagS))
}

func execIncOctet(f *uint8, reg *uint8) {
	r := alu.AddOctets(*reg, 1)
	*reg = r.Value8()
	*f = (*f & FlagC) |
		bsel(r.Overflow, FlagV, 0) |
		bsel(r.HalfCarry, FlagH, 0) |
		sz53Table[*reg]
}

// execDecOctet subtracts 1 via alu.AddOctets(*reg, alu.Negate(1)). Negating
// the fixed operand 1 never hits the self-negation edge (Negate(0x80)==0x80)
// that rules out the same trick for arbitrary-operand subtraction, and the
// half-carry the addition path reports is the complement of the half-borrow
// DEC needs, so it's inverted here.
func execDecOctet(f *uint8, reg *uint8) {
	r := alu.AddOctets(*reg, alu.Negate(1))
	*reg = r.Value8()
	*f = (*f & FlagC) |
		FlagN |
		bsel(r.Overflow, FlagV, 0) |
		bsel(!r.HalfCarry, FlagH, 0) |
		sz53Table[*reg]
}

func (s *State) execDaa() {
	var add, carry uint8
	carry = s.Main.F & FlagC
	if s.Main.F&FlagH != 0 || s.Main.A&0x0F > 9 {
		add = 6
	}
	if carry != 0 || s.Main.A > 0x99 {
		add |= 0x60
	}
	if s.Main.A > 0x99 {
		carry = FlagC
	}
	if s.Main.F&FlagN != 0 {
		s.execSub(add)
	} else {
		s.execAdd(add)
	}
	s.Main.F = (s.Main.F &^ (FlagC | FlagP)) | carry | parityTable[s.Main.A]
}

// execAddHL implements ADD HL, rr: sets H (bit 11 carry) and C (bit 15
// carry), clears N, preserves S/Z/P-V.
func execAddHL(f *uint8, hl *uint16, value uint16) {
	r := alu.AddWords(*hl, value)
	*f = (*f & (FlagS | FlagZ | FlagP)) |
		bsel(r.HalfCarry, FlagH, 0) |
		bsel(r.Carry, FlagC, 0) |
		(uint8(r.Value>>8) & (FlagX | FlagY))
	*hl = r.Value
}

// execAdcHL implements ADC HL, rr with full S/Z/H/P-V/C computation.
func execAdcHL(f *uint8, hl *uint16, value uint16) {
	r := alu.AddWordsCarry(*hl, value, *f&FlagC != 0)
	*hl = r.Value
	*f = bsel(r.Carry, FlagC, 0) |
		bsel(r.Overflow, FlagV, 0) |
		(uint8(*hl>>8) & (FlagX | FlagY | FlagS)) |
		bsel(r.HalfCarry, FlagH, 0) |
		bsel(*hl != 0, 0, FlagZ)
}

// execSbcHL implements SBC HL, rr with full S/Z/H/P-V/C computation.
func execSbcHL(f *uint8, hl *uint16, value uint16) {
	carry := uint(*f & FlagC)
	result := uint(*hl) - uint(value) - carry
	lookup := byte(((uint(*hl) & 0x8800) >> 11) | ((uint(value) & 0x8800) >> 10) | ((result & 0x8800) >> 9))
	*hl = uint16(result)
	*f = bsel(result&0x10000 != 0, FlagC, 0) |
		FlagN |
		overflowSubTable[lookup>>4] |
		(uint8(*hl>>8) & (FlagX | FlagY | FlagS)) |
		halfcarrySubTable[lookup&0x07] |
		bsel(*hl != 0, 0, FlagZ)
}

// bsel returns a if cond holds, else b.
func bsel(cond bool, a, b uint8) uint8 {
	if cond {
		return a
	}
	return b
}
