package cpu

import (
	"github.com/retrocore/z80vm/internal/mem"
	"github.com/retrocore/z80vm/internal/opcode"
)

var bitTable = [8][8]opcode.OpCode{
	{opcode.BIT_0_A, opcode.BIT_1_A, opcode.BIT_2_A, opcode.BIT_3_A, opcode.BIT_4_A, opcode.BIT_5_A, opcode.BIT_6_A, opcode.BIT_7_A},
	{opcode.BIT_0_B, opcode.BIT_1_B, opcode.BIT_2_B, opcode.BIT_3_B, opcode.BIT_4_B, opcode.BIT_5_B, opcode.BIT_6_B, opcode.BIT_7_B},
	{opcode.BIT_0_C, opcode.BIT_1_C, opcode.BIT_2_C, opcode.BIT_3_C, opcode.BIT_4_C, opcode.BIT_5_C, opcode.BIT_6_C, opcode.BIT_7_C},
	{opcode.BIT_0_D, opcode.BIT_1_D, opcode.BIT_2_D, opcode.BIT_3_D, opcode.BIT_4_D, opcode.BIT_5_D, opcode.BIT_6_D, opcode.BIT_7_D},
	{opcode.BIT_0_E, opcode.BIT_1_E, opcode.BIT_2_E, opcode.BIT_3_E, opcode.BIT_4_E, opcode.BIT_5_E, opcode.BIT_6_E, opcode.BIT_7_E},
	{opcode.BIT_0_H, opcode.BIT_1_H, opcode.BIT_2_H, opcode.BIT_3_H, opcode.BIT_4_H, opcode.BIT_5_H, opcode.BIT_6_H, opcode.BIT_7_H},
	{opcode.BIT_0_L, opcode.BIT_1_L, opcode.BIT_2_L, opcode.BIT_3_L, opcode.BIT_4_L, opcode.BIT_5_L, opcode.BIT_6_L, opcode.BIT_7_L},
	{opcode.BIT_0_HLI, opcode.BIT_1_HLI, opcode.BIT_2_HLI, opcode.BIT_3_HLI, opcode.BIT_4_HLI, opcode.BIT_5_HLI, opcode.BIT_6_HLI, opcode.BIT_7_HLI},
}

var resTable = [8][8]opcode.OpCode{
	{opcode.RES_0_A, opcode.RES_1_A, opcode.RES_2_A, opcode.RES_3_A, opcode.RES_4_A, opcode.RES_5_A, opcode.RES_6_A, opcode.RES_7_A},
	{opcode.RES_0_B, opcode.RES_1_B, opcode.RES_2_B, opcode.RES_3_B, opcode.RES_4_B, opcode.RES_5_B, opcode.RES_6_B, opcode.RES_7_B},
	{opcode.RES_0_C, opcode.RES_1_C, opcode.RES_2_C, opcode.RES_3_C, opcode.RES_4_C, opcode.RES_5_C, opcode.RES_6_C, opcode.RES_7_C},
	{opcode.RES_0_D, opcode.RES_1_D, opcode.RES_2_D, opcode.RES_3_D, opcode.RES_4_D, opcode.RES_5_D, opcode.RES_6_D, opcode.RES_7_D},
	{opcode.RES_0_E, opcode.RES_1_E, opcode.RES_2_E, opcode.RES_3_E, opcode.RES_4_E, opcode.RES_5_E, opcode.RES_6_E, opcode.RES_7_E},
	{opcode.RES_0_H, opcode.RES_1_H, opcode.RES_2_H, opcode.RES_3_H, opcode.RES_4_H, opcode.RES_5_H, opcode.RES_6_H, opcode.RES_7_H},
	{opcode.RES_0_L, opcode.RES_1_L, opcode.RES_2_L, opcode.RES_3_L, opcode.RES_4_L, opcode.RES_5_L, opcode.RES_6_L, opcode.RES_7_L},
	{opcode.RES_0_HLI, opcode.RES_1_HLI, opcode.RES_2_HLI, opcode.RES_3_HLI, opcode.RES_4_HLI, opcode.RES_5_HLI, opcode.RES_6_HLI, opcode.RES_7_HLI},
}

var setTable = [8][8]opcode.OpCode{
	{opcode.SET_0_A, opcode.SET_1_A, opcode.SET_2_A, opcode.SET_3_A, opcode.SET_4_A, opcode.SET_5_A, opcode.SET_6_A, opcode.SET_7_A},
	{opcode.SET_0_B, opcode.SET_1_B, opcode.SET_2_B, opcode.SET_3_B, opcode.SET_4_B, opcode.SET_5_B, opcode.SET_6_B, opcode.SET_7_B},
	{opcode.SET_0_C, opcode.SET_1_C, opcode.SET_2_C, opcode.SET_3_C, opcode.SET_4_C, opcode.SET_5_C, opcode.SET_6_C, opcode.SET_7_C},
	{opcode.SET_0_D, opcode.SET_1_D, opcode.SET_2_D, opcode.SET_3_D, opcode.SET_4_D, opcode.SET_5_D, opcode.SET_6_D, opcode.SET_7_D},
	{opcode.SET_0_E, opcode.SET_1_E, opcode.SET_2_E, opcode.SET_3_E, opcode.SET_4_E, opcode.SET_5_E, opcode.SET_6_E, opcode.SET_7_E},
	{opcode.SET_0_H, opcode.SET_1_H, opcode.SET_2_H, opcode.SET_3_H, opcode.SET_4_H, opcode.SET_5_H, opcode.SET_6_H, opcode.SET_7_H},
	{opcode.SET_0_L, opcode.SET_1_L, opcode.SET_2_L, opcode.SET_3_L, opcode.SET_4_L, opcode.SET_5_L, opcode.SET_6_L, opcode.SET_7_L},
	{opcode.SET_0_HLI, opcode.SET_1_HLI, opcode.SET_2_HLI, opcode.SET_3_HLI, opcode.SET_4_HLI, opcode.SET_5_HLI, opcode.SET_6_HLI, opcode.SET_7_HLI},
}

// execBitCB dispatches BIT/RES/SET n, {A,B,C,D,E,H,L,(HL)} by table lookup
// instead of a 192-case switch — same technique the catalog uses to build
// these opcodes' mnemonics. Reports whether op was one of its own.
func execBitCB(s *State, m *mem.Memory, op opcode.OpCode) bool {
	for reg := 0; reg < 8; reg++ {
		for bit := 0; bit < 8; bit++ {
			switch op {
			case bitTable[reg][bit]:
				if reg == 7 {
					execBit(&s.Main.F, m.Read8(s.Main.HL()), uint8(bit))
				} else {
					execBit(&s.Main.F, *regSlotPlain(s, reg), uint8(bit))
				}
				return true
			case resTable[reg][bit]:
				applyBitOp(s, m, reg, func(v uint8) uint8 { return execRes(v, uint8(bit)) })
				return true
			case setTable[reg][bit]:
				applyBitOp(s, m, reg, func(v uint8) uint8 { return execSet(v, uint8(bit)) })
				return true
			}
		}
	}
	return false
}

// regSlotPlain returns a pointer to the register for reg index 0..6 (A,B,C,D,E,H,L).
func regSlotPlain(s *State, reg int) *uint8 {
	r := &s.Main
	switch reg {
	case 0:
		return &r.A
	case 1:
		return &r.B
	case 2:
		return &r.C
	case 3:
		return &r.D
	case 4:
		return &r.E
	case 5:
		return &r.H
	case 6:
		return &r.L
	}
	panic("cpu: invalid register slot")
}

func applyBitOp(s *State, m *mem.Memory, reg int, f func(uint8) uint8) {
	if reg == 7 {
		addr := s.Main.HL()
		m.Write8(addr, f(m.Read8(addr)))
		return
	}
	p := regSlotPlain(s, reg)
	*p = f(*p)
}

// execBit implements BIT n, r: test bit n, set flags, leave r untouched.
func execBit(f *uint8, r uint8, bit uint8) {
	*f = (*f & FlagC) | FlagH | (r & (FlagX | FlagY))
	if r&(1<<bit) == 0 {
		*f |= FlagP | FlagZ
	}
	if bit == 7 && r&0x80 != 0 {
		*f |= FlagS
	}
}

// execRes clears bit n of r. No flags change.
func execRes(r uint8, bit uint8) uint8 { return r &^ (1 << bit) }

// execSet sets bit n of r. No flags change.
func execSet(r uint8, bit uint8) uint8 { return r | (1 << bit) }
