package cpu

import (
	"testing"

	"github.com/retrocore/z80vm/internal/mem"
	"github.com/retrocore/z80vm/internal/opcode"
	"github.com/stretchr/testify/assert"
)

// newAt builds a fresh State/Memory pair with program loaded at address 0
// and PC pointing at it.
func newAt(program []byte) (*State, *mem.Memory) {
	m := mem.New()
	m.LoadAt(program, 0)
	s := &State{}
	return s, m
}

func TestIncACyclesThrough256Values(t *testing.T) {
	s, m := newAt([]byte{0x3C}) // INC A
	carryBefore := s.Main.F & FlagC
	for i := 0; i < 256; i++ {
		s.PC = 0
		Step(s, m)
		want := uint8(i + 1)
		assert.Equal(t, want, s.Main.A)
		assert.Equal(t, want == 0, s.Main.F&FlagZ != 0, "Z at iter %d", i)
		assert.Equal(t, want >= 0x80, s.Main.F&FlagS != 0, "S at iter %d", i)
		assert.Equal(t, want&0x0F == 0, s.Main.F&FlagH != 0, "H at iter %d", i)
		assert.Equal(t, want == 0x80, s.Main.F&FlagP != 0, "P/V at iter %d", i)
		assert.Equal(t, carryBefore, s.Main.F&FlagC, "C unchanged at iter %d", i)
	}
}

func TestIncBCCyclesThrough65536ValuesNoFlags(t *testing.T) {
	s, m := newAt([]byte{0x03}) // INC BC
	fBefore := s.Main.F
	for i := 0; i < 65536; i++ {
		s.PC = 0
		Step(s, m)
		assert.Equal(t, uint16(i+1), s.Main.BC())
		assert.Equal(t, fBefore, s.Main.F)
	}
}

func TestAddABMatchesIncAProgressionPlusCarry(t *testing.T) {
	s, m := newAt([]byte{0x80}) // ADD A, B
	s.Main.B = 1
	for i := 0; i < 256; i++ {
		s.PC = 0
		Step(s, m)
		want := uint8(i + 1)
		assert.Equal(t, want, s.Main.A)
		assert.Equal(t, want == 0, s.Main.F&FlagC != 0, "C at iter %d", i)
	}
}

func TestJPConditionalTakenVsNotTaken(t *testing.T) {
	cases := []struct {
		op   opcode.OpCode
		flag uint8
	}{
		{opcode.JP_NZ_NN, FlagZ},
		{opcode.JP_Z_NN, FlagZ},
		{opcode.JP_NC_NN, FlagC},
		{opcode.JP_C_NN, FlagC},
	}
	for _, tc := range cases {
		s, m := newAt([]byte{0, 0, 0}) // placeholder, opcode byte patched below
		m.Write8(0, byteOf(tc.op))
		m.Write16(1, 0xBEEF)
		s.Main.F = 0 // condition-governing flag clear
		Step(s, m)
		wantTaken := tc.op == opcode.JP_NZ_NN || tc.op == opcode.JP_NC_NN
		if wantTaken {
			assert.Equal(t, uint16(0xBEEF), s.PC, "%v with flag clear", tc.op)
		} else {
			assert.Equal(t, uint16(3), s.PC, "%v with flag clear", tc.op)
		}
	}
}

// byteOf returns op's single leading encoding byte (all JP cc,nn forms are
// one byte long).
func byteOf(op opcode.OpCode) uint8 {
	return opcode.Catalog[op].Bytes[0]
}

func TestCallThenRetRestoresPCAndSP(t *testing.T) {
	s, m := newAt(nil)
	s.SP = 0x8000
	s.PC = 0x1000
	m.Write8(0x1000, byteOf(opcode.CALL_NN))
	m.Write16(0x1001, 0x2000)
	m.Write8(0x2000, byteOf(opcode.RET))

	Step(s, m) // CALL 0x2000
	assert.Equal(t, uint16(0x2000), s.PC)
	assert.Equal(t, uint16(0x7FFE), s.SP)
	assert.Equal(t, uint16(0x1003), m.Read16(0x7FFE))

	Step(s, m) // RET
	assert.Equal(t, uint16(0x1003), s.PC)
	assert.Equal(t, uint16(0x8000), s.SP)
}

func TestPushPopRoundTripsBitPattern(t *testing.T) {
	s, m := newAt(nil)
	s.SP = 0x8000
	s.PC = 0
	m.Write8(0, byteOf(opcode.PUSH_HL))
	m.Write8(1, byteOf(opcode.POP_DE))
	s.Main.SetHL(0xCAFE)

	Step(s, m)
	Step(s, m)

	assert.Equal(t, uint16(0xCAFE), s.Main.DE())
	assert.Equal(t, uint16(0x8000), s.SP)
}

func TestStepReportsPCWrapOnOverflow(t *testing.T) {
	s, m := newAt(nil)
	s.PC = 0xFFFF
	m.Write8(0xFFFF, byteOf(opcode.NOP))

	_, _, wrapped := Step(s, m)
	assert.True(t, wrapped)
	assert.Equal(t, uint16(0), s.PC)
}

func TestStepDoesNotReportWrapWhenPCStaysInRange(t *testing.T) {
	s, m := newAt([]byte{0x00}) // NOP at 0
	_, _, wrapped := Step(s, m)
	assert.False(t, wrapped)
	assert.Equal(t, uint16(1), s.PC)
}

func TestStepReportsPCWrapForCBPrefixedTwoByteForm(t *testing.T) {
	s, m := newAt(nil)
	s.PC = 0xFFFE
	m.Write8(0xFFFE, 0xCB) // CB prefix
	m.Write8(0xFFFF, opcode.Catalog[opcode.RLC_B].Bytes[1])

	_, _, wrapped := Step(s, m)
	assert.True(t, wrapped, "0xFFFE + 2-byte CB form advances PC past 0xFFFF")
	assert.Equal(t, uint16(0), s.PC)
}

func TestHaltFreezesPCAtOwnAddress(t *testing.T) {
	s, m := newAt([]byte{0x00, 0x76}) // NOP, HALT
	s.PC = 0
	Step(s, m)
	assert.Equal(t, uint16(1), s.PC)
	Step(s, m)
	assert.True(t, s.Halted())
	assert.Equal(t, uint16(1), s.PC)

	pcBefore := s.PC
	Step(s, m)
	assert.Equal(t, pcBefore, s.PC)
}
