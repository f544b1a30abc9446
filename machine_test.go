package z80

import (
	"testing"

	"github.com/retrocore/z80vm/internal/cpu"
	"github.com/retrocore/z80vm/internal/opcode"
	"github.com/stretchr/testify/assert"
)

func TestLoadBCThenHalt(t *testing.T) {
	m := New()
	assert.True(t, m.Load([]byte{0x01, 0x34, 0x12, 0x76}))
	m.Start()

	assert.Equal(t, uint16(0x1234), m.Read16(cpu.PairBC))
	assert.Equal(t, uint16(3), m.PC())
	assert.True(t, m.Halted())
}

func TestIncAWrapsToZero(t *testing.T) {
	m := New()
	m.Load([]byte{0x3E, 0xFF, 0x3C, 0x76})
	m.Start()

	assert.Equal(t, uint8(0x00), m.Read8(cpu.RegA))
	f := m.Read8(cpu.RegF)
	assert.NotZero(t, f&cpu.FlagZ)
	assert.Zero(t, f&cpu.FlagS)
	assert.NotZero(t, f&cpu.FlagH)
	assert.Zero(t, f&cpu.FlagP)
	assert.Zero(t, f&cpu.FlagC)
	assert.True(t, m.Halted())
}

func TestAddAOverflowsIntoSign(t *testing.T) {
	m := New()
	m.Load([]byte{0x3E, 0x7F, 0x80, 0x76})
	m.Write8(cpu.RegB, 0x01)
	m.Start()

	assert.Equal(t, uint8(0x80), m.Read8(cpu.RegA))
	f := m.Read8(cpu.RegF)
	assert.NotZero(t, f&cpu.FlagS)
	assert.Zero(t, f&cpu.FlagZ)
	assert.NotZero(t, f&cpu.FlagH)
	assert.NotZero(t, f&cpu.FlagP)
	assert.Zero(t, f&cpu.FlagC)
	assert.Zero(t, f&cpu.FlagN)
}

func TestJumpLandsOnHalt(t *testing.T) {
	m := New()
	m.Load([]byte{0xC3, 0x05, 0x00, 0x00, 0x00, 0x76})
	before := m.Read8(cpu.RegF)
	m.Start()

	assert.Equal(t, uint16(5), m.PC())
	assert.True(t, m.Halted())
	assert.Equal(t, before, m.Read8(cpu.RegF))
}

func TestDecJrNzLoop(t *testing.T) {
	m := New()
	// LD B,3; DEC B; JR NZ,-2; HALT
	m.Load([]byte{0x06, 0x03, 0x05, 0x20, 0xFE, 0x76})
	m.Start()

	assert.Equal(t, uint8(0), m.Read8(cpu.RegB))
	assert.True(t, m.Halted())
}

func TestPushPopRoundTrip(t *testing.T) {
	m := New()
	m.Load([]byte{0x31, 0x00, 0x80, 0x21, 0xCD, 0xAB, 0xE5, 0xE1, 0x76})
	m.Start()

	assert.Equal(t, uint16(0xABCD), m.Read16(cpu.PairHL))
	assert.Equal(t, uint16(0x8000), m.SP())
	assert.Equal(t, uint8(0xCD), m.RAM.Read8(0x7FFE))
	assert.Equal(t, uint8(0xAB), m.RAM.Read8(0x7FFF))
}

func TestCallReturnsSPAndPC(t *testing.T) {
	m := New()
	// LD SP,0x8000; CALL 0x0008; HALT; ...; (0x0008) RET
	asm := []byte{
		0x31, 0x00, 0x80, // LD SP, 0x8000
		0xCD, 0x08, 0x00, // CALL 0x0008
		0x76,             // HALT  (PC=6 after CALL)
		0x00,             // padding byte at 0x0007
		0xC9,             // RET   at 0x0008
	}
	m.Load(asm)
	m.Start()

	assert.Equal(t, uint16(0x8000), m.SP())
	assert.Equal(t, uint16(6), m.PC())
	assert.True(t, m.Halted())
}

func TestCallbackFiringOrder(t *testing.T) {
	m := New()
	m.Load([]byte{0x00, 0x00, 0x76})

	var order []string
	cb := NewCallbacks()
	cb.OnBeforeFetch(func(*Machine) { order = append(order, "before_fetch") })
	cb.OnBeforeExec(func(*Machine, opcode.OpCode) { order = append(order, "before_exec") })
	cb.OnAfterExec(func(*Machine, opcode.OpCode) { order = append(order, "after_exec") })
	cb.OnBeforeExecMatch(opcode.NOP, func(*Machine, opcode.OpCode) { order = append(order, "before_exec_match") })
	cb.OnAfterExecMatch(opcode.NOP, func(*Machine, opcode.OpCode) { order = append(order, "after_exec_match") })

	m.StartWithOptions(0, cb)

	assert.Equal(t, []string{
		"before_fetch", "before_exec_match", "before_exec", "after_exec", "after_exec_match",
		"before_fetch", "before_exec_match", "before_exec", "after_exec", "after_exec_match",
		"before_fetch", "before_exec", "after_exec",
	}, order)
}

func TestStopFromHookEndsRunLoop(t *testing.T) {
	m := New()
	m.Load([]byte{0x00, 0x00, 0x00, 0x00, 0x76})

	steps := 0
	cb := NewCallbacks()
	cb.OnAfterExec(func(mm *Machine, op opcode.OpCode) {
		steps++
		if steps == 2 {
			mm.Stop()
		}
	})

	m.StartWithOptions(0, cb)

	assert.Equal(t, 2, steps)
	assert.False(t, m.Halted())
	assert.Equal(t, uint16(2), m.PC())
}

func TestPCOverflowDuringFetchWrapsAndStopsRunLoop(t *testing.T) {
	m := New()
	m.LoadAt([]byte{0x00}, 0xFFFF) // NOP at the last address
	m.StartAt(0xFFFF)

	assert.Equal(t, uint16(0), m.PC())
	assert.False(t, m.Halted(), "PC overflow stops the run loop, it does not HALT the CPU")
}

func TestDisassemble(t *testing.T) {
	m := New()
	m.Load([]byte{0x3E, 0x42, 0x76})
	assert.Equal(t, "LD A, 42h", m.Disassemble(0))
	assert.Equal(t, "HALT", m.Disassemble(2))
}
