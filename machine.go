// Package z80 implements an interpreter for an 8-bit microprocessor in the
// Z80 family: a 64KiB byte-addressable memory, a dual-bank register file
// with exchange, fetch/decode/dispatch, and a callback registry for
// observing or driving execution from tests and debuggers.
package z80

import (
	"github.com/retrocore/z80vm/internal/cpu"
	"github.com/retrocore/z80vm/internal/mem"
	"github.com/retrocore/z80vm/internal/opcode"
)

// Machine owns one CPU, one memory, and the run-loop flag that governs
// Start/StartAt. There is no shared mutable state outside a Machine; the
// whole thing belongs to one caller at a time.
type Machine struct {
	CPU       cpu.State
	RAM       mem.Memory
	callbacks *Callbacks
	run       bool
}

// New returns a Machine with a zeroed register file and a zeroed 64KiB
// memory, both halted-false and ready to Load/Start.
func New() *Machine {
	return &Machine{callbacks: NewCallbacks()}
}

// Load copies program into memory at address 0. Reports false, without
// modifying memory, if the program would not fit.
func (m *Machine) Load(program []byte) bool {
	return m.LoadAt(program, 0)
}

// LoadAt copies program into memory starting at addr. Reports false,
// without modifying memory, if the program would cross 0xFFFF.
func (m *Machine) LoadAt(program []byte, addr uint16) bool {
	return m.RAM.LoadAt(program, addr)
}

// Start runs from address 0 until halted or Stop is called from a hook.
func (m *Machine) Start() {
	m.StartAt(0)
}

// StartAt sets PC to address, clears halted, and runs the fetch-decode-
// execute loop until the CPU halts or a hook calls Stop.
func (m *Machine) StartAt(address uint16) {
	m.StartWithOptions(address, m.callbacks)
}

// StartWithOptions is StartAt with an explicit callback registry, letting a
// caller swap in a fresh set of hooks (or nil, for none) without mutating
// the Machine's default registry.
func (m *Machine) StartWithOptions(address uint16, callbacks *Callbacks) {
	if callbacks == nil {
		callbacks = NewCallbacks()
	}
	m.callbacks = callbacks
	m.CPU.Unhalt()
	m.CPU.PC = address
	m.run = true
	for m.run {
		m.step()
		if m.CPU.Halted() {
			m.run = false
		}
	}
}

// Stop breaks the run loop after the current step retires; post-step hooks
// for that step still fire. Intended to be called from within a hook.
func (m *Machine) Stop() {
	m.run = false
}

// Execute performs exactly one fetch-decode-execute step, firing hooks in
// the documented order, and returns the T-states consumed. Callers driving
// single-step execution (a debugger, a test) use this directly instead of
// Start/StartAt.
func (m *Machine) Execute() int {
	return m.step()
}

// step is the one true step implementation shared by the run loop and the
// public single-step entry point. Firing order: before_fetch -> per-opcode
// before_exec -> global before_exec -> handler -> global after_exec ->
// per-opcode after_exec.
func (m *Machine) step() int {
	cb := m.callbacks
	cb.fireBeforeFetch(m)

	op := cpu.Decode(&m.CPU, &m.RAM)
	cb.fireBeforeExecMatch(m, op)
	cb.fireBeforeExec(m, op)

	_, tstates, pcWrapped := cpu.Step(&m.CPU, &m.RAM)
	if pcWrapped {
		// PC already wrapped to 0x0000 inside Step; stop the run loop too,
		// since execution past the end of memory has no defined semantics.
		m.Stop()
	}

	cb.fireAfterExec(m, op)
	cb.fireAfterExecMatch(m, op)
	return tstates
}

// Callbacks returns the Machine's current callback registry, for
// registering hooks before calling Start/StartAt/Execute.
func (m *Machine) Callbacks() *Callbacks {
	return m.callbacks
}

// Read8/Write8/Read16/Write16 expose the register file through the
// RegID/PairID selectors internal/cpu defines, the idiomatic Go stand-in
// for captured per-field accessor functions.
func (m *Machine) Read8(id cpu.RegID) uint8        { return m.CPU.Read8(id) }
func (m *Machine) Write8(id cpu.RegID, v uint8)    { m.CPU.Write8(id, v) }
func (m *Machine) Read16(id cpu.PairID) uint16     { return m.CPU.Read16(id) }
func (m *Machine) Write16(id cpu.PairID, v uint16) { m.CPU.Write16(id, v) }

// PC and SP are exposed directly since nearly every caller (debugger,
// tests, disassembler) wants them without going through a selector.
func (m *Machine) PC() uint16 { return m.CPU.PC }
func (m *Machine) SP() uint16 { return m.CPU.SP }

// Halted reports whether the CPU has executed HALT.
func (m *Machine) Halted() bool { return m.CPU.Halted() }

// Disassemble renders the instruction at addr as a mnemonic string, for
// debuggers and trace output. It does not advance PC or mutate state.
func (m *Machine) Disassemble(addr uint16) string {
	saved := m.CPU.PC
	m.CPU.PC = addr
	op := cpu.Decode(&m.CPU, &m.RAM)
	m.CPU.PC = saved

	var imm uint16
	switch {
	case opcode.HasImm16(op):
		imm = m.RAM.Read16(addr + uint16(opcode.ByteSize(op)-2))
	case opcode.HasImmediate(op):
		imm = uint16(m.RAM.Read8(addr + uint16(opcode.ByteSize(op)-1)))
	}
	return opcode.Disassemble(op, imm)
}
