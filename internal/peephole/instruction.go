// Package peephole is a companion search tool, not part of the interpreter
// core: it looks for shorter register-only instruction sequences that are
// equivalent to a given target sequence, verifying equivalence by running
// both through the real internal/cpu dispatcher over a set of seeded
// register states rather than by static analysis.
package peephole

import (
	"strings"

	"github.com/retrocore/z80vm/internal/opcode"
)

// Instruction is one opcode plus whatever immediate operand it carries.
// Imm is ignored by SeqByteSize/execSeq for opcodes that take none.
type Instruction struct {
	Op  opcode.OpCode
	Imm uint16
}

// Disassemble renders a single instruction as text.
func Disassemble(i Instruction) string {
	return opcode.Disassemble(i.Op, i.Imm)
}

// SeqByteSize returns the total encoded length of seq in bytes.
func SeqByteSize(seq []Instruction) int {
	n := 0
	for _, i := range seq {
		n += opcode.ByteSize(i.Op)
	}
	return n
}

// SeqTStates returns the total T-state cost of seq.
func SeqTStates(seq []Instruction) int {
	n := 0
	for _, i := range seq {
		n += opcode.TStates(i.Op)
	}
	return n
}

// isStackOrControlFlow reports whether op moves the program counter, grows
// or shrinks the stack, or exchanges a register bank — anything that can't
// be reasoned about as a pure function of (registers in) -> (registers
// out) over a fixed-length straight-line run.
func isStackOrControlFlow(op opcode.OpCode) bool {
	m := opcode.Catalog[op].Mnemonic
	for _, prefix := range []string{"JP", "JR", "CALL", "RET", "PUSH", "POP", "EX", "HALT", "DJNZ"} {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}

// candidateOp reports whether op belongs in the peephole search space: a
// register/immediate-only operation with no memory or control-flow effect.
func candidateOp(op opcode.OpCode) bool {
	if op == opcode.UNKNOWN || op == opcode.NOP {
		return false
	}
	if opcode.UsesMemory(op) || isStackOrControlFlow(op) {
		return false
	}
	return true
}

var (
	allOps      []opcode.OpCode
	nonImmOps   []opcode.OpCode
	imm8Ops     []opcode.OpCode
	imm16OpList []opcode.OpCode
)

func init() {
	for op := opcode.OpCode(0); op < opcode.OpCodeCount; op++ {
		if !candidateOp(op) {
			continue
		}
		allOps = append(allOps, op)
		switch {
		case opcode.HasImm16(op):
			imm16OpList = append(imm16OpList, op)
		case opcode.HasImmediate(op):
			imm8Ops = append(imm8Ops, op)
		default:
			nonImmOps = append(nonImmOps, op)
		}
	}
}

// AllOps returns every candidate opcode the search space admits.
func AllOps() []opcode.OpCode { return allOps }

// NonImmediateOps returns candidate opcodes with no operand byte.
func NonImmediateOps() []opcode.OpCode { return nonImmOps }

// ImmediateOps returns candidate opcodes with an 8-bit immediate.
func ImmediateOps() []opcode.OpCode { return imm8Ops }

// Imm16Ops returns candidate opcodes with a 16-bit immediate.
func Imm16Ops() []opcode.OpCode { return imm16OpList }
