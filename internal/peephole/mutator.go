package peephole

import (
	"math/rand/v2"

	"github.com/retrocore/z80vm/internal/opcode"
)

// Mutator applies random mutations to instruction sequences, the move set
// an MCMC chain proposes from at each step.
type Mutator struct {
	rng    *rand.Rand
	maxLen int
}

// NewMutator builds a Mutator bounded to sequences of at most maxLen
// instructions.
func NewMutator(rng *rand.Rand, maxLen int) *Mutator {
	return &Mutator{rng: rng, maxLen: maxLen}
}

// Mutate applies one randomly chosen mutation to seq and returns a new
// slice; seq itself is never modified.
func (m *Mutator) Mutate(seq []Instruction) []Instruction {
	// 40% replace, 20% swap, 20% delete, 10% insert, 10% change-immediate
	switch r := m.rng.IntN(100); {
	case r < 40:
		return m.ReplaceInstruction(seq)
	case r < 60:
		return m.SwapInstructions(seq)
	case r < 80:
		return m.DeleteInstruction(seq)
	case r < 90:
		return m.InsertInstruction(seq)
	default:
		return m.ChangeImmediate(seq)
	}
}

// ReplaceInstruction swaps one instruction for a random candidate.
func (m *Mutator) ReplaceInstruction(seq []Instruction) []Instruction {
	out := copySeq(seq)
	if len(out) == 0 {
		return append(out, m.randomInstruction())
	}
	out[m.rng.IntN(len(out))] = m.randomInstruction()
	return out
}

// SwapInstructions exchanges two adjacent instructions.
func (m *Mutator) SwapInstructions(seq []Instruction) []Instruction {
	out := copySeq(seq)
	if len(out) < 2 {
		return out
	}
	pos := m.rng.IntN(len(out) - 1)
	out[pos], out[pos+1] = out[pos+1], out[pos]
	return out
}

// DeleteInstruction removes one instruction, if seq has more than one.
func (m *Mutator) DeleteInstruction(seq []Instruction) []Instruction {
	if len(seq) <= 1 {
		return copySeq(seq)
	}
	pos := m.rng.IntN(len(seq))
	out := make([]Instruction, 0, len(seq)-1)
	out = append(out, seq[:pos]...)
	out = append(out, seq[pos+1:]...)
	return out
}

// InsertInstruction adds a random instruction at a random position, unless
// seq is already at the length cap (falls back to replace).
func (m *Mutator) InsertInstruction(seq []Instruction) []Instruction {
	if len(seq) >= m.maxLen {
		return m.ReplaceInstruction(seq)
	}
	pos := m.rng.IntN(len(seq) + 1)
	out := make([]Instruction, 0, len(seq)+1)
	out = append(out, seq[:pos]...)
	out = append(out, m.randomInstruction())
	out = append(out, seq[pos:]...)
	return out
}

// ChangeImmediate rerolls the immediate operand of a randomly picked
// instruction that carries one; falls back to ReplaceInstruction if seq
// has no immediate-bearing instruction.
func (m *Mutator) ChangeImmediate(seq []Instruction) []Instruction {
	var immPos []int
	for i, instr := range seq {
		if opcode.HasImmediate(instr.Op) {
			immPos = append(immPos, i)
		}
	}
	if len(immPos) == 0 {
		return m.ReplaceInstruction(seq)
	}
	out := copySeq(seq)
	pos := immPos[m.rng.IntN(len(immPos))]
	if opcode.HasImm16(out[pos].Op) {
		out[pos].Imm = uint16(m.rng.IntN(65536))
	} else {
		out[pos].Imm = uint16(m.rng.IntN(256))
	}
	return out
}

func (m *Mutator) randomInstruction() Instruction {
	ops := AllOps()
	op := ops[m.rng.IntN(len(ops))]
	var imm uint16
	switch {
	case opcode.HasImm16(op):
		imm = uint16(m.rng.IntN(65536))
	case opcode.HasImmediate(op):
		imm = uint16(m.rng.IntN(256))
	}
	return Instruction{Op: op, Imm: imm}
}

func copySeq(seq []Instruction) []Instruction {
	out := make([]Instruction, len(seq))
	copy(out, seq)
	return out
}
