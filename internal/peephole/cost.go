package peephole

import (
	"github.com/retrocore/z80vm/internal/cpu"
	"github.com/retrocore/z80vm/internal/mem"
	"github.com/retrocore/z80vm/internal/opcode"
	"github.com/retrocore/z80vm/z80asm"
)

// RegState is the subset of machine state a register-only sequence can
// observe or change: the main register bank plus SP. PC and the shadow bank never
// enter the comparison — nothing in the candidate search space touches
// them.
type RegState struct {
	A, F, B, C, D, E, H, L uint8
	SP                     uint16
}

// seedStates are fixed inputs exercised on every cost evaluation: all-zero,
// all-one, an ascending pattern, and alternating bit patterns at both
// phases, the same shape of corpus a flag-table sweep would use to hit
// every carry/borrow/parity boundary at least once.
var seedStates = []RegState{
	{A: 0x00, F: 0x00, B: 0x00, C: 0x00, D: 0x00, E: 0x00, H: 0x00, L: 0x00, SP: 0x0000},
	{A: 0xFF, F: 0xFF, B: 0xFF, C: 0xFF, D: 0xFF, E: 0xFF, H: 0xFF, L: 0xFF, SP: 0xFFFF},
	{A: 0x01, F: 0x00, B: 0x02, C: 0x03, D: 0x04, E: 0x05, H: 0x06, L: 0x07, SP: 0x1234},
	{A: 0x80, F: 0x01, B: 0x40, C: 0x20, D: 0x10, E: 0x08, H: 0x04, L: 0x02, SP: 0x8000},
	{A: 0x55, F: 0x00, B: 0xAA, C: 0x55, D: 0xAA, E: 0x55, H: 0xAA, L: 0x55, SP: 0x5555},
	{A: 0xAA, F: 0x01, B: 0x55, C: 0xAA, D: 0x55, E: 0xAA, H: 0x55, L: 0xAA, SP: 0xAAAA},
	{A: 0x0F, F: 0x00, B: 0xF0, C: 0x0F, D: 0xF0, E: 0x0F, H: 0xF0, L: 0x0F, SP: 0xFFFE},
	{A: 0x7F, F: 0x01, B: 0x80, C: 0x7F, D: 0x80, E: 0x7F, H: 0x80, L: 0x7F, SP: 0x7FFF},
}

// assemble lays seq out as a byte image, leading instruction first.
func assemble(seq []Instruction) []byte {
	prog := z80asm.New()
	for _, i := range seq {
		switch {
		case opcode.HasImm16(i.Op):
			prog.AddParamWord(i.Op, i.Imm)
		case opcode.HasImmediate(i.Op):
			prog.AddParam(i.Op, uint8(i.Imm))
		default:
			prog.Add(i.Op)
		}
	}
	return prog.Raw()
}

// execSeq runs seq against a fresh interpreter seeded with initial and
// returns the resulting register state. Each call gets its own private
// State and Memory; nothing here is shared across goroutines.
func execSeq(initial RegState, seq []Instruction) RegState {
	m := mem.New()
	m.LoadAt(assemble(seq), 0)

	var s cpu.State
	s.Main.A, s.Main.F = initial.A, initial.F
	s.Main.B, s.Main.C = initial.B, initial.C
	s.Main.D, s.Main.E = initial.D, initial.E
	s.Main.H, s.Main.L = initial.H, initial.L
	s.SP = initial.SP
	s.PC = 0

	for i := 0; i < len(seq); i++ {
		cpu.Step(&s, m)
	}

	return RegState{
		A: s.Main.A, F: s.Main.F,
		B: s.Main.B, C: s.Main.C,
		D: s.Main.D, E: s.Main.E,
		H: s.Main.H, L: s.Main.L,
		SP: s.SP,
	}
}

// Mismatches counts seed states where target and candidate diverge.
func Mismatches(target, candidate []Instruction) int {
	return MismatchesMasked(target, candidate, 0)
}

// MismatchesMasked counts divergences while ignoring the flag bits set in
// deadFlags.
func MismatchesMasked(target, candidate []Instruction, deadFlags uint8) int {
	n := 0
	for _, seed := range seedStates {
		tOut := execSeq(seed, target)
		cOut := execSeq(seed, candidate)
		if !statesEqualMasked(tOut, cOut, deadFlags) {
			n++
		}
	}
	return n
}

func statesEqualMasked(a, b RegState, deadFlags uint8) bool {
	return a.A == b.A &&
		(a.F&^deadFlags) == (b.F&^deadFlags) &&
		a.B == b.B && a.C == b.C &&
		a.D == b.D && a.E == b.E &&
		a.H == b.H && a.L == b.L &&
		a.SP == b.SP
}

// Cost scores a candidate against a target: 1000 per mismatching seed
// state, plus encoded size, plus a small T-state penalty. A cost under
// 1000 means the candidate matched on every seed state.
func Cost(target, candidate []Instruction) int {
	return CostMasked(target, candidate, 0)
}

// CostMasked is Cost with deadFlags ignored in the comparison.
func CostMasked(target, candidate []Instruction, deadFlags uint8) int {
	mismatches := MismatchesMasked(target, candidate, deadFlags)
	return 1000*mismatches + SeqByteSize(candidate) + SeqTStates(candidate)/100
}

// FlagDiff reports which flag bits differ between target and candidate
// across every seed state, whether or not the other registers match — for
// a candidate that matches outside F, the mask a caller can declare "dead"
// for this rule.
func FlagDiff(target, candidate []Instruction) uint8 {
	var diff uint8
	for _, seed := range seedStates {
		tOut := execSeq(seed, target)
		cOut := execSeq(seed, candidate)
		diff |= tOut.F ^ cOut.F
	}
	return diff
}
