package peephole

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/retrocore/z80vm/internal/cpu"
	"github.com/retrocore/z80vm/internal/opcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfEquivalenceIsZeroMismatches(t *testing.T) {
	seq := []Instruction{{Op: opcode.INC_A}}
	assert.Equal(t, 0, Mismatches(seq, seq))
	assert.Less(t, Cost(seq, seq), 1000)
}

// INC A and ADD A, 1 compute identical S/Z/H/P/V/N bits; they diverge only
// in the carry flag, which INC leaves untouched and ADD recomputes. Masking
// FlagC out of the comparison makes the pair fully equivalent.
func TestIncAndAddOneDivergeOnlyOnCarry(t *testing.T) {
	target := []Instruction{{Op: opcode.INC_A}}
	candidate := []Instruction{{Op: opcode.ADD_A_N, Imm: 1}}

	assert.Equal(t, 3, Mismatches(target, candidate))
	assert.Equal(t, 0, MismatchesMasked(target, candidate, cpu.FlagC))
	assert.Equal(t, uint8(cpu.FlagC), FlagDiff(target, candidate))
}

func TestCostPenalizesMismatchesSizeAndCycles(t *testing.T) {
	target := []Instruction{{Op: opcode.INC_A}}
	candidate := []Instruction{{Op: opcode.ADD_A_N, Imm: 1}}

	assert.Equal(t, 3002, Cost(target, candidate))
	assert.Equal(t, 2, CostMasked(target, candidate, cpu.FlagC))
}

func TestCandidateOpsExcludeMemoryAndControlFlow(t *testing.T) {
	for _, op := range AllOps() {
		assert.False(t, opcode.UsesMemory(op), "%v should not touch memory", op)
		assert.False(t, isStackOrControlFlow(op), "%v should not be control flow/stack", op)
	}
	// spot check a few that must be excluded
	for _, op := range []opcode.OpCode{opcode.JP_NN, opcode.CALL_NN, opcode.RET, opcode.PUSH_HL, opcode.POP_BC, opcode.EXX, opcode.HALT, opcode.LD_A_HLI} {
		assert.NotContains(t, AllOps(), op)
	}
}

func TestMutatorNeverGrowsPastMaxLen(t *testing.T) {
	m := NewMutator(rand.New(rand.NewPCG(1, 2)), 3)
	seq := []Instruction{{Op: opcode.INC_A}, {Op: opcode.INC_B}, {Op: opcode.INC_C}}
	for i := 0; i < 50; i++ {
		seq = m.Mutate(seq)
		assert.LessOrEqual(t, len(seq), 3)
		assert.NotEmpty(t, seq)
	}
}

func TestChainNeverLosesItsBestCost(t *testing.T) {
	target := []Instruction{{Op: opcode.INC_A}, {Op: opcode.INC_A}}
	chain := NewChain(target, 1.0, 42)
	_, cost := chain.Best()
	for i := 0; i < 200; i++ {
		chain.Step(0.99)
		_, newBest := chain.Best()
		assert.LessOrEqual(t, newBest, cost)
		cost = newBest
	}
}

// Search is a randomized, sampled check, not a proof — this only asserts
// its invariants hold on whatever it happens to turn up, not that it turns
// up any particular replacement.
func TestSearchResultsAreAlwaysStrictlyShorterAndVerified(t *testing.T) {
	target := []Instruction{{Op: opcode.INC_A}, {Op: opcode.INC_B}, {Op: opcode.INC_C}}
	found := Deduplicate(Search(Config{Target: target, Chains: 2, Iterations: 5000}))
	for _, f := range found {
		assert.Less(t, SeqByteSize(f.Rule.Replacement), SeqByteSize(target))
		assert.Equal(t, 0, MismatchesMasked(target, f.Rule.Replacement, f.Rule.DeadFlags))
	}
}

func TestCheckpointRoundTripsThroughGob(t *testing.T) {
	table := NewTable()
	table.Add(Rule{
		Source:      []Instruction{{Op: opcode.INC_A}},
		Replacement: []Instruction{{Op: opcode.ADD_A_N, Imm: 1}},
		BytesSaved:  -1,
		CyclesSaved: -3,
		DeadFlags:   cpu.FlagC,
	})
	ckpt := &Checkpoint{Rules: table.Rules()}

	path := filepath.Join(t.TempDir(), "peephole.ckpt")
	require.NoError(t, SaveCheckpoint(path, ckpt))

	loaded, err := LoadCheckpoint(path)
	require.NoError(t, err)
	assert.Equal(t, ckpt.Rules, loaded.Rules)

	_, err = LoadCheckpoint(filepath.Join(t.TempDir(), "missing.ckpt"))
	assert.Error(t, err)
}
