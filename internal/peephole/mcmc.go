package peephole

import (
	"math"
	"math/rand/v2"
)

// Chain is a single Metropolis-Hastings MCMC chain with simulated
// annealing, searching for a shorter sequence equivalent to target.
type Chain struct {
	current     []Instruction
	best        []Instruction
	cost        int
	bestCost    int
	temperature float64
	rng         *rand.Rand
	mutator     *Mutator
	target      []Instruction
	targetBytes int
	deadFlags   uint8

	Accepted int64
	Rejected int64
}

// NewChain starts a chain at the target sequence itself and anneals from
// there.
func NewChain(target []Instruction, temperature float64, seed uint64) *Chain {
	rng := rand.New(rand.NewPCG(seed, seed^0xDEADBEEF))
	maxLen := len(target) + 2
	if maxLen < 10 {
		maxLen = 10
	}
	current := copySeq(target)
	cost := Cost(target, current)

	return &Chain{
		current:     current,
		best:        copySeq(current),
		cost:        cost,
		bestCost:    cost,
		temperature: temperature,
		rng:         rng,
		mutator:     NewMutator(rng, maxLen),
		target:      target,
		targetBytes: SeqByteSize(target),
	}
}

// Step performs one mutate/evaluate/accept-or-reject iteration and returns
// whether the proposal was accepted.
func (c *Chain) Step(decay float64) bool {
	candidate := c.mutator.Mutate(c.current)
	newCost := CostMasked(c.target, candidate, c.deadFlags)
	delta := newCost - c.cost

	accepted := delta <= 0
	if !accepted && c.temperature > 0 {
		accepted = c.rng.Float64() < math.Exp(-float64(delta)/c.temperature)
	}

	if accepted {
		c.current = candidate
		c.cost = newCost
		c.Accepted++
		if newCost < c.bestCost {
			c.best = copySeq(candidate)
			c.bestCost = newCost
		}
	} else {
		c.Rejected++
	}

	c.temperature *= decay
	return accepted
}

// Best returns the lowest-cost candidate seen so far and its cost.
func (c *Chain) Best() ([]Instruction, int) { return c.best, c.bestCost }

// Current returns the chain's present candidate and its cost.
func (c *Chain) Current() ([]Instruction, int) { return c.current, c.cost }

// IsShorter reports whether the best candidate encodes to fewer bytes than
// the target.
func (c *Chain) IsShorter() bool {
	return SeqByteSize(c.best) < c.targetBytes
}
