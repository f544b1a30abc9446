package peephole

import (
	"math/rand/v2"
	"runtime"
	"sync"
)

// Config governs one Search call: how many independent chains to run, for
// how long, and over what target.
type Config struct {
	Target     []Instruction
	Chains     int     // goroutines; 0 means runtime.NumCPU()
	Iterations int     // MCMC steps per chain
	Decay      float64 // temperature decay per step
	DeadFlags  uint8   // flag bits to ignore when judging equivalence
}

// Found is one verified replacement, tagged with which chain and iteration
// produced it.
type Found struct {
	Rule    Rule
	ChainID int
	Iter    int
}

// Search fans cfg.Chains independent MCMC chains across a worker pool (one
// goroutine per chain, bounded by NumCPU by default) and collects every
// sampled-equivalent, strictly-shorter replacement any chain lands on. This
// is a sampled check, not a proof: a Found result means the candidate
// matched the target across every seed state in seedStates, not that no
// input anywhere could tell them apart.
func Search(cfg Config) []Found {
	if cfg.Chains <= 0 {
		cfg.Chains = runtime.NumCPU()
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 100_000
	}
	if cfg.Decay <= 0 || cfg.Decay >= 1 {
		cfg.Decay = 0.9999
	}

	targetBytes := SeqByteSize(cfg.Target)
	targetCycles := SeqTStates(cfg.Target)

	var mu sync.Mutex
	var found []Found
	var wg sync.WaitGroup

	baseSeed := rand.Uint64()

	for i := 0; i < cfg.Chains; i++ {
		wg.Add(1)
		go func(chainID int) {
			defer wg.Done()

			seed := baseSeed + uint64(chainID)*0x9E3779B97F4A7C15
			chain := NewChain(cfg.Target, 1.0, seed)
			chain.deadFlags = cfg.DeadFlags

			for iter := 0; iter < cfg.Iterations; iter++ {
				chain.Step(cfg.Decay)

				best, bestCost := chain.Best()
				if bestCost >= 1000 || !chain.IsShorter() {
					continue
				}

				var deadFlags uint8
				if cfg.DeadFlags != 0 {
					deadFlags = FlagDiff(cfg.Target, best)
				}

				candBytes := SeqByteSize(best)
				candCycles := SeqTStates(best)
				r := Found{
					Rule: Rule{
						Source:      copySeq(cfg.Target),
						Replacement: copySeq(best),
						BytesSaved:  targetBytes - candBytes,
						CyclesSaved: targetCycles - candCycles,
						DeadFlags:   deadFlags,
					},
					ChainID: chainID,
					Iter:    iter,
				}

				mu.Lock()
				found = append(found, r)
				mu.Unlock()

				// Reset and keep exploring: one hit doesn't mean this
				// chain has exhausted what it can find.
				chain = NewChain(cfg.Target, 1.0, seed+uint64(iter))
				chain.deadFlags = cfg.DeadFlags
			}
		}(i)
	}

	wg.Wait()
	return found
}

// Deduplicate drops repeated replacements, keeping the first occurrence.
func Deduplicate(found []Found) []Found {
	seen := make(map[string]bool)
	var out []Found
	for _, f := range found {
		key := seqKey(f.Rule.Replacement)
		if !seen[key] {
			seen[key] = true
			out = append(out, f)
		}
	}
	return out
}

func seqKey(seq []Instruction) string {
	key := make([]byte, 0, len(seq)*4)
	for _, i := range seq {
		key = append(key, byte(i.Op>>8), byte(i.Op), byte(i.Imm>>8), byte(i.Imm))
	}
	return string(key)
}
