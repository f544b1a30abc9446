package peephole

import (
	"encoding/gob"
	"os"
	"sort"
	"sync"

	"github.com/retrocore/z80vm/internal/opcode"
)

// Rule is a sampled-verified optimization: Replacement left the same
// register state as Source (outside DeadFlags, if set) on every seed state
// in seedStates.
type Rule struct {
	Source      []Instruction
	Replacement []Instruction
	BytesSaved  int
	CyclesSaved int
	DeadFlags   uint8
}

func init() {
	gob.Register(Instruction{})
	gob.Register(opcode.OpCode(0))
}

// Table collects rules discovered across concurrent chains.
type Table struct {
	mu    sync.Mutex
	rules []Rule
}

// NewTable returns an empty, concurrency-safe Table.
func NewTable() *Table { return &Table{} }

// Add records r.
func (t *Table) Add(r Rule) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rules = append(t.rules, r)
}

// Rules returns a copy of every recorded rule, largest byte saving first.
func (t *Table) Rules() []Rule {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	sort.Slice(out, func(i, j int) bool {
		if out[i].BytesSaved != out[j].BytesSaved {
			return out[i].BytesSaved > out[j].BytesSaved
		}
		return out[i].CyclesSaved > out[j].CyclesSaved
	})
	return out
}

// Len reports how many rules have been recorded.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rules)
}

// Checkpoint is the persisted unit of search output: the rules found so
// far. Search itself does not read a Checkpoint back in; each Search call
// starts from its target.
type Checkpoint struct {
	Rules []Rule
}

// SaveCheckpoint writes ckpt to path as gob.
func SaveCheckpoint(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint reads a Checkpoint previously written by SaveCheckpoint.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	return &ckpt, nil
}
