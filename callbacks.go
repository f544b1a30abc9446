package z80

import "github.com/retrocore/z80vm/internal/opcode"

// BeforeFetchFunc observes a Machine immediately before the next
// instruction's opcode byte is read.
type BeforeFetchFunc func(m *Machine)

// ExecFunc observes a Machine paired with the opcode about to run (for
// before hooks) or that just ran (for after hooks).
type ExecFunc func(m *Machine, op opcode.OpCode)

// Callbacks is the hook registry a Machine consults once per step. Hooks
// within one collection fire in registration order; across collections the
// order is fixed: before_fetch -> per-opcode before_exec -> global
// before_exec -> handler -> global after_exec -> per-opcode after_exec.
//
// Hooks may mutate the Machine, including calling Stop. They must never
// call back into Machine.Execute/Start/StartAt: the interpreter is
// strictly single-threaded and synchronous, and re-entering the dispatcher
// from within a hook is undefined behavior.
type Callbacks struct {
	beforeFetch []BeforeFetchFunc
	beforeExec  []ExecFunc
	afterExec   []ExecFunc

	beforeExecMatch map[opcode.OpCode][]ExecFunc
	afterExecMatch  map[opcode.OpCode][]ExecFunc
}

// NewCallbacks returns an empty registry.
func NewCallbacks() *Callbacks {
	return &Callbacks{
		beforeExecMatch: make(map[opcode.OpCode][]ExecFunc),
		afterExecMatch:  make(map[opcode.OpCode][]ExecFunc),
	}
}

// OnBeforeFetch registers a hook fired before the opcode byte is read.
func (c *Callbacks) OnBeforeFetch(f BeforeFetchFunc) {
	c.beforeFetch = append(c.beforeFetch, f)
}

// OnBeforeExec registers a hook fired after decode but before the opcode
// handler runs.
func (c *Callbacks) OnBeforeExec(f ExecFunc) {
	c.beforeExec = append(c.beforeExec, f)
}

// OnAfterExec registers a hook fired once the opcode handler has retired.
func (c *Callbacks) OnAfterExec(f ExecFunc) {
	c.afterExec = append(c.afterExec, f)
}

// OnBeforeExecMatch registers a hook that only fires when the decoded
// opcode equals op, ahead of the global before_exec collection.
func (c *Callbacks) OnBeforeExecMatch(op opcode.OpCode, f ExecFunc) {
	c.beforeExecMatch[op] = append(c.beforeExecMatch[op], f)
}

// OnAfterExecMatch registers a hook that only fires when the executed
// opcode equals op, behind the global after_exec collection.
func (c *Callbacks) OnAfterExecMatch(op opcode.OpCode, f ExecFunc) {
	c.afterExecMatch[op] = append(c.afterExecMatch[op], f)
}

func (c *Callbacks) fireBeforeFetch(m *Machine) {
	for _, f := range c.beforeFetch {
		f(m)
	}
}

func (c *Callbacks) fireBeforeExecMatch(m *Machine, op opcode.OpCode) {
	for _, f := range c.beforeExecMatch[op] {
		f(m, op)
	}
}

func (c *Callbacks) fireBeforeExec(m *Machine, op opcode.OpCode) {
	for _, f := range c.beforeExec {
		f(m, op)
	}
}

func (c *Callbacks) fireAfterExec(m *Machine, op opcode.OpCode) {
	for _, f := range c.afterExec {
		f(m, op)
	}
}

func (c *Callbacks) fireAfterExecMatch(m *Machine, op opcode.OpCode) {
	for _, f := range c.afterExecMatch[op] {
		f(m, op)
	}
}
