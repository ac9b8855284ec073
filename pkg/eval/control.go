package eval

import (
	"github.com/source-academy/scm-slang/pkg/eval/errs"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
	"github.com/source-academy/scm-slang/pkg/parse"
)

// controlItem is either a node to evaluate or an instruction to execute.
// Exactly one of the fields is set.
type controlItem struct {
	node  parse.Node
	instr instr
}

func (it controlItem) String() string {
	if it.instr != nil {
		return it.instr.String()
	}
	return describeNode(it.node)
}

// Control is the stack of pending work.
type Control struct {
	items []controlItem
}

func (c *Control) pushNode(n parse.Node) {
	c.items = append(c.items, controlItem{node: n})
}

func (c *Control) pushInstr(i instr) {
	c.items = append(c.items, controlItem{instr: i})
}

// pushNodes pushes ns so that they are popped in order.
func (c *Control) pushNodes(ns []parse.Node) {
	for i := len(ns) - 1; i >= 0; i-- {
		c.pushNode(ns[i])
	}
}

func (c *Control) pop() controlItem {
	it := c.items[len(c.items)-1]
	c.items[len(c.items)-1] = controlItem{}
	c.items = c.items[:len(c.items)-1]
	return it
}

// topIsRestoreEnv reports whether the next item is an environment restoration.
func (c *Control) topIsRestoreEnv() bool {
	if len(c.items) == 0 {
		return false
	}
	_, ok := c.items[len(c.items)-1].instr.(restoreEnvInstr)
	return ok
}

// Len returns the number of pending items.
func (c *Control) Len() int { return len(c.items) }

// Stash is the stack of intermediate values.
type Stash struct {
	values []vals.Value
}

func (s *Stash) push(v vals.Value) {
	s.values = append(s.values, v)
}

func (s *Stash) pop() vals.Value {
	if len(s.values) == 0 {
		panic(errs.InternalError{Message: "stash underflow"})
	}
	v := s.values[len(s.values)-1]
	s.values[len(s.values)-1] = nil
	s.values = s.values[:len(s.values)-1]
	return v
}

// popN pops n values and returns them in the order they were pushed.
func (s *Stash) popN(n int) []vals.Value {
	if len(s.values) < n {
		panic(errs.InternalError{Message: "stash underflow"})
	}
	vs := make([]vals.Value, n)
	copy(vs, s.values[len(s.values)-n:])
	for i := len(s.values) - n; i < len(s.values); i++ {
		s.values[i] = nil
	}
	s.values = s.values[:len(s.values)-n]
	return vs
}

// Len returns the number of values on the stash.
func (s *Stash) Len() int { return len(s.values) }
