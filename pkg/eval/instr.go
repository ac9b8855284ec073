package eval

import (
	"fmt"

	"github.com/source-academy/scm-slang/pkg/eval/errs"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
	"github.com/source-academy/scm-slang/pkg/parse"
)

// instr is an instruction on the control stack. It holds what is left to do
// for a compound form once the values of its parts are on the stash.
type instr interface {
	exec(m *Machine)
	String() string
}

// firstError returns the first Error value in vs, if any.
func firstError(vs []vals.Value) (vals.Value, bool) {
	for _, v := range vs {
		if vals.IsError(v) {
			return v, true
		}
	}
	return nil, false
}

// Binds the value on the stash in the current frame.
type defineInstr struct{ name string }

func (i defineInstr) exec(m *Machine) {
	v := m.stash.pop()
	if vals.IsError(v) {
		m.stash.push(v)
		return
	}
	if c, ok := v.(*Closure); ok && c.Name == "" {
		c.Name = i.name
	}
	m.env.Define(i.name, v)
	m.stash.push(vals.Void{})
}

func (i defineInstr) String() string { return "define " + i.name }

// Assigns the value on the stash to an existing binding.
type setInstr struct{ name string }

func (i setInstr) exec(m *Machine) {
	v := m.stash.pop()
	if vals.IsError(v) {
		m.stash.push(v)
		return
	}
	if err := m.env.Set(i.name, v); err != nil {
		m.pushError(err)
		return
	}
	m.stash.push(vals.Void{})
}

func (i setInstr) String() string { return "set! " + i.name }

// Applies the operator on the stash to the n operands above it.
type appInstr struct {
	n   int
	src *parse.Application
}

func (i appInstr) exec(m *Machine) {
	vs := m.stash.popN(i.n + 1)
	if e, ok := firstError(vs); ok {
		m.stash.push(e)
		return
	}
	m.apply(vs[0], vs[1:])
}

func (i appInstr) String() string {
	if i.src == nil {
		return fmt.Sprintf("apply %d", i.n)
	}
	start := i.src.Start
	return fmt.Sprintf("apply %d at %d:%d", i.n, start.Line, start.Column)
}

// Chooses a branch based on the test value on the stash.
type branchInstr struct {
	consequent parse.Node
	alternate  parse.Node
}

func (i branchInstr) exec(m *Machine) {
	test := m.stash.pop()
	switch {
	case vals.IsError(test):
		m.stash.push(test)
	case vals.Truthy(test):
		m.control.pushNode(i.consequent)
	default:
		m.control.pushNode(i.alternate)
	}
}

func (branchInstr) String() string { return "branch" }

// Evaluates the remaining expressions of a sequence, discarding the value of
// the previous one. There is always at least one remaining expression.
type beginInstr struct{ rest []parse.Node }

func (i beginInstr) exec(m *Machine) {
	prev := m.stash.pop()
	if vals.IsError(prev) {
		m.stash.push(prev)
		return
	}
	m.pushSequence(i.rest)
}

func (i beginInstr) String() string { return fmt.Sprintf("begin %d", len(i.rest)) }

// Builds a pair from the car and cdr on the stash.
type pairInstr struct{}

func (pairInstr) exec(m *Machine) {
	vs := m.stash.popN(2)
	if e, ok := firstError(vs); ok {
		m.stash.push(e)
		return
	}
	m.stash.push(vals.Cons(vs[0], vs[1]))
}

func (pairInstr) String() string { return "pair" }

// Builds a list from n elements on the stash, followed by the terminator if
// there is one.
type listInstr struct {
	n             int
	hasTerminator bool
}

func (i listInstr) exec(m *Machine) {
	n := i.n
	if i.hasTerminator {
		n++
	}
	vs := m.stash.popN(n)
	if e, ok := firstError(vs); ok {
		m.stash.push(e)
		return
	}
	if i.hasTerminator {
		m.stash.push(vals.MakeImproperList(vs[:i.n], vs[i.n]))
	} else {
		m.stash.push(vals.MakeList(vs...))
	}
}

func (i listInstr) String() string { return fmt.Sprintf("list %d", i.n) }

// Builds a vector from n elements on the stash.
type vectorInstr struct{ n int }

func (i vectorInstr) exec(m *Machine) {
	vs := m.stash.popN(i.n)
	if e, ok := firstError(vs); ok {
		m.stash.push(e)
		return
	}
	m.stash.push(&vals.Vector{Elements: vs})
}

func (i vectorInstr) String() string { return fmt.Sprintf("vector %d", i.n) }

// Binds the values on the stash in a new frame and evaluates the body there.
type letInstr struct {
	names []string
	body  parse.Node
}

func (i letInstr) exec(m *Machine) {
	vs := m.stash.popN(len(i.names))
	if e, ok := firstError(vs); ok {
		m.stash.push(e)
		return
	}
	env := NewEnv("let", m.env)
	for j, name := range i.names {
		env.Define(name, vs[j])
	}
	m.enter(env, i.body)
}

func (i letInstr) String() string { return fmt.Sprintf("let %d", len(i.names)) }

// Checks the value of the i-th predicate of a cond.
type condInstr struct {
	cond *parse.Cond
	i    int
}

func (i condInstr) exec(m *Machine) {
	test := m.stash.pop()
	if vals.IsError(test) {
		m.stash.push(test)
		return
	}
	if vals.Truthy(test) {
		if conseq := i.cond.Consequents[i.i]; conseq != nil {
			m.control.pushNode(conseq)
		} else {
			m.stash.push(test)
		}
		return
	}
	m.pushCondClause(i.cond, i.i+1)
}

func (i condInstr) String() string { return fmt.Sprintf("cond %d", i.i) }

// Restores the environment saved when a procedure or let body was entered.
type restoreEnvInstr struct{ env *Env }

func (i restoreEnvInstr) exec(m *Machine) { m.env = i.env }

func (i restoreEnvInstr) String() string { return "restore env " + i.env.Name() }

// apply applies a procedure to arguments.
func (m *Machine) apply(f vals.Value, args []vals.Value) {
	switch f := f.(type) {
	case *vals.Primitive:
		v, err := f.Fn(args)
		if err != nil {
			m.pushError(err)
			return
		}
		m.stash.push(v)
	case *Closure:
		m.enter(f.bind(args), f.Body)
	default:
		m.pushError(errs.NotCallable{Actual: vals.Repr(f)})
	}
}
