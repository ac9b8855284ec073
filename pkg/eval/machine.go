package eval

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/source-academy/scm-slang/pkg/eval/errs"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
	"github.com/source-academy/scm-slang/pkg/parse"
)

// Machine evaluates a program with an explicit control stack and stash.
//
// Each step pops one item from the control stack. A node either pushes its
// value onto the stash, or pushes an instruction followed by its parts, in an
// order that makes the parts evaluate left to right. An instruction pops the
// values it needs from the stash and pushes either a result or more work.
//
// A Machine must be stepped from one goroutine at a time; only Stop and
// Running may be called concurrently.
type Machine struct {
	control Control
	stash   Stash
	env     *Env
	steps   int
	running atomic.Bool
}

// NewMachine creates a machine that evaluates the given top-level forms in env.
func NewMachine(program []parse.Node, env *Env) *Machine {
	m := &Machine{env: env}
	switch len(program) {
	case 0:
	case 1:
		m.control.pushNode(program[0])
	default:
		loc := parse.Location{Start: program[0].Loc().Start, End: program[len(program)-1].Loc().End}
		m.control.pushNode(&parse.Sequence{Location: loc, Expressions: program})
	}
	m.running.Store(true)
	return m
}

// Step performs one transition. It returns false without doing anything if the
// machine has halted, either because there is no more work or because it has
// been stopped.
func (m *Machine) Step() bool {
	if !m.running.Load() || m.control.Len() == 0 {
		return false
	}
	m.steps++
	it := m.control.pop()
	if it.instr != nil {
		it.instr.exec(m)
	} else {
		m.evalNode(it.node)
	}
	return true
}

// Run steps the machine until it halts and returns the result.
func (m *Machine) Run() vals.Value {
	for m.Step() {
	}
	return m.Result()
}

// Result returns the value on top of the stash, or Nil if the stash is empty.
func (m *Machine) Result() vals.Value {
	if m.stash.Len() == 0 {
		return vals.Nil{}
	}
	return m.stash.values[m.stash.Len()-1]
}

// Stop halts the machine after the current step. It is safe to call from any
// goroutine.
func (m *Machine) Stop() { m.running.Store(false) }

// Running reports whether the machine has not been stopped.
func (m *Machine) Running() bool { return m.running.Load() }

// Done reports whether there is no more work.
func (m *Machine) Done() bool { return m.control.Len() == 0 }

// Steps returns the number of steps taken so far.
func (m *Machine) Steps() int { return m.steps }

// Env returns the current environment.
func (m *Machine) Env() *Env { return m.env }

// Snapshot is a textual picture of the machine between two steps. Control and
// Stash list their items from the bottom to the top.
type Snapshot struct {
	Step    int
	Control []string
	Stash   []string
	Env     string
}

// Snapshot returns the current state of the machine.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{Step: m.steps, Env: m.env.Name()}
	for _, it := range m.control.items {
		s.Control = append(s.Control, it.String())
	}
	for _, v := range m.stash.values {
		s.Stash = append(s.Stash, vals.Repr(v))
	}
	return s
}

func (m *Machine) pushError(err error) {
	m.stash.push(vals.Error{Message: err.Error()})
}

// enter switches to env to evaluate body, arranging for the current
// environment to be restored afterwards. When the next item already restores
// an environment, the current one is never needed again, so nothing is pushed;
// this keeps the control stack from growing in tail calls.
func (m *Machine) enter(env *Env, body parse.Node) {
	if !m.control.topIsRestoreEnv() {
		m.control.pushInstr(restoreEnvInstr{m.env})
	}
	m.env = env
	m.control.pushNode(body)
}

// pushSequence schedules the evaluation of a non-empty sequence.
func (m *Machine) pushSequence(exprs []parse.Node) {
	if len(exprs) > 1 {
		m.control.pushInstr(beginInstr{exprs[1:]})
	}
	m.control.pushNode(exprs[0])
}

// pushCondClause schedules the test of the i-th clause of a cond, or its
// catch-all if all clauses have been tried.
func (m *Machine) pushCondClause(n *parse.Cond, i int) {
	switch {
	case i < len(n.Predicates):
		m.control.pushInstr(condInstr{n, i})
		m.control.pushNode(n.Predicates[i])
	case n.Catchall != nil:
		m.control.pushNode(n.Catchall)
	default:
		m.stash.push(vals.Nil{})
	}
}

func (m *Machine) evalNode(n parse.Node) {
	switch n := n.(type) {
	case *parse.NumericLiteral:
		v, err := vals.ParseNumber(n.Value)
		if err != nil {
			m.pushError(err)
			return
		}
		m.stash.push(v)
	case *parse.ComplexLiteral:
		z, err := vals.ParseComplex(n.Value)
		if err != nil {
			m.pushError(err)
			return
		}
		m.stash.push(vals.Normalize(z))
	case *parse.StringLiteral:
		m.stash.push(vals.String(n.Value))
	case *parse.BooleanLiteral:
		m.stash.push(vals.Boolean(n.Value))
	case *parse.Symbol:
		m.stash.push(vals.Symbol(n.Value))
	case *parse.Nil:
		m.stash.push(vals.Nil{})
	case *parse.Identifier:
		v, err := m.env.Get(n.Name)
		if err != nil {
			m.pushError(err)
			return
		}
		m.stash.push(v)

	case *parse.Lambda:
		m.stash.push(newClosure(n, m.env))
	case *parse.Delay:
		// A promise is a procedure of no arguments; force applies it.
		m.stash.push(&Closure{Body: n.Expression, Env: m.env, Name: "promise"})
	case *parse.Definition:
		m.control.pushInstr(defineInstr{n.Name.Name})
		m.control.pushNode(n.Value)
	case *parse.FunctionDefinition:
		m.control.pushInstr(defineInstr{n.Name.Name})
		m.control.pushNode(&parse.Lambda{
			Location: n.Location, Params: n.Params, Rest: n.Rest, Body: n.Body})
	case *parse.Reassignment:
		m.control.pushInstr(setInstr{n.Name.Name})
		m.control.pushNode(n.Value)

	case *parse.Application:
		m.control.pushInstr(appInstr{len(n.Operands), n})
		m.control.pushNodes(n.Operands)
		m.control.pushNode(n.Operator)
	case *parse.Conditional:
		m.control.pushInstr(branchInstr{n.Consequent, n.Alternate})
		m.control.pushNode(n.Test)
	case *parse.Sequence:
		if len(n.Expressions) == 0 {
			m.stash.push(vals.Void{})
			return
		}
		m.pushSequence(n.Expressions)
	case *parse.Begin:
		if len(n.Expressions) == 0 {
			m.stash.push(vals.Void{})
			return
		}
		m.pushSequence(n.Expressions)
	case *parse.Let:
		names := make([]string, len(n.Identifiers))
		for i, id := range n.Identifiers {
			names[i] = id.Name
		}
		m.control.pushInstr(letInstr{names, n.Body})
		m.control.pushNodes(n.Values)
	case *parse.Cond:
		m.pushCondClause(n, 0)

	case *parse.Pair:
		m.control.pushInstr(pairInstr{})
		m.control.pushNode(n.Cdr)
		m.control.pushNode(n.Car)
	case *parse.List:
		m.control.pushInstr(listInstr{len(n.Elements), n.Terminator != nil})
		if n.Terminator != nil {
			m.control.pushNode(n.Terminator)
		}
		m.control.pushNodes(n.Elements)
	case *parse.Vector:
		m.control.pushInstr(vectorInstr{len(n.Elements)})
		m.control.pushNodes(n.Elements)
	case *parse.SpliceMarker:
		m.control.pushNode(n.Value)

	case *parse.Export:
		m.control.pushNode(n.Definition)
	case *parse.Import:
		m.pushError(errs.Unsupported{What: "import"})
	case *parse.DefineSyntax:
		m.pushError(errs.Unsupported{What: "define-syntax"})
	case *parse.SyntaxRules:
		m.pushError(errs.Unsupported{What: "syntax-rules"})
	default:
		panic(errs.InternalError{Message: fmt.Sprintf("unknown node type %T", n)})
	}
}

// describeNode returns a short description of a node for snapshots.
func describeNode(n parse.Node) string {
	switch n := n.(type) {
	case *parse.NumericLiteral:
		return n.Value
	case *parse.ComplexLiteral:
		return n.Value
	case *parse.StringLiteral:
		return vals.Repr(vals.String(n.Value))
	case *parse.BooleanLiteral:
		return vals.Repr(vals.Boolean(n.Value))
	case *parse.Identifier:
		return n.Name
	case *parse.Symbol:
		return "'" + n.Value
	}
	name := strings.TrimPrefix(fmt.Sprintf("%T", n), "*parse.")
	start := n.Loc().Start
	return fmt.Sprintf("%s at %d:%d", name, start.Line, start.Column)
}
