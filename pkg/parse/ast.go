package parse

import "github.com/source-academy/scm-slang/pkg/diag"

// Position is a point in the source. Line and Column are 1-based, Offset is a
// byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Location is the span of source text a node was parsed from. Start is the
// position of the first character and End the position just past the last.
type Location struct {
	Start Position
	End   Position
}

// Loc returns the Location itself. Nodes embed Location, which makes this
// method available on every node.
func (l Location) Loc() Location { return l }

// Range returns the byte range of the location, satisfying diag.Ranger.
func (l Location) Range() diag.Ranging {
	return diag.Ranging{From: l.Start.Offset, To: l.End.Offset}
}

// Node is an AST node. The set of node types is closed: it is exactly the
// types in this file. Code dispatching on node types should panic on an
// unknown type, since that means a dispatch site was not updated.
//
// Nodes are never mutated after the parser returns them.
type Node interface {
	Loc() Location
	node()
}

// Atomic nodes.

// NumericLiteral is a real number literal, kept in its source form.
type NumericLiteral struct {
	Location
	Value string
}

// BooleanLiteral is #t or #f.
type BooleanLiteral struct {
	Location
	Value bool
}

// StringLiteral is a double-quoted string, with escapes already resolved.
type StringLiteral struct {
	Location
	Value string
}

// ComplexLiteral is a complex number literal such as 3+4i, kept in its
// source form.
type ComplexLiteral struct {
	Location
	Value string
}

// Identifier is a variable reference.
type Identifier struct {
	Location
	Name string
}

// Lambda is a procedure expression. Rest, if not nil, receives surplus
// arguments as a list.
type Lambda struct {
	Location
	Params []*Identifier
	Rest   *Identifier
	Body   Node
}

// Definition binds a name in the current frame.
type Definition struct {
	Location
	Name  *Identifier
	Value Node
}

// Reassignment mutates an existing binding (set!).
type Reassignment struct {
	Location
	Name  *Identifier
	Value Node
}

// Application is a procedure call.
type Application struct {
	Location
	Operator Node
	Operands []Node
}

// Conditional is an if expression.
type Conditional struct {
	Location
	Test       Node
	Consequent Node
	Alternate  Node
}

// Sequence is a run of expressions evaluated in order; its value is the
// value of the last one. It wraps bodies and multi-form programs.
type Sequence struct {
	Location
	Expressions []Node
}

// Pair is a literal pair.
type Pair struct {
	Location
	Car Node
	Cdr Node
}

// Nil is the empty list.
type Nil struct {
	Location
}

// Symbol is a quoted identifier.
type Symbol struct {
	Location
	Value string
}

// SpliceMarker marks a form spliced into a surrounding list.
type SpliceMarker struct {
	Location
	Value Node
}

// Vector is a vector literal.
type Vector struct {
	Location
	Elements []Node
}

// Import is (import "source" (name ...)).
type Import struct {
	Location
	Source      *StringLiteral
	Identifiers []*Identifier
}

// Export wraps a definition exported from a module.
type Export struct {
	Location
	Definition Node
}

// DefineSyntax is (define-syntax name transformer).
type DefineSyntax struct {
	Location
	Name        *Identifier
	Transformer Node
}

// SyntaxRule is one (pattern template) clause of syntax-rules.
type SyntaxRule struct {
	Pattern  Node
	Template Node
}

// SyntaxRules is (syntax-rules (literal ...) (pattern template) ...).
type SyntaxRules struct {
	Location
	Literals []*Symbol
	Rules    []SyntaxRule
}

// Extended nodes. These are sugared forms that the evaluator expands when it
// evaluates them.

// FunctionDefinition is (define (name params...) body...).
type FunctionDefinition struct {
	Location
	Name   *Identifier
	Params []*Identifier
	Rest   *Identifier
	Body   Node
}

// Let binds Identifiers to Values in a new frame, then evaluates Body. The
// values are evaluated in the enclosing environment.
type Let struct {
	Location
	Identifiers []*Identifier
	Values      []Node
	Body        Node
}

// Cond tests Predicates in order and evaluates the consequent of the first
// one that holds. A nil consequent means the value of the predicate itself.
// Catchall, if not nil, is evaluated when no predicate holds.
type Cond struct {
	Location
	Predicates  []Node
	Consequents []Node
	Catchall    Node
}

// List builds a list from Elements. A non-nil Terminator becomes the tail of
// the last pair, making the list improper unless it evaluates to nil.
type List struct {
	Location
	Elements   []Node
	Terminator Node
}

// Begin is (begin expr...).
type Begin struct {
	Location
	Expressions []Node
}

// Delay is (delay expr), a promise to evaluate expr later.
type Delay struct {
	Location
	Expression Node
}

func (*NumericLiteral) node()     {}
func (*BooleanLiteral) node()     {}
func (*StringLiteral) node()      {}
func (*ComplexLiteral) node()     {}
func (*Identifier) node()         {}
func (*Lambda) node()             {}
func (*Definition) node()         {}
func (*Reassignment) node()       {}
func (*Application) node()        {}
func (*Conditional) node()        {}
func (*Sequence) node()           {}
func (*Pair) node()               {}
func (*Nil) node()                {}
func (*Symbol) node()             {}
func (*SpliceMarker) node()       {}
func (*Vector) node()             {}
func (*Import) node()             {}
func (*Export) node()             {}
func (*DefineSyntax) node()       {}
func (*SyntaxRules) node()        {}
func (*FunctionDefinition) node() {}
func (*Let) node()                {}
func (*Cond) node()               {}
func (*List) node()               {}
func (*Begin) node()              {}
func (*Delay) node()              {}
