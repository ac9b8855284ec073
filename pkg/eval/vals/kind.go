// Package vals contains the runtime values of the language and basic
// operations on them.
package vals

// Value is a runtime value. The concrete types are Number, Complex, String,
// Boolean, Symbol, Nil, *Pair, *List, *Vector, *Primitive, Void, Error, and
// the closure type of the evaluator.
type Value interface {
	// Kind returns the name of the kind of the value, as used in error
	// messages and by type predicates.
	Kind() string
}

// String is a string value.
type String string

// Boolean is #t or #f.
type Boolean bool

// Symbol is a symbol, the value of a quoted identifier.
type Symbol string

// Nil is the empty list.
type Nil struct{}

// Void is the value of expressions evaluated only for their effect, such as
// definitions. It displays as nothing.
type Void struct{}

// Error is an evaluation error, carried through the machine as a value. It
// also implements error, so that hosts can report it like other errors.
type Error struct {
	Message string
}

func (e Error) Error() string { return "Error: " + e.Message }

// Primitive is a procedure implemented in Go.
type Primitive struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (Number) Kind() string     { return "number" }
func (Complex) Kind() string    { return "complex" }
func (String) Kind() string     { return "string" }
func (Boolean) Kind() string    { return "boolean" }
func (Symbol) Kind() string     { return "symbol" }
func (Nil) Kind() string        { return "nil" }
func (*Pair) Kind() string      { return "pair" }
func (*List) Kind() string      { return "list" }
func (*Vector) Kind() string    { return "vector" }
func (*Primitive) Kind() string { return "procedure" }
func (Void) Kind() string       { return "void" }
func (Error) Kind() string      { return "error" }

// Truthy reports whether v counts as true in a conditional. Only #f and the
// empty list are false; in particular 0 and "" are true.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Boolean:
		return bool(v)
	case Nil:
		return false
	}
	return true
}

// IsError reports whether v is an Error value.
func IsError(v Value) bool {
	_, ok := v.(Error)
	return ok
}
