// Package errs declares types for errors raised during evaluation.
//
// The machine turns these errors into Error values; their messages are what
// the user sees after "Error: ".
package errs

import (
	"fmt"
	"strconv"
)

// UndefinedVariable is raised when looking up or assigning a name that is not
// bound in any frame of the environment chain.
type UndefinedVariable struct {
	Name string
}

func (e UndefinedVariable) Error() string {
	return "undefined variable: " + e.Name
}

// BadValue is raised when a value does not meet a requirement, typically an
// argument of the wrong type.
type BadValue struct {
	What   string
	Valid  string
	Actual string
}

func (e BadValue) Error() string {
	return fmt.Sprintf("bad value: %v must be %v, but is %v", e.What, e.Valid, e.Actual)
}

// DivisionByZero is raised when dividing by a number of zero magnitude.
type DivisionByZero struct{}

func (DivisionByZero) Error() string { return "division by zero" }

// NotCallable is raised when applying a value that is not a procedure.
type NotCallable struct {
	Actual string
}

func (e NotCallable) Error() string {
	return "not a procedure: " + e.Actual
}

// OutOfRange is raised when an index is out of its valid range.
type OutOfRange struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    string
}

func (e OutOfRange) Error() string {
	if e.ValidHigh < e.ValidLow {
		return fmt.Sprintf("out of range: %v has no valid value, but is %v", e.What, e.Actual)
	}
	return fmt.Sprintf("out of range: %s must be from %d to %d, but is %s",
		e.What, e.ValidLow, e.ValidHigh, e.Actual)
}

// ArityMismatch is raised when a procedure receives the wrong number of
// arguments. ValidHigh is -1 when there is no upper bound.
type ArityMismatch struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

func (e ArityMismatch) Error() string {
	switch {
	case e.ValidHigh == e.ValidLow:
		return fmt.Sprintf("arity mismatch: %v must be %v, but is %v",
			e.What, nValues(e.ValidLow), nValues(e.Actual))
	case e.ValidHigh == -1:
		return fmt.Sprintf("arity mismatch: %v must be %v or more values, but is %v",
			e.What, e.ValidLow, nValues(e.Actual))
	default:
		return fmt.Sprintf("arity mismatch: %v must be %v to %v values, but is %v",
			e.What, e.ValidLow, e.ValidHigh, nValues(e.Actual))
	}
}

func nValues(n int) string {
	if n == 1 {
		return "1 value"
	}
	return strconv.Itoa(n) + " values"
}

// Unsupported is raised when evaluating a form the evaluator parses but does
// not implement.
type Unsupported struct {
	What string
}

func (e Unsupported) Error() string {
	return e.What + " is not supported"
}

// User is raised by the error procedure.
type User struct {
	Message string
}

func (e User) Error() string { return e.Message }

// InternalError signals a broken invariant of the evaluator. It is never
// turned into an Error value: it is used as a panic value and recovered at the
// program boundary.
type InternalError struct {
	Message string
}

func (e InternalError) Error() string {
	return "internal error: " + e.Message
}
