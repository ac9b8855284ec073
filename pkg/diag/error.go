package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents an error with context that can be shown.
type Error struct {
	Type    string
	Message string
	Context Context
	// Whether the error is caused by the source ending prematurely, in which
	// case appending more text may make it go away.
	Partial bool
}

// Variables controlling the style of the message.
var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Error returns a plain text representation of the error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Context.Describe(), e.Message)
}

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error.
func (e *Error) Show(indent string) string {
	return fmt.Sprintf("%s: %s%s%s\n%s  %s", title(e.Type),
		messageStart, e.Message, messageEnd, indent, e.Context.Show(indent+"  "))
}

// IsPartial reports whether err is a diag error, or a combination of them,
// caused only by premature end of input.
func IsPartial(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	for _, entry := range UnpackErrors(err) {
		if !entry.Partial {
			return false
		}
	}
	return true
}

// UnpackErrors returns the constituent *Error values of err. It understands
// errors combined with errors.Join.
func UnpackErrors(err error) []*Error {
	switch err := err.(type) {
	case nil:
		return nil
	case *Error:
		return []*Error{err}
	case interface{ Unwrap() []error }:
		var entries []*Error
		for _, e := range err.Unwrap() {
			entries = append(entries, UnpackErrors(e)...)
		}
		return entries
	}
	var e *Error
	if errors.As(err, &e) {
		return []*Error{e}
	}
	return nil
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
