package eval

import (
	"strconv"

	"github.com/source-academy/scm-slang/pkg/eval/errs"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
)

// builtin describes a primitive procedure. MaxArgs is -1 for variadic ones.
type builtin struct {
	minArgs int
	maxArgs int
	fn      func(args []vals.Value) (vals.Value, error)
}

func variadic(minArgs int, fn func([]vals.Value) (vals.Value, error)) builtin {
	return builtin{minArgs, -1, fn}
}

func fixed(n int, fn func([]vals.Value) (vals.Value, error)) builtin {
	return builtin{n, n, fn}
}

// primitive wraps a builtin as a procedure value, checking the number of
// arguments and naming the procedure in argument errors.
func primitive(name string, b builtin) *vals.Primitive {
	return &vals.Primitive{Name: name, Fn: func(args []vals.Value) (vals.Value, error) {
		if len(args) < b.minArgs || (b.maxArgs >= 0 && len(args) > b.maxArgs) {
			return nil, errs.ArityMismatch{What: "arguments of " + name,
				ValidLow: b.minArgs, ValidHigh: b.maxArgs, Actual: len(args)}
		}
		v, err := b.fn(args)
		switch e := err.(type) {
		case errs.BadValue:
			e.What += " of " + name
			err = e
		case errs.OutOfRange:
			e.What += " of " + name
			err = e
		}
		return v, err
	}}
}

func argName(i int) string {
	return "argument " + strconv.Itoa(i+1)
}

func badArg(i int, valid string, actual vals.Value) error {
	return errs.BadValue{What: argName(i), Valid: valid, Actual: vals.Repr(actual)}
}
