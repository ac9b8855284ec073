package eval

import (
	"github.com/source-academy/scm-slang/pkg/eval/vals"
)

// Predicates and logical procedures. The and and or special forms short-circuit;
// these procedures exist so that the names can be passed around as values.

var predBuiltins = map[string]builtin{
	"not": fixed(1, func(args []vals.Value) (vals.Value, error) {
		return vals.Boolean(!vals.Truthy(args[0])), nil
	}),
	"and": variadic(0, func(args []vals.Value) (vals.Value, error) {
		var result vals.Value = vals.Boolean(true)
		for _, arg := range args {
			if !vals.Truthy(arg) {
				return vals.Boolean(false), nil
			}
			result = arg
		}
		return result, nil
	}),
	"or": variadic(0, func(args []vals.Value) (vals.Value, error) {
		for _, arg := range args {
			if vals.Truthy(arg) {
				return arg, nil
			}
		}
		return vals.Boolean(false), nil
	}),

	"eq?":    fixed(2, binaryPred(vals.Eqv)),
	"eqv?":   fixed(2, binaryPred(vals.Eqv)),
	"equal?": fixed(2, binaryPred(vals.Equal)),

	"null?":      fixed(1, pred(func(v vals.Value) bool { _, ok := v.(vals.Nil); return ok })),
	"pair?":      fixed(1, pred(isPairLike)),
	"list?":      fixed(1, pred(vals.IsList)),
	"number?":    fixed(1, pred(isNumber)),
	"complex?":   fixed(1, pred(isNumber)),
	"real?":      fixed(1, pred(func(v vals.Value) bool { _, ok := v.(vals.Number); return ok })),
	"integer?":   fixed(1, pred(func(v vals.Value) bool { n, ok := v.(vals.Number); return ok && n.IsInteger() })),
	"string?":    fixed(1, pred(func(v vals.Value) bool { _, ok := v.(vals.String); return ok })),
	"boolean?":   fixed(1, pred(func(v vals.Value) bool { _, ok := v.(vals.Boolean); return ok })),
	"symbol?":    fixed(1, pred(func(v vals.Value) bool { _, ok := v.(vals.Symbol); return ok })),
	"vector?":    fixed(1, pred(func(v vals.Value) bool { _, ok := v.(*vals.Vector); return ok })),
	"procedure?": fixed(1, pred(isProcedure)),
	"zero?": fixed(1, func(args []vals.Value) (vals.Value, error) {
		z, err := complexArg(args, 0)
		return vals.Boolean(z == vals.Complex{}), err
	}),
}

func pred(f func(vals.Value) bool) func([]vals.Value) (vals.Value, error) {
	return func(args []vals.Value) (vals.Value, error) {
		return vals.Boolean(f(args[0])), nil
	}
}

func binaryPred(f func(a, b vals.Value) bool) func([]vals.Value) (vals.Value, error) {
	return func(args []vals.Value) (vals.Value, error) {
		return vals.Boolean(f(args[0], args[1])), nil
	}
}

func isPairLike(v vals.Value) bool {
	switch v.(type) {
	case *vals.Pair, *vals.List:
		return true
	}
	return false
}

func isNumber(v vals.Value) bool {
	_, ok := vals.ToComplex(v)
	return ok
}

func isProcedure(v vals.Value) bool {
	switch v.(type) {
	case *vals.Primitive, *Closure:
		return true
	}
	return false
}
