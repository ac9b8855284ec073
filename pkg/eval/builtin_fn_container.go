package eval

import (
	"strconv"

	"github.com/source-academy/scm-slang/pkg/eval/errs"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
)

// Pairs, lists and vectors. Procedures taking lists accept both chains of
// pairs and flat lists.

var containerBuiltins = map[string]builtin{
	"cons": fixed(2, func(args []vals.Value) (vals.Value, error) {
		return vals.Cons(args[0], args[1]), nil
	}),
	"car": fixed(1, func(args []vals.Value) (vals.Value, error) {
		if v, ok := vals.Car(args[0]); ok {
			return v, nil
		}
		return nil, badArg(0, "pair", args[0])
	}),
	"cdr": fixed(1, func(args []vals.Value) (vals.Value, error) {
		if v, ok := vals.Cdr(args[0]); ok {
			return v, nil
		}
		return nil, badArg(0, "pair", args[0])
	}),
	"list": variadic(0, func(args []vals.Value) (vals.Value, error) {
		return vals.MakeList(args...), nil
	}),
	"length": fixed(1, func(args []vals.Value) (vals.Value, error) {
		elems, err := listArg(args, 0)
		return vals.Number(len(elems)), err
	}),
	"append": variadic(0, appendLists),
	"reverse": fixed(1, func(args []vals.Value) (vals.Value, error) {
		elems, err := listArg(args, 0)
		if err != nil {
			return nil, err
		}
		reversed := make([]vals.Value, len(elems))
		for i, e := range elems {
			reversed[len(elems)-1-i] = e
		}
		return vals.MakeList(reversed...), nil
	}),
	"list-ref": fixed(2, func(args []vals.Value) (vals.Value, error) {
		elems, err := listArg(args, 0)
		if err != nil {
			return nil, err
		}
		i, err := indexArg(args, 1, len(elems))
		if err != nil {
			return nil, err
		}
		return elems[i], nil
	}),

	"vector": variadic(0, func(args []vals.Value) (vals.Value, error) {
		return &vals.Vector{Elements: append([]vals.Value(nil), args...)}, nil
	}),
	"vector-ref": fixed(2, func(args []vals.Value) (vals.Value, error) {
		v, ok := args[0].(*vals.Vector)
		if !ok {
			return nil, badArg(0, "vector", args[0])
		}
		i, err := indexArg(args, 1, len(v.Elements))
		if err != nil {
			return nil, err
		}
		return v.Elements[i], nil
	}),
	"vector-length": fixed(1, func(args []vals.Value) (vals.Value, error) {
		v, ok := args[0].(*vals.Vector)
		if !ok {
			return nil, badArg(0, "vector", args[0])
		}
		return vals.Number(len(v.Elements)), nil
	}),
}

func listArg(args []vals.Value, i int) ([]vals.Value, error) {
	elems, ok := vals.Elements(args[i])
	if !ok {
		return nil, badArg(i, "list", args[i])
	}
	return elems, nil
}

// indexArg checks that args[i] is a valid index into a sequence of length n.
func indexArg(args []vals.Value, i, n int) (int, error) {
	k, err := integerArg(args, i)
	if err != nil {
		return 0, err
	}
	if k < 0 || k >= float64(n) {
		return 0, errs.OutOfRange{What: "index", ValidLow: 0, ValidHigh: n - 1,
			Actual: strconv.FormatFloat(k, 'f', -1, 64)}
	}
	return int(k), nil
}

// appendLists concatenates lists. The last argument may be any value, which
// becomes the tail of the result.
func appendLists(args []vals.Value) (vals.Value, error) {
	if len(args) == 0 {
		return vals.Nil{}, nil
	}
	var elems []vals.Value
	for i := 0; i < len(args)-1; i++ {
		e, err := listArg(args, i)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e...)
	}
	return vals.MakeImproperList(elems, args[len(args)-1]), nil
}
