package eval

import (
	"math"
	"math/cmplx"

	"github.com/source-academy/scm-slang/pkg/eval/errs"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
)

// Numerical operations. Arithmetic works on the complex plane and normalizes
// its results, so a complex result with a zero imaginary part is a number.

var numBuiltins = map[string]builtin{
	"+": variadic(0, add),
	"-": variadic(1, sub),
	"*": variadic(0, mul),
	"/": variadic(1, div),

	"=":  variadic(1, numEq),
	"<":  variadic(1, compareWith(func(c int) bool { return c < 0 })),
	">":  variadic(1, compareWith(func(c int) bool { return c > 0 })),
	"<=": variadic(1, compareWith(func(c int) bool { return c <= 0 })),
	">=": variadic(1, compareWith(func(c int) bool { return c >= 0 })),

	"abs":       fixed(1, realFn(math.Abs)),
	"quotient":  fixed(2, integerOp(func(a, b float64) float64 { return math.Trunc(a / b) })),
	"remainder": fixed(2, integerOp(math.Mod)),
	"modulo":    fixed(2, integerOp(modulo)),
	"max":       variadic(1, extremum(math.Max)),
	"min":       variadic(1, extremum(math.Min)),

	"magnitude": fixed(1, func(args []vals.Value) (vals.Value, error) {
		z, err := complexArg(args, 0)
		return vals.Number(z.Magnitude()), err
	}),
	"real-part": fixed(1, func(args []vals.Value) (vals.Value, error) {
		z, err := complexArg(args, 0)
		return vals.Number(z.Real), err
	}),
	"imag-part": fixed(1, func(args []vals.Value) (vals.Value, error) {
		z, err := complexArg(args, 0)
		return vals.Number(z.Imag), err
	}),
	"make-rectangular": fixed(2, func(args []vals.Value) (vals.Value, error) {
		re, err := realArg(args, 0)
		if err != nil {
			return nil, err
		}
		im, err := realArg(args, 1)
		if err != nil {
			return nil, err
		}
		return vals.Normalize(vals.Complex{Real: re, Imag: im}), nil
	}),
	"number->string": fixed(1, func(args []vals.Value) (vals.Value, error) {
		if _, err := complexArg(args, 0); err != nil {
			return nil, err
		}
		return vals.String(vals.Repr(args[0])), nil
	}),
	"sqrt": fixed(1, func(args []vals.Value) (vals.Value, error) {
		z, err := complexArg(args, 0)
		if err != nil {
			return nil, err
		}
		r := cmplx.Sqrt(complex(z.Real, z.Imag))
		return vals.Normalize(vals.Complex{Real: real(r), Imag: imag(r)}), nil
	}),
}

func complexArg(args []vals.Value, i int) (vals.Complex, error) {
	z, ok := vals.ToComplex(args[i])
	if !ok {
		return vals.Complex{}, badArg(i, "number", args[i])
	}
	return z, nil
}

func realArg(args []vals.Value, i int) (float64, error) {
	n, ok := args[i].(vals.Number)
	if !ok {
		return 0, badArg(i, "real number", args[i])
	}
	return float64(n), nil
}

func integerArg(args []vals.Value, i int) (float64, error) {
	n, ok := args[i].(vals.Number)
	if !ok || !n.IsInteger() {
		return 0, badArg(i, "integer", args[i])
	}
	return float64(n), nil
}

func complexArgs(args []vals.Value) ([]vals.Complex, error) {
	zs := make([]vals.Complex, len(args))
	for i := range args {
		z, err := complexArg(args, i)
		if err != nil {
			return nil, err
		}
		zs[i] = z
	}
	return zs, nil
}

func add(args []vals.Value) (vals.Value, error) {
	zs, err := complexArgs(args)
	if err != nil {
		return nil, err
	}
	var sum vals.Complex
	for _, z := range zs {
		sum = sum.Add(z)
	}
	return vals.Normalize(sum), nil
}

func sub(args []vals.Value) (vals.Value, error) {
	zs, err := complexArgs(args)
	if err != nil {
		return nil, err
	}
	if len(zs) == 1 {
		return vals.Normalize(zs[0].Neg()), nil
	}
	diff := zs[0]
	for _, z := range zs[1:] {
		diff = diff.Sub(z)
	}
	return vals.Normalize(diff), nil
}

func mul(args []vals.Value) (vals.Value, error) {
	zs, err := complexArgs(args)
	if err != nil {
		return nil, err
	}
	product := vals.Complex{Real: 1}
	for _, z := range zs {
		product = product.Mul(z)
	}
	return vals.Normalize(product), nil
}

func div(args []vals.Value) (vals.Value, error) {
	zs, err := complexArgs(args)
	if err != nil {
		return nil, err
	}
	quotient := zs[0]
	divisors := zs[1:]
	if len(zs) == 1 {
		quotient, divisors = vals.Complex{Real: 1}, zs
	}
	for _, z := range divisors {
		quotient, err = quotient.Div(z)
		if err != nil {
			return nil, err
		}
	}
	return vals.Normalize(quotient), nil
}

// numEq compares numbers numerically. Arguments of different kinds are never
// equal; they are not an error.
func numEq(args []vals.Value) (vals.Value, error) {
	for i := 1; i < len(args); i++ {
		a, b := args[i-1], args[i]
		za, okA := vals.ToComplex(a)
		zb, okB := vals.ToComplex(b)
		switch {
		case okA && okB:
			if za != zb {
				return vals.Boolean(false), nil
			}
		case a.Kind() != b.Kind() || !vals.Eqv(a, b):
			return vals.Boolean(false), nil
		}
	}
	return vals.Boolean(true), nil
}

// compareWith builds an ordering predicate over real numbers or strings.
func compareWith(ok func(int) bool) func([]vals.Value) (vals.Value, error) {
	return func(args []vals.Value) (vals.Value, error) {
		for i := range args {
			switch args[i].(type) {
			case vals.Number, vals.String:
			default:
				return nil, badArg(i, "real number or string", args[i])
			}
		}
		result := true
		for i := 1; i < len(args); i++ {
			c, comparable := compare(args[i-1], args[i])
			if !comparable {
				return nil, badArg(i, args[i-1].Kind(), args[i])
			}
			result = result && ok(c)
		}
		return vals.Boolean(result), nil
	}
}

func compare(a, b vals.Value) (int, bool) {
	switch a := a.(type) {
	case vals.Number:
		if b, ok := b.(vals.Number); ok {
			return cmpOrdered(a, b), true
		}
	case vals.String:
		if b, ok := b.(vals.String); ok {
			return cmpOrdered(a, b), true
		}
	}
	return 0, false
}

func cmpOrdered[T vals.Number | vals.String](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func realFn(f func(float64) float64) func([]vals.Value) (vals.Value, error) {
	return func(args []vals.Value) (vals.Value, error) {
		x, err := realArg(args, 0)
		if err != nil {
			return nil, err
		}
		return vals.Number(f(x)), nil
	}
}

func integerOp(f func(a, b float64) float64) func([]vals.Value) (vals.Value, error) {
	return func(args []vals.Value) (vals.Value, error) {
		a, err := integerArg(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := integerArg(args, 1)
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return nil, errs.DivisionByZero{}
		}
		return vals.Number(f(a, b)), nil
	}
}

// modulo is like math.Mod, but the result has the sign of the divisor.
func modulo(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

func extremum(pick func(a, b float64) float64) func([]vals.Value) (vals.Value, error) {
	return func(args []vals.Value) (vals.Value, error) {
		result, err := realArg(args, 0)
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(args); i++ {
			x, err := realArg(args, i)
			if err != nil {
				return nil, err
			}
			result = pick(result, x)
		}
		return vals.Number(result), nil
	}
}
