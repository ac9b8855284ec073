package vals

import (
	"math"
	"testing"

	"github.com/source-academy/scm-slang/pkg/eval/errs"
	"github.com/source-academy/scm-slang/pkg/tt"
)

var Args = tt.Args

func TestParseComplex(t *testing.T) {
	tt.Test(t, tt.Fn("ParseComplex", ParseComplex).ArgsFmt("(%q)"),
		Args("3+4i").Rets(Complex{3, 4}, nil),
		Args("-2i").Rets(Complex{0, -2}, nil),
		Args("+i").Rets(Complex{0, 1}, nil),
		Args("-i").Rets(Complex{0, -1}, nil),
		Args("2.5-i").Rets(Complex{2.5, -1}, nil),
		Args("5").Rets(Complex{5, 0}, nil),
		Args("1e1+.5i").Rets(Complex{10, 0.5}, nil),
		Args("i").Rets(Complex{}, tt.Any),
	)
}

func TestComplexString(t *testing.T) {
	tt.Test(t, tt.Fn("Complex.String", Complex.String),
		Args(Complex{3, 4}).Rets("3+4i"),
		Args(Complex{0, -1}).Rets("-i"),
		Args(Complex{0, 1}).Rets("+i"),
		Args(Complex{0, 2}).Rets("+2i"),
		Args(Complex{5, 0}).Rets("5"),
		Args(Complex{2.5, -1}).Rets("2.5-1i"),
		Args(Complex{-1.5, 0.25}).Rets("-1.5+0.25i"),
		Args(Complex{0, math.Inf(1)}).Rets("+inf.0i"),
	)
}

func TestComplexStringRoundTrip(t *testing.T) {
	for _, s := range []string{"3+4i", "-i", "+i", "+2i", "2.5-1i", "-7.25+3i"} {
		z, err := ParseComplex(s)
		if err != nil {
			t.Errorf("ParseComplex(%q) -> %v", s, err)
			continue
		}
		if got := z.String(); got != s {
			t.Errorf("ParseComplex(%q).String() = %q", s, got)
		}
	}
}

func TestComplexArithmetic(t *testing.T) {
	a, b := Complex{3, 4}, Complex{1, -2}
	tt.Test(t, tt.Fn("Complex.Add", Complex.Add), Args(a, b).Rets(Complex{4, 2}))
	tt.Test(t, tt.Fn("Complex.Sub", Complex.Sub), Args(a, b).Rets(Complex{2, 6}))
	tt.Test(t, tt.Fn("Complex.Mul", Complex.Mul),
		Args(a, b).Rets(Complex{11, -2}),
		Args(Complex{0, 2}, Complex{0, 2}).Rets(Complex{-4, 0}))
	tt.Test(t, tt.Fn("Complex.Div", Complex.Div),
		Args(Complex{11, -2}, b).Rets(Complex{3, 4}, nil),
		Args(a, Complex{}).Rets(Complex{}, errs.DivisionByZero{}))
	tt.Test(t, tt.Fn("Complex.Neg", Complex.Neg), Args(a).Rets(Complex{-3, -4}))
	tt.Test(t, tt.Fn("Complex.Magnitude", Complex.Magnitude), Args(a).Rets(5.0))
}

func TestNormalize(t *testing.T) {
	tt.Test(t, Normalize,
		Args(Complex{6, 0}).Rets(Number(6)),
		Args(Complex{0, 1}).Rets(Complex{0, 1}),
	)
}

func TestToComplex(t *testing.T) {
	tt.Test(t, ToComplex,
		Args(Number(2)).Rets(Complex{2, 0}, true),
		Args(Complex{1, 1}).Rets(Complex{1, 1}, true),
		Args(String("2")).Rets(Complex{}, false),
	)
}
