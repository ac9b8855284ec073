package eval_test

import (
	"math"
	"testing"

	. "github.com/source-academy/scm-slang/pkg/eval/evaltest"
)

func TestArithmetic(t *testing.T) {
	Test(t,
		That("(+)").Evaluates("0"),
		That("(+ 1 2 3)").Evaluates("6"),
		That(`(+ 1 "a")`).ErrorsWith(`bad value: argument 2 of + must be number, but is "a"`),
		That("(- 5)").Evaluates("-5"),
		That("(- 10 1 2)").Evaluates("7"),
		That("(-)").ErrorsWith("arity mismatch: arguments of - must be 1 or more values, but is 0 values"),
		That("(*)").Evaluates("1"),
		That("(* 2 3.5)").Evaluates("7"),
		That("(/ 2)").Evaluates("0.5"),
		That("(/ 1 4)").Evaluates("0.25"),
		That("(/ 6 3 2)").Evaluates("1"),
		That("(/ 1 3)").Puts(Approximately(1.0/3)),
		That("(+ 0.1 0.2)").Puts(Approximately(0.3)),
	)
}

func TestNumericComparison(t *testing.T) {
	Test(t,
		That("(= 1 1 1)").Evaluates("#t"),
		That("(= 1 2)").Evaluates("#f"),
		That(`(= 1 "1")`).Evaluates("#f"),
		That("(= 1+2i 1+2i)").Evaluates("#t"),
		That("(= 2 2+0i)").Evaluates("#t"),
		That("(< 1 2 3)").Evaluates("#t"),
		That("(< 1 3 2)").Evaluates("#f"),
		That("(> 3 2 1)").Evaluates("#t"),
		That("(<= 1 1 2)").Evaluates("#t"),
		That("(>= 3 3 1)").Evaluates("#t"),
		That(`(< "a" "b")`).Evaluates("#t"),
		That("(< 1+i 2)").
			ErrorsWith("bad value: argument 1 of < must be real number or string, but is 1+1i"),
	)
}

func TestIntegerDivision(t *testing.T) {
	Test(t,
		That("(quotient 7 2)").Evaluates("3"),
		That("(quotient -7 2)").Evaluates("-3"),
		That("(remainder -7 2)").Evaluates("-1"),
		That("(modulo -7 2)").Evaluates("1"),
		That("(modulo 7 -2)").Evaluates("-1"),
		That("(modulo 6 3)").Evaluates("0"),
		That("(quotient 1 0)").ErrorsWith("division by zero"),
		That("(quotient 1.5 1)").
			ErrorsWith("bad value: argument 1 of quotient must be integer, but is 1.5"),
	)
}

func TestRealFunctions(t *testing.T) {
	Test(t,
		That("(abs -5)").Evaluates("5"),
		That("(abs 2.5)").Evaluates("2.5"),
		That("(max 1 3 2)").Evaluates("3"),
		That("(min 1 3 2)").Evaluates("1"),
		That("(max 1 'a)").ErrorsWith("bad value: argument 2 of max must be real number, but is a"),
	)
}

func TestComplexFunctions(t *testing.T) {
	Test(t,
		That("(magnitude 3+4i)").Evaluates("5"),
		That("(magnitude -2)").Evaluates("2"),
		That("(real-part 3+4i)").Evaluates("3"),
		That("(imag-part 3+4i)").Evaluates("4"),
		That("(imag-part 5)").Evaluates("0"),
		That("(make-rectangular 1 2)").Evaluates("1+2i"),
		That("(make-rectangular 1 0)").Evaluates("1"),
		That("(make-rectangular 0 -1)").Evaluates("-i"),
		That("(number->string 3+4i)").Evaluates(`"3+4i"`),
		That("(number->string 'a)").
			ErrorsWith("bad value: argument 1 of number->string must be number, but is a"),
		That("(sqrt 16)").Evaluates("4"),
		That("(sqrt -4)").Evaluates("+2i"),
		That("(sqrt 2)").Puts(Approximately(math.Sqrt2)),
	)
}
