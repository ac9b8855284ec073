package vals

import (
	"math"
	"testing"

	"github.com/source-academy/scm-slang/pkg/tt"
)

type reprer struct{}

func (reprer) Kind() string { return "thing" }
func (reprer) Repr() string { return "#<thing>" }

func TestRepr(t *testing.T) {
	tt.Test(t, Repr,
		Args(Number(15)).Rets("15"),
		Args(Number(-0.5)).Rets("-0.5"),
		Args(Number(1e22)).Rets("1e+22"),
		Args(Number(0.00001)).Rets("1e-05"),
		Args(Number(math.Inf(-1))).Rets("-inf.0"),
		Args(Number(math.NaN())).Rets("+nan.0"),
		Args(Complex{3, 4}).Rets("3+4i"),
		Args(String(`a"b\`)).Rets(`"a\"b\\"`),
		Args(String("a\nb\tc")).Rets(`"a\nb\tc"`),
		Args(Boolean(true)).Rets("#t"),
		Args(Boolean(false)).Rets("#f"),
		Args(Symbol("abc")).Rets("abc"),
		Args(Nil{}).Rets("()"),
		Args(Void{}).Rets(""),
		Args(MakeList(Number(1), String("s"), Symbol("x"))).Rets(`(1 "s" x)`),
		Args(&Pair{Number(1), Number(2)}).Rets("(1 . 2)"),
		Args(&Pair{Number(1), &Pair{Number(2), Number(3)}}).Rets("(1 2 . 3)"),
		Args(&Pair{Number(1), MakeList(Number(2))}).Rets("(1 2)"),
		Args(&Pair{Number(1), Nil{}}).Rets("(1)"),
		Args(&Vector{[]Value{Number(1), MakeList(Number(2))}}).Rets("#(1 (2))"),
		Args(&Vector{}).Rets("#()"),
		Args(&Primitive{Name: "car"}).Rets("#<primitive:car>"),
		Args(Error{"oops"}).Rets("Error: oops"),
		Args(reprer{}).Rets("#<thing>"),
	)
}

func TestToString(t *testing.T) {
	tt.Test(t, ToString,
		Args(String("hi")).Rets("hi"),
		Args(MakeList(String("a"), Number(1))).Rets("(a 1)"),
		Args(Number(2)).Rets("2"),
	)
}

func TestTruthy(t *testing.T) {
	tt.Test(t, Truthy,
		Args(Boolean(false)).Rets(false),
		Args(Nil{}).Rets(false),
		Args(Boolean(true)).Rets(true),
		Args(Number(0)).Rets(true),
		Args(String("")).Rets(true),
		Args(Void{}).Rets(true),
		Args(MakeList(Boolean(false))).Rets(true),
	)
}
