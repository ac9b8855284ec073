package vals

import (
	"testing"

	"github.com/source-academy/scm-slang/pkg/tt"
)

func TestCons(t *testing.T) {
	tt.Test(t, Cons,
		Args(Number(1), Nil{}).Rets(MakeList(Number(1))),
		Args(Number(1), MakeList(Number(2), Number(3))).Rets(&Pair{Number(1), MakeList(Number(2), Number(3))}),
		Args(Number(1), Number(2)).Rets(&Pair{Number(1), Number(2)}),
	)
}

func TestCons_SharesTail(t *testing.T) {
	tail := MakeList(Number(2), Number(3))
	v := Cons(Number(1), tail)
	if cdr, _ := Cdr(v); cdr != tail {
		t.Errorf("Cdr(Cons(x, l)) is not l")
	}
	if !Equal(v, MakeList(Number(1), Number(2), Number(3))) {
		t.Errorf("Cons(1, (2 3)) = %s, want (1 2 3)", Repr(v))
	}
}

func TestCons_LongChain(t *testing.T) {
	const n = 100000
	var v Value = Nil{}
	for i := n; i > 0; i-- {
		v = Cons(Number(i), v)
	}
	elems, ok := Elements(v)
	if !ok || len(elems) != n {
		t.Fatalf("Elements returned %d elements and %v, want %d and true", len(elems), ok, n)
	}
	if elems[0] != Number(1) || elems[n-1] != Number(n) {
		t.Errorf("got first and last elements %v and %v", elems[0], elems[n-1])
	}
}

func TestCarCdr(t *testing.T) {
	l := MakeList(Number(1), Number(2))
	tt.Test(t, Car,
		Args(l).Rets(Number(1), true),
		Args(&Pair{Number(3), Number(4)}).Rets(Number(3), true),
		Args(Nil{}).Rets(nil, false),
	)
	tt.Test(t, Cdr,
		Args(l).Rets(MakeList(Number(2)), true),
		Args(MakeList(Number(2))).Rets(Nil{}, true),
		Args(&Pair{Number(3), Number(4)}).Rets(Number(4), true),
		Args(Number(1)).Rets(nil, false),
	)
}

func TestElements(t *testing.T) {
	tt.Test(t, Elements,
		Args(Nil{}).Rets([]Value(nil), true),
		Args(MakeList(Number(1), Number(2))).Rets([]Value{Number(1), Number(2)}, true),
		Args(&Pair{Number(1), MakeList(Number(2))}).Rets([]Value{Number(1), Number(2)}, true),
		Args(&Pair{Number(1), Number(2)}).Rets([]Value(nil), false),
	)
}

func TestMakeImproperList(t *testing.T) {
	tt.Test(t, MakeImproperList,
		Args([]Value{Number(1), Number(2)}, Nil{}).Rets(MakeList(Number(1), Number(2))),
		Args([]Value{Number(1)}, MakeList(Number(2))).Rets(MakeList(Number(1), Number(2))),
		Args([]Value{Number(1)}, Number(2)).Rets(&Pair{Number(1), Number(2)}),
		Args([]Value{}, Symbol("x")).Rets(Symbol("x")),
	)
}

func TestEqual(t *testing.T) {
	l := MakeList(Number(1))
	tt.Test(t, Equal,
		Args(Number(1), Number(1)).Rets(true),
		Args(Number(1), Complex{1, 1}).Rets(false),
		Args(String("a"), String("a")).Rets(true),
		Args(l, l).Rets(true),
		Args(MakeList(Number(1), MakeList(Symbol("a"))), MakeList(Number(1), MakeList(Symbol("a")))).Rets(true),
		Args(&Pair{Number(1), MakeList(Number(2))}, MakeList(Number(1), Number(2))).Rets(true),
		Args(MakeList(Number(1)), MakeList(Number(2))).Rets(false),
		Args(MakeList(Number(1)), MakeList(Number(1), Number(2))).Rets(false),
		Args(&Vector{[]Value{Number(1)}}, &Vector{[]Value{Number(1)}}).Rets(true),
		Args(&Vector{[]Value{Number(1)}}, &Vector{}).Rets(false),
		Args(Nil{}, Nil{}).Rets(true),
	)
	tt.Test(t, Eqv,
		Args(l, l).Rets(true),
		Args(MakeList(Number(1)), MakeList(Number(1))).Rets(false),
		Args(Symbol("a"), Symbol("a")).Rets(true),
	)
}
