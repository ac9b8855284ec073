package vals

// Eqv reports whether two values are the same: atoms compare by value, while
// pairs, lists, vectors and procedures compare by identity.
func Eqv(a, b Value) bool {
	return a == b
}

// Equal reports whether two values are structurally equal. Pairs and lists are
// compared element by element regardless of their representation.
func Equal(a, b Value) bool {
	for isPairLike(a) && isPairLike(b) {
		carA, _ := Car(a)
		carB, _ := Car(b)
		if !Equal(carA, carB) {
			return false
		}
		a, _ = Cdr(a)
		b, _ = Cdr(b)
	}
	if av, ok := a.(*Vector); ok {
		bv, ok := b.(*Vector)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	}
	return Eqv(a, b)
}

func isPairLike(v Value) bool {
	switch v.(type) {
	case *Pair, *List:
		return true
	}
	return false
}
