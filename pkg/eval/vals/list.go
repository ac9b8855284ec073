package vals

// Pair is a cons cell. Its cdr may be any value, including a List, so a
// proper list can also be a chain of pairs ending in a List or Nil.
type Pair struct {
	Car Value
	Cdr Value
}

// List is a non-empty proper list. The empty list is Nil.
type List struct {
	Elements []Value
}

// Vector is a fixed-length sequence of values.
type Vector struct {
	Elements []Value
}

// MakeList returns a list of the given elements, or Nil if there are none.
func MakeList(elems ...Value) Value {
	if len(elems) == 0 {
		return Nil{}
	}
	return &List{elems}
}

// MakeImproperList returns a list of elems whose last cdr is tail. When tail
// is a proper list the result is a single List. The elems slice is not
// retained.
func MakeImproperList(elems []Value, tail Value) Value {
	switch tail := tail.(type) {
	case Nil:
		return MakeList(append([]Value(nil), elems...)...)
	case *List:
		all := make([]Value, 0, len(elems)+len(tail.Elements))
		all = append(all, elems...)
		return &List{append(all, tail.Elements...)}
	}
	v := tail
	for i := len(elems) - 1; i >= 0; i-- {
		v = &Pair{elems[i], v}
	}
	return v
}

// Cons returns the pair (car . cdr) in constant time. Consing onto the empty
// list makes a one-element List; any other cdr is shared, not copied.
func Cons(car, cdr Value) Value {
	if _, ok := cdr.(Nil); ok {
		return &List{[]Value{car}}
	}
	return &Pair{car, cdr}
}

// Car returns the first element of a pair or list.
func Car(v Value) (Value, bool) {
	switch v := v.(type) {
	case *Pair:
		return v.Car, true
	case *List:
		return v.Elements[0], true
	}
	return nil, false
}

// Cdr returns the rest of a pair or list.
func Cdr(v Value) (Value, bool) {
	switch v := v.(type) {
	case *Pair:
		return v.Cdr, true
	case *List:
		return MakeList(v.Elements[1:]...), true
	}
	return nil, false
}

// Elements returns the elements of a proper list, following chains of pairs.
// It reports false if v is not a proper list.
func Elements(v Value) ([]Value, bool) {
	var elems []Value
	for {
		switch cur := v.(type) {
		case Nil:
			return elems, true
		case *List:
			return append(elems, cur.Elements...), true
		case *Pair:
			elems = append(elems, cur.Car)
			v = cur.Cdr
		default:
			return nil, false
		}
	}
}

// IsList reports whether v is a proper list, including the empty list.
func IsList(v Value) bool {
	_, ok := Elements(v)
	return ok
}
