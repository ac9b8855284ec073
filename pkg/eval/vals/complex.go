package vals

import (
	"fmt"
	"math"

	"github.com/source-academy/scm-slang/pkg/eval/errs"
	"github.com/source-academy/scm-slang/pkg/parse"
)

// Complex is a complex number. Arithmetic on complex numbers goes through
// Normalize before producing a Value, so a Complex with a zero imaginary part
// never reaches the program.
type Complex struct {
	Real float64
	Imag float64
}

// ParseComplex parses a complex literal such as 3+4i, -2i, +i or 5.
func ParseComplex(s string) (Complex, error) {
	re, im, ok := parse.SplitComplex(s)
	if !ok {
		return Complex{}, fmt.Errorf("bad complex literal %q", s)
	}
	var z Complex
	if re != "" {
		f, err := ParseNumber(re)
		if err != nil {
			return Complex{}, err
		}
		z.Real = float64(f)
	}
	switch im {
	case "":
	case "+":
		z.Imag = 1
	case "-":
		z.Imag = -1
	default:
		f, err := ParseNumber(im)
		if err != nil {
			return Complex{}, err
		}
		z.Imag = float64(f)
	}
	return z, nil
}

// ToComplex converts a Number or Complex to a Complex.
func ToComplex(v Value) (Complex, bool) {
	switch v := v.(type) {
	case Number:
		return Complex{Real: float64(v)}, true
	case Complex:
		return v, true
	}
	return Complex{}, false
}

// Normalize returns a Number if the imaginary part of z is zero, and z itself
// otherwise.
func Normalize(z Complex) Value {
	if z.Imag == 0 {
		return Number(z.Real)
	}
	return z
}

func (z Complex) Add(w Complex) Complex {
	return Complex{z.Real + w.Real, z.Imag + w.Imag}
}

func (z Complex) Sub(w Complex) Complex {
	return Complex{z.Real - w.Real, z.Imag - w.Imag}
}

func (z Complex) Mul(w Complex) Complex {
	return Complex{
		z.Real*w.Real - z.Imag*w.Imag,
		z.Real*w.Imag + z.Imag*w.Real,
	}
}

// Div divides z by w, multiplying both by the conjugate of w.
func (z Complex) Div(w Complex) (Complex, error) {
	d := w.Real*w.Real + w.Imag*w.Imag
	if d == 0 {
		return Complex{}, errs.DivisionByZero{}
	}
	n := z.Mul(w.Conj())
	return Complex{n.Real / d, n.Imag / d}, nil
}

func (z Complex) Neg() Complex { return Complex{-z.Real, -z.Imag} }

func (z Complex) Conj() Complex { return Complex{z.Real, -z.Imag} }

func (z Complex) Magnitude() float64 { return math.Hypot(z.Real, z.Imag) }

// String renders z in literal syntax: the real part is omitted when zero, the
// imaginary part always carries its sign, and a unit coefficient is omitted
// when the real part is absent (3+4i, -i, +2i, 2.5-1i).
func (z Complex) String() string {
	if z.Imag == 0 {
		return formatNumber(z.Real)
	}
	var re string
	if z.Real != 0 {
		re = formatNumber(z.Real)
	}
	var im string
	switch {
	case re == "" && z.Imag == 1:
		im = "+"
	case re == "" && z.Imag == -1:
		im = "-"
	default:
		im = formatNumber(z.Imag)
		if im[0] != '+' && im[0] != '-' {
			im = "+" + im
		}
	}
	return re + im + "i"
}
