package parse

import "regexp"

const unsignedNum = `(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`

var (
	// A real part, optionally followed by a signed imaginary part: 5, 3+4i, 2.5-i.
	rectangularLiteral = regexp.MustCompile(`^([+-]?` + unsignedNum + `)(?:([+-](?:` + unsignedNum + `)?)[iI])?$`)
	// A pure imaginary number: 2i, -2i, +i.
	imaginaryLiteral = regexp.MustCompile(`^([+-]?(?:` + unsignedNum + `)?)[iI]$`)
)

// SplitComplex decomposes a complex literal into the text of its real part and
// the text of the coefficient of its imaginary part (without the trailing i).
// Either part may be empty when absent; an imaginary coefficient may consist
// of a sign alone, meaning a magnitude of 1. It reports false if s is not a
// complex literal.
func SplitComplex(s string) (real, imag string, ok bool) {
	if m := rectangularLiteral.FindStringSubmatch(s); m != nil {
		return m[1], m[2], true
	}
	if m := imaginaryLiteral.FindStringSubmatch(s); m != nil {
		if m[1] == "" {
			// A lone "i" is an identifier.
			return "", "", false
		}
		return "", m[1], true
	}
	return "", "", false
}

// IsComplexLiteral reports whether s is written in complex literal syntax.
func IsComplexLiteral(s string) bool {
	_, _, ok := SplitComplex(s)
	return ok
}
