package vals

import (
	"math"
	"strconv"
	"strings"
)

// Number is a real number.
type Number float64

// ParseNumber parses the text of a numeric literal.
func ParseNumber(s string) (Number, error) {
	f, err := strconv.ParseFloat(s, 64)
	if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
		// ParseFloat returns ±Inf or 0 on range errors, which is what we want.
		return Number(f), nil
	}
	return Number(f), err
}

// IsInteger reports whether n is a finite integer.
func (n Number) IsInteger() bool {
	f := float64(n)
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

func (n Number) String() string { return formatNumber(float64(n)) }

// formatNumber formats integral numbers without a fractional part, and switches
// to scientific notation for very large or very small magnitudes.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "+nan.0"
	case math.IsInf(f, 1):
		return "+inf.0"
	case math.IsInf(f, -1):
		return "-inf.0"
	case f == 0:
		// Also covers negative zero.
		return "0"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	noPoint := !strings.ContainsRune(s, '.')
	if (noPoint && len(s) > 21) || strings.HasPrefix(strings.TrimPrefix(s, "-"), "0.0000") {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return s
}
