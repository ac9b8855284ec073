package evaltest

import (
	"math"

	"github.com/source-academy/scm-slang/pkg/eval/vals"
)

// ValueMatcher is a value that can be passed to [Case.Puts] and has its own
// matching semantics.
type ValueMatcher interface{ matchValue(vals.Value) bool }

// Anything matches any value, including errors.
var Anything ValueMatcher = anything{}

type anything struct{}

func (anything) matchValue(vals.Value) bool { return true }

// AnyProcedure matches closures and primitives.
var AnyProcedure ValueMatcher = anyProcedure{}

type anyProcedure struct{}

func (anyProcedure) matchValue(v vals.Value) bool {
	return v != nil && v.Kind() == "procedure"
}

// ApproximatelyThreshold defines the threshold for matching numbers when using
// [Approximately].
const ApproximatelyThreshold = 1e-12

// Approximately matches a Number within the threshold defined by
// [ApproximatelyThreshold].
func Approximately(f float64) ValueMatcher { return approximately{f} }

type approximately struct{ value float64 }

func (a approximately) matchValue(v vals.Value) bool {
	if n, ok := v.(vals.Number); ok {
		return matchFloat64(a.value, float64(n), ApproximatelyThreshold)
	}
	return false
}

func matchFloat64(a, b, threshold float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if math.IsInf(a, 0) && math.IsInf(b, 0) &&
		math.Signbit(a) == math.Signbit(b) {
		return true
	}
	return math.Abs(a-b) <= threshold
}

func matchValue(want any, got vals.Value) bool {
	switch want := want.(type) {
	case ValueMatcher:
		return want.matchValue(got)
	case vals.Value:
		return vals.Equal(want, got)
	}
	return false
}
