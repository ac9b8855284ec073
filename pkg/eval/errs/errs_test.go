package errs

import (
	"testing"
)

var errorMessageTests = []struct {
	err     error
	wantMsg string
}{
	{
		UndefinedVariable{Name: "x"},
		"undefined variable: x",
	},
	{
		BadValue{What: "argument 1 of +", Valid: "number", Actual: `"a"`},
		`bad value: argument 1 of + must be number, but is "a"`,
	},
	{
		DivisionByZero{},
		"division by zero",
	},
	{
		NotCallable{Actual: "5"},
		"not a procedure: 5",
	},
	{
		OutOfRange{What: "index of list-ref", ValidLow: 0, ValidHigh: 2, Actual: "3"},
		"out of range: index of list-ref must be from 0 to 2, but is 3",
	},
	{
		OutOfRange{What: "index of vector-ref", ValidLow: 0, ValidHigh: -1, Actual: "0"},
		"out of range: index of vector-ref has no valid value, but is 0",
	},
	{
		ArityMismatch{What: "arguments of car", ValidLow: 1, ValidHigh: 1, Actual: 2},
		"arity mismatch: arguments of car must be 1 value, but is 2 values",
	},
	{
		ArityMismatch{What: "arguments of -", ValidLow: 1, ValidHigh: -1, Actual: 0},
		"arity mismatch: arguments of - must be 1 or more values, but is 0 values",
	},
	{
		ArityMismatch{What: "arguments of number->string", ValidLow: 1, ValidHigh: 2, Actual: 3},
		"arity mismatch: arguments of number->string must be 1 to 2 values, but is 3 values",
	},
	{
		Unsupported{What: "import"},
		"import is not supported",
	},
	{
		User{Message: "oops 1"},
		"oops 1",
	},
	{
		InternalError{Message: "stash underflow"},
		"internal error: stash underflow",
	},
}

func TestErrorMessages(t *testing.T) {
	for _, test := range errorMessageTests {
		if gotMsg := test.err.Error(); gotMsg != test.wantMsg {
			t.Errorf("got message %v, want %v", gotMsg, test.wantMsg)
		}
	}
}
