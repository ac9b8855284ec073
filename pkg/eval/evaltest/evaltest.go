// Package evaltest provides a framework for testing code evaluation.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it.
//
// Example:
//
//	Test(t,
//	    That("(+ 1 2)").Evaluates("3"),
//	    That(`(display "x")`).Prints("x"),
//	    That("(define x 10)").Then("(+ x 1)").Evaluates("11"))
//
// Each piece of code is evaluated separately in the same Evaler, and the
// value of the last one is checked.
package evaltest

import (
	"errors"
	"strings"
	"testing"

	"github.com/source-academy/scm-slang/pkg/diag"
	"github.com/source-academy/scm-slang/pkg/eval"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
	"github.com/source-academy/scm-slang/pkg/parse"
)

// Case is a test case that can be used in Test.
type Case struct {
	codes     []string
	setup     func(ev *eval.Evaler)
	verify    func(t *testing.T, ev *eval.Evaler)
	stepLimit int
	want      result
}

type result struct {
	// Display string of the value of the last piece of code.
	Repr *string
	// The value itself, as a vals.Value or ValueMatcher.
	Value any
	// Output of all the pieces of code.
	Output string
	// Message of the Error value of the last piece of code.
	ErrorMessage *string

	ParseError bool
	// Error returned by Eval, such as eval.ErrStepLimit.
	EvalError error
}

// That returns a new Case with the specified source code. Multiple arguments
// are joined with newlines. To specify multiple pieces of code that are
// evaluated separately, use the Then method to append code pieces.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "(+ 1 2)" evaluates to 3 reads:
//
//	That("(+ 1 2)").Evaluates("3")
func That(lines ...string) Case {
	return Case{codes: []string{strings.Join(lines, "\n")}}
}

// Then returns a new Case that evaluates the given code in addition. Multiple
// arguments are joined with newlines.
func (c Case) Then(lines ...string) Case {
	codes := make([]string, len(c.codes), len(c.codes)+1)
	copy(codes, c.codes)
	c.codes = append(codes, strings.Join(lines, "\n"))
	return c
}

// WithSetup returns a new Case with the given setup function executed on the
// Evaler before the code is evaluated.
func (c Case) WithSetup(f func(*eval.Evaler)) Case {
	c.setup = f
	return c
}

// WithStepLimit returns a new Case that evaluates with the given step limit.
func (c Case) WithStepLimit(n int) Case {
	c.stepLimit = n
	return c
}

// Passes returns an altered Case that runs an additional verification
// function after the code is evaluated.
func (c Case) Passes(f func(t *testing.T, ev *eval.Evaler)) Case {
	c.verify = f
	return c
}

// Evaluates returns an altered Case that requires the value of the last piece
// of code to have the given display string.
func (c Case) Evaluates(repr string) Case {
	c.want.Repr = &repr
	return c
}

// Puts returns an altered Case that requires the value of the last piece of
// code to equal v, which may be a ValueMatcher.
func (c Case) Puts(v any) Case {
	c.want.Value = v
	return c
}

// Prints returns an altered Case that requires the code to print the given
// text.
func (c Case) Prints(s string) Case {
	c.want.Output = s
	return c
}

// ErrorsWith returns an altered Case that requires the value of the last piece
// of code to be an Error value with the given message.
func (c Case) ErrorsWith(msg string) Case {
	c.want.ErrorMessage = &msg
	return c
}

// DoesNotParse returns an altered Case that requires one of the pieces of
// code to fail parsing.
func (c Case) DoesNotParse() Case {
	c.want.ParseError = true
	return c
}

// FailsWith returns an altered Case that requires Eval to fail with err.
func (c Case) FailsWith(err error) Case {
	c.want.EvalError = err
	return c
}

// Test runs test cases. For each test case, a new Evaler is created with
// NewEvaler.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWithSetup(t, func(*eval.Evaler) {}, tests...)
}

// TestWithSetup runs test cases. For each test case, a new Evaler is created
// with NewEvaler and passed to the setup function.
func TestWithSetup(t *testing.T, setup func(*eval.Evaler), tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(strings.Join(tc.codes, "\n"), func(t *testing.T) {
			t.Helper()
			ev := eval.NewEvaler()
			setup(ev)
			if tc.setup != nil {
				tc.setup(ev)
			}

			value, output, parseErr, evalErr := evalAndCollect(ev, tc.codes, tc.stepLimit)

			if tc.verify != nil {
				tc.verify(t, ev)
			}
			if parseErr != nil && !tc.want.ParseError {
				t.Fatalf("got parse error: %v", parseErr)
			}
			if tc.want.ParseError && parseErr == nil {
				t.Errorf("got no parse error, want one")
			}
			if !errors.Is(evalErr, tc.want.EvalError) {
				t.Errorf("got eval error %v, want %v", evalErr, tc.want.EvalError)
			}
			if output != tc.want.Output {
				t.Errorf("got output %q, want %q", output, tc.want.Output)
			}
			if tc.want.Repr != nil {
				if got := reprOf(value); got != *tc.want.Repr {
					t.Errorf("got value %s, want %s", got, *tc.want.Repr)
				}
			}
			if tc.want.Value != nil && !matchValue(tc.want.Value, value) {
				t.Errorf("got value %s, want %v", reprOf(value), tc.want.Value)
			}
			if tc.want.ErrorMessage != nil {
				e, ok := value.(vals.Error)
				if !ok {
					t.Errorf("got value %s, want error %q", reprOf(value), *tc.want.ErrorMessage)
				} else if e.Message != *tc.want.ErrorMessage {
					t.Errorf("got error %q, want error %q", e.Message, *tc.want.ErrorMessage)
				}
			} else if e, ok := value.(vals.Error); ok && tc.want.Value == nil {
				t.Errorf("got unexpected error %q", e.Message)
			}
		})
	}
}

func evalAndCollect(ev *eval.Evaler, codes []string, stepLimit int) (vals.Value, string, error, error) {
	var (
		value    vals.Value
		output   strings.Builder
		parseErr error
		evalErr  error
	)
	for _, code := range codes {
		v, err := ev.Eval(parse.Source{Name: "[test]", Code: code},
			eval.EvalCfg{Stdout: &output, StepLimit: stepLimit})
		switch {
		case diag.UnpackErrors(err) != nil:
			parseErr = err
		case err != nil:
			evalErr = err
		default:
			value = v
		}
	}
	return value, output.String(), parseErr, evalErr
}

func reprOf(v vals.Value) string {
	if v == nil {
		return "<no value>"
	}
	return vals.Repr(v)
}
