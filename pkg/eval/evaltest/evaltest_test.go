package evaltest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestThen_BranchesAreIndependent(t *testing.T) {
	base := That("(define x 1)").Then("(define y 2)").Then("(define z 3)")
	a := base.Then("x")
	b := base.Then("y")

	if diff := cmp.Diff([]string{"(define x 1)", "(define y 2)", "(define z 3)", "x"}, a.codes); diff != "" {
		t.Errorf("codes of first branch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"(define x 1)", "(define y 2)", "(define z 3)", "y"}, b.codes); diff != "" {
		t.Errorf("codes of second branch (-want +got):\n%s", diff)
	}
	if len(base.codes) != 3 {
		t.Errorf("base case has %d pieces of code, want 3", len(base.codes))
	}
}

func TestThen_SharedBaseInTable(t *testing.T) {
	base := That("(define (f x) (* x 2))").Then("(define a 1)").Then("(define b 2)")
	Test(t,
		base.Then("(f a)").Evaluates("2"),
		base.Then("(f b)").Evaluates("4"),
	)
}
