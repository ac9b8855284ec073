package eval

import (
	"reflect"
	"testing"

	"github.com/source-academy/scm-slang/pkg/eval/errs"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
	"github.com/source-academy/scm-slang/pkg/parse"
)

func newTestMachine(t *testing.T, code string) *Machine {
	t.Helper()
	nodes, err := parse.Parse(parse.SourceForTest(code))
	if err != nil {
		t.Fatalf("parse %q: %v", code, err)
	}
	return NewMachine(nodes, NewEvaler().Global())
}

// Runs the machine and returns the largest size of the control stack.
func runMeasuringControl(m *Machine) int {
	most := 0
	for m.Step() {
		if n := m.control.Len(); n > most {
			most = n
		}
	}
	return most
}

func TestMachine_TailCallsUseBoundedControl(t *testing.T) {
	for _, code := range []string{
		"(define (loop n) (if (= n 0) 'done (loop (- n 1)))) (loop 1000)",
		"(define (loop n) (cond ((= n 0) 'done) (else (loop (- n 1))))) (loop 1000)",
		"(define (loop n) (let ((m (- n 1))) (if (< m 0) 'done (loop m)))) (loop 1000)",
		"(define (loop n) (begin 1 (if (= n 0) 'done (loop (- n 1))))) (loop 1000)",
	} {
		m := newTestMachine(t, code)
		most := runMeasuringControl(m)
		if most > 16 {
			t.Errorf("%s: control grew to %d items", code, most)
		}
		if r := m.Result(); r != vals.Symbol("done") {
			t.Errorf("%s: result is %s", code, vals.Repr(r))
		}
	}
}

func TestMachine_NonTailCallsGrowControl(t *testing.T) {
	m := newTestMachine(t,
		"(define (count n) (if (= n 0) 0 (+ 1 (count (- n 1))))) (count 1000)")
	if most := runMeasuringControl(m); most < 1000 {
		t.Errorf("control only grew to %d items", most)
	}
	if r := m.Result(); r != vals.Number(1000) {
		t.Errorf("result is %s", vals.Repr(r))
	}
}

func TestMachine_LeavesOneValueOnStash(t *testing.T) {
	for _, code := range []string{
		"1",
		"(define x 1) (set! x 2) x",
		"(begin 1 2 3)",
		"(let ((a 1)) (cond (#f 1) ((+ a 1))))",
		"(car '())",
		"(begin (car '()) 1 2)",
		"(define (f x) (g x)) (define (g x) (* x 2)) (f 4)",
	} {
		m := newTestMachine(t, code)
		m.Run()
		if n := m.stash.Len(); n != 1 {
			t.Errorf("%s: stash has %d values after running", code, n)
		}
	}
}

func TestMachine_RestoresEnvironment(t *testing.T) {
	m := newTestMachine(t, "(define (f x) x) (f 1) (let ((y 1)) y)")
	global := m.Env()
	m.Run()
	if m.Env() != global {
		t.Errorf("environment after run is %q, want global", m.Env().Name())
	}
}

func TestMachine_Snapshot(t *testing.T) {
	m := newTestMachine(t, "(+ 1 2)")
	want := Snapshot{Step: 0, Control: []string{"Application at 1:1"}, Env: "global"}
	if got := m.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("initial snapshot = %+v, want %+v", got, want)
	}
	m.Step()
	m.Step()
	want = Snapshot{Step: 2, Control: []string{"apply 2 at 1:1", "2", "1"},
		Stash: []string{"#<primitive:+>"}, Env: "global"}
	if got := m.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("snapshot after 2 steps = %+v, want %+v", got, want)
	}
}

func TestMachine_Stop(t *testing.T) {
	m := newTestMachine(t, "(define (f) (f)) (f)")
	for i := 0; i < 100; i++ {
		m.Step()
	}
	m.Stop()
	if m.Step() {
		t.Errorf("Step returns true after Stop")
	}
	if m.Running() || m.Done() {
		t.Errorf("Running() = %v, Done() = %v after Stop", m.Running(), m.Done())
	}
	if m.Steps() != 100 {
		t.Errorf("Steps() = %d, want 100", m.Steps())
	}
}

func TestMachine_EmptyProgram(t *testing.T) {
	m := NewMachine(nil, NewEnv("global", nil))
	if m.Step() {
		t.Errorf("Step returns true for empty program")
	}
	if r := m.Result(); r != (vals.Nil{}) {
		t.Errorf("result is %s, want ()", vals.Repr(r))
	}
}

func TestStash_UnderflowPanics(t *testing.T) {
	defer func() {
		if _, ok := recover().(errs.InternalError); !ok {
			t.Errorf("pop of empty stash did not panic with InternalError")
		}
	}()
	var s Stash
	s.pop()
}
