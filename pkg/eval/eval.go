// Package eval implements the evaluator: environments, the control/stash
// machine and the primitive procedures.
package eval

import (
	_ "embed"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/source-academy/scm-slang/pkg/eval/vals"
	"github.com/source-academy/scm-slang/pkg/logutil"
	"github.com/source-academy/scm-slang/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

//go:embed prelude.scm
var prelude string

var (
	// ErrBusy is returned when an evaluation is requested while another one is
	// in progress on the same Evaler.
	ErrBusy = errors.New("evaluator is busy")
	// ErrStepLimit is returned when an evaluation exceeds EvalCfg.StepLimit.
	ErrStepLimit = errors.New("step limit exceeded")
)

// Evaler evaluates successive chunks of code in one global environment, so
// that definitions made by one chunk are visible to later ones.
//
// Evaluations are serialized: Eval fails with ErrBusy instead of waiting if
// another one is in progress. Interrupt may be called from any goroutine.
type Evaler struct {
	mu      sync.Mutex
	global  *Env
	machine atomic.Pointer[Machine]
	// Output of the evaluation in progress.
	stdout io.Writer
}

// EvalCfg keeps configuration for (*Evaler).Eval.
type EvalCfg struct {
	// Where display and newline write to. Defaults to io.Discard.
	Stdout io.Writer
	// Callback to get a channel of interrupt signals and a function to call
	// when the channel is no longer needed.
	Interrupt func() (<-chan struct{}, func())
	// If positive, the evaluation is abandoned with ErrStepLimit after this
	// many machine steps.
	StepLimit int
	// If not nil, called with a snapshot of the machine after each step.
	Trace func(Snapshot)
}

func (cfg *EvalCfg) fillDefaults() {
	if cfg.Stdout == nil {
		cfg.Stdout = io.Discard
	}
}

// NewEvaler creates a new Evaler, with the primitive procedures and the
// prelude defined in its global environment.
func NewEvaler() *Evaler {
	ev := &Evaler{global: NewEnv("global", nil)}
	for _, table := range []map[string]builtin{
		numBuiltins, predBuiltins, containerBuiltins, strBuiltins, ev.ioBuiltins(),
	} {
		for name, b := range table {
			ev.global.Define(name, primitive(name, b))
		}
	}
	v, err := ev.Eval(parse.Source{Name: "[prelude]", Code: prelude}, EvalCfg{})
	if err != nil || vals.IsError(v) {
		panic("bad prelude: " + errorOrRepr(err, v))
	}
	return ev
}

func errorOrRepr(err error, v vals.Value) string {
	if err != nil {
		return err.Error()
	}
	return vals.Repr(v)
}

// Global returns the global environment.
func (ev *Evaler) Global() *Env { return ev.global }

// Check parses the source without evaluating it.
func (ev *Evaler) Check(src parse.Source) error {
	_, err := parse.Parse(src)
	return err
}

// Eval parses and evaluates the source. A parse error is returned as is, and
// nothing is evaluated. Errors during evaluation are not Go errors: they are
// returned as a vals.Error value. The Go error is only non-nil if the
// evaluation could not run to completion, in which case it is ErrBusy,
// ErrStepLimit or ErrInterrupted.
func (ev *Evaler) Eval(src parse.Source, cfg EvalCfg) (vals.Value, error) {
	if !ev.mu.TryLock() {
		return nil, ErrBusy
	}
	defer ev.mu.Unlock()
	cfg.fillDefaults()

	nodes, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}

	m := NewMachine(nodes, ev.global)
	ev.machine.Store(m)
	defer ev.machine.Store(nil)
	ev.stdout = cfg.Stdout
	defer func() { ev.stdout = io.Discard }()

	if cfg.Interrupt != nil {
		intCh, cleanup := cfg.Interrupt()
		defer cleanup()
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-intCh:
				m.Stop()
			case <-done:
			}
		}()
	}

	for m.Step() {
		if cfg.Trace != nil {
			cfg.Trace(m.Snapshot())
		}
		if cfg.StepLimit > 0 && m.Steps() >= cfg.StepLimit && !m.Done() {
			logger.Printf("%s: stopped after %d steps", src.Name, m.Steps())
			return nil, ErrStepLimit
		}
	}
	if !m.Done() {
		return nil, ErrInterrupted
	}
	return m.Result(), nil
}

// Interrupt stops the evaluation in progress, if any. The interrupted Eval
// returns ErrInterrupted. Definitions completed before the interruption are
// kept.
func (ev *Evaler) Interrupt() {
	if m := ev.machine.Load(); m != nil {
		m.Stop()
	}
}

// Evaluate evaluates a chunk of code and returns what it printed followed by
// the display string of its value. Only parse errors and the errors listed in
// Eval are returned as errors; evaluation errors are part of the string, as in
// "Error: division by zero".
func (ev *Evaler) Evaluate(code string) (string, error) {
	var sb strings.Builder
	v, err := ev.Eval(parse.Source{Name: "[eval]", Code: code}, EvalCfg{Stdout: &sb})
	if err != nil {
		return "", err
	}
	return sb.String() + vals.Repr(v), nil
}
