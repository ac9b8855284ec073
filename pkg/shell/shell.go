// Package shell is the entry point for the terminal interface of scm: script
// mode and the interactive REPL.
package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/source-academy/scm-slang/pkg/diag"
	"github.com/source-academy/scm-slang/pkg/eval"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
	"github.com/source-academy/scm-slang/pkg/logutil"
	"github.com/source-academy/scm-slang/pkg/parse"
	"github.com/source-academy/scm-slang/pkg/prog"
	"github.com/source-academy/scm-slang/pkg/sys"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram. It runs a script when given arguments or
// -c, and the REPL otherwise.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(fds[2], sys.DumpStack())
			fmt.Fprintln(fds[2], "panic:", r)
			err = prog.Exit(2)
		}
	}()

	cfg, err := loadConfig(f.Config)
	if err != nil {
		return err
	}
	cfg.applyFlags(f)

	cleanup := initSignal(fds[2])
	defer cleanup()

	ev := initEvaler(fds, cfg)

	if len(args) > 0 || f.CodeInArg {
		if len(args) == 0 {
			return prog.BadUsage("-c requires an argument")
		}
		return prog.Exit(script(ev, fds, args, &scriptCfg{
			Cmd: f.CodeInArg, ParseOnly: f.ParseOnly, JSON: f.JSON, Config: cfg}))
	}
	if f.ParseOnly {
		return prog.BadUsage("-parseonly requires a script or -c")
	}

	rc := ""
	if !f.NoRc {
		rc, err = rcPath()
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}
	Interact(fds, &InteractConfig{Evaler: ev, RC: rc, Config: cfg})
	return nil
}

// Creates an Evaler and evaluates the files listed in the preload setting.
func initEvaler(fds [3]*os.File, cfg *Config) *eval.Evaler {
	ev := eval.NewEvaler()
	for _, path := range cfg.Preload {
		if err := evalFile(ev, fds, path, cfg); err != nil {
			fmt.Fprintf(fds[2], "Warning: cannot preload %s:\n", path)
			showError(fds[2], err)
		}
	}
	return ev
}

// Evaluates a file, reporting an Error value as an error.
func evalFile(ev *eval.Evaler, fds [3]*os.File, path string, cfg *Config) error {
	code, err := readFileUTF8(path)
	if err != nil {
		return err
	}
	v, err := evalInTTY(ev, fds, parse.Source{Name: path, Code: code}, cfg)
	if err != nil {
		return err
	}
	if e, ok := v.(vals.Error); ok {
		return e
	}
	return nil
}

func evalInTTY(ev *eval.Evaler, fds [3]*os.File, src parse.Source, cfg *Config) (vals.Value, error) {
	evalCfg := eval.EvalCfg{
		Stdout: fds[1], Interrupt: eval.ListenInterrupts, StepLimit: cfg.StepLimit}
	if cfg.Trace {
		evalCfg.Trace = traceStep
	}
	return ev.Eval(src, evalCfg)
}

func traceStep(s eval.Snapshot) {
	top := "<empty>"
	if n := len(s.Control); n > 0 {
		top = s.Control[n-1]
	}
	logger.Printf("step %d: control %d (top %s), stash %d, env %s",
		s.Step, len(s.Control), top, len(s.Stash), s.Env)
}

// Shows an error, showing each parse error separately.
func showError(w io.Writer, err error) {
	if entries := diag.UnpackErrors(err); len(entries) > 0 {
		for _, e := range entries {
			diag.ShowError(w, e)
		}
		return
	}
	diag.ShowError(w, err)
}
