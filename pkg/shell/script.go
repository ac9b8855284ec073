package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/source-academy/scm-slang/pkg/diag"
	"github.com/source-academy/scm-slang/pkg/eval"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
	"github.com/source-academy/scm-slang/pkg/parse"
)

// Configuration for the script mode.
type scriptCfg struct {
	Cmd       bool
	ParseOnly bool
	JSON      bool
	Config    *Config
}

// Evaluates a script and returns the exit status. With -c, the display string
// of the value is printed, like in the REPL.
func script(ev *eval.Evaler, fds [3]*os.File, args []string, cfg *scriptCfg) int {
	arg0 := args[0]

	var name, code string
	if cfg.Cmd {
		name = "code from -c"
		code = arg0
	} else {
		var err error
		name, err = filepath.Abs(arg0)
		if err != nil {
			diag.Complainf(fds[2], "cannot get full path of script %q: %v", arg0, err)
			return 2
		}
		code, err = readFileUTF8(name)
		if err != nil {
			diag.Complainf(fds[2], "cannot read script %q: %v", name, err)
			return 2
		}
	}

	src := parse.Source{Name: name, Code: code}
	if cfg.ParseOnly {
		err := ev.Check(src)
		if cfg.JSON {
			fmt.Fprintf(fds[1], "%s\n", errorsToJSON(err))
		} else if err != nil {
			showError(fds[2], err)
		}
		if err != nil {
			return 2
		}
		return 0
	}

	v, err := evalInTTY(ev, fds, src, cfg.Config)
	if err != nil {
		showError(fds[2], err)
		return 2
	}
	if e, ok := v.(vals.Error); ok {
		diag.ShowError(fds[2], e)
		return 2
	}
	if cfg.Cmd {
		if s := vals.Repr(v); s != "" {
			fmt.Fprintln(fds[1], s)
		}
	}
	return 0
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// An auxiliary struct for converting parse errors to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
}

// Converts parse errors into a JSON array. No error gives an empty array.
func errorsToJSON(err error) []byte {
	converted := []errorInJSON{}
	for _, e := range diag.UnpackErrors(err) {
		line, col := e.Context.LineColumn()
		converted = append(converted, errorInJSON{e.Context.Name, line, col, e.Message})
	}
	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
