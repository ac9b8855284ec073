package eval

import (
	"fmt"
	"strings"

	"github.com/source-academy/scm-slang/pkg/eval/errs"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
)

// Output and errors. Output goes to the Stdout of the current evaluation.

func (ev *Evaler) ioBuiltins() map[string]builtin {
	return map[string]builtin{
		"display": fixed(1, func(args []vals.Value) (vals.Value, error) {
			_, err := fmt.Fprint(ev.stdout, vals.ToString(args[0]))
			return vals.Void{}, err
		}),
		"newline": fixed(0, func(args []vals.Value) (vals.Value, error) {
			_, err := fmt.Fprintln(ev.stdout)
			return vals.Void{}, err
		}),
		"error": variadic(1, func(args []vals.Value) (vals.Value, error) {
			var sb strings.Builder
			sb.WriteString(vals.ToString(args[0]))
			for _, irritant := range args[1:] {
				sb.WriteString(" " + vals.Repr(irritant))
			}
			return nil, errs.User{Message: sb.String()}
		}),
	}
}
