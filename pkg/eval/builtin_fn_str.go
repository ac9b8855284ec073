package eval

import (
	"strings"
	"unicode/utf8"

	"github.com/source-academy/scm-slang/pkg/eval/vals"
)

// Strings and symbols.

var strBuiltins = map[string]builtin{
	"string-append": variadic(0, func(args []vals.Value) (vals.Value, error) {
		var sb strings.Builder
		for i := range args {
			s, err := stringArg(args, i)
			if err != nil {
				return nil, err
			}
			sb.WriteString(s)
		}
		return vals.String(sb.String()), nil
	}),
	"string-length": fixed(1, func(args []vals.Value) (vals.Value, error) {
		s, err := stringArg(args, 0)
		return vals.Number(utf8.RuneCountInString(s)), err
	}),
	"symbol->string": fixed(1, func(args []vals.Value) (vals.Value, error) {
		sym, ok := args[0].(vals.Symbol)
		if !ok {
			return nil, badArg(0, "symbol", args[0])
		}
		return vals.String(sym), nil
	}),
	"string->symbol": fixed(1, func(args []vals.Value) (vals.Value, error) {
		s, err := stringArg(args, 0)
		return vals.Symbol(s), err
	}),
}

func stringArg(args []vals.Value, i int) (string, error) {
	s, ok := args[i].(vals.String)
	if !ok {
		return "", badArg(i, "string", args[i])
	}
	return string(s), nil
}
