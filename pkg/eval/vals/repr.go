package vals

import (
	"strings"
)

// Reprer is implemented by values defined outside this package, such as
// closures, to control how they are displayed.
type Reprer interface {
	Repr() string
}

// Repr returns the display string of a value as the REPL shows it. Strings are
// written in double quotes.
func Repr(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v, true)
	return sb.String()
}

// ToString is like Repr, but writes strings without quotes. It is what the
// display procedure prints.
func ToString(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v, false)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value, quote bool) {
	switch v := v.(type) {
	case nil:
		sb.WriteString("#<undefined>")
	case Number:
		sb.WriteString(v.String())
	case Complex:
		sb.WriteString(v.String())
	case String:
		if quote {
			writeQuoted(sb, string(v))
		} else {
			sb.WriteString(string(v))
		}
	case Boolean:
		if v {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}
	case Symbol:
		sb.WriteString(string(v))
	case Nil:
		sb.WriteString("()")
	case Void:
	case *List:
		writeSeq(sb, "(", v.Elements, quote)
	case *Vector:
		writeSeq(sb, "#(", v.Elements, quote)
	case *Pair:
		sb.WriteByte('(')
		writeValue(sb, v.Car, quote)
		var rest Value = v.Cdr
	loop:
		for {
			switch r := rest.(type) {
			case *Pair:
				sb.WriteByte(' ')
				writeValue(sb, r.Car, quote)
				rest = r.Cdr
			case *List:
				for _, e := range r.Elements {
					sb.WriteByte(' ')
					writeValue(sb, e, quote)
				}
				break loop
			case Nil:
				break loop
			default:
				sb.WriteString(" . ")
				writeValue(sb, r, quote)
				break loop
			}
		}
		sb.WriteByte(')')
	case *Primitive:
		sb.WriteString("#<primitive:" + v.Name + ">")
	case Error:
		sb.WriteString("Error: " + v.Message)
	case Reprer:
		sb.WriteString(v.Repr())
	default:
		sb.WriteString("#<" + v.Kind() + ">")
	}
}

func writeSeq(sb *strings.Builder, open string, elems []Value, quote bool) {
	sb.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeValue(sb, e, quote)
	}
	sb.WriteByte(')')
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}
