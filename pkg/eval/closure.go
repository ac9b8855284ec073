package eval

import (
	"github.com/source-academy/scm-slang/pkg/eval/vals"
	"github.com/source-academy/scm-slang/pkg/parse"
)

// Closure is a procedure defined in the language. It captures the frame it was
// created in.
type Closure struct {
	Params []string
	// Rest, if not empty, is bound to the list of surplus arguments.
	Rest string
	Body parse.Node
	Env  *Env
	// Name is the name the closure was first defined as, used in frame names
	// and traces. It is empty for anonymous closures.
	Name string
}

var _ vals.Value = (*Closure)(nil)

func (*Closure) Kind() string { return "procedure" }

func (*Closure) Repr() string { return "#<procedure>" }

func newClosure(n *parse.Lambda, env *Env) *Closure {
	c := &Closure{Params: make([]string, len(n.Params)), Body: n.Body, Env: env}
	for i, p := range n.Params {
		c.Params[i] = p.Name
	}
	if n.Rest != nil {
		c.Rest = n.Rest.Name
	}
	return c
}

// bind creates the frame for one application of the closure. Missing
// arguments are bound to the empty list; surplus ones go to the rest
// parameter, or are dropped if there is none.
func (c *Closure) bind(args []vals.Value) *Env {
	name := c.Name
	if name == "" {
		name = "lambda"
	}
	env := NewEnv(name, c.Env)
	for i, p := range c.Params {
		if i < len(args) {
			env.Define(p, args[i])
		} else {
			env.Define(p, vals.Nil{})
		}
	}
	if c.Rest != "" {
		var rest []vals.Value
		if len(args) > len(c.Params) {
			rest = args[len(c.Params):]
		}
		env.Define(c.Rest, vals.MakeList(rest...))
	}
	return env
}
