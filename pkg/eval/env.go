package eval

import (
	"sort"

	"github.com/source-academy/scm-slang/pkg/eval/errs"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
)

// Env is a frame of bindings chained to an enclosing frame. Lookups and
// assignments walk the chain; definitions always go to the frame itself.
//
// Frames are shared: every closure created in a frame keeps it alive, and a
// frame keeps its parent alive. The garbage collector reclaims frames nothing
// refers to.
type Env struct {
	name     string
	bindings map[string]vals.Value
	parent   *Env
}

// NewEnv creates an empty frame with the given parent, which may be nil.
func NewEnv(name string, parent *Env) *Env {
	return &Env{name, make(map[string]vals.Value), parent}
}

// Name returns the name of the frame.
func (e *Env) Name() string { return e.name }

// Parent returns the enclosing frame, or nil for the outermost one.
func (e *Env) Parent() *Env { return e.parent }

func (e *Env) lookup(name string) *Env {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.bindings[name]; ok {
			return f
		}
	}
	return nil
}

// Get returns the value bound to name in the nearest frame that binds it.
func (e *Env) Get(name string) (vals.Value, error) {
	f := e.lookup(name)
	if f == nil {
		return nil, errs.UndefinedVariable{Name: name}
	}
	return f.bindings[name], nil
}

// Set changes the value of an existing binding. It never creates one.
func (e *Env) Set(name string, v vals.Value) error {
	f := e.lookup(name)
	if f == nil {
		return errs.UndefinedVariable{Name: name}
	}
	f.bindings[name] = v
	return nil
}

// Define binds name in this frame, shadowing any binding of the same name in
// the enclosing frames.
func (e *Env) Define(name string, v vals.Value) {
	e.bindings[name] = v
}

// Has reports whether name is bound anywhere in the chain.
func (e *Env) Has(name string) bool {
	return e.lookup(name) != nil
}

// Clone copies the whole chain of frames. Changes to the copy are not visible
// in the original, and vice versa. Closures already created keep referring to
// the frames they were created in.
func (e *Env) Clone() *Env {
	if e == nil {
		return nil
	}
	bindings := make(map[string]vals.Value, len(e.bindings))
	for k, v := range e.bindings {
		bindings[k] = v
	}
	return &Env{e.name, bindings, e.parent.Clone()}
}

// Names returns the names bound in this frame, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.bindings))
	for name := range e.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
