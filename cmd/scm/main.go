// Scm is an interpreter for a teaching subset of Scheme. It runs scripts and
// an interactive REPL with persistent history, and can serve as a language
// server.
package main

import (
	"os"

	"github.com/source-academy/scm-slang/pkg/buildinfo"
	"github.com/source-academy/scm-slang/pkg/lsp"
	"github.com/source-academy/scm-slang/pkg/prog"
	"github.com/source-academy/scm-slang/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, lsp.Program{}, shell.Program{})))
}
