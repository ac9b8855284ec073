package shell

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/source-academy/scm-slang/pkg/must"
	. "github.com/source-academy/scm-slang/pkg/prog/progtest"
	"github.com/source-academy/scm-slang/pkg/store"
	"github.com/source-academy/scm-slang/pkg/store/storedefs"
	"github.com/source-academy/scm-slang/pkg/testutil"
)

func TestInteract(t *testing.T) {
	setupDirs(t)

	Test(t, Program{},
		ThatScm().WithStdin("(define x 2)\n(* x 21)\n").
			WritesStdout("42\n").WritesStderr("scm> scm> scm> "),
		// Definitions survive errors in later chunks.
		ThatScm().WithStdin("(define x 2)\n(car x)\nx\n").
			WritesStdout("Error: bad value: argument 1 of car must be pair, but is 2\n2\n").
			WritesStderrContaining(""),
		ThatScm().WithStdin(`(begin (display "a") 5)` + "\n").
			WritesStdout("a5\n").WritesStderrContaining(""),
		ThatScm().WithStdin("\n  \n1").
			WritesStdout("1\n").WritesStderrContaining(""),
	)
}

func TestInteract_MultiLineChunk(t *testing.T) {
	setupDirs(t)

	Test(t, Program{},
		ThatScm().WithStdin("(define (f x)\n  (* x 2))\n(f 21)\n").
			WritesStdout("42\n").WritesStderr("scm> ...> scm> scm> "),
		ThatScm().WithStdin("(+ 1\n").
			WritesStderrContaining("unexpected end of input, should be ')'"),
	)
}

func TestInteract_ParseError(t *testing.T) {
	setupDirs(t)

	Test(t, Program{},
		ThatScm().WithStdin("(if 1)\n1\n").
			WritesStdout("1\n").
			WritesStderrContaining("if requires exactly 3 arguments"),
	)
}

func TestInteract_RC(t *testing.T) {
	configDir := setupDirs(t)
	must.WriteFile(filepath.Join(configDir, "rc.scm"), "(define y 10)")

	Test(t, Program{},
		ThatScm().WithStdin("y\n").WritesStdout("10\n").WritesStderrContaining(""),
		ThatScm("-norc").WithStdin("y\n").
			WritesStdout("Error: undefined variable: y\n").WritesStderrContaining(""),
	)
}

func TestInteract_RCError(t *testing.T) {
	configDir := setupDirs(t)
	must.WriteFile(filepath.Join(configDir, "rc.scm"), "(define y 10) (car '())")

	Test(t, Program{},
		ThatScm().WithStdin("y\n").
			WritesStdout("10\n").
			WritesStderrContaining("Error: bad value: argument 1 of car must be pair, but is ()"),
	)
}

func TestInteract_History(t *testing.T) {
	setupDirs(t)
	db := filepath.Join(testutil.TempDir(t), "db")

	Test(t, Program{},
		ThatScm("-db", db).
			WithStdin("(define x 1)\n\n(define (f)\n  x)\n(define x 1)\n").
			WritesStderrContaining(""),
	)

	st, err := store.NewStore(db)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	cmds, err := st.CmdsWithSeq(0, 100)
	if err != nil {
		t.Fatal(err)
	}
	want := []storedefs.Cmd{
		{Text: "(define x 1)", Seq: 1},
		{Text: "(define (f)\n  x)", Seq: 2},
		{Text: "(define x 1)", Seq: 3},
	}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
}

func TestInteract_HistorySizeLimit(t *testing.T) {
	configDir := setupDirs(t)
	db := filepath.Join(testutil.TempDir(t), "db")
	must.WriteFile(filepath.Join(configDir, "config.yaml"), "history-size: 1\n")

	Test(t, Program{},
		ThatScm("-db", db).WithStdin("1\n2\n").WritesStdout("1\n2\n").WritesStderrContaining(""),
		// Trimmed when the next session starts.
		ThatScm("-db", db).WithStdin("").WritesStderrContaining(""),
	)

	st, err := store.NewStore(db)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	cmds, err := st.CmdsWithSeq(0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if want := []storedefs.Cmd{{Text: "2", Seq: 2}}; !cmp.Equal(want, cmds) {
		t.Errorf("history = %v, want %v", cmds, want)
	}
}

func TestInteract_BadHistoryDB(t *testing.T) {
	setupDirs(t)
	db := testutil.TempDir(t)

	// The session goes on without history.
	Test(t, Program{},
		ThatScm("-db", db).WithStdin("(+ 1 2)\n").
			WritesStdout("3\n").
			WritesStderrContaining("Warning: cannot open history database"),
	)
}
