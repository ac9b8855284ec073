// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/source-academy/scm-slang/pkg/store/storedefs"
)

var (
	cmds     = []string{"(define x 1)", "(display x)", "(display 2)", "(define y 2)"}
	searches = []struct {
		upto      int
		prefix    string
		wantedCmd storedefs.Cmd
		wantedErr error
	}{
		{5, "(define", storedefs.Cmd{Text: "(define y 2)", Seq: 4}, nil},
		{5, "(display", storedefs.Cmd{Text: "(display 2)", Seq: 3}, nil},
		{4, "(define", storedefs.Cmd{Text: "(define x 1)", Seq: 1}, nil},
		{100, "", storedefs.Cmd{Text: "(define y 2)", Seq: 4}, nil},
		{3, "(f", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
		{1, "", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
	}
)

// TestCmd tests the command history functionality of a Store. The Store must
// be empty.
func TestCmd(t *testing.T, store storedefs.Store) {
	t.Helper()

	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> (%v, %v), want (1, nil)", startSeq, err)
	}

	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%v) -> (%v, %v), want (%v, nil)", cmd, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextCmdSeq()
	wantedEndSeq := startSeq + len(cmds)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() -> (%v, %v), want (%v, nil)", endSeq, err, wantedEndSeq)
	}

	all, err := store.CmdsWithSeq(startSeq, endSeq)
	if len(all) != len(cmds) || err != nil {
		t.Errorf("store.CmdsWithSeq(%v, %v) -> (%v, %v), want %d entries", startSeq, endSeq, all, err, len(cmds))
	}
	for i, cmd := range all {
		if cmd.Text != cmds[i] || cmd.Seq != startSeq+i {
			t.Errorf("entry %d is %v, want {%v %v}", i, cmd, cmds[i], startSeq+i)
		}
	}

	for _, tt := range searches {
		cmd, err := store.PrevCmd(tt.upto, tt.prefix)
		if cmd != tt.wantedCmd || !matchErr(err, tt.wantedErr) {
			t.Errorf("store.PrevCmd(%v, %v) -> (%v, %v), want (%v, %v)",
				tt.upto, tt.prefix, cmd, err, tt.wantedCmd, tt.wantedErr)
		}
	}

	// AddCmd does not repeat the last entry.
	if seq, err := store.AddCmd(cmds[len(cmds)-1]); seq != endSeq-1 || err != nil {
		t.Errorf("store.AddCmd(last entry) -> (%v, %v), want (%v, nil)", seq, err, endSeq-1)
	}

	if err := store.TrimCmds(2); err != nil {
		t.Errorf("store.TrimCmds(2) -> %v", err)
	}
	got, err := store.CmdsWithSeq(0, endSeq)
	want := []storedefs.Cmd{{Text: cmds[2], Seq: 3}, {Text: cmds[3], Seq: 4}}
	if diff := cmp.Diff(want, got); diff != "" || err != nil {
		t.Errorf("store.CmdsWithSeq after TrimCmds (-want +got), err %v:\n%s", err, diff)
	}
}

func matchErr(e1, e2 error) bool {
	return (e1 == nil && e2 == nil) || (e1 != nil && e2 != nil && e1.Error() == e2.Error())
}
