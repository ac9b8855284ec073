package store_test

import (
	"path/filepath"
	"testing"

	"github.com/source-academy/scm-slang/pkg/store"
)

func TestNewStore_PersistsAcrossOpens(t *testing.T) {
	dbname := filepath.Join(t.TempDir(), "db")
	st, err := store.NewStore(dbname)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.AddCmd("(define x 1)"); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = store.NewStore(dbname)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	if cmds, err := st.CmdsWithSeq(0, 2); len(cmds) != 1 || cmds[0].Text != "(define x 1)" || err != nil {
		t.Errorf("CmdsWithSeq(0, 2) -> (%v, %v) after reopening", cmds, err)
	}
	if seq, err := st.NextCmdSeq(); seq != 2 || err != nil {
		t.Errorf("NextCmdSeq() -> (%v, %v) after reopening, want (2, nil)", seq, err)
	}
}

func TestNewStore_BadPath(t *testing.T) {
	if _, err := store.NewStore(filepath.Join(t.TempDir(), "no", "such", "dir")); err == nil {
		t.Errorf("NewStore in a missing directory returns nil error")
	}
}
