package store_test

import (
	"testing"

	"github.com/source-academy/scm-slang/pkg/store"
	"github.com/source-academy/scm-slang/pkg/store/storetest"
)

func TestCmd(t *testing.T) {
	tStore, cleanup := store.MustGetTempStore()
	defer cleanup()

	storetest.TestCmd(t, tStore)
}
