package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/source-academy/scm-slang/pkg/env"
	"github.com/source-academy/scm-slang/pkg/must"
	"github.com/source-academy/scm-slang/pkg/testutil"
)

// Sets up temporary config and state directories and a temporary working
// directory. Returns the config directory.
func setupDirs(t *testing.T) string {
	t.Helper()
	testutil.InTempDir(t)
	testutil.TempHome(t)
	configHome := testutil.TempDir(t)
	testutil.Setenv(t, env.XDG_CONFIG_HOME, configHome)
	testutil.Setenv(t, env.XDG_STATE_HOME, testutil.TempDir(t))
	dir := filepath.Join(configHome, "scm")
	must.OK(os.MkdirAll(dir, 0700))
	return dir
}
