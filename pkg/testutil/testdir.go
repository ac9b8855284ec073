package testutil

import (
	"os"
	"path/filepath"

	"github.com/source-academy/scm-slang/pkg/env"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. The returned path has symlinks resolved.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "scmtest")
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		err := os.RemoveAll(dir)
		if err != nil {
			println("failed to remove temp dir", dir)
		}
	})
	return dir
}

// TempHome is equivalent to Setenv(c, "HOME", TempDir(c)). It also clears
// XDG_CONFIG_HOME so that configuration lookups land in the new home.
func TempHome(c Cleanuper) string {
	Unsetenv(c, env.XDG_CONFIG_HOME)
	return Setenv(c, env.HOME, TempDir(c))
}

// Chdir changes into a directory, and restores the original working directory
// when a test finishes. It returns the directory for easier chaining.
func Chdir(c Cleanuper, dir string) string {
	oldWd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	mustChdir(dir)
	c.Cleanup(func() { mustChdir(oldWd) })
	return dir
}

// InTempDir is equivalent to Chdir(c, TempDir(c)).
func InTempDir(c Cleanuper) string {
	return Chdir(c, TempDir(c))
}

func mustChdir(dir string) {
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}
