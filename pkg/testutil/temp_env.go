package testutil

import "os"

// Setenv sets an environment variable for the duration of a test, and returns
// the value.
func Setenv(c Cleanuper, name, value string) string {
	restoreEnvLater(c, name)
	os.Setenv(name, value)
	return value
}

// Unsetenv unsets an environment variable for the duration of a test.
func Unsetenv(c Cleanuper, name string) {
	restoreEnvLater(c, name)
	os.Unsetenv(name)
}

func restoreEnvLater(c Cleanuper, name string) {
	if old, existed := os.LookupEnv(name); existed {
		c.Cleanup(func() { os.Setenv(name, old) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
}
