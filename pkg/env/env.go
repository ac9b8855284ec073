// Package env keeps names of environment variables with special significance to
// scm.
package env

// Environment variables with special significance to scm.
const (
	HOME = "HOME"
	// Parent of the directory holding config.yaml and rc.scm.
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	// Parent of the directory holding the history database.
	XDG_STATE_HOME = "XDG_STATE_HOME"
)
