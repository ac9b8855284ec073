package shell

import (
	"os"
	"path/filepath"

	"github.com/source-academy/scm-slang/pkg/env"
)

// Directory of the config file and rc.scm: $XDG_CONFIG_HOME/scm, or
// ~/.config/scm.
func configDir() (string, error) {
	if dir := os.Getenv(env.XDG_CONFIG_HOME); dir != "" {
		return filepath.Join(dir, "scm"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "scm"), nil
}

// Directory of the history database: $XDG_STATE_HOME/scm, or
// ~/.local/state/scm.
func stateDir() (string, error) {
	if dir := os.Getenv(env.XDG_STATE_HOME); dir != "" {
		return filepath.Join(dir, "scm"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "scm"), nil
}

func rcPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rc.scm"), nil
}

// Returns the path of the history database, creating its directory if needed.
func dbPath(cfg *Config) (string, error) {
	path := cfg.HistoryDB
	if path == "" {
		dir, err := stateDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, "db")
	}
	return path, os.MkdirAll(filepath.Dir(path), 0700)
}
