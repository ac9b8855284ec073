package shell

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/source-academy/scm-slang/pkg/prog"
)

// Config keeps the settings read from the config file.
type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation-prompt"`
	// Path of the history database. Relative paths are relative to the config
	// directory.
	HistoryDB string `yaml:"history-db"`
	// Number of history entries kept. Zero or negative means no limit.
	HistorySize int  `yaml:"history-size"`
	StepLimit   int  `yaml:"step-limit"`
	Trace       bool `yaml:"trace"`
	// Files evaluated before anything else. Relative paths are relative to
	// the config directory.
	Preload []string `yaml:"preload"`
}

func defaultConfig() *Config {
	return &Config{
		Prompt:             "scm> ",
		ContinuationPrompt: "...> ",
		HistorySize:        1000,
	}
}

// Reads the config file at path, or at the default location if path is
// empty. A missing file at the default location is not an error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			logger.Println("no config directory:", err)
			return cfg, nil
		}
		path = filepath.Join(dir, "config.yaml")
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("bad config %s: %w", path, err)
	}
	logger.Println("loaded config", path)
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

func (cfg *Config) resolvePaths(dir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	cfg.HistoryDB = resolve(cfg.HistoryDB)
	for i, p := range cfg.Preload {
		cfg.Preload[i] = resolve(p)
	}
}

// Command-line flags take precedence over the config file.
func (cfg *Config) applyFlags(f *prog.Flags) {
	if f.StepLimit > 0 {
		cfg.StepLimit = f.StepLimit
	}
	if f.Trace {
		cfg.Trace = true
	}
	if f.DB != "" {
		cfg.HistoryDB = f.DB
	}
}
