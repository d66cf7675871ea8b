package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const configFile = ".mathscript.yaml"

// Config is the optional per-user configuration, read from ~/.mathscript.yaml
// (or the file passed via --config). Every field has a working default, so a
// missing file is not an error.
type Config struct {
	HistoryFile string `yaml:"history_file"`
	Prompt      string `yaml:"prompt"`
	ContPrompt  string `yaml:"continuation_prompt"`
}

func defaultConfig() *Config {
	cfg := &Config{
		Prompt:     "==> ",
		ContPrompt: "... ",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".mathscript_history")
	}
	return cfg
}

// loadConfig reads the config file at path, or the default location when path
// is empty. An absent default file yields the defaults; an explicit path that
// cannot be read is an error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "==> "
	}
	if cfg.ContPrompt == "" {
		cfg.ContPrompt = "... "
	}
	return cfg, nil
}
