package main

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_LoadConfig_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Prompt != "==> " || cfg.ContPrompt != "... " {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func Test_LoadConfig_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := "prompt: \"$ \"\nhistory_file: /tmp/hist\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Prompt != "$ " {
		t.Fatalf("prompt: got %q", cfg.Prompt)
	}
	if cfg.HistoryFile != "/tmp/hist" {
		t.Fatalf("history_file: got %q", cfg.HistoryFile)
	}
	// unset keys keep their defaults
	if cfg.ContPrompt != "... " {
		t.Fatalf("continuation_prompt: got %q", cfg.ContPrompt)
	}
}

func Test_LoadConfig_ExplicitMissingFileFails(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}
