// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stope.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	configuration := Default()
	if configuration.Editor.HistoryLimit != 200 {
		t.Errorf("default history limit = %d", configuration.Editor.HistoryLimit)
	}
	if configuration.Editor.NudgeStep != 1 || configuration.Editor.NudgeStepLarge != 10 {
		t.Errorf("default nudge steps = %v / %v",
			configuration.Editor.NudgeStep, configuration.Editor.NudgeStepLarge)
	}
	if !configuration.Journal.Enabled {
		t.Error("journal should default to enabled")
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
editor:
  history_limit: 50
view:
  initial_scale: 2.5
`)
	configuration, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if configuration.Editor.HistoryLimit != 50 {
		t.Errorf("history limit = %d, want 50", configuration.Editor.HistoryLimit)
	}
	if configuration.View.InitialScale != 2.5 {
		t.Errorf("initial scale = %v, want 2.5", configuration.View.InitialScale)
	}
	// Untouched fields keep their defaults.
	if configuration.Editor.NudgeStep != 1 {
		t.Errorf("nudge step should stay at default, got %v", configuration.Editor.NudgeStep)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"negative history", "editor:\n  history_limit: -1\n", "history_limit"},
		{"zero nudge", "editor:\n  nudge_step: 0\n", "nudge_step"},
		{"negative scale", "view:\n  initial_scale: -3\n", "initial_scale"},
		{"journal without directory", "journal:\n  enabled: true\n  directory: \"\"\n", "journal.directory"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeConfig(t, test.yaml)
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("LoadFile = %v, want error containing %q", err, test.wantErr)
			}
		})
	}
}

func TestLoadWithoutEnvUsesDefaults(t *testing.T) {
	t.Setenv("STOPE_CONFIG", "")
	configuration, err := Load()
	if err != nil {
		t.Fatalf("load without STOPE_CONFIG should use defaults: %v", err)
	}
	if configuration.Editor.HistoryLimit != 200 {
		t.Errorf("expected default config, got history limit %d", configuration.Editor.HistoryLimit)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	t.Setenv("STOPE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("an explicit but missing config path must fail")
	}
}

func TestJournalPathSanitizesID(t *testing.T) {
	configuration := Default()
	configuration.Journal.Directory = "/var/cache/stope"

	path := configuration.JournalPath("crest/..&01")
	if path != "/var/cache/stope/crest____01.journal" {
		t.Errorf("JournalPath = %q", path)
	}

	clean := configuration.JournalPath("crest-01")
	if clean != "/var/cache/stope/crest-01.journal" {
		t.Errorf("JournalPath = %q", clean)
	}
}
