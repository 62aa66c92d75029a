// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the string
// editor.
//
// Configuration is loaded from a single YAML file specified by:
//   - STOPE_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery; a missing file with
// an explicit path is an error. Running without any config uses the
// built-in defaults, which is the common case.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the editor configuration.
type Config struct {
	// Editor configures the edit-session behavior.
	Editor EditorConfig `yaml:"editor"`

	// Journal configures the crash-recovery session journal.
	Journal JournalConfig `yaml:"journal"`

	// View configures the plan-view projection.
	View ViewConfig `yaml:"view"`
}

// EditorConfig configures the edit engine and keyboard behavior.
type EditorConfig struct {
	// HistoryLimit caps the undo depth per session; oldest snapshots
	// are evicted beyond it. 0 means unbounded.
	// Default: 200
	HistoryLimit int `yaml:"history_limit"`

	// NudgeStep is the world-unit distance an arrow key moves the
	// selected vertex.
	// Default: 1
	NudgeStep float64 `yaml:"nudge_step"`

	// NudgeStepLarge is the distance with Shift held.
	// Default: 10
	NudgeStepLarge float64 `yaml:"nudge_step_large"`
}

// JournalConfig configures the session journal.
type JournalConfig struct {
	// Enabled turns journal writing on.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Directory is where session journals are written.
	// Default: $HOME/.cache/stope/journals
	Directory string `yaml:"directory"`
}

// ViewConfig configures the plan-view projection.
type ViewConfig struct {
	// InitialScale is world units per terminal cell at session start;
	// 0 fits the string's bounding box to the window instead.
	// Default: 0 (fit)
	InitialScale float64 `yaml:"initial_scale"`
}

// Default returns the built-in configuration. Unlike most fields, the
// journal directory is resolved at load time so ${HOME} handling
// stays in one place.
func Default() *Config {
	cacheDir, _ := os.UserCacheDir()
	journalDir := ""
	if cacheDir != "" {
		journalDir = cacheDir + "/stope/journals"
	}

	return &Config{
		Editor: EditorConfig{
			HistoryLimit:   200,
			NudgeStep:      1,
			NudgeStepLarge: 10,
		},
		Journal: JournalConfig{
			Enabled:   true,
			Directory: journalDir,
		},
		View: ViewConfig{
			InitialScale: 0,
		},
	}
}

// JournalPath returns the journal file path for one string's edit
// session. String IDs come from validated project files, but the ID
// still gets sanitized here so an odd one cannot escape the journal
// directory.
func (configuration *Config) JournalPath(stringID string) string {
	sanitized := strings.Map(func(character rune) rune {
		switch {
		case character >= 'a' && character <= 'z':
		case character >= 'A' && character <= 'Z':
		case character >= '0' && character <= '9':
		case character == '-' || character == '_':
		default:
			return '_'
		}
		return character
	}, stringID)
	return filepath.Join(configuration.Journal.Directory, sanitized+".journal")
}

// Load loads configuration from the STOPE_CONFIG environment
// variable, falling back to the built-in defaults when it is unset.
func Load() (*Config, error) {
	path := os.Getenv("STOPE_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults. The config file is the single source of truth;
// environment variables do not override its values.
func LoadFile(path string) (*Config, error) {
	configuration := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, configuration); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return configuration, nil
}

// Validate rejects configurations the editor cannot run with.
func (configuration *Config) Validate() error {
	if configuration.Editor.HistoryLimit < 0 {
		return fmt.Errorf("editor.history_limit must be >= 0, got %d", configuration.Editor.HistoryLimit)
	}
	if configuration.Editor.NudgeStep <= 0 {
		return fmt.Errorf("editor.nudge_step must be positive, got %v", configuration.Editor.NudgeStep)
	}
	if configuration.Editor.NudgeStepLarge <= 0 {
		return fmt.Errorf("editor.nudge_step_large must be positive, got %v", configuration.Editor.NudgeStepLarge)
	}
	if configuration.View.InitialScale < 0 {
		return fmt.Errorf("view.initial_scale must be >= 0, got %v", configuration.View.InitialScale)
	}
	if configuration.Journal.Enabled && configuration.Journal.Directory == "" {
		return fmt.Errorf("journal.enabled requires journal.directory")
	}
	return nil
}
