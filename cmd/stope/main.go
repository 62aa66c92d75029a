// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

// stope is an interactive terminal editor for mine-planning CAD
// strings: the polylines (pit boundaries, bench crests and toes, haul
// roads, ramps) that make up a pit design.
//
// It loads a project file (JSON, with comments allowed), presents a
// fuzzy-filtered picker over its strings, and opens each one in a
// plan-view canvas where vertices can be dragged with the mouse,
// nudged with the keyboard, inserted, deleted, and edited numerically,
// with full undo/redo per session. Edits write back to the project
// file on save.
//
// While a session is live a crash-recovery journal records every
// committed change; if the editor dies mid-session, the next start
// offers the last committed geometry back.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/stope-project/stope/lib/config"
	"github.com/stope-project/stope/lib/editorui"
	"github.com/stope-project/stope/lib/geom"
	"github.com/stope-project/stope/lib/journal"
	"github.com/stope-project/stope/lib/stringfile"
	"github.com/stope-project/stope/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var filePath string
	var stringID string
	var configPath string
	var logOutput string

	flagSet := pflag.NewFlagSet("stope", pflag.ContinueOnError)
	flagSet.StringVar(&filePath, "file", "", "path to the project file (required)")
	flagSet.StringVar(&stringID, "string", "", "open this string directly, skipping the picker")
	flagSet.StringVar(&configPath, "config", "", "path to a config file (default: $STOPE_CONFIG, else built-in defaults)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to TUI display)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to keep it independent of
	// flag errors.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("stope")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	if filePath == "" {
		printHelp(flagSet)
		return fmt.Errorf("--file is required")
	}

	configuration, err := loadConfiguration(configPath)
	if err != nil {
		return err
	}

	project, err := stringfile.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := project.Validate(); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	host := &fileHost{project: project, path: filePath}

	if configuration.Journal.Enabled {
		if err := offerJournalRecovery(configuration, host); err != nil {
			return err
		}
	}

	tuiHandler := editorui.NewStatusLogHandler(slog.LevelWarn)
	logger, closeLog, err := buildLogger(tuiHandler, logOutput)
	if err != nil {
		return err
	}
	defer closeLog()

	model := editorui.NewModel(host, configuration, logger)
	if stringID != "" {
		if _, ok := project.Find(stringID); !ok {
			return fmt.Errorf("no string %q in %s", stringID, filePath)
		}
		model.OpenInitial(stringID)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

func loadConfiguration(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// buildLogger assembles the background logger: always the TUI status
// bar handler, plus a JSON file when --log-output is set.
func buildLogger(tuiHandler slog.Handler, logOutput string) (*slog.Logger, func(), error) {
	if logOutput == "" {
		return slog.New(tuiHandler), func() {}, nil
	}

	file, err := os.Create(logOutput)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file %s: %w", logOutput, err)
	}
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(fanoutHandler{tuiHandler, fileHandler})
	return logger, func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `stope — interactive plan-view editor for mine-planning CAD strings.

Loads a project file, lists its strings in a fuzzy-filtered picker,
and opens them in a terminal plan view for vertex editing. Left-drag
moves vertices, right-click opens the vertex menu, "x" edits
coordinates numerically; Enter saves the session back to the file and
Esc cancels it.

Usage:
  stope --file <project> [flags]

Examples:
  # Open the picker over a project
  stope --file designs/north-pit.json

  # Jump straight into one string
  stope --file designs/north-pit.json --string crest-120

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// fileHost persists editor changes back to the project file. Every
// mutation rewrites the whole file; project files are small and the
// write is atomic, so partial writes cannot corrupt a design.
type fileHost struct {
	project *stringfile.Project
	path    string
}

func (host *fileHost) Strings() []stringfile.CADString {
	return host.project.Strings
}

func (host *fileHost) SaveString(id string, sequence geom.Sequence) error {
	if !host.project.SetVertices(id, sequence) {
		return fmt.Errorf("no string %q in project", id)
	}
	return host.project.WriteFile(host.path)
}

func (host *fileHost) ReverseString(id string) error {
	if !host.project.SetReversed(id) {
		return fmt.Errorf("no string %q in project", id)
	}
	return host.project.WriteFile(host.path)
}

func (host *fileHost) SetClosed(id string, closed bool) error {
	if !host.project.SetClosed(id, closed) {
		return fmt.Errorf("no string %q in project", id)
	}
	return host.project.WriteFile(host.path)
}

func (host *fileHost) Reload(id string) (stringfile.CADString, bool) {
	return host.project.Find(id)
}

// offerJournalRecovery checks each project string for a leftover
// session journal and offers its last committed geometry back. Both
// choices consume the journal; a declined recovery is an explicit
// discard.
func offerJournalRecovery(configuration *config.Config, host *fileHost) error {
	for _, entry := range host.project.Strings {
		path := configuration.JournalPath(entry.ID)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		records, err := journal.Replay(path)
		if err != nil || len(records) == 0 {
			// Unreadable or empty journal: nothing recoverable.
			journal.Remove(path)
			continue
		}

		sequence, ok := journal.LastSequence(records)
		if !ok {
			journal.Remove(path)
			continue
		}

		last := records[len(records)-1]
		recordedAt := time.UnixMilli(last.RecordedAt)
		fmt.Fprintf(os.Stderr,
			"Found a crash-recovery journal for %q (%d committed edits, last at %s).\n",
			entry.ID, len(records), recordedAt.Format(time.DateTime))
		fmt.Fprintf(os.Stderr, "Apply the last committed geometry? [y/N]: ")

		var answer string
		fmt.Scanln(&answer)
		if answer == "y" || answer == "Y" || answer == "yes" {
			host.project.SetVertices(entry.ID, sequence)
			if err := host.project.WriteFile(host.path); err != nil {
				return fmt.Errorf("applying recovered geometry for %q: %w", entry.ID, err)
			}
			fmt.Fprintf(os.Stderr, "Recovered %q.\n", entry.ID)
		} else {
			fmt.Fprintf(os.Stderr, "Discarded journal for %q.\n", entry.ID)
		}
		if err := journal.Remove(path); err != nil {
			return err
		}
	}
	return nil
}

// fanoutHandler sends each record to multiple handlers. A record is
// enabled if any sub-handler is enabled for its level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
