// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusLogMsg delivers a slog record to the model for display in the
// status bar. Only records at or above the handler's level arrive.
type statusLogMsg struct {
	// Text is the one-line rendering shown in the status bar.
	Text string

	// Level selects the styling (warn vs error).
	Level slog.Level
}

// statusFadeMsg clears a faded log line from the status bar, restoring
// the normal help text.
type statusFadeMsg struct{}

// statusFadeDelay is how long a log line stays in the status bar.
const statusFadeDelay = 5 * time.Second

// StatusLogHandler is a slog.Handler that routes log records into the
// running bubbletea program as messages, so backend failures (a save
// that could not write, a journal append error) surface in the status
// bar instead of corrupting the terminal.
//
// Create the handler before the program exists and call SetProgram
// once tea.NewProgram returns; records arriving before then are
// dropped. Handlers derived via WithAttrs/WithGroup share the same
// program pointer, so one SetProgram call covers all of them.
type StatusLogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	groups  []string
}

// NewStatusLogHandler creates a handler delivering records at or above
// level.
func NewStatusLogHandler(level slog.Level) *StatusLogHandler {
	return &StatusLogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives log messages. Safe to call
// from any goroutine.
func (handler *StatusLogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled reports whether the handler wants records at the given level.
func (handler *StatusLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record as "message (key=value, ...)" and sends it
// to the program. Silently dropped when no program is attached yet.
func (handler *StatusLogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})

	text := record.Message
	if len(parts) > 0 {
		text += " (" + strings.Join(parts, ", ") + ")"
	}

	program.Send(statusLogMsg{Text: text, Level: record.Level})
	return nil
}

// WithAttrs returns a derived handler with the attributes appended.
func (handler *StatusLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &StatusLogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   append(slices.Clone(handler.attrs), attrs...),
		groups:  slices.Clone(handler.groups),
	}
}

// WithGroup returns a derived handler with the group name appended.
func (handler *StatusLogHandler) WithGroup(name string) slog.Handler {
	return &StatusLogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   slices.Clone(handler.attrs),
		groups:  append(slices.Clone(handler.groups), name),
	}
}
