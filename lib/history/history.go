// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

// Package history provides the bounded linear undo/redo history for an
// edit session: an ordered list of full vertex-sequence snapshots plus
// a single cursor. Snapshots rather than diffs — lib/geom sequences
// are immutable values, so storing whole snapshots is both the
// simplest correct design and cheap for interactive vertex counts.
//
// The history follows the standard "new edit invalidates redo" rule: a
// commit truncates everything beyond the cursor before appending.
package history

import (
	"errors"

	"github.com/stope-project/stope/lib/geom"
)

var (
	// ErrAtOldest is returned by Undo when the cursor is already on
	// the oldest snapshot.
	ErrAtOldest = errors.New("history: already at oldest state")

	// ErrAtNewest is returned by Redo when the cursor is already on
	// the newest snapshot.
	ErrAtNewest = errors.New("history: already at newest state")
)

// History is a cursor-addressed stack of sequence snapshots. It always
// holds at least one entry (the state the session started from), so
// Current never fails.
type History struct {
	entries []geom.Sequence
	cursor  int

	// limit caps the entry count; 0 means unbounded. When a commit
	// would exceed the limit the oldest entry is evicted and the
	// cursor shifts down with it.
	limit int
}

// New creates a history seeded with the initial sequence. The cursor
// starts on that entry. A limit of 0 leaves the history unbounded.
func New(initial geom.Sequence, limit int) *History {
	return &History{
		entries: []geom.Sequence{initial},
		cursor:  0,
		limit:   limit,
	}
}

// Commit records a new snapshot. Any redo branch (entries beyond the
// cursor) is discarded first, then the snapshot is appended and the
// cursor advances onto it. Equal consecutive snapshots are not
// deduplicated; a no-op commit simply produces a duplicate entry.
func (history *History) Commit(sequence geom.Sequence) {
	history.entries = append(history.entries[:history.cursor+1], sequence)
	history.cursor = len(history.entries) - 1

	if history.limit > 0 && len(history.entries) > history.limit {
		evict := len(history.entries) - history.limit
		history.entries = history.entries[evict:]
		history.cursor -= evict
	}
}

// Undo moves the cursor one entry back and returns that snapshot.
// Returns ErrAtOldest (and the current snapshot) when there is
// nothing to undo.
func (history *History) Undo() (geom.Sequence, error) {
	if history.cursor == 0 {
		return history.entries[history.cursor], ErrAtOldest
	}
	history.cursor--
	return history.entries[history.cursor], nil
}

// Redo moves the cursor one entry forward and returns that snapshot.
// Returns ErrAtNewest (and the current snapshot) when there is
// nothing to redo.
func (history *History) Redo() (geom.Sequence, error) {
	if history.cursor >= len(history.entries)-1 {
		return history.entries[history.cursor], ErrAtNewest
	}
	history.cursor++
	return history.entries[history.cursor], nil
}

// Current returns the snapshot under the cursor.
func (history *History) Current() geom.Sequence {
	return history.entries[history.cursor]
}

// CanUndo reports whether Undo would move the cursor.
func (history *History) CanUndo() bool {
	return history.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (history *History) CanRedo() bool {
	return history.cursor < len(history.entries)-1
}

// Len returns the number of stored snapshots.
func (history *History) Len() int {
	return len(history.entries)
}

// Cursor returns the current cursor position. Exposed for the status
// bar ("entry 3/7") and for tests.
func (history *History) Cursor() int {
	return history.cursor
}
