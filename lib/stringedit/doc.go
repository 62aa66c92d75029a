// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

// Package stringedit is the operation layer of the CAD-string editor.
// An Engine owns the working vertex sequence for one edit session, the
// undo/redo history behind it, and the current vertex selection, and
// exposes the structural edits: insert, delete, move, reverse,
// open/close.
//
// The engine distinguishes committed from transient mutation. Discrete
// edits (insert, delete) commit a history snapshot immediately.
// Continuous edits — a pointer drag, live numeric-field typing — go
// through MoveVertex, which updates only the working sequence, and are
// folded into history as a single entry by CommitMove at the end of
// the gesture. This keeps a 50-frame drag from producing 50 undo
// steps.
//
// Failure policy: every operation that would violate an invariant
// (bad index, deleting below the two-vertex floor, undo at the oldest
// entry) is a silent local no-op. Interactive editors must survive a
// rapid double-click or a stale index from racing pointer and keyboard
// handlers without crashing or half-mutating, and the host view
// already has the derived stats it needs to disable illegal actions up
// front.
package stringedit
