// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package stringedit

import (
	"github.com/stope-project/stope/lib/geom"
	"github.com/stope-project/stope/lib/history"
)

// Placement selects which side of a reference vertex a new vertex is
// inserted on.
type Placement int

const (
	// PlaceBefore inserts the new vertex at the reference index,
	// pushing the reference vertex (and everything after it) up.
	PlaceBefore Placement = iota
	// PlaceAfter inserts the new vertex immediately after the
	// reference index.
	PlaceAfter
)

// neighborOffset is the fixed delta applied when a vertex is inserted
// at an end of the string, where only one neighbor exists to reference.
// A simple offset rather than a geometric extrapolation: the user is
// about to drag the new vertex into place anyway, and a fixed delta is
// predictable where an extrapolation of a sharp final segment is not.
const neighborOffset = 10

// NoSelection is the Selected() value when no vertex is selected.
const NoSelection = -1

// Engine owns the editing state of one session: the working sequence,
// the history behind it, and the selection. Not safe for concurrent
// use; the editor core is single-threaded by design, driven by one
// input source.
type Engine struct {
	working   geom.Sequence
	history   *history.History
	observers Observers

	selected int
	dragging bool

	// closed mirrors the CAD string's open/closed flag for display.
	// The flag itself is backend-owned metadata; toggling it goes
	// through the Open/Close observers and never touches history.
	closed bool

	// baseline fingerprints the session-start geometry so Stats can
	// report whether the working sequence has diverged from it.
	baseline Fingerprint

	// Pending uncommitted move, reported to the VertexMove observer
	// when the gesture commits. pendingMove is NoSelection when no
	// move is in flight.
	pendingMove   int
	pendingVertex geom.Vertex
}

// NewEngine starts an edit session on the given sequence. historyLimit
// caps the undo depth (0 = unbounded). The sequence should have at
// least geom.MinVertices vertices; a shorter one is accepted but every
// structural edit on it will no-op.
func NewEngine(initial geom.Sequence, closed bool, observers Observers, historyLimit int) *Engine {
	return &Engine{
		working:     initial,
		history:     history.New(initial, historyLimit),
		observers:   observers,
		selected:    NoSelection,
		closed:      closed,
		baseline:    SequenceFingerprint(initial),
		pendingMove: NoSelection,
	}
}

// Working returns the current working sequence, including any
// uncommitted drag movement.
func (engine *Engine) Working() geom.Sequence {
	return engine.working
}

// Selected returns the selected vertex index, or NoSelection.
func (engine *Engine) Selected() int {
	return engine.selected
}

// SelectedVertex returns the selected vertex, or false when nothing
// is selected.
func (engine *Engine) SelectedVertex() (geom.Vertex, bool) {
	if engine.selected == NoSelection {
		return geom.Vertex{}, false
	}
	return engine.working.At(engine.selected)
}

// Select sets the selection. Out-of-range indexes clear it instead;
// a stale index from a racing input handler must not stick.
func (engine *Engine) Select(index int) {
	if index < 0 || index >= engine.working.Len() {
		engine.selected = NoSelection
		return
	}
	engine.selected = index
}

// ClearSelection drops the vertex selection.
func (engine *Engine) ClearSelection() {
	engine.selected = NoSelection
}

// Dragging reports whether an uncommitted move is in progress: the
// working sequence may diverge from the committed history until
// CommitMove folds it back.
func (engine *Engine) Dragging() bool {
	return engine.dragging
}

// Closed reports the session's view of the string's open/closed flag.
func (engine *Engine) Closed() bool {
	return engine.closed
}

// InsertVertex inserts a new vertex before or after the vertex at
// index and commits the result as one history entry. The new position
// is the midpoint of the two neighbors when both exist; at either end
// of the string, where only one neighbor exists, it is that neighbor
// offset by (+10, +10, 0). No-op when the sequence has fewer than two
// vertices or the index is out of range.
func (engine *Engine) InsertVertex(index int, placement Placement) {
	if engine.working.Len() < geom.MinVertices {
		return
	}
	if index < 0 || index >= engine.working.Len() {
		return
	}

	position := index
	if placement == PlaceAfter {
		position = index + 1
	}

	previous, hasPrevious := engine.working.At(position - 1)
	next, hasNext := engine.working.At(position)

	var vertex geom.Vertex
	switch {
	case hasPrevious && hasNext:
		vertex = geom.Midpoint(previous, next)
	case hasPrevious:
		vertex = previous.Offset(neighborOffset, neighborOffset, 0)
	case hasNext:
		vertex = next.Offset(neighborOffset, neighborOffset, 0)
	default:
		return
	}

	inserted, err := engine.working.InsertAt(position, vertex)
	if err != nil {
		return
	}

	engine.working = inserted
	engine.history.Commit(inserted)
	engine.selected = position
	if engine.observers.VertexInsert != nil {
		engine.observers.VertexInsert(position, vertex)
	}
}

// DeleteVertex removes the vertex at index and commits. Deletion
// always drops the selection; it does not re-target a neighbor.
// Silent no-op at the two-vertex floor or on a bad index.
func (engine *Engine) DeleteVertex(index int) {
	deleted, err := engine.working.DeleteAt(index)
	if err != nil {
		return
	}

	engine.working = deleted
	engine.history.Commit(deleted)
	engine.selected = NoSelection
	if engine.observers.VertexDelete != nil {
		engine.observers.VertexDelete(index)
	}
}

// MoveVertex replaces the coordinates of the vertex at index in the
// working sequence without committing to history. Call it freely per
// pointer-move or per keystroke; CommitMove folds the whole gesture
// into one history entry. Silent no-op on a bad index.
func (engine *Engine) MoveVertex(index int, x, y, z float64) {
	vertex := geom.Vertex{X: x, Y: y, Z: z}
	moved, err := engine.working.ReplaceAt(index, vertex)
	if err != nil {
		return
	}

	engine.working = moved
	engine.dragging = true
	engine.pendingMove = index
	engine.pendingVertex = vertex
}

// CommitMove folds the working sequence into history as a single
// entry, ending the transient drag state. Committing with no pending
// move is harmless: it records a duplicate snapshot, which the
// history deliberately does not deduplicate.
func (engine *Engine) CommitMove() {
	engine.history.Commit(engine.working)
	engine.dragging = false

	if engine.pendingMove != NoSelection {
		if engine.observers.VertexMove != nil {
			engine.observers.VertexMove(engine.pendingMove, engine.pendingVertex)
		}
		engine.pendingMove = NoSelection
	}
}

// Undo steps the history cursor back and adopts that snapshot as the
// working sequence. Any uncommitted drag movement is discarded — the
// committed history is the authority. Silent no-op at the oldest
// entry.
func (engine *Engine) Undo() {
	sequence, err := engine.history.Undo()
	if err != nil {
		return
	}
	engine.adoptSnapshot(sequence)
}

// Redo steps the history cursor forward and adopts that snapshot.
// Silent no-op at the newest entry.
func (engine *Engine) Redo() {
	sequence, err := engine.history.Redo()
	if err != nil {
		return
	}
	engine.adoptSnapshot(sequence)
}

// adoptSnapshot installs a history snapshot as the working sequence,
// discarding transient drag state and clamping the selection to the
// new bounds.
func (engine *Engine) adoptSnapshot(sequence geom.Sequence) {
	engine.working = sequence
	engine.dragging = false
	engine.pendingMove = NoSelection
	if engine.selected >= sequence.Len() {
		engine.selected = NoSelection
	}
}

// Reverse requests a direction flip from the backend. Pass-through:
// reversal is structural metadata outside the vertex-edit history, so
// it produces no history entry and does not modify the working
// sequence. The host reloads the session if the backend applies it.
func (engine *Engine) Reverse() {
	if engine.observers.Reverse != nil {
		engine.observers.Reverse()
	}
}

// ToggleClosed flips the session's open/closed view and notifies the
// backend through the matching observer. Like Reverse, this bypasses
// the undo stack: only vertex-array edits are undoable.
func (engine *Engine) ToggleClosed() {
	engine.closed = !engine.closed
	if engine.closed {
		if engine.observers.Close != nil {
			engine.observers.Close()
		}
	} else {
		if engine.observers.Open != nil {
			engine.observers.Open()
		}
	}
}

// Save hands the working sequence to the host's save callback. Fire
// and forget: the engine does not wait on persistence, the session
// simply ends from its perspective.
func (engine *Engine) Save() {
	if engine.observers.Save != nil {
		engine.observers.Save(engine.working)
	}
}

// Cancel discards the working state, including any uncommitted drag,
// and signals the host. The committed history of the underlying
// string is untouched.
func (engine *Engine) Cancel() {
	engine.working = engine.history.Current()
	engine.dragging = false
	engine.pendingMove = NoSelection
	if engine.observers.Cancel != nil {
		engine.observers.Cancel()
	}
}

// Stats returns the derived read-only statistics for display:
// recomputed on demand, cheap for interactive vertex counts.
func (engine *Engine) Stats() Stats {
	return Stats{
		VertexCount: engine.working.Len(),
		PathLength:  engine.working.PathLength(),
		CanUndo:     engine.history.CanUndo(),
		CanRedo:     engine.history.CanRedo(),
		Modified:    SequenceFingerprint(engine.working) != engine.baseline,
	}
}

// HistoryDepth returns (cursor, total entries) for the status bar.
func (engine *Engine) HistoryDepth() (int, int) {
	return engine.history.Cursor(), engine.history.Len()
}

// Stats is the derived state the host view needs to render chrome and
// to disable illegal actions before they reach the engine.
type Stats struct {
	VertexCount int
	PathLength  float64
	CanUndo     bool
	CanRedo     bool

	// Modified is true when the working sequence differs from the
	// geometry the session started with. Fingerprint comparison, so
	// an edit that is later undone back to the start reads as
	// unmodified again.
	Modified bool
}
