// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package stringedit

import (
	"testing"

	"github.com/stope-project/stope/lib/geom"
)

func threeVertexLine() geom.Sequence {
	return geom.NewSequence([]geom.Vertex{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0},
		{X: 20, Y: 0, Z: 0},
	})
}

func vertexAt(t *testing.T, sequence geom.Sequence, index int) geom.Vertex {
	t.Helper()
	vertex, ok := sequence.At(index)
	if !ok {
		t.Fatalf("no vertex at index %d (len=%d)", index, sequence.Len())
	}
	return vertex
}

func TestInsertVertexMidpoint(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)

	engine.InsertVertex(0, PlaceAfter)

	if engine.Working().Len() != 4 {
		t.Fatalf("expected 4 vertices, got %d", engine.Working().Len())
	}
	inserted := vertexAt(t, engine.Working(), 1)
	if inserted != (geom.Vertex{X: 5, Y: 0, Z: 0}) {
		t.Errorf("midpoint insert produced %v, want (5, 0, 0)", inserted)
	}
}

func TestInsertVertexBeforeFirst(t *testing.T) {
	engine := NewEngine(geom.NewSequence([]geom.Vertex{
		{X: 0, Y: 0, Z: 0},
		{X: 20, Y: 0, Z: 0},
	}), false, Observers{}, 0)

	engine.InsertVertex(0, PlaceBefore)

	// No lower neighbor: the new vertex is the single reference
	// vertex offset by the fixed (+10, +10, 0) delta.
	inserted := vertexAt(t, engine.Working(), 0)
	if inserted != (geom.Vertex{X: 10, Y: 10, Z: 0}) {
		t.Errorf("boundary insert produced %v, want (10, 10, 0)", inserted)
	}
}

func TestInsertVertexAfterLast(t *testing.T) {
	engine := NewEngine(geom.NewSequence([]geom.Vertex{
		{X: 0, Y: 0, Z: 0},
		{X: 20, Y: 5, Z: 0},
	}), false, Observers{}, 0)

	engine.InsertVertex(1, PlaceAfter)

	inserted := vertexAt(t, engine.Working(), 2)
	if inserted != (geom.Vertex{X: 30, Y: 15, Z: 0}) {
		t.Errorf("end insert produced %v, want (30, 15, 0)", inserted)
	}
}

func TestInsertVertexSelectsInserted(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)
	engine.InsertVertex(1, PlaceAfter)
	if engine.Selected() != 2 {
		t.Errorf("selection should land on the inserted vertex, got %d", engine.Selected())
	}
}

func TestInsertVertexNoOpBelowTwoVertices(t *testing.T) {
	engine := NewEngine(geom.NewSequence([]geom.Vertex{{X: 1}}), false, Observers{}, 0)
	engine.InsertVertex(0, PlaceAfter)
	if engine.Working().Len() != 1 {
		t.Errorf("insert on a 1-vertex sequence should no-op, len=%d", engine.Working().Len())
	}
	if engine.Stats().CanUndo {
		t.Error("a no-op insert must not create a history entry")
	}
}

func TestInsertVertexBadIndexNoOp(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)
	engine.InsertVertex(7, PlaceAfter)
	engine.InsertVertex(-1, PlaceBefore)
	if engine.Working().Len() != 3 || engine.Stats().CanUndo {
		t.Error("out-of-range insert must leave the engine untouched")
	}
}

func TestDeleteVertexClearsSelection(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)
	engine.Select(1)

	engine.DeleteVertex(1)

	if engine.Working().Len() != 2 {
		t.Fatalf("expected 2 vertices after delete, got %d", engine.Working().Len())
	}
	if engine.Selected() != NoSelection {
		t.Errorf("delete should clear the selection, got %d", engine.Selected())
	}
}

func TestDeleteVertexFloorIsNoOp(t *testing.T) {
	engine := NewEngine(geom.NewSequence([]geom.Vertex{
		{X: 0}, {X: 10},
	}), false, Observers{}, 0)
	engine.Select(0)

	engine.DeleteVertex(0)

	if engine.Working().Len() != 2 {
		t.Errorf("deletion below the floor must no-op, len=%d", engine.Working().Len())
	}
	if engine.Selected() != 0 {
		t.Error("a rejected delete must not disturb the selection")
	}
	if engine.Stats().CanUndo {
		t.Error("a rejected delete must not create a history entry")
	}
}

func TestDragCommitBatching(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)

	for step := 1; step <= 50; step++ {
		engine.MoveVertex(1, float64(10+step), 0, 0)
	}
	if !engine.Dragging() {
		t.Error("engine should report a drag in progress")
	}
	engine.CommitMove()

	if engine.Dragging() {
		t.Error("commit should end the drag")
	}
	_, total := engine.HistoryDepth()
	if total != 2 {
		t.Errorf("50 moves + 1 commit should produce exactly 1 new entry, history len=%d", total)
	}

	// One undo returns to the starting geometry.
	engine.Undo()
	if !engine.Working().Equal(threeVertexLine()) {
		t.Error("single undo should restore the pre-drag geometry")
	}
}

func TestCommitMoveWithoutPendingChange(t *testing.T) {
	moves := 0
	engine := NewEngine(threeVertexLine(), false, Observers{
		VertexMove: func(int, geom.Vertex) { moves++ },
	}, 0)

	engine.CommitMove()

	_, total := engine.HistoryDepth()
	if total != 2 {
		t.Errorf("an idle commit still records a (duplicate) entry, history len=%d", total)
	}
	if moves != 0 {
		t.Errorf("idle commit fired VertexMove %d times, want 0", moves)
	}
}

func TestUndoRedoEndToEnd(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)

	engine.InsertVertex(0, PlaceAfter)
	want := geom.NewSequence([]geom.Vertex{
		{X: 0, Y: 0, Z: 0},
		{X: 5, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0},
		{X: 20, Y: 0, Z: 0},
	})
	if !engine.Working().Equal(want) {
		t.Fatalf("insert produced %v", engine.Working().Vertices())
	}

	engine.Undo()
	if engine.Working().Len() != 3 {
		t.Fatalf("undo should return to 3 vertices, got %d", engine.Working().Len())
	}

	engine.Redo()
	if !engine.Working().Equal(want) {
		t.Error("redo should restore the midpoint snapshot exactly")
	}
}

func TestUndoClampsSelection(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)
	engine.InsertVertex(2, PlaceAfter) // 4 vertices, selection on index 3.

	engine.Undo() // Back to 3 vertices; index 3 no longer exists.

	if engine.Selected() != NoSelection {
		t.Errorf("selection outside the restored sequence must clear, got %d", engine.Selected())
	}
}

func TestUndoDiscardsUncommittedDrag(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)
	engine.InsertVertex(0, PlaceAfter)
	engine.MoveVertex(1, 99, 99, 99) // Transient, never committed.

	engine.Undo()

	if engine.Dragging() {
		t.Error("undo must discard the transient drag state")
	}
	if !engine.Working().Equal(threeVertexLine()) {
		t.Errorf("undo adopted the wrong snapshot: %v", engine.Working().Vertices())
	}
}

func TestUndoAtOldestIsNoOp(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)
	engine.Undo()
	if !engine.Working().Equal(threeVertexLine()) {
		t.Error("undo with no history must keep the working sequence")
	}
}

func TestRedoInvalidation(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)
	engine.InsertVertex(0, PlaceAfter)
	engine.Undo()

	// A new committed operation discards the redo branch.
	engine.InsertVertex(1, PlaceAfter)
	before := engine.Working()
	engine.Redo()

	if !engine.Working().Equal(before) {
		t.Error("redo after a new commit must be a no-op")
	}
}

func TestObserversFire(t *testing.T) {
	var inserts, deletes, moves int
	var lastInsert geom.Vertex
	engine := NewEngine(threeVertexLine(), false, Observers{
		VertexInsert: func(index int, vertex geom.Vertex) {
			inserts++
			lastInsert = vertex
		},
		VertexDelete: func(index int) { deletes++ },
		VertexMove:   func(index int, vertex geom.Vertex) { moves++ },
	}, 0)

	engine.InsertVertex(0, PlaceAfter)
	engine.DeleteVertex(1)
	engine.MoveVertex(0, 1, 2, 3)
	engine.MoveVertex(0, 2, 3, 4)
	engine.CommitMove()

	if inserts != 1 || lastInsert != (geom.Vertex{X: 5, Y: 0, Z: 0}) {
		t.Errorf("VertexInsert: count=%d vertex=%v", inserts, lastInsert)
	}
	if deletes != 1 {
		t.Errorf("VertexDelete fired %d times, want 1", deletes)
	}
	if moves != 1 {
		t.Errorf("VertexMove must fire once per gesture, fired %d times", moves)
	}
}

func TestReverseIsPassThrough(t *testing.T) {
	reversed := 0
	engine := NewEngine(threeVertexLine(), false, Observers{
		Reverse: func() { reversed++ },
	}, 0)

	engine.Reverse()

	if reversed != 1 {
		t.Errorf("Reverse callback fired %d times, want 1", reversed)
	}
	if !engine.Working().Equal(threeVertexLine()) {
		t.Error("Reverse must not modify the working sequence")
	}
	if engine.Stats().CanUndo {
		t.Error("Reverse must not create a history entry")
	}
}

func TestToggleClosed(t *testing.T) {
	var opens, closes int
	engine := NewEngine(threeVertexLine(), false, Observers{
		Open:  func() { opens++ },
		Close: func() { closes++ },
	}, 0)

	engine.ToggleClosed()
	if !engine.Closed() || closes != 1 {
		t.Errorf("first toggle: closed=%v closes=%d", engine.Closed(), closes)
	}
	engine.ToggleClosed()
	if engine.Closed() || opens != 1 {
		t.Errorf("second toggle: closed=%v opens=%d", engine.Closed(), opens)
	}
	if engine.Stats().CanUndo {
		t.Error("open/close must bypass the undo stack")
	}
}

func TestCancelRestoresCommittedState(t *testing.T) {
	cancelled := false
	engine := NewEngine(threeVertexLine(), false, Observers{
		Cancel: func() { cancelled = true },
	}, 0)
	engine.MoveVertex(1, 99, 99, 99)

	engine.Cancel()

	if !cancelled {
		t.Error("Cancel callback did not fire")
	}
	if engine.Dragging() {
		t.Error("Cancel must clear the drag state")
	}
	if !engine.Working().Equal(threeVertexLine()) {
		t.Error("Cancel must restore the last committed snapshot")
	}
}

func TestSaveHandsOverWorkingSequence(t *testing.T) {
	var saved geom.Sequence
	engine := NewEngine(threeVertexLine(), false, Observers{
		Save: func(sequence geom.Sequence) { saved = sequence },
	}, 0)
	engine.InsertVertex(0, PlaceAfter)

	engine.Save()

	if saved.Len() != 4 {
		t.Errorf("Save received %d vertices, want 4", saved.Len())
	}
}

func TestStatsModified(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)

	if engine.Stats().Modified {
		t.Error("fresh session should not read as modified")
	}

	engine.InsertVertex(0, PlaceAfter)
	if !engine.Stats().Modified {
		t.Error("insert should mark the session modified")
	}

	// Undoing back to the start geometry clears the flag: the
	// fingerprint compares content, not history position.
	engine.Undo()
	if engine.Stats().Modified {
		t.Error("undo back to the start geometry should read as unmodified")
	}
}

func TestStatsDerivedValues(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)
	stats := engine.Stats()
	if stats.VertexCount != 3 || stats.PathLength != 20 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.CanUndo || stats.CanRedo {
		t.Error("fresh session should allow neither undo nor redo")
	}

	engine.InsertVertex(0, PlaceAfter)
	engine.Undo()
	stats = engine.Stats()
	if stats.CanUndo || !stats.CanRedo {
		t.Errorf("after insert+undo: %+v", stats)
	}
}

func TestSelectionInvariant(t *testing.T) {
	engine := NewEngine(threeVertexLine(), false, Observers{}, 0)

	engine.Select(5)
	if engine.Selected() != NoSelection {
		t.Error("out-of-range select must clear the selection")
	}
	engine.Select(-3)
	if engine.Selected() != NoSelection {
		t.Error("negative select must clear the selection")
	}
	engine.Select(2)
	if engine.Selected() != 2 {
		t.Errorf("valid select failed: %d", engine.Selected())
	}
}

func TestFingerprintDistinguishesOrder(t *testing.T) {
	forward := SequenceFingerprint(threeVertexLine())
	backward := SequenceFingerprint(threeVertexLine().Reversed())
	if forward == backward {
		t.Error("reversed sequence must fingerprint differently")
	}
	if forward != SequenceFingerprint(threeVertexLine()) {
		t.Error("fingerprint must be deterministic")
	}
}
