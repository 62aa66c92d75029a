// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package geom

import (
	"errors"
	"math"
	"testing"
)

func testVertices() []Vertex {
	return []Vertex{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0},
		{X: 20, Y: 0, Z: 0},
	}
}

func TestNewSequenceCopiesInput(t *testing.T) {
	input := testVertices()
	sequence := NewSequence(input)

	input[0] = Vertex{X: 99, Y: 99, Z: 99}

	first, ok := sequence.At(0)
	if !ok {
		t.Fatal("expected vertex at index 0")
	}
	if first.X != 0 {
		t.Errorf("mutating the input slice leaked into the sequence: got %v", first)
	}
}

func TestInsertAt(t *testing.T) {
	sequence := NewSequence(testVertices())

	inserted, err := sequence.InsertAt(1, Vertex{X: 5, Y: 5, Z: 0})
	if err != nil {
		t.Fatalf("InsertAt(1) failed: %v", err)
	}
	if inserted.Len() != 4 {
		t.Fatalf("expected 4 vertices after insert, got %d", inserted.Len())
	}
	vertex, _ := inserted.At(1)
	if vertex.X != 5 || vertex.Y != 5 {
		t.Errorf("inserted vertex misplaced: got %v at index 1", vertex)
	}

	// Original untouched.
	if sequence.Len() != 3 {
		t.Errorf("InsertAt mutated the receiver: len=%d", sequence.Len())
	}
}

func TestInsertAtAppend(t *testing.T) {
	sequence := NewSequence(testVertices())

	appended, err := sequence.InsertAt(sequence.Len(), Vertex{X: 30, Y: 0, Z: 0})
	if err != nil {
		t.Fatalf("InsertAt(Len()) should append: %v", err)
	}
	last, _ := appended.At(3)
	if last.X != 30 {
		t.Errorf("appended vertex misplaced: got %v", last)
	}
}

func TestInsertAtOutOfRange(t *testing.T) {
	sequence := NewSequence(testVertices())

	for _, index := range []int{-1, 4, 100} {
		if _, err := sequence.InsertAt(index, Vertex{}); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("InsertAt(%d) = %v, want ErrIndexOutOfRange", index, err)
		}
	}
}

func TestDeleteAt(t *testing.T) {
	sequence := NewSequence(testVertices())

	deleted, err := sequence.DeleteAt(1)
	if err != nil {
		t.Fatalf("DeleteAt(1) failed: %v", err)
	}
	if deleted.Len() != 2 {
		t.Fatalf("expected 2 vertices after delete, got %d", deleted.Len())
	}
	second, _ := deleted.At(1)
	if second.X != 20 {
		t.Errorf("wrong vertex survived the delete: %v", second)
	}
}

func TestDeleteAtFloor(t *testing.T) {
	sequence := NewSequence(testVertices()[:2])

	if _, err := sequence.DeleteAt(0); !errors.Is(err, ErrTooFewVertices) {
		t.Errorf("deleting from a 2-vertex sequence = %v, want ErrTooFewVertices", err)
	}
	if sequence.Len() != 2 {
		t.Errorf("failed delete changed the sequence: len=%d", sequence.Len())
	}
}

func TestDeleteAtOutOfRange(t *testing.T) {
	sequence := NewSequence(testVertices())

	for _, index := range []int{-1, 3} {
		if _, err := sequence.DeleteAt(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("DeleteAt(%d) = %v, want ErrIndexOutOfRange", index, err)
		}
	}
}

func TestReplaceAt(t *testing.T) {
	sequence := NewSequence(testVertices())

	replaced, err := sequence.ReplaceAt(2, Vertex{X: 20, Y: 15, Z: -5})
	if err != nil {
		t.Fatalf("ReplaceAt failed: %v", err)
	}
	if replaced.Len() != 3 {
		t.Errorf("ReplaceAt changed the length: %d", replaced.Len())
	}
	vertex, _ := replaced.At(2)
	if vertex.Y != 15 || vertex.Z != -5 {
		t.Errorf("replacement not applied: %v", vertex)
	}
	original, _ := sequence.At(2)
	if original.Y != 0 {
		t.Errorf("ReplaceAt mutated the receiver: %v", original)
	}
}

func TestReversed(t *testing.T) {
	sequence := NewSequence(testVertices())
	reversed := sequence.Reversed()

	first, _ := reversed.At(0)
	if first.X != 20 {
		t.Errorf("reverse did not reorder: first=%v", first)
	}
	if !reversed.Reversed().Equal(sequence) {
		t.Error("double reverse should restore the original order")
	}
}

func TestPathLength(t *testing.T) {
	sequence := NewSequence(testVertices())
	if length := sequence.PathLength(); length != 20 {
		t.Errorf("path length = %v, want 20", length)
	}

	diagonal := NewSequence([]Vertex{{}, {X: 3, Y: 4, Z: 0}})
	if length := diagonal.PathLength(); math.Abs(length-5) > 1e-12 {
		t.Errorf("diagonal path length = %v, want 5", length)
	}

	var empty Sequence
	if length := empty.PathLength(); length != 0 {
		t.Errorf("empty path length = %v, want 0", length)
	}
}

func TestCoincidentVerticesPermitted(t *testing.T) {
	sequence := NewSequence([]Vertex{{X: 1}, {X: 1}})
	inserted, err := sequence.InsertAt(1, Vertex{X: 1})
	if err != nil {
		t.Fatalf("coincident insert rejected: %v", err)
	}
	if inserted.Len() != 3 {
		t.Errorf("expected 3 coincident vertices, got %d", inserted.Len())
	}
	if inserted.PathLength() != 0 {
		t.Errorf("coincident path length = %v, want 0", inserted.PathLength())
	}
}

func TestBounds(t *testing.T) {
	sequence := NewSequence([]Vertex{
		{X: -5, Y: 2, Z: 1},
		{X: 10, Y: -3, Z: 7},
	})
	minimum, maximum, ok := sequence.Bounds()
	if !ok {
		t.Fatal("Bounds on a non-empty sequence returned false")
	}
	if minimum.X != -5 || minimum.Y != -3 || minimum.Z != 1 {
		t.Errorf("minimum = %v", minimum)
	}
	if maximum.X != 10 || maximum.Y != 2 || maximum.Z != 7 {
		t.Errorf("maximum = %v", maximum)
	}

	var empty Sequence
	if _, _, ok := empty.Bounds(); ok {
		t.Error("Bounds on an empty sequence should return false")
	}
}

func TestMidpoint(t *testing.T) {
	middle := Midpoint(Vertex{X: 0, Y: 0, Z: 0}, Vertex{X: 10, Y: 0, Z: 0})
	if middle.X != 5 || middle.Y != 0 || middle.Z != 0 {
		t.Errorf("midpoint = %v, want (5, 0, 0)", middle)
	}
}
