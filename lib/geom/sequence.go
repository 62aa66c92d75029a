// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package geom

import (
	"errors"
	"slices"
)

// MinVertices is the smallest vertex count an editable sequence may
// have. A polyline needs at least two points to be linework at all,
// so DeleteAt never shrinks a sequence below this floor.
const MinVertices = 2

var (
	// ErrIndexOutOfRange is returned by structural operations when the
	// index does not address a valid position in the sequence.
	ErrIndexOutOfRange = errors.New("geom: index out of range")

	// ErrTooFewVertices is returned by DeleteAt when the deletion
	// would leave fewer than MinVertices vertices.
	ErrTooFewVertices = errors.New("geom: sequence would fall below minimum vertex count")
)

// Sequence is an ordered, 0-indexed list of vertices with value
// semantics: the zero value is an empty sequence, and every structural
// operation returns a new Sequence sharing no mutable state with the
// receiver. Sequences are safe to store as history snapshots without
// copying.
type Sequence struct {
	vertices []Vertex
}

// NewSequence builds a Sequence from a vertex slice. The slice is
// copied, so the caller may keep mutating its own copy.
func NewSequence(vertices []Vertex) Sequence {
	return Sequence{vertices: slices.Clone(vertices)}
}

// Len returns the number of vertices.
func (sequence Sequence) Len() int {
	return len(sequence.vertices)
}

// At returns the vertex at index. Returns the zero Vertex and false
// when the index is out of range.
func (sequence Sequence) At(index int) (Vertex, bool) {
	if index < 0 || index >= len(sequence.vertices) {
		return Vertex{}, false
	}
	return sequence.vertices[index], true
}

// Vertices returns a copy of the underlying vertex slice. Callers may
// mutate the returned slice freely.
func (sequence Sequence) Vertices() []Vertex {
	return slices.Clone(sequence.vertices)
}

// InsertAt returns a new sequence with vertex inserted at index.
// Valid indexes are [0, Len()]: inserting at Len() appends. Returns
// ErrIndexOutOfRange otherwise.
func (sequence Sequence) InsertAt(index int, vertex Vertex) (Sequence, error) {
	if index < 0 || index > len(sequence.vertices) {
		return Sequence{}, ErrIndexOutOfRange
	}
	result := make([]Vertex, 0, len(sequence.vertices)+1)
	result = append(result, sequence.vertices[:index]...)
	result = append(result, vertex)
	result = append(result, sequence.vertices[index:]...)
	return Sequence{vertices: result}, nil
}

// DeleteAt returns a new sequence with the vertex at index removed.
// Returns ErrIndexOutOfRange for a bad index and ErrTooFewVertices
// when the deletion would leave fewer than MinVertices vertices.
func (sequence Sequence) DeleteAt(index int) (Sequence, error) {
	if index < 0 || index >= len(sequence.vertices) {
		return Sequence{}, ErrIndexOutOfRange
	}
	if len(sequence.vertices)-1 < MinVertices {
		return Sequence{}, ErrTooFewVertices
	}
	result := make([]Vertex, 0, len(sequence.vertices)-1)
	result = append(result, sequence.vertices[:index]...)
	result = append(result, sequence.vertices[index+1:]...)
	return Sequence{vertices: result}, nil
}

// ReplaceAt returns a new sequence with the vertex at index replaced.
// Pure coordinate substitution — the length never changes. Returns
// ErrIndexOutOfRange for a bad index.
func (sequence Sequence) ReplaceAt(index int, vertex Vertex) (Sequence, error) {
	if index < 0 || index >= len(sequence.vertices) {
		return Sequence{}, ErrIndexOutOfRange
	}
	result := slices.Clone(sequence.vertices)
	result[index] = vertex
	return Sequence{vertices: result}, nil
}

// Reversed returns a new sequence with the vertex order reversed.
func (sequence Sequence) Reversed() Sequence {
	result := slices.Clone(sequence.vertices)
	slices.Reverse(result)
	return Sequence{vertices: result}
}

// PathLength returns the sum of Euclidean distances between
// consecutive vertices. Zero for sequences with fewer than two
// vertices. Note this is the open-path length: a closed string's
// closing segment is display concern only and not part of the vertex
// array.
func (sequence Sequence) PathLength() float64 {
	if len(sequence.vertices) < 2 {
		return 0
	}
	total := 0.0
	for index := 1; index < len(sequence.vertices); index++ {
		total += sequence.vertices[index-1].DistanceTo(sequence.vertices[index])
	}
	return total
}

// Equal reports whether two sequences contain the same vertices in
// the same order. Exact float comparison: history snapshots are exact
// copies, not recomputed values, so bitwise equality is the right
// notion here.
func (sequence Sequence) Equal(other Sequence) bool {
	return slices.Equal(sequence.vertices, other.vertices)
}

// Bounds returns the axis-aligned bounding box of the sequence as
// (min, max) vertices. Returns false when the sequence is empty.
func (sequence Sequence) Bounds() (Vertex, Vertex, bool) {
	if len(sequence.vertices) == 0 {
		return Vertex{}, Vertex{}, false
	}
	minimum := sequence.vertices[0]
	maximum := sequence.vertices[0]
	for _, vertex := range sequence.vertices[1:] {
		minimum.X = min(minimum.X, vertex.X)
		minimum.Y = min(minimum.Y, vertex.Y)
		minimum.Z = min(minimum.Z, vertex.Z)
		maximum.X = max(maximum.X, vertex.X)
		maximum.Y = max(maximum.Y, vertex.Y)
		maximum.Z = max(maximum.Z, vertex.Z)
	}
	return minimum, maximum, true
}
