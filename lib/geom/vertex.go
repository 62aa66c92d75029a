// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package geom

import (
	"fmt"
	"math"
)

// Vertex is one 3-D point of a CAD string, in the string's native
// units (typically metres in a mine grid). Vertices are plain values:
// edits replace a vertex in a Sequence rather than mutating it.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DistanceTo returns the Euclidean distance between two vertices.
func (vertex Vertex) DistanceTo(other Vertex) float64 {
	dx := other.X - vertex.X
	dy := other.Y - vertex.Y
	dz := other.Z - vertex.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Midpoint returns the componentwise arithmetic midpoint of two
// vertices. This is the position used when a new vertex is inserted
// between two existing neighbors.
func Midpoint(a, b Vertex) Vertex {
	return Vertex{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
		Z: (a.Z + b.Z) / 2,
	}
}

// Offset returns the vertex translated by (dx, dy, dz).
func (vertex Vertex) Offset(dx, dy, dz float64) Vertex {
	return Vertex{X: vertex.X + dx, Y: vertex.Y + dy, Z: vertex.Z + dz}
}

// String formats the vertex for logs and the coordinate readout.
func (vertex Vertex) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", vertex.X, vertex.Y, vertex.Z)
}
