// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

// Package geom provides the geometric core of the CAD-string editor:
// three-dimensional vertices and ordered vertex sequences with value
// semantics. A Sequence is never mutated in place — every structural
// operation (insert, delete, replace, reverse) returns a new Sequence,
// which is what makes snapshot-based undo in lib/history trivially
// correct.
//
// A sequence with fewer than two vertices is not editable linework;
// DeleteAt refuses to shrink below that floor. Coincident vertices are
// legal and never deduplicated — a bench crest that doubles back on
// itself is valid geometry.
package geom
