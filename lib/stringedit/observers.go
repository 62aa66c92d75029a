// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package stringedit

import "github.com/stope-project/stope/lib/geom"

// Observers are the host-supplied callbacks the engine fires after
// committed structural changes and on session-level events. Every
// field is optional: a nil callback is skipped. None of them are
// required for the engine's own correctness — they exist so the host
// can mirror edits elsewhere (persist to the project file, relay into
// a shared session) as they happen.
type Observers struct {
	// Save receives the final working sequence when the user saves.
	// Fire-and-forget from the engine's perspective.
	Save func(sequence geom.Sequence)

	// Cancel signals that the session was abandoned.
	Cancel func()

	// VertexInsert fires after an insert commits, with the index the
	// new vertex landed at.
	VertexInsert func(index int, vertex geom.Vertex)

	// VertexDelete fires after a delete commits.
	VertexDelete func(index int)

	// VertexMove fires once per committed move gesture (not per
	// intermediate MoveVertex call), with the final position.
	VertexMove func(index int, vertex geom.Vertex)

	// Reverse, Open, and Close are the structural-metadata requests.
	// The engine invokes them on user request and neither retains nor
	// validates their result.
	Reverse func()
	Open    func()
	Close   func()
}
