// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"github.com/stope-project/stope/lib/geom"
	"github.com/stope-project/stope/lib/stringfile"
)

// Host is the persistence boundary the editor UI talks through. The
// shell owns the authoritative CAD strings; the UI only ever works on
// a local copy for the duration of a session and hands the result
// back here. Save is fire-and-forget from the editor's perspective —
// a failure is reported to the user but the session still ends.
type Host interface {
	// Strings returns the project's CAD strings for the picker.
	Strings() []stringfile.CADString

	// SaveString persists the final geometry of a saved session.
	SaveString(id string, sequence geom.Sequence) error

	// ReverseString flips the stored vertex order of a string. The
	// editor reloads the string afterwards; it does not assume the
	// call succeeded.
	ReverseString(id string) error

	// SetClosed persists the open/closed flag of a string.
	SetClosed(id string, closed bool) error

	// Reload returns the current stored state of one string, used
	// after metadata operations and on session cancel.
	Reload(id string) (stringfile.CADString, bool)
}
