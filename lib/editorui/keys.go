// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the editor TUI.
type KeyMap struct {
	// Session lifecycle.
	Edit   key.Binding // Start an edit session on the open string.
	Save   key.Binding // Save the session and return to viewing.
	Cancel key.Binding // Cancel the session / dismiss overlays / back.

	// History.
	Undo key.Binding
	Redo key.Binding

	// Vertex editing.
	Delete    key.Binding // Delete the selected vertex.
	Menu      key.Binding // Open the context menu on the selected vertex.
	CoordEdit key.Binding // Edit the selected vertex's coordinates numerically.
	NextVert  key.Binding // Select the next vertex.
	PrevVert  key.Binding // Select the previous vertex.

	// Nudging (while editing, with a selected vertex). The Shift
	// variants move by the large step.
	NudgeUp       key.Binding
	NudgeDown     key.Binding
	NudgeLeft     key.Binding
	NudgeRight    key.Binding
	NudgeUpBig    key.Binding
	NudgeDownBig  key.Binding
	NudgeLeftBig  key.Binding
	NudgeRightBig key.Binding

	// Structural metadata.
	Reverse     key.Binding
	ToggleClose key.Binding

	// Viewing-mode navigation (pan reuses the arrow keys; they only
	// nudge while a session is live).
	ZoomIn  key.Binding
	ZoomOut key.Binding
	FitView key.Binding

	// Picker.
	FilterActivate key.Binding
	Open           key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Save: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Undo: key.NewBinding(
		key.WithKeys("ctrl+z"),
		key.WithHelp("C-z", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "redo"),
	),
	Delete: key.NewBinding(
		key.WithKeys("delete", "backspace"),
		key.WithHelp("Del", "delete vertex"),
	),
	Menu: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "vertex menu"),
	),
	CoordEdit: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "edit coords"),
	),
	NextVert: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next vertex"),
	),
	PrevVert: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "prev vertex"),
	),
	NudgeUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "nudge +Y"),
	),
	NudgeDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "nudge -Y"),
	),
	NudgeLeft: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "nudge -X"),
	),
	NudgeRight: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "nudge +X"),
	),
	NudgeUpBig: key.NewBinding(
		key.WithKeys("shift+up"),
		key.WithHelp("S-↑", "nudge +Y (big)"),
	),
	NudgeDownBig: key.NewBinding(
		key.WithKeys("shift+down"),
		key.WithHelp("S-↓", "nudge -Y (big)"),
	),
	NudgeLeftBig: key.NewBinding(
		key.WithKeys("shift+left"),
		key.WithHelp("S-←", "nudge -X (big)"),
	),
	NudgeRightBig: key.NewBinding(
		key.WithKeys("shift+right"),
		key.WithHelp("S-→", "nudge +X (big)"),
	),
	Reverse: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reverse"),
	),
	ToggleClose: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "open/close"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	FitView: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fit view"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
