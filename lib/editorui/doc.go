// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

// Package editorui is the interaction layer of the string editor: a
// bubbletea model that translates pointer and keyboard input into
// lib/stringedit engine operations and renders the plan view,
// per-vertex context menu, coordinate fields, and status bar.
//
// The model has two modes. Viewing browses the project (string picker,
// pan and zoom) with the geometry read-only; Editing runs one edit
// session against a stringedit.Engine. Mode transitions are explicit:
// `e` starts a session, Enter saves it through the host, Escape
// cancels it. While a session is live, the editing key bindings
// (undo/redo, delete, arrow nudges) and vertex dragging are active;
// outside it they do nothing, so stray keystrokes over a string you
// are only looking at cannot edit it.
package editorui
