// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stope-project/stope/lib/geom"
	"github.com/stope-project/stope/lib/stringedit"
	"github.com/stope-project/stope/lib/tui"
)

// coordFieldNames label the three edit fields in order.
var coordFieldNames = [3]string{"X", "Y", "Z"}

// CoordEditModel is the inline numeric editor for a vertex: three text
// fields over X, Y, and Z. Every keystroke previews the new position
// through the engine's transient move channel, so the canvas tracks
// the typed value live; Enter commits the whole edit as one history
// entry and Escape restores the original position.
type CoordEditModel struct {
	index    int
	original geom.Vertex

	fields [3]string
	active int

	// changed tracks whether any preview was pushed to the engine, so
	// cancel knows whether there is anything to restore.
	changed bool
}

// NewCoordEdit starts an edit over the vertex at index.
func NewCoordEdit(index int, vertex geom.Vertex) CoordEditModel {
	return CoordEditModel{
		index:    index,
		original: vertex,
		fields: [3]string{
			formatCoord(vertex.X),
			formatCoord(vertex.Y),
			formatCoord(vertex.Z),
		},
	}
}

func formatCoord(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Index returns the vertex index under edit.
func (edit *CoordEditModel) Index() int {
	return edit.index
}

// NextField advances focus X -> Y -> Z -> X.
func (edit *CoordEditModel) NextField() {
	edit.active = (edit.active + 1) % len(edit.fields)
}

// PrevField moves focus backwards.
func (edit *CoordEditModel) PrevField() {
	edit.active = (edit.active + len(edit.fields) - 1) % len(edit.fields)
}

// HandleRune appends a typed character to the focused field and
// previews the result. Only characters that can appear in a float are
// accepted.
func (edit *CoordEditModel) HandleRune(character rune, engine *stringedit.Engine) {
	switch {
	case character >= '0' && character <= '9':
	case character == '-' || character == '.':
	default:
		return
	}
	edit.fields[edit.active] += string(character)
	edit.preview(engine)
}

// HandleBackspace removes the last character of the focused field and
// previews the result.
func (edit *CoordEditModel) HandleBackspace(engine *stringedit.Engine) {
	field := edit.fields[edit.active]
	if field == "" {
		return
	}
	edit.fields[edit.active] = field[:len(field)-1]
	edit.preview(engine)
}

// ClearField empties the focused field, previewing the fallback to the
// original component.
func (edit *CoordEditModel) ClearField(engine *stringedit.Engine) {
	edit.fields[edit.active] = ""
	edit.preview(engine)
}

// currentVertex parses the three fields. A field that does not parse
// (empty, lone "-", trailing ".") falls back to the original
// component rather than rejecting the whole edit mid-keystroke.
func (edit *CoordEditModel) currentVertex() geom.Vertex {
	components := [3]float64{edit.original.X, edit.original.Y, edit.original.Z}
	for index, field := range edit.fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		components[index] = value
	}
	return geom.Vertex{X: components[0], Y: components[1], Z: components[2]}
}

func (edit *CoordEditModel) preview(engine *stringedit.Engine) {
	vertex := edit.currentVertex()
	engine.MoveVertex(edit.index, vertex.X, vertex.Y, vertex.Z)
	edit.changed = true
}

// Confirm applies the typed coordinates and folds the whole edit into
// one history entry.
func (edit *CoordEditModel) Confirm(engine *stringedit.Engine) {
	edit.preview(engine)
	engine.CommitMove()
}

// Cancel restores the vertex to its original position. When previews
// were pushed, the restore itself commits so the engine leaves the
// transient drag state cleanly.
func (edit *CoordEditModel) Cancel(engine *stringedit.Engine) {
	if !edit.changed {
		return
	}
	engine.MoveVertex(edit.index, edit.original.X, edit.original.Y, edit.original.Z)
	engine.CommitMove()
}

// View renders the edit bar: vertex index plus the three fields, the
// focused one highlighted with a cursor.
func (edit *CoordEditModel) View(theme tui.Theme) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	activeStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	normalStyle := lipgloss.NewStyle().Foreground(theme.NormalText)

	var builder strings.Builder
	builder.WriteString(labelStyle.Render("vertex " + strconv.Itoa(edit.index) + " "))
	for fieldIndex, field := range edit.fields {
		builder.WriteString(labelStyle.Render(" " + coordFieldNames[fieldIndex] + ":"))
		if fieldIndex == edit.active {
			builder.WriteString(activeStyle.Render(field + "▎"))
		} else {
			builder.WriteString(normalStyle.Render(field))
		}
	}
	builder.WriteString(labelStyle.Render("  enter apply · esc revert · tab next field"))
	return builder.String()
}
