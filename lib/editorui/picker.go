// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/stope-project/stope/lib/stringfile"
	"github.com/stope-project/stope/lib/tui"
)

// pickerItem is one row of the filtered string list.
type pickerItem struct {
	entry stringfile.CADString

	// score and positions come from the fuzzy matcher; positions are
	// rune indexes into the display name, used for highlighting.
	score     int
	positions map[int]bool
}

// PickerModel is the string selection list shown before a string is
// opened: every CAD string in the project, narrowed by an fzf-style
// fuzzy filter over ID, name, and type.
type PickerModel struct {
	entries []stringfile.CADString
	items   []pickerItem
	cursor  int

	// Filter input state. Active means keystrokes go to the filter.
	filterInput  string
	filterActive bool

	// slab is fzf's scratch arena, reused across refilter passes.
	slab *util.Slab
}

// NewPicker builds a picker over the project's strings.
func NewPicker(entries []stringfile.CADString) PickerModel {
	picker := PickerModel{
		entries: entries,
		slab:    util.MakeSlab(100*1024, 2048),
	}
	picker.refilter()
	return picker
}

// Selected returns the string under the cursor, or false when the
// filtered list is empty.
func (picker *PickerModel) Selected() (stringfile.CADString, bool) {
	if picker.cursor < 0 || picker.cursor >= len(picker.items) {
		return stringfile.CADString{}, false
	}
	return picker.items[picker.cursor].entry, true
}

// MoveUp moves the cursor up one row, clamped at the top.
func (picker *PickerModel) MoveUp() {
	if picker.cursor > 0 {
		picker.cursor--
	}
}

// MoveDown moves the cursor down one row, clamped at the bottom.
func (picker *PickerModel) MoveDown() {
	if picker.cursor < len(picker.items)-1 {
		picker.cursor++
	}
}

// FilterActive reports whether keystrokes currently go to the filter.
func (picker *PickerModel) FilterActive() bool {
	return picker.filterActive
}

// ActivateFilter gives the filter input keyboard focus.
func (picker *PickerModel) ActivateFilter() {
	picker.filterActive = true
}

// DeactivateFilter returns focus to the list, keeping the query.
func (picker *PickerModel) DeactivateFilter() {
	picker.filterActive = false
}

// ClearFilter resets the query and deactivates the input.
func (picker *PickerModel) ClearFilter() {
	picker.filterInput = ""
	picker.filterActive = false
	picker.refilter()
}

// HandleRune appends a typed character to the filter query.
func (picker *PickerModel) HandleRune(character rune) {
	picker.filterInput += string(character)
	picker.refilter()
}

// HandleBackspace removes the last character of the filter query.
func (picker *PickerModel) HandleBackspace() {
	if picker.filterInput == "" {
		return
	}
	runes := []rune(picker.filterInput)
	picker.filterInput = string(runes[:len(runes)-1])
	picker.refilter()
}

// displayName is the text the picker matches against and renders:
// "id  name".
func displayName(entry stringfile.CADString) string {
	return entry.ID + "  " + entry.Name
}

// refilter rebuilds the filtered item list. With no query, every
// string is shown in project order. With a query, fuzzy-matched
// strings are shown by descending score.
func (picker *PickerModel) refilter() {
	picker.items = picker.items[:0]

	if picker.filterInput == "" {
		for _, entry := range picker.entries {
			picker.items = append(picker.items, pickerItem{entry: entry})
		}
	} else {
		pattern := []rune(picker.filterInput)
		for _, entry := range picker.entries {
			// Match against the display row and the type so "crest"
			// finds every bench crest.
			text := displayName(entry) + "  " + string(entry.Type)
			result := tui.FuzzyMatch(text, pattern, picker.slab)
			if result.Score <= 0 {
				continue
			}
			positions := make(map[int]bool, len(result.Positions))
			for _, position := range result.Positions {
				positions[position] = true
			}
			picker.items = append(picker.items, pickerItem{
				entry:     entry,
				score:     result.Score,
				positions: positions,
			})
		}
		sort.SliceStable(picker.items, func(a, b int) bool {
			return picker.items[a].score > picker.items[b].score
		})
	}

	if picker.cursor >= len(picker.items) {
		picker.cursor = len(picker.items) - 1
	}
	if picker.cursor < 0 {
		picker.cursor = 0
	}
}

// View renders the picker list into the given size.
func (picker *PickerModel) View(theme tui.Theme, width, height int) string {
	var builder strings.Builder

	filterLine := ""
	if picker.filterActive {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		filterLine = " / " + picker.filterInput + cursor
	} else if picker.filterInput != "" {
		filterLine = lipgloss.NewStyle().
			Foreground(theme.FaintText).
			Render(" filter: " + picker.filterInput)
	}
	builder.WriteString(filterLine)
	builder.WriteString("\n")

	visible := height - 1
	if visible < 1 {
		visible = 1
	}
	normalStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	matchStyle := lipgloss.NewStyle().Bold(true)

	for index, item := range picker.items {
		if index >= visible {
			break
		}

		name := displayName(item.entry)
		var row strings.Builder
		for position, character := range []rune(name) {
			if item.positions[position] {
				row.WriteString(matchStyle.Render(string(character)))
			} else {
				row.WriteRune(character)
			}
		}

		typeStyle := lipgloss.NewStyle().Foreground(theme.TypeColor(item.entry.Type))
		suffix := fmt.Sprintf("  %s, %d vertices", item.entry.Type, len(item.entry.Vertices))
		if item.entry.Closed {
			suffix += ", closed"
		}

		line := "  " + row.String() + typeStyle.Render(suffix)
		if index == picker.cursor {
			line = selectedStyle.Render("> " + name + suffix)
		} else {
			line = normalStyle.Render(line)
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	if len(picker.items) == 0 {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(theme.FaintText).
			Render("  no strings match"))
		builder.WriteString("\n")
	}

	return builder.String()
}
