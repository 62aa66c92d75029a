// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// MenuAction identifies what a context-menu entry does when selected.
type MenuAction string

const (
	MenuInsertBefore MenuAction = "insert_before"
	MenuInsertAfter  MenuAction = "insert_after"
	MenuDelete       MenuAction = "delete"
)

// MenuOption is a single selectable entry in the vertex context menu.
type MenuOption struct {
	Label  string     // Display text shown in the menu.
	Action MenuAction // Engine operation this entry triggers.

	// Disabled entries render faint and cannot be selected — the
	// delete entry when the string is at the two-vertex floor.
	Disabled bool
}

// MenuOverlay is the floating per-vertex context menu, anchored at a
// screen position next to the vertex handle it was opened on. It
// captures all keyboard input while visible (up/down to navigate,
// enter to select, escape to dismiss); the editor model owns the
// instance and routes input to it.
type MenuOverlay struct {
	Options []MenuOption
	Cursor  int
	AnchorX int // Screen X coordinate of the menu's top-left corner.
	AnchorY int // Screen Y coordinate of the menu's top-left corner.

	// VertexIndex is the vertex the menu was opened on; the selected
	// action applies to it.
	VertexIndex int
}

// NewVertexMenu builds the standard vertex context menu. canDelete
// disables the delete entry when removing a vertex would drop the
// string below the minimum vertex count.
func NewVertexMenu(vertexIndex, anchorX, anchorY int, canDelete bool) *MenuOverlay {
	return &MenuOverlay{
		Options: []MenuOption{
			{Label: "Insert before", Action: MenuInsertBefore},
			{Label: "Insert after", Action: MenuInsertAfter},
			{Label: "Delete vertex", Action: MenuDelete, Disabled: !canDelete},
		},
		AnchorX:     anchorX,
		AnchorY:     anchorY,
		VertexIndex: vertexIndex,
	}
}

// MoveUp moves the cursor up by one, wrapping to the bottom and
// skipping disabled entries.
func (menu *MenuOverlay) MoveUp() {
	for range menu.Options {
		menu.Cursor--
		if menu.Cursor < 0 {
			menu.Cursor = len(menu.Options) - 1
		}
		if !menu.Options[menu.Cursor].Disabled {
			return
		}
	}
}

// MoveDown moves the cursor down by one, wrapping to the top and
// skipping disabled entries.
func (menu *MenuOverlay) MoveDown() {
	for range menu.Options {
		menu.Cursor++
		if menu.Cursor >= len(menu.Options) {
			menu.Cursor = 0
		}
		if !menu.Options[menu.Cursor].Disabled {
			return
		}
	}
}

// Selected returns the currently highlighted option and false when
// that option is disabled.
func (menu *MenuOverlay) Selected() (MenuOption, bool) {
	option := menu.Options[menu.Cursor]
	return option, !option.Disabled
}

// Width returns the total visible width of the rendered menu in
// columns. This matches the width used by Render and is needed for
// mouse hit-testing.
func (menu *MenuOverlay) Width() int {
	maxLabelWidth := 0
	for _, option := range menu.Options {
		labelWidth := ansi.StringWidth(option.Label)
		if labelWidth > maxLabelWidth {
			maxLabelWidth = labelWidth
		}
	}
	// Layout: " > LABEL  " — 3 chars prefix (space + marker + space),
	// then label, then 1 char padding on each side.
	return 3 + maxLabelWidth + 2
}

// Contains returns true if the screen coordinate (x, y) falls within
// the menu's bounding rectangle.
func (menu *MenuOverlay) Contains(x, y int) bool {
	if y < menu.AnchorY || y >= menu.AnchorY+len(menu.Options) {
		return false
	}
	width := menu.Width()
	return x >= menu.AnchorX && x < menu.AnchorX+width
}

// OptionAtY returns the option index corresponding to the given
// screen Y coordinate, or -1 if the Y coordinate is outside the
// menu's vertical range.
func (menu *MenuOverlay) OptionAtY(y int) int {
	index := y - menu.AnchorY
	if index < 0 || index >= len(menu.Options) {
		return -1
	}
	return index
}

// Render produces the menu lines for overlay splicing. Each line has
// the same visible width (including left/right padding) and a solid
// background for visual separation from the plan view underneath. The
// highlighted option uses a contrasting background; disabled options
// render faint.
func (menu *MenuOverlay) Render(theme Theme) []string {
	totalWidth := menu.Width()
	innerWidth := totalWidth - 2

	backgroundStyle := lipgloss.NewStyle().
		Foreground(theme.MenuForeground).
		Background(theme.MenuBackground)
	disabledStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.MenuBackground)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var lines []string
	for index, option := range menu.Options {
		marker := " "
		if index == menu.Cursor {
			marker = ">"
		}

		content := marker + " " + option.Label
		contentWidth := ansi.StringWidth(content)
		rightPad := innerWidth - contentWidth
		if rightPad < 0 {
			rightPad = 0
		}
		padded := " " + content + strings.Repeat(" ", rightPad) + " "

		style := backgroundStyle
		switch {
		case index == menu.Cursor:
			style = selectedStyle
		case option.Disabled:
			style = disabledStyle
		}
		styledLine := style.Render(padded)

		// Ensure consistent visible width across all lines.
		lineWidth := ansi.StringWidth(styledLine)
		if lineWidth < totalWidth {
			styledLine += style.Render(strings.Repeat(" ", totalWidth-lineWidth))
		}

		lines = append(lines, styledLine)
	}

	return lines
}
