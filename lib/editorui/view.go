// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/stope-project/stope/lib/geom"
	"github.com/stope-project/stope/lib/stringedit"
	"github.com/stope-project/stope/lib/tui"
)

// Cell classes for the canvas grid, in drawing priority order: a
// handle overdraws a line, the selected handle overdraws a plain one.
const (
	cellEmpty = iota
	cellLine
	cellHandle
	cellSelected
	cellDragged
)

const (
	lineGlyph     = '·'
	handleGlyph   = '■'
	selectedGlyph = '◆'
)

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "loading..."
	}
	if model.screen == ScreenPicker {
		return model.viewPicker()
	}
	return model.viewCanvas()
}

func (model Model) viewPicker() string {
	header := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true).
		Render(" stope") +
		lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render(fmt.Sprintf("  %d strings", len(model.host.Strings())))

	body := model.picker.View(model.theme, model.width, model.height-2)

	help := model.helpLine([]string{
		model.keyHelp(model.keys.Open),
		model.keyHelp(model.keys.FilterActivate),
		model.keyHelp(model.keys.Quit),
	})

	return header + "\n" + body + help
}

func (model Model) viewCanvas() string {
	var builder strings.Builder
	builder.WriteString(model.renderHeader())
	builder.WriteString("\n")
	builder.WriteString(model.renderPlanView())
	builder.WriteString(model.renderStatusBar())
	builder.WriteString("\n")
	builder.WriteString(model.renderHelp())

	view := builder.String()
	if model.menu != nil {
		view = tui.SpliceOverlay(view, model.menu.Render(model.theme), model.menu.AnchorX, model.menu.AnchorY)
	}
	return view
}

// displayedSequence is what the canvas draws: the live working
// sequence during a session, the stored geometry otherwise.
func (model Model) displayedSequence() geom.Sequence {
	if model.engine != nil {
		return model.engine.Working()
	}
	return model.current.Sequence()
}

// displayedClosed mirrors the session's open/closed view when one is
// live.
func (model Model) displayedClosed() bool {
	if model.engine != nil {
		return model.engine.Closed()
	}
	return model.current.Closed
}

func (model Model) renderHeader() string {
	nameStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	typeStyle := lipgloss.NewStyle().
		Foreground(model.theme.TypeColor(model.current.Type))
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var parts []string
	parts = append(parts, nameStyle.Render(" "+model.current.Name))
	parts = append(parts, typeStyle.Render(string(model.current.Type)))
	if model.displayedClosed() {
		parts = append(parts, faintStyle.Render("closed"))
	} else {
		parts = append(parts, faintStyle.Render("open"))
	}

	if model.mode == ModeEditing {
		badge := lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.ModifiedAccent).
			Render(" EDIT ")
		parts = append(parts, badge)
		if model.engine.Stats().Modified {
			parts = append(parts, lipgloss.NewStyle().
				Foreground(model.theme.ModifiedAccent).
				Render("*"))
		}
	}

	return strings.Join(parts, "  ")
}

// renderPlanView rasterizes the string into a rune grid: segments as
// Bresenham lines, vertex handles on top, the closing segment when
// the string is closed.
func (model Model) renderPlanView() string {
	width := model.width
	height := model.canvasHeight()

	glyphs := make([][]rune, height)
	classes := make([][]int, height)
	for row := range glyphs {
		glyphs[row] = make([]rune, width)
		classes[row] = make([]int, width)
		for column := range glyphs[row] {
			glyphs[row][column] = ' '
		}
	}

	plot := func(x, y int, glyph rune, class int) {
		if x < 0 || x >= width || y < 0 || y >= height {
			return
		}
		if class < classes[y][x] {
			return
		}
		glyphs[y][x] = glyph
		classes[y][x] = class
	}

	sequence := model.displayedSequence()
	vertices := sequence.Vertices()

	// Segments first.
	for index := 0; index+1 < len(vertices); index++ {
		startX, startY := model.projector.WorldToScreen(vertices[index].X, vertices[index].Y, vertices[index].Z)
		endX, endY := model.projector.WorldToScreen(vertices[index+1].X, vertices[index+1].Y, vertices[index+1].Z)
		drawLine(startX, startY, endX, endY, func(x, y int) {
			plot(x, y, lineGlyph, cellLine)
		})
	}
	if model.displayedClosed() && len(vertices) > 2 {
		last := vertices[len(vertices)-1]
		first := vertices[0]
		startX, startY := model.projector.WorldToScreen(last.X, last.Y, last.Z)
		endX, endY := model.projector.WorldToScreen(first.X, first.Y, first.Z)
		drawLine(startX, startY, endX, endY, func(x, y int) {
			plot(x, y, lineGlyph, cellLine)
		})
	}

	// Handles on top.
	selected := stringedit.NoSelection
	dragging := false
	if model.engine != nil {
		selected = model.engine.Selected()
		dragging = model.engine.Dragging()
	}
	for index, vertex := range vertices {
		screenX, screenY := model.projector.WorldToScreen(vertex.X, vertex.Y, vertex.Z)
		switch {
		case index == selected && dragging:
			plot(screenX, screenY, selectedGlyph, cellDragged)
		case index == selected:
			plot(screenX, screenY, selectedGlyph, cellSelected)
		default:
			plot(screenX, screenY, handleGlyph, cellHandle)
		}
	}

	lineStyle := lipgloss.NewStyle().Foreground(model.theme.LineColor)
	handleStyle := lipgloss.NewStyle().Foreground(model.theme.HandleColor)
	selectedStyle := lipgloss.NewStyle().Foreground(model.theme.SelectedHandle).Bold(true)
	draggedStyle := lipgloss.NewStyle().Foreground(model.theme.DragHandle).Bold(true)

	var builder strings.Builder
	for row := 0; row < height; row++ {
		for column := 0; column < width; column++ {
			glyph := string(glyphs[row][column])
			switch classes[row][column] {
			case cellLine:
				builder.WriteString(lineStyle.Render(glyph))
			case cellHandle:
				builder.WriteString(handleStyle.Render(glyph))
			case cellSelected:
				builder.WriteString(selectedStyle.Render(glyph))
			case cellDragged:
				builder.WriteString(draggedStyle.Render(glyph))
			default:
				builder.WriteString(glyph)
			}
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

func (model Model) renderStatusBar() string {
	if model.statusText != "" {
		style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		if model.statusLevel >= slog.LevelWarn {
			style = lipgloss.NewStyle().Foreground(model.theme.ErrorText)
		}
		return style.Render(" " + model.statusText)
	}

	if model.coordEdit != nil {
		return " " + model.coordEdit.View(model.theme)
	}

	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	normalStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)

	sequence := model.displayedSequence()
	parts := []string{
		fmt.Sprintf("%d vertices", sequence.Len()),
		fmt.Sprintf("length %.1f", sequence.PathLength()),
		fmt.Sprintf("scale %.2f", model.projector.Scale),
	}

	if model.engine != nil {
		cursor, total := model.engine.HistoryDepth()
		parts = append(parts, fmt.Sprintf("history %d/%d", cursor+1, total))

		stats := model.engine.Stats()
		indicators := ""
		if stats.CanUndo {
			indicators += "undo"
		}
		if stats.CanRedo {
			if indicators != "" {
				indicators += "+"
			}
			indicators += "redo"
		}
		if indicators != "" {
			parts = append(parts, indicators)
		}

		if vertex, ok := model.engine.SelectedVertex(); ok {
			parts = append(parts, fmt.Sprintf("v%d (%.1f, %.1f, %.1f)",
				model.engine.Selected(), vertex.X, vertex.Y, vertex.Z))
		}
	}

	return " " + normalStyle.Render(strings.Join(parts, faintStyle.Render(" · ")))
}

func (model Model) renderHelp() string {
	var entries []string
	switch {
	case model.menu != nil:
		entries = []string{"↑/↓ choose", "Enter apply", "Esc dismiss"}
	case model.coordEdit != nil:
		entries = []string{"Tab field", "Enter apply", "Esc revert"}
	case model.mode == ModeEditing:
		entries = []string{
			model.keyHelp(model.keys.NextVert),
			model.keyHelp(model.keys.Menu),
			model.keyHelp(model.keys.CoordEdit),
			model.keyHelp(model.keys.Undo),
			model.keyHelp(model.keys.Redo),
			model.keyHelp(model.keys.Save),
			model.keyHelp(model.keys.Cancel),
		}
	default:
		entries = []string{
			model.keyHelp(model.keys.Edit),
			model.keyHelp(model.keys.FitView),
			model.keyHelp(model.keys.ZoomIn),
			model.keyHelp(model.keys.ZoomOut),
			model.keyHelp(model.keys.Cancel),
			model.keyHelp(model.keys.Quit),
		}
	}
	return model.helpLine(entries)
}

func (model Model) helpLine(entries []string) string {
	return lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Render(" " + strings.Join(entries, "  "))
}

func (model Model) keyHelp(binding key.Binding) string {
	help := binding.Help()
	return help.Key + " " + help.Desc
}

// drawLine plots an integer line from (x0, y0) to (x1, y1) using
// Bresenham's algorithm, calling plot for every cell including both
// endpoints.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	deltaX := x1 - x0
	if deltaX < 0 {
		deltaX = -deltaX
	}
	deltaY := y1 - y0
	if deltaY < 0 {
		deltaY = -deltaY
	}

	stepX := 1
	if x0 > x1 {
		stepX = -1
	}
	stepY := 1
	if y0 > y1 {
		stepY = -1
	}

	err := deltaX - deltaY
	x, y := x0, y0
	for {
		plot(x, y)
		if x == x1 && y == y1 {
			return
		}
		doubled := 2 * err
		if doubled > -deltaY {
			err -= deltaY
			x += stepX
		}
		if doubled < deltaX {
			err += deltaX
			y += stepY
		}
	}
}
