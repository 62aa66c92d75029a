// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stope-project/stope/lib/config"
	"github.com/stope-project/stope/lib/geom"
	"github.com/stope-project/stope/lib/journal"
	"github.com/stope-project/stope/lib/stringedit"
	"github.com/stope-project/stope/lib/stringfile"
	"github.com/stope-project/stope/lib/tui"
)

// Screen selects which top-level view the model renders.
type Screen int

const (
	// ScreenPicker lists the project's strings for selection.
	ScreenPicker Screen = iota
	// ScreenCanvas shows one string in the plan view.
	ScreenCanvas
)

// Mode is the editor state within the canvas screen.
type Mode int

const (
	// ModeViewing is read-only: pan, zoom, and inspect.
	ModeViewing Mode = iota
	// ModeEditing has a live edit session with undo history.
	ModeEditing
)

// Pan step sizes in cells per arrow press. Horizontal is larger
// because terminal cells are roughly twice as tall as they are wide.
const (
	panStepX = 4
	panStepY = 2
)

// Wheel zoom factors per notch.
const (
	zoomInFactor  = 0.8
	zoomOutFactor = 1.25
)

// Model is the bubbletea model for the string editor: a picker over
// the project's strings and a plan-view canvas with a modal
// viewing/editing split. All interaction flows through Update; the
// engine owns edit semantics and the model owns focus routing,
// projection, and chrome.
type Model struct {
	host          Host
	configuration *config.Config
	theme         tui.Theme
	keys          KeyMap
	logger        *slog.Logger

	width  int
	height int
	ready  bool

	screen Screen
	picker PickerModel

	// Canvas state. engine is nil while viewing.
	current   stringfile.CADString
	mode      Mode
	engine    *stringedit.Engine
	projector *PlanProjector

	// Overlays. At most one is active; each captures keyboard input
	// while visible.
	menu      *tui.MenuOverlay
	coordEdit *CoordEditModel

	// draggingVertex is true between a left press on a vertex handle
	// and its release; motion events move the vertex transiently.
	draggingVertex bool

	// journalWriter records committed snapshots for crash recovery.
	// Nil when journaling is disabled or the journal could not be
	// created.
	journalWriter *journal.Writer

	// Transient status-bar message from the log handler.
	statusText  string
	statusLevel slog.Level
}

// NewModel builds the editor over the given host. logger should be
// backed by a StatusLogHandler so warnings surface in the status bar.
func NewModel(host Host, configuration *config.Config, logger *slog.Logger) Model {
	return Model{
		host:          host,
		configuration: configuration,
		theme:         tui.DefaultTheme,
		keys:          DefaultKeyMap,
		logger:        logger,
		picker:        NewPicker(host.Strings()),
	}
}

// OpenInitial opens the given string directly, skipping the picker.
// Unknown IDs are ignored and the picker shows as usual. Call before
// the program starts; the projector refits on the first window size
// message.
func (model *Model) OpenInitial(id string) {
	entry, ok := model.host.Reload(id)
	if !ok {
		return
	}
	model.openString(entry)
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// canvasHeight is the plan-view height in rows: total height minus
// the header, status bar, and help line.
func (model Model) canvasHeight() int {
	height := model.height - 3
	if height < 1 {
		height = 1
	}
	return height
}

// canvasTop is the screen row where the canvas begins (below the
// one-line header).
func (model Model) canvasTop() int {
	return 1
}

// Update implements tea.Model. Keyboard input routes by focus: an
// open overlay (menu, coordinate editor) captures everything, then
// the picker filter, then the mode-level bindings.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKeys(message)

	case tea.MouseMsg:
		model.handleMouse(message)

	case tea.WindowSizeMsg:
		firstSize := !model.ready
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		if model.projector != nil {
			model.projector.Resize(model.width, model.canvasHeight())
			// A string opened before the first size message (via
			// OpenInitial) was fitted to a zero-sized canvas; refit
			// now that the real dimensions are known.
			if firstSize && model.configuration.View.InitialScale == 0 {
				model.projector.Fit(model.displayedSequence())
			}
		}

	case statusLogMsg:
		model.statusText = message.Text
		model.statusLevel = message.Level
		return model, tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
			return statusFadeMsg{}
		})

	case statusFadeMsg:
		model.statusText = ""
	}
	return model, nil
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.screen == ScreenPicker {
		return model.handlePickerKeys(message)
	}

	// Overlays capture all keyboard input while visible.
	if model.menu != nil {
		model.handleMenuKeys(message)
		return model, nil
	}
	if model.coordEdit != nil {
		model.handleCoordEditKeys(message)
		return model, nil
	}

	if model.mode == ModeEditing {
		return model.handleEditKeys(message)
	}
	return model.handleViewKeys(message)
}

// handlePickerKeys drives the string list. While the filter input is
// active every printable key goes to it.
func (model Model) handlePickerKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.picker.FilterActive() {
		switch message.Type {
		case tea.KeyEscape:
			model.picker.ClearFilter()
		case tea.KeyEnter:
			model.picker.DeactivateFilter()
		case tea.KeyBackspace:
			model.picker.HandleBackspace()
		case tea.KeyUp:
			model.picker.MoveUp()
		case tea.KeyDown:
			model.picker.MoveDown()
		case tea.KeyRunes:
			for _, character := range message.Runes {
				model.picker.HandleRune(character)
			}
		}
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FilterActivate):
		model.picker.ActivateFilter()

	case key.Matches(message, model.keys.Open):
		if entry, ok := model.picker.Selected(); ok {
			model.openString(entry)
		}

	default:
		switch message.String() {
		case "up", "k":
			model.picker.MoveUp()
		case "down", "j":
			model.picker.MoveDown()
		}
	}
	return model, nil
}

// handleViewKeys drives the read-only canvas: pan, zoom, start a
// session, or go back to the picker.
func (model Model) handleViewKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Cancel):
		model.closeString()

	case key.Matches(message, model.keys.Edit):
		model.startSession()

	case key.Matches(message, model.keys.ZoomIn):
		model.projector.Zoom(zoomInFactor)
	case key.Matches(message, model.keys.ZoomOut):
		model.projector.Zoom(zoomOutFactor)
	case key.Matches(message, model.keys.FitView):
		model.projector.Fit(model.current.Sequence())

	case key.Matches(message, model.keys.NudgeLeft):
		model.projector.Pan(-panStepX, 0)
	case key.Matches(message, model.keys.NudgeRight):
		model.projector.Pan(panStepX, 0)
	case key.Matches(message, model.keys.NudgeUp):
		model.projector.Pan(0, panStepY)
	case key.Matches(message, model.keys.NudgeDown):
		model.projector.Pan(0, -panStepY)
	}
	return model, nil
}

// handleEditKeys drives a live session. Quitting the program is
// deliberately not bound here; the session must be saved or cancelled
// first (ctrl+c still force-quits via bubbletea's default).
func (model Model) handleEditKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.String() == "ctrl+c":
		return model, tea.Quit

	case key.Matches(message, model.keys.Save):
		model.saveSession()

	case key.Matches(message, model.keys.Cancel):
		model.cancelSession()

	case key.Matches(message, model.keys.Undo):
		model.engine.Undo()
		model.recordJournal()

	case key.Matches(message, model.keys.Redo):
		model.engine.Redo()
		model.recordJournal()

	case key.Matches(message, model.keys.Delete):
		if selected := model.engine.Selected(); selected != stringedit.NoSelection {
			model.engine.DeleteVertex(selected)
			model.recordJournal()
		}

	case key.Matches(message, model.keys.Menu):
		model.openMenuOnSelection()

	case key.Matches(message, model.keys.CoordEdit):
		if vertex, ok := model.engine.SelectedVertex(); ok {
			edit := NewCoordEdit(model.engine.Selected(), vertex)
			model.coordEdit = &edit
		}

	case key.Matches(message, model.keys.NextVert):
		model.cycleSelection(1)
	case key.Matches(message, model.keys.PrevVert):
		model.cycleSelection(-1)

	case key.Matches(message, model.keys.NudgeUpBig):
		model.nudgeSelection(0, model.configuration.Editor.NudgeStepLarge)
	case key.Matches(message, model.keys.NudgeDownBig):
		model.nudgeSelection(0, -model.configuration.Editor.NudgeStepLarge)
	case key.Matches(message, model.keys.NudgeLeftBig):
		model.nudgeSelection(-model.configuration.Editor.NudgeStepLarge, 0)
	case key.Matches(message, model.keys.NudgeRightBig):
		model.nudgeSelection(model.configuration.Editor.NudgeStepLarge, 0)

	case key.Matches(message, model.keys.NudgeUp):
		model.nudgeSelection(0, model.configuration.Editor.NudgeStep)
	case key.Matches(message, model.keys.NudgeDown):
		model.nudgeSelection(0, -model.configuration.Editor.NudgeStep)
	case key.Matches(message, model.keys.NudgeLeft):
		model.nudgeSelection(-model.configuration.Editor.NudgeStep, 0)
	case key.Matches(message, model.keys.NudgeRight):
		model.nudgeSelection(model.configuration.Editor.NudgeStep, 0)

	case key.Matches(message, model.keys.Reverse):
		model.engine.Reverse()
		model.reloadIntoSession()

	case key.Matches(message, model.keys.ToggleClose):
		model.engine.ToggleClosed()

	case key.Matches(message, model.keys.ZoomIn):
		model.projector.Zoom(zoomInFactor)
	case key.Matches(message, model.keys.ZoomOut):
		model.projector.Zoom(zoomOutFactor)
	case key.Matches(message, model.keys.FitView):
		model.projector.Fit(model.engine.Working())
	}
	return model, nil
}

func (model *Model) handleMenuKeys(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyEscape:
		model.menu = nil
	case tea.KeyUp:
		model.menu.MoveUp()
	case tea.KeyDown:
		model.menu.MoveDown()
	case tea.KeyEnter:
		if option, enabled := model.menu.Selected(); enabled {
			model.applyMenuAction(option.Action, model.menu.VertexIndex)
		}
		model.menu = nil
	default:
		switch message.String() {
		case "k":
			model.menu.MoveUp()
		case "j":
			model.menu.MoveDown()
		}
	}
}

func (model *Model) handleCoordEditKeys(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyEscape:
		model.coordEdit.Cancel(model.engine)
		model.coordEdit = nil
		model.recordJournal()
	case tea.KeyEnter:
		model.coordEdit.Confirm(model.engine)
		model.coordEdit = nil
		model.recordJournal()
	case tea.KeyTab:
		model.coordEdit.NextField()
	case tea.KeyShiftTab:
		model.coordEdit.PrevField()
	case tea.KeyBackspace:
		model.coordEdit.HandleBackspace(model.engine)
	case tea.KeyCtrlU:
		model.coordEdit.ClearField(model.engine)
	case tea.KeyRunes:
		for _, character := range message.Runes {
			model.coordEdit.HandleRune(character, model.engine)
		}
	}
}

// handleMouse routes pointer input on the canvas screen: left drag
// moves vertices, right click opens the context menu, the wheel
// zooms.
func (model *Model) handleMouse(message tea.MouseMsg) {
	if model.screen != ScreenCanvas || model.projector == nil {
		return
	}

	canvasY := message.Y - model.canvasTop()
	inCanvas := canvasY >= 0 && canvasY < model.canvasHeight() &&
		message.X >= 0 && message.X < model.width

	// An open menu captures clicks: inside selects, outside dismisses.
	if model.menu != nil {
		if message.Button == tea.MouseButtonLeft && message.Action == tea.MouseActionPress {
			if model.menu.Contains(message.X, message.Y) {
				index := model.menu.OptionAtY(message.Y)
				if index >= 0 && !model.menu.Options[index].Disabled {
					model.applyMenuAction(model.menu.Options[index].Action, model.menu.VertexIndex)
				}
			}
			model.menu = nil
		}
		return
	}

	// Active vertex drag: motion moves, release commits.
	if model.draggingVertex {
		switch message.Action {
		case tea.MouseActionMotion:
			model.dragSelectionTo(message.X, canvasY)
		case tea.MouseActionRelease:
			model.engine.CommitMove()
			model.draggingVertex = false
			model.recordJournal()
		}
		return
	}

	switch message.Button {
	case tea.MouseButtonWheelUp:
		if inCanvas {
			model.projector.Zoom(zoomInFactor)
		}

	case tea.MouseButtonWheelDown:
		if inCanvas {
			model.projector.Zoom(zoomOutFactor)
		}

	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress || !inCanvas {
			return
		}
		if model.mode != ModeEditing {
			return
		}
		if model.coordEdit != nil {
			// A click ends the numeric edit as if confirmed.
			model.coordEdit.Confirm(model.engine)
			model.coordEdit = nil
			model.recordJournal()
		}
		if index, ok := model.hitTestVertex(message.X, canvasY); ok {
			model.engine.Select(index)
			model.draggingVertex = true
		} else {
			model.engine.ClearSelection()
		}

	case tea.MouseButtonRight:
		if message.Action != tea.MouseActionRelease || !inCanvas {
			return
		}
		if model.mode != ModeEditing {
			return
		}
		if index, ok := model.hitTestVertex(message.X, canvasY); ok {
			model.engine.Select(index)
			model.openMenuAt(index, message.X+2, message.Y+1)
		}
	}
}

// hitTestVertex finds the vertex whose handle is at (or within one
// cell of) the given canvas coordinate. Exact hits win over adjacent
// ones; among adjacent hits the first in string order wins.
func (model *Model) hitTestVertex(canvasX, canvasY int) (int, bool) {
	sequence := model.engine.Working()
	nearest := -1
	for index, vertex := range sequence.Vertices() {
		screenX, screenY := model.projector.WorldToScreen(vertex.X, vertex.Y, vertex.Z)
		if screenX == canvasX && screenY == canvasY {
			return index, true
		}
		deltaX := screenX - canvasX
		deltaY := screenY - canvasY
		if deltaX >= -1 && deltaX <= 1 && deltaY >= -1 && deltaY <= 1 && nearest < 0 {
			nearest = index
		}
	}
	if nearest >= 0 {
		return nearest, true
	}
	return -1, false
}

// dragSelectionTo moves the selected vertex to the world position
// under the pointer, keeping its elevation.
func (model *Model) dragSelectionTo(canvasX, canvasY int) {
	vertex, ok := model.engine.SelectedVertex()
	if !ok {
		return
	}
	worldX, worldY := model.projector.ScreenToWorld(canvasX, canvasY)
	model.engine.MoveVertex(model.engine.Selected(), worldX, worldY, vertex.Z)
}

// cycleSelection moves the selection forward or backward through the
// string, wrapping at the ends.
func (model *Model) cycleSelection(direction int) {
	count := model.engine.Working().Len()
	if count == 0 {
		return
	}
	selected := model.engine.Selected()
	if selected == stringedit.NoSelection {
		if direction > 0 {
			model.engine.Select(0)
		} else {
			model.engine.Select(count - 1)
		}
		return
	}
	model.engine.Select(((selected+direction)%count + count) % count)
}

// nudgeSelection moves the selected vertex by a grid delta. Each
// keypress is its own gesture: move and commit together.
func (model *Model) nudgeSelection(deltaX, deltaY float64) {
	vertex, ok := model.engine.SelectedVertex()
	if !ok {
		return
	}
	model.engine.MoveVertex(model.engine.Selected(), vertex.X+deltaX, vertex.Y+deltaY, vertex.Z)
	model.engine.CommitMove()
	model.recordJournal()
}

// openMenuOnSelection opens the context menu anchored next to the
// selected vertex's handle.
func (model *Model) openMenuOnSelection() {
	vertex, ok := model.engine.SelectedVertex()
	if !ok {
		return
	}
	screenX, screenY := model.projector.WorldToScreen(vertex.X, vertex.Y, vertex.Z)
	model.openMenuAt(model.engine.Selected(), screenX+2, screenY+model.canvasTop()+1)
}

func (model *Model) openMenuAt(vertexIndex, anchorX, anchorY int) {
	canDelete := model.engine.Working().Len() > geom.MinVertices
	menu := tui.NewVertexMenu(vertexIndex, anchorX, anchorY, canDelete)
	menu.AnchorX, menu.AnchorY = tui.ClampAnchor(
		menu.AnchorX, menu.AnchorY,
		menu.Width(), len(menu.Options),
		model.width, model.height,
	)
	model.menu = menu
}

func (model *Model) applyMenuAction(action tui.MenuAction, vertexIndex int) {
	switch action {
	case tui.MenuInsertBefore:
		model.engine.InsertVertex(vertexIndex, stringedit.PlaceBefore)
	case tui.MenuInsertAfter:
		model.engine.InsertVertex(vertexIndex, stringedit.PlaceAfter)
	case tui.MenuDelete:
		model.engine.DeleteVertex(vertexIndex)
	}
	model.recordJournal()
}

// openString switches to the canvas screen on the given string, in
// viewing mode.
func (model *Model) openString(entry stringfile.CADString) {
	model.current = entry
	model.screen = ScreenCanvas
	model.mode = ModeViewing
	model.engine = nil
	model.menu = nil
	model.coordEdit = nil
	model.projector = NewPlanProjector(
		entry.Sequence(),
		model.width, model.canvasHeight(),
		model.configuration.View.InitialScale,
	)
}

// closeString returns to the picker, refreshing its entries from the
// host so committed edits show up in the vertex counts.
func (model *Model) closeString() {
	model.screen = ScreenPicker
	model.engine = nil
	model.projector = nil
	model.picker = NewPicker(model.host.Strings())
}

// startSession begins editing the open string.
func (model *Model) startSession() {
	id := model.current.ID
	host := model.host
	logger := model.logger

	observers := stringedit.Observers{
		Save: func(sequence geom.Sequence) {
			if err := host.SaveString(id, sequence); err != nil {
				logger.Error("save failed", "string", id, "error", err)
			}
		},
		Reverse: func() {
			if err := host.ReverseString(id); err != nil {
				logger.Error("reverse failed", "string", id, "error", err)
			}
		},
		Open: func() {
			if err := host.SetClosed(id, false); err != nil {
				logger.Error("open failed", "string", id, "error", err)
			}
		},
		Close: func() {
			if err := host.SetClosed(id, true); err != nil {
				logger.Error("close failed", "string", id, "error", err)
			}
		},
	}

	model.engine = stringedit.NewEngine(
		model.current.Sequence(),
		model.current.Closed,
		observers,
		model.configuration.Editor.HistoryLimit,
	)
	model.mode = ModeEditing
	model.openJournal()
}

// saveSession persists the working geometry and returns to viewing.
func (model *Model) saveSession() {
	model.engine.Save()
	model.endSession()
	model.logger.Info("saved", "string", model.current.ID)
}

// cancelSession abandons the working geometry and returns to viewing.
func (model *Model) cancelSession() {
	model.engine.Cancel()
	model.endSession()
}

func (model *Model) endSession() {
	model.closeJournal(true)
	model.engine = nil
	model.coordEdit = nil
	model.menu = nil
	model.draggingVertex = false
	model.mode = ModeViewing
	if entry, ok := model.host.Reload(model.current.ID); ok {
		model.current = entry
	}
}

// reloadIntoSession refreshes the session's geometry from the host
// after a metadata operation (reverse) changed the stored string. The
// session restarts with fresh history; reversal is not undoable.
func (model *Model) reloadIntoSession() {
	entry, ok := model.host.Reload(model.current.ID)
	if !ok {
		return
	}
	model.current = entry
	model.closeJournal(true)
	model.startSession()
}

// openJournal creates the crash-recovery journal for the session.
// Failure to create it is logged and editing continues without one.
func (model *Model) openJournal() {
	if !model.configuration.Journal.Enabled {
		return
	}
	path := model.configuration.JournalPath(model.current.ID)
	writer, err := journal.Create(path, model.current.ID)
	if err != nil {
		model.logger.Warn("journal disabled", "error", err)
		return
	}
	model.journalWriter = writer
}

// closeJournal ends the session journal. remove deletes the file: the
// session ended cleanly, so there is nothing to recover.
func (model *Model) closeJournal(remove bool) {
	if model.journalWriter == nil {
		return
	}
	if err := model.journalWriter.Close(); err != nil {
		model.logger.Warn("journal close failed", "error", err)
	}
	if remove {
		if err := journal.Remove(model.configuration.JournalPath(model.current.ID)); err != nil {
			model.logger.Warn("journal remove failed", "error", err)
		}
	}
	model.journalWriter = nil
}

// recordJournal appends the current committed snapshot to the session
// journal.
func (model *Model) recordJournal() {
	if model.journalWriter == nil || model.engine == nil {
		return
	}
	if err := model.journalWriter.Append(model.engine.Working()); err != nil {
		model.logger.Warn("journal append failed", "error", err)
	}
}
