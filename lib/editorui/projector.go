// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"math"

	"github.com/stope-project/stope/lib/geom"
)

// Projector maps 3-D world positions to 2-D screen cells for
// rendering vertex handles. Pure function of its configuration, no
// side effects.
type Projector interface {
	WorldToScreen(x, y, z float64) (int, int)
}

// Project applies a projector with the specified fallback when none
// is available: world coordinates are used directly as screen
// coordinates.
func Project(projector Projector, vertex geom.Vertex) (int, int) {
	if projector == nil {
		return int(math.Round(vertex.X)), int(math.Round(vertex.Y))
	}
	return projector.WorldToScreen(vertex.X, vertex.Y, vertex.Z)
}

// PlanProjector is the concrete top-down projection the TUI uses:
// uniform scale, world origin offset, and a Y flip (grid north is up
// on screen, but terminal rows grow downward). Z is dropped — the
// plan view is a map, elevation shows in the coordinate readout.
//
// Unlike the minimal Projector contract, PlanProjector is invertible:
// ScreenToWorld turns a pointer cell back into grid coordinates,
// which is what vertex dragging needs.
type PlanProjector struct {
	// Scale is world units per terminal cell.
	Scale float64

	// OriginX, OriginY is the world position of the bottom-left
	// corner of the canvas.
	OriginX float64
	OriginY float64

	// Width, Height is the canvas size in cells.
	Width  int
	Height int
}

// fitMargin is the fraction of the canvas left blank around a fitted
// string so end vertices don't sit on the border.
const fitMargin = 0.10

// NewPlanProjector builds a projector fitted to the given sequence's
// bounding box, or centered on it at the fixed scale when scale > 0.
func NewPlanProjector(sequence geom.Sequence, width, height int, scale float64) *PlanProjector {
	projector := &PlanProjector{Scale: 1, Width: width, Height: height}
	if scale > 0 {
		projector.Scale = scale
		projector.centerOn(sequence)
		return projector
	}
	projector.Fit(sequence)
	return projector
}

// Fit chooses scale and origin so the sequence's bounding box fills
// the canvas with a margin. A degenerate box (single point, or all
// vertices coincident) gets unit scale centered on the point.
func (projector *PlanProjector) Fit(sequence geom.Sequence) {
	minimum, maximum, ok := sequence.Bounds()
	if !ok {
		projector.Scale = 1
		projector.OriginX = 0
		projector.OriginY = 0
		return
	}

	usableWidth := float64(projector.Width) * (1 - 2*fitMargin)
	usableHeight := float64(projector.Height) * (1 - 2*fitMargin)
	if usableWidth < 1 {
		usableWidth = 1
	}
	if usableHeight < 1 {
		usableHeight = 1
	}

	extentX := maximum.X - minimum.X
	extentY := maximum.Y - minimum.Y
	scale := math.Max(extentX/usableWidth, extentY/usableHeight)
	if scale <= 0 {
		scale = 1
	}
	projector.Scale = scale
	projector.centerOn(sequence)
}

// centerOn sets the origin so the sequence's bounding-box center maps
// to the canvas center.
func (projector *PlanProjector) centerOn(sequence geom.Sequence) {
	minimum, maximum, ok := sequence.Bounds()
	if !ok {
		return
	}
	centerX := (minimum.X + maximum.X) / 2
	centerY := (minimum.Y + maximum.Y) / 2
	projector.OriginX = centerX - float64(projector.Width)/2*projector.Scale
	projector.OriginY = centerY - float64(projector.Height)/2*projector.Scale
}

// WorldToScreen maps a world position to a canvas cell. Cells outside
// the canvas are returned as-is; the renderer clips.
func (projector *PlanProjector) WorldToScreen(x, y, _ float64) (int, int) {
	screenX := int(math.Round((x - projector.OriginX) / projector.Scale))
	screenY := projector.Height - 1 - int(math.Round((y-projector.OriginY)/projector.Scale))
	return screenX, screenY
}

// ScreenToWorld maps a canvas cell back to world coordinates (the
// center of the cell). Inverse of WorldToScreen up to cell rounding.
func (projector *PlanProjector) ScreenToWorld(screenX, screenY int) (float64, float64) {
	x := projector.OriginX + float64(screenX)*projector.Scale
	y := projector.OriginY + float64(projector.Height-1-screenY)*projector.Scale
	return x, y
}

// Pan shifts the view by the given number of cells.
func (projector *PlanProjector) Pan(cellsX, cellsY int) {
	projector.OriginX += float64(cellsX) * projector.Scale
	projector.OriginY += float64(cellsY) * projector.Scale
}

// Zoom scales the view by factor around the canvas center: factor < 1
// zooms in, > 1 zooms out.
func (projector *PlanProjector) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	centerX := projector.OriginX + float64(projector.Width)/2*projector.Scale
	centerY := projector.OriginY + float64(projector.Height)/2*projector.Scale
	projector.Scale *= factor
	projector.OriginX = centerX - float64(projector.Width)/2*projector.Scale
	projector.OriginY = centerY - float64(projector.Height)/2*projector.Scale
}

// Resize updates the canvas dimensions, keeping the view center
// fixed.
func (projector *PlanProjector) Resize(width, height int) {
	centerX := projector.OriginX + float64(projector.Width)/2*projector.Scale
	centerY := projector.OriginY + float64(projector.Height)/2*projector.Scale
	projector.Width = width
	projector.Height = height
	projector.OriginX = centerX - float64(width)/2*projector.Scale
	projector.OriginY = centerY - float64(height)/2*projector.Scale
}
