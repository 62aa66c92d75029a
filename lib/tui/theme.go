// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/stope-project/stope/lib/stringfile"
)

// Theme defines the color palette for the editor's terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row / selected vertex handle.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Plan-view rendering.
	LineColor      lipgloss.Color // Segments between vertices.
	HandleColor    lipgloss.Color // Unselected vertex handles.
	SelectedHandle lipgloss.Color // The selected vertex handle.
	DragHandle     lipgloss.Color // The handle under an active drag.

	// String type accents, used in the picker and the header.
	TypeColors map[stringfile.StringType]lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// ModifiedAccent marks an unsaved session in the status bar.
	ModifiedAccent lipgloss.Color

	// ErrorText is used for status-bar log messages at warn or above.
	ErrorText lipgloss.Color

	// Menu overlay.
	MenuForeground lipgloss.Color
	MenuBackground lipgloss.Color
}

// TypeColor returns the accent color for a string type. Unknown types
// fall back to NormalText.
func (theme Theme) TypeColor(stringType stringfile.StringType) lipgloss.Color {
	if color, ok := theme.TypeColors[stringType]; ok {
		return color
	}
	return theme.NormalText
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	LineColor:      lipgloss.Color("244"),
	HandleColor:    lipgloss.Color("75"),  // blue
	SelectedHandle: lipgloss.Color("220"), // amber
	DragHandle:     lipgloss.Color("208"), // orange

	TypeColors: map[stringfile.StringType]lipgloss.Color{
		stringfile.TypePitBoundary: lipgloss.Color("196"), // red
		stringfile.TypeBenchCrest:  lipgloss.Color("114"), // green
		stringfile.TypeBenchToe:    lipgloss.Color("71"),  // darker green
		stringfile.TypeHaulRoad:    lipgloss.Color("220"), // amber
		stringfile.TypeRamp:        lipgloss.Color("208"), // orange
		stringfile.TypeContour:     lipgloss.Color("245"), // gray
		stringfile.TypeGeneric:     lipgloss.Color("252"),
	},

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ModifiedAccent: lipgloss.Color("220"),
	ErrorText:      lipgloss.Color("196"),

	MenuForeground: lipgloss.Color("252"),
	MenuBackground: lipgloss.Color("237"),
}
