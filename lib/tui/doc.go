// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface components for
// the string editor. Built on bubbletea (Elm architecture), it covers
// the pieces the editor view composes: the color theme, the floating
// context-menu overlay with ANSI-aware splicing, and fzf-backed fuzzy
// matching for the string picker.
package tui
