// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

// Package stringfile provides parsing, validation, and writing of
// CAD-string project files. Projects are authored on disk as JSONC
// (JSON extended with comments and trailing commas) — survey teams
// annotate their linework files — and written back as plain formatted
// JSON, which is still valid JSONC.
//
// The typical flow:
//
//  1. ReadFile or Parse: JSONC bytes → Project
//  2. Validate: structural checks (unique IDs, vertex floor, known type)
//  3. edit session runs against one string's vertices
//  4. Project.SetVertices + WriteFile: persist the saved geometry
package stringfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/stope-project/stope/lib/geom"
)

// StringType classifies a CAD string in the mine-planning domain.
type StringType string

const (
	TypePitBoundary StringType = "pit_boundary"
	TypeBenchCrest  StringType = "bench_crest"
	TypeBenchToe    StringType = "bench_toe"
	TypeHaulRoad    StringType = "haul_road"
	TypeRamp        StringType = "ramp"
	TypeContour     StringType = "contour"
	TypeGeneric     StringType = "generic"
)

// knownTypes is the set Validate accepts. An empty type defaults to
// TypeGeneric at parse time rather than failing.
var knownTypes = map[StringType]bool{
	TypePitBoundary: true,
	TypeBenchCrest:  true,
	TypeBenchToe:    true,
	TypeHaulRoad:    true,
	TypeRamp:        true,
	TypeContour:     true,
	TypeGeneric:     true,
}

// CADString is one named, typed polyline feature: the authoritative
// backend-owned entity the editor works on a local copy of. The
// editor core never mutates a CADString; a save replaces Vertices
// wholesale via Project.SetVertices.
type CADString struct {
	ID       string        `json:"string_id"`
	Name     string        `json:"name"`
	Type     StringType    `json:"string_type"`
	Closed   bool          `json:"is_closed"`
	Vertices []geom.Vertex `json:"vertices"`
}

// Sequence returns the string's geometry as an editable sequence.
func (cadString CADString) Sequence() geom.Sequence {
	return geom.NewSequence(cadString.Vertices)
}

// Project is a collection of CAD strings sharing one mine grid.
type Project struct {
	Name    string      `json:"name"`
	Strings []CADString `json:"strings"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a Project. Strings with an empty type
// are defaulted to TypeGeneric.
func Parse(data []byte) (*Project, error) {
	stripped := jsonc.ToJSON(data)

	var project Project
	if err := json.Unmarshal(stripped, &project); err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}

	for index := range project.Strings {
		if project.Strings[index].Type == "" {
			project.Strings[index].Type = TypeGeneric
		}
	}
	return &project, nil
}

// ReadFile reads a JSONC project file from disk and parses it.
func ReadFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	project, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return project, nil
}

// Validate checks the structural rules every editable project must
// satisfy: non-empty unique string IDs, a known string type, and at
// least geom.MinVertices vertices per string. Returns the first
// violation found.
func (project *Project) Validate() error {
	seen := make(map[string]bool, len(project.Strings))
	for _, cadString := range project.Strings {
		if cadString.ID == "" {
			return fmt.Errorf("string %q: missing string_id", cadString.Name)
		}
		if seen[cadString.ID] {
			return fmt.Errorf("string %q: duplicate string_id %q", cadString.Name, cadString.ID)
		}
		seen[cadString.ID] = true

		if !knownTypes[cadString.Type] {
			return fmt.Errorf("string %q: unknown string_type %q", cadString.ID, cadString.Type)
		}
		if len(cadString.Vertices) < geom.MinVertices {
			return fmt.Errorf("string %q: %d vertices, need at least %d",
				cadString.ID, len(cadString.Vertices), geom.MinVertices)
		}
	}
	return nil
}

// Find returns the string with the given ID, or false.
func (project *Project) Find(id string) (CADString, bool) {
	for _, cadString := range project.Strings {
		if cadString.ID == id {
			return cadString, true
		}
	}
	return CADString{}, false
}

// SetVertices replaces the geometry of the identified string. Returns
// false when no string has that ID.
func (project *Project) SetVertices(id string, sequence geom.Sequence) bool {
	for index := range project.Strings {
		if project.Strings[index].ID == id {
			project.Strings[index].Vertices = sequence.Vertices()
			return true
		}
	}
	return false
}

// SetClosed replaces the open/closed flag of the identified string.
func (project *Project) SetClosed(id string, closed bool) bool {
	for index := range project.Strings {
		if project.Strings[index].ID == id {
			project.Strings[index].Closed = closed
			return true
		}
	}
	return false
}

// SetReversed reverses the vertex order of the identified string.
// Backend half of the engine's Reverse pass-through.
func (project *Project) SetReversed(id string) bool {
	for index := range project.Strings {
		if project.Strings[index].ID == id {
			sequence := geom.NewSequence(project.Strings[index].Vertices)
			project.Strings[index].Vertices = sequence.Reversed().Vertices()
			return true
		}
	}
	return false
}

// WriteFile writes the project as formatted JSON. The write goes
// through a temp file and rename so a crash mid-write cannot truncate
// the project.
func (project *Project) WriteFile(path string) error {
	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	data = append(data, '\n')

	temporary := path + ".tmp"
	if err := os.WriteFile(temporary, data, 0o644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	if err := os.Rename(temporary, path); err != nil {
		os.Remove(temporary)
		return fmt.Errorf("replacing project file: %w", err)
	}
	return nil
}
