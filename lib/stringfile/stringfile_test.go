// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package stringfile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stope-project/stope/lib/geom"
)

const sampleProject = `{
	// Northern pit, 2026 design revision.
	"name": "north-pit",
	"strings": [
		{
			"string_id": "crest-120",
			"name": "bench crest 120",
			"string_type": "bench_crest",
			"is_closed": true,
			"vertices": [
				{"x": 0, "y": 0, "z": 120},
				{"x": 50, "y": 0, "z": 120},
				{"x": 50, "y": 40, "z": 120}, // trailing comma below is fine
			],
		},
		{
			"string_id": "haul-1",
			"name": "main haul road",
			"vertices": [
				{"x": 0, "y": 0, "z": 120},
				{"x": 200, "y": 15, "z": 96}
			]
		}
	]
}`

func TestParseJSONC(t *testing.T) {
	project, err := Parse([]byte(sampleProject))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if project.Name != "north-pit" {
		t.Errorf("project name = %q", project.Name)
	}
	if len(project.Strings) != 2 {
		t.Fatalf("expected 2 strings, got %d", len(project.Strings))
	}

	crest := project.Strings[0]
	if crest.Type != TypeBenchCrest || !crest.Closed {
		t.Errorf("crest parsed wrong: type=%q closed=%v", crest.Type, crest.Closed)
	}
	if len(crest.Vertices) != 3 || crest.Vertices[2].Y != 40 {
		t.Errorf("crest vertices parsed wrong: %v", crest.Vertices)
	}

	// Missing string_type defaults to generic.
	if project.Strings[1].Type != TypeGeneric {
		t.Errorf("empty type should default to generic, got %q", project.Strings[1].Type)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	if _, err := Parse([]byte(`{"name": [}`)); err == nil {
		t.Error("malformed JSON should fail to parse")
	}
}

func TestValidate(t *testing.T) {
	project, err := Parse([]byte(sampleProject))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := project.Validate(); err != nil {
		t.Errorf("sample project should validate: %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Project)
		wantErr string
	}{
		{
			name:    "missing id",
			mutate:  func(project *Project) { project.Strings[0].ID = "" },
			wantErr: "missing string_id",
		},
		{
			name:    "duplicate id",
			mutate:  func(project *Project) { project.Strings[1].ID = "crest-120" },
			wantErr: "duplicate string_id",
		},
		{
			name:    "unknown type",
			mutate:  func(project *Project) { project.Strings[0].Type = "spiral" },
			wantErr: "unknown string_type",
		},
		{
			name:    "vertex floor",
			mutate:  func(project *Project) { project.Strings[1].Vertices = project.Strings[1].Vertices[:1] },
			wantErr: "need at least 2",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			project, err := Parse([]byte(sampleProject))
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			test.mutate(project)
			err = project.Validate()
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, test.wantErr)
			}
		})
	}
}

func TestSetVerticesAndWriteRoundTrip(t *testing.T) {
	project, err := Parse([]byte(sampleProject))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	edited := geom.NewSequence([]geom.Vertex{
		{X: 1, Y: 2, Z: 120},
		{X: 3, Y: 4, Z: 120},
	})
	if !project.SetVertices("crest-120", edited) {
		t.Fatal("SetVertices should find crest-120")
	}
	if project.SetVertices("no-such-string", edited) {
		t.Error("SetVertices should report a missing ID")
	}

	path := filepath.Join(t.TempDir(), "project.jsonc")
	if err := project.WriteFile(path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	reloaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	crest, ok := reloaded.Find("crest-120")
	if !ok {
		t.Fatal("crest-120 missing after round trip")
	}
	if len(crest.Vertices) != 2 || crest.Vertices[1].X != 3 {
		t.Errorf("edited vertices did not survive the round trip: %v", crest.Vertices)
	}
}

func TestSetReversed(t *testing.T) {
	project, err := Parse([]byte(sampleProject))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !project.SetReversed("haul-1") {
		t.Fatal("SetReversed should find haul-1")
	}
	haul, _ := project.Find("haul-1")
	if haul.Vertices[0].X != 200 {
		t.Errorf("reverse not applied: %v", haul.Vertices)
	}
}

func TestSetClosed(t *testing.T) {
	project, err := Parse([]byte(sampleProject))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !project.SetClosed("haul-1", true) {
		t.Fatal("SetClosed should find haul-1")
	}
	haul, _ := project.Find("haul-1")
	if !haul.Closed {
		t.Error("closed flag not applied")
	}
}
