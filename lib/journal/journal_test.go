// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stope-project/stope/lib/geom"
)

func journalPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "crest-120.journal")
}

func snapshot(n int) geom.Sequence {
	vertices := make([]geom.Vertex, n)
	for index := range vertices {
		vertices[index] = geom.Vertex{X: float64(index * 10), Z: 120}
	}
	return geom.NewSequence(vertices)
}

func TestAppendReplayRoundTrip(t *testing.T) {
	path := journalPath(t)

	writer, err := Create(path, "crest-120")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for n := 2; n <= 5; n++ {
		if err := writer.Append(snapshot(n)); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	records, err := Replay(path)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[0].StringID != "crest-120" {
		t.Errorf("string ID = %q", records[0].StringID)
	}

	last, ok := LastSequence(records)
	if !ok {
		t.Fatal("LastSequence found nothing")
	}
	if !last.Equal(snapshot(5)) {
		t.Errorf("last snapshot mismatch: %v", last.Vertices())
	}
}

func TestReplaySurvivesTornTail(t *testing.T) {
	path := journalPath(t)

	writer, err := Create(path, "crest-120")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := writer.Append(snapshot(2)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := writer.Append(snapshot(3)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	// Simulate a crash mid-append by chopping bytes off the tail.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-7], 0o600); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}

	records, err := Replay(path)
	if err != nil {
		t.Fatalf("replay of a torn journal should not error: %v", err)
	}
	// At least the first record must survive; the torn tail must not
	// surface as geometry.
	if len(records) == 0 {
		t.Fatal("expected at least one intact record")
	}
	last, _ := LastSequence(records)
	if last.Len() != 2 && last.Len() != 3 {
		t.Errorf("replayed tail has unexpected geometry: %d vertices", last.Len())
	}
}

func TestRemove(t *testing.T) {
	path := journalPath(t)
	writer, err := Create(path, "crest-120")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	writer.Close()

	if err := Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("journal file should be gone")
	}
	// Removing a journal that never existed is fine.
	if err := Remove(path); err != nil {
		t.Errorf("double remove should be a no-op: %v", err)
	}
}

func TestReplayEmptyJournal(t *testing.T) {
	path := journalPath(t)
	writer, err := Create(path, "crest-120")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	writer.Close()

	records, err := Replay(path)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("empty journal replayed %d records", len(records))
	}
	if _, ok := LastSequence(records); ok {
		t.Error("LastSequence on an empty journal should return false")
	}
}
