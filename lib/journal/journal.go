// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

// Package journal provides the crash-recovery log for edit sessions.
// Every committed snapshot is appended as a CBOR record inside a zstd
// stream; if the editor dies mid-session the host can replay the
// journal and offer the last committed geometry back to the user.
//
// The journal is an append-only safety net, not the undo history —
// lib/history holds the in-session snapshots. A journal is created
// when a session starts and deleted on a clean save or cancel.
package journal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/stope-project/stope/lib/codec"
	"github.com/stope-project/stope/lib/geom"
	"github.com/stope-project/stope/lib/stringedit"
)

// Record is one committed snapshot. Full geometry per record: journal
// files live for one session and vertex counts are interactive-scale,
// so self-contained records beat a diff chain that could be truncated
// anywhere by a crash.
type Record struct {
	// StringID identifies the CAD string under edit.
	StringID string `cbor:"string_id"`

	// RecordedAt is the commit wall-clock time in Unix milliseconds.
	RecordedAt int64 `cbor:"recorded_at"`

	// Vertices is the committed geometry.
	Vertices []geom.Vertex `cbor:"vertices"`

	// Fingerprint is the sequence fingerprint of Vertices, verified
	// on replay so a torn tail record is detected rather than
	// restored.
	Fingerprint []byte `cbor:"fingerprint"`
}

// Writer appends records to a journal file. Not safe for concurrent
// use; the editor core is single-threaded.
type Writer struct {
	file       *os.File
	compressor *zstd.Encoder
	encoder    *codec.Encoder
	stringID   string
}

// Create opens a new journal for the given string, truncating any
// previous journal at path.
func Create(path, stringID string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("creating journal: %w", err)
	}

	compressor, err := zstd.NewWriter(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("initializing journal compressor: %w", err)
	}

	return &Writer{
		file:       file,
		compressor: compressor,
		encoder:    codec.NewEncoder(compressor),
		stringID:   stringID,
	}, nil
}

// Append records a committed snapshot and flushes the compressed
// frame to disk, so the record survives a crash immediately after the
// commit it mirrors.
func (writer *Writer) Append(sequence geom.Sequence) error {
	fingerprint := stringedit.SequenceFingerprint(sequence)
	record := Record{
		StringID:    writer.stringID,
		RecordedAt:  time.Now().UnixMilli(),
		Vertices:    sequence.Vertices(),
		Fingerprint: fingerprint[:],
	}

	if err := writer.encoder.Encode(record); err != nil {
		return fmt.Errorf("appending journal record: %w", err)
	}
	if err := writer.compressor.Flush(); err != nil {
		return fmt.Errorf("flushing journal: %w", err)
	}
	return nil
}

// Close finalizes the compressed stream and closes the file. The
// journal remains replayable; call Remove after a clean session end.
func (writer *Writer) Close() error {
	if err := writer.compressor.Close(); err != nil {
		writer.file.Close()
		return fmt.Errorf("closing journal compressor: %w", err)
	}
	if err := writer.file.Close(); err != nil {
		return fmt.Errorf("closing journal: %w", err)
	}
	return nil
}

// Remove deletes the journal file at path. Missing files are fine —
// a session that never committed anything may never have flushed.
func Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing journal: %w", err)
	}
	return nil
}

// Replay reads every intact record from a journal file. Records whose
// fingerprint does not match their geometry are dropped, as is a torn
// tail record from a crash mid-append; everything before the damage
// is still returned.
func Replay(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer file.Close()

	decompressor, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("initializing journal decompressor: %w", err)
	}
	defer decompressor.Close()

	decoder := codec.NewDecoder(decompressor)
	var records []Record
	for {
		var record Record
		if err := decoder.Decode(&record); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			// A torn tail is expected after a crash; keep what
			// decoded cleanly.
			break
		}

		expected := stringedit.SequenceFingerprint(geom.NewSequence(record.Vertices))
		if len(record.Fingerprint) != len(expected) || string(record.Fingerprint) != string(expected[:]) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// LastSequence returns the geometry of the newest intact record, or
// false when the journal holds none.
func LastSequence(records []Record) (geom.Sequence, bool) {
	if len(records) == 0 {
		return geom.Sequence{}, false
	}
	return geom.NewSequence(records[len(records)-1].Vertices), true
}
