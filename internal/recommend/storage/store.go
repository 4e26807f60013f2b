// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package storage persists trained model snapshots.
//
// A snapshot is gob-encoded, checksummed with SHA-256 and gzip-compressed,
// then wrapped in an envelope carrying its Metadata. The same envelope is
// written by both backends:
//
//   - FileStore keeps versioned files ({name}_v{version}.gob.gz) in a
//     directory. Every write goes to a temp file that is fsynced and renamed,
//     so readers never see a partial artifact.
//   - BadgerStore keeps the latest envelope per artifact under
//     "model/{name}" in an embedded BadgerDB, written in one transaction.
//
// Versions are assigned by the store and increase monotonically per name.
package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"
)

// Artifact names used by the engines.
const (
	AcademicArtifact      = "academic_performance"
	CollaborativeArtifact = "collaborative_filtering"
)

// ErrNotFound is returned by Load when no artifact exists under the name.
var ErrNotFound = errors.New("model artifact not found")

// Metadata describes a stored artifact.
type Metadata struct {
	// Name is the artifact name (e.g. "collaborative_filtering").
	Name string `json:"name"`

	// Version is assigned by the store on Save.
	Version int `json:"version"`

	// SnapshotID is the in-memory snapshot identifier at save time.
	SnapshotID string `json:"snapshot_id,omitempty"`

	TrainedAt time.Time `json:"trained_at"`
	SavedAt   time.Time `json:"saved_at"`

	// SampleCount is the number of training samples (academic) or
	// interactions (collaborative).
	SampleCount int `json:"sample_count"`

	UserCount int `json:"user_count,omitempty"`
	ItemCount int `json:"item_count,omitempty"`

	// Checksum is the SHA-256 of the uncompressed gob payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size.
	SizeBytes int64 `json:"size_bytes"`

	TrainingDurationMS int64 `json:"training_duration_ms"`
}

// Store persists and restores model snapshots.
type Store interface {
	// Save encodes data and stores it under name. The returned metadata
	// carries the assigned version, checksum and size.
	Save(ctx context.Context, name string, data interface{}, meta Metadata) (*Metadata, error)

	// Load decodes the latest artifact for name into target. It returns
	// ErrNotFound when none exists.
	Load(ctx context.Context, name string, target interface{}) (*Metadata, error)

	// Exists reports whether an artifact is stored under name.
	Exists(ctx context.Context, name string) bool

	// List returns the metadata of the latest version of every stored
	// artifact, sorted by name.
	List(ctx context.Context) ([]Metadata, error)

	// Close releases the store.
	Close() error
}

// envelope is the encoded form shared by all backends.
type envelope struct {
	Metadata       Metadata
	CompressedData []byte
}

// encode serializes data into an envelope, filling in checksum and size.
//
//nolint:gocritic // meta is copied into the envelope
func encode(data interface{}, meta Metadata) ([]byte, *Metadata, error) {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(data); err != nil {
		return nil, nil, fmt.Errorf("encode model: %w", err)
	}

	sum := sha256.Sum256(raw.Bytes())
	meta.Checksum = hex.EncodeToString(sum[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return nil, nil, fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, nil, fmt.Errorf("finalize compression: %w", err)
	}

	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now().UTC()

	var out bytes.Buffer
	if err := gob.NewEncoder(&out).Encode(envelope{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		return nil, nil, fmt.Errorf("encode envelope: %w", err)
	}
	return out.Bytes(), &meta, nil
}

// decodeMetadata reads only the envelope header.
func decodeMetadata(r io.Reader) (*Metadata, error) {
	var env envelope
	if err := gob.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("read envelope: %w", err)
	}
	return &env.Metadata, nil
}

// decode verifies and deserializes an envelope into target.
func decode(r io.Reader, target interface{}) (*Metadata, error) {
	var env envelope
	if err := gob.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("read envelope: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(env.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // close after full read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed data: %w", err)
	}

	sum := sha256.Sum256(raw)
	if got := hex.EncodeToString(sum[:]); got != env.Metadata.Checksum {
		return nil, fmt.Errorf("checksum mismatch: expected %s, got %s", env.Metadata.Checksum, got)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &env.Metadata, nil
}
