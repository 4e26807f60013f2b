// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testState struct {
	Rows, Cols int
	Data       []float64
	Index      map[string]int
}

func sampleState() testState {
	return testState{
		Rows:  2,
		Cols:  2,
		Data:  []float64{0.85, 0.75, 0.9, 0},
		Index: map[string]int{"career1": 0, "career2": 1},
	}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	bs, err := NewBadgerStore("")
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	t.Cleanup(func() { _ = bs.Close() })

	return map[string]Store{"file": fs, "badger": bs}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if s.Exists(ctx, CollaborativeArtifact) {
				t.Fatal("Exists before Save")
			}

			trained := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			meta, err := s.Save(ctx, CollaborativeArtifact, sampleState(), Metadata{TrainedAt: trained, UserCount: 2})
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if meta.Version != 1 || meta.Checksum == "" || meta.SizeBytes == 0 {
				t.Errorf("unexpected metadata: %+v", meta)
			}
			if !s.Exists(ctx, CollaborativeArtifact) {
				t.Fatal("Exists after Save = false")
			}

			var got testState
			loaded, err := s.Load(ctx, CollaborativeArtifact, &got)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if loaded.Version != 1 || !loaded.TrainedAt.Equal(trained) || loaded.UserCount != 2 {
				t.Errorf("loaded metadata = %+v", loaded)
			}
			if got.Rows != 2 || got.Data[0] != 0.85 || got.Index["career2"] != 1 {
				t.Errorf("loaded state = %+v", got)
			}

			meta2, err := s.Save(ctx, CollaborativeArtifact, sampleState(), Metadata{})
			if err != nil {
				t.Fatalf("second Save: %v", err)
			}
			if meta2.Version != 2 {
				t.Errorf("second version = %d, want 2", meta2.Version)
			}
		})
	}
}

func TestStoreList(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			list, err := s.List(ctx)
			if err != nil || len(list) != 0 {
				t.Fatalf("List on empty store = %+v, %v", list, err)
			}

			for i := 0; i < 2; i++ {
				if _, err := s.Save(ctx, CollaborativeArtifact, sampleState(), Metadata{UserCount: 2, ItemCount: 2}); err != nil {
					t.Fatalf("Save collaborative: %v", err)
				}
			}
			if _, err := s.Save(ctx, AcademicArtifact, sampleState(), Metadata{SampleCount: 7}); err != nil {
				t.Fatalf("Save academic: %v", err)
			}

			list, err = s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(list) != 2 {
				t.Fatalf("List = %+v, want two artifacts", list)
			}
			if list[0].Name != AcademicArtifact || list[0].Version != 1 || list[0].SampleCount != 7 {
				t.Errorf("list[0] = %+v", list[0])
			}
			if list[1].Name != CollaborativeArtifact || list[1].Version != 2 || list[1].Checksum == "" {
				t.Errorf("list[1] = %+v", list[1])
			}
		})
	}
}

func TestStoreLoadMissing(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			var got testState
			_, err := s.Load(context.Background(), AcademicArtifact, &got)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Load missing: err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestFileStoreRescansAndPrunes(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.Save(ctx, AcademicArtifact, sampleState(), Metadata{}); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !reopened.Exists(ctx, AcademicArtifact) {
		t.Error("reopened store lost the artifact")
	}

	if err := reopened.Prune(ctx, AcademicArtifact, 1); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "academic_performance_v1.gob.gz")); !os.IsNotExist(err) {
		t.Error("v1 should have been pruned")
	}
	if _, err := os.Stat(filepath.Join(dir, "academic_performance_v3.gob.gz")); err != nil {
		t.Errorf("v3 should remain: %v", err)
	}

	list, err := reopened.List(ctx)
	if err != nil || len(list) != 1 || list[0].Version != 3 {
		t.Errorf("List = %+v, %v", list, err)
	}
}

func TestFileStoreNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(context.Background(), AcademicArtifact, sampleState(), Metadata{}); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "academic_performance_v1.gob.gz" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v", names)
	}
}

func TestFileStoreDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(context.Background(), AcademicArtifact, sampleState(), Metadata{}); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "academic_performance_v1.gob.gz")
	if err := os.WriteFile(path, []byte("not an envelope"), 0o600); err != nil {
		t.Fatal(err)
	}

	var got testState
	_, err = s.Load(context.Background(), AcademicArtifact, &got)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Load corrupt artifact: err = %v, want decode error", err)
	}
}

func TestParseArtifactFilename(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		version int
		ok      bool
	}{
		{"collaborative_filtering_v12.gob.gz", "collaborative_filtering", 12, true},
		{"academic_performance_v1.gob.gz", "academic_performance", 1, true},
		{"academic_performance.gob.gz", "", 0, false},
		{"academic_performance_v0.gob.gz", "", 0, false},
		{".academic_performance-123.tmp", "", 0, false},
	}
	for _, tt := range tests {
		name, version, ok := parseArtifactFilename(tt.in)
		if name != tt.name || version != tt.version || ok != tt.ok {
			t.Errorf("parseArtifactFilename(%q) = %q, %d, %v", tt.in, name, version, ok)
		}
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("s3", t.TempDir()); err == nil {
		t.Error("expected error for unknown backend")
	}
}
