// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

const fileSuffix = ".gob.gz"

// FileStore stores artifacts as versioned files in a directory.
//
// The latest version is resolved from the directory listing on every call,
// so artifacts written by another process are picked up without a restart.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore opens (creating if needed) a store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create model directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// versionsOf returns the stored versions of name, newest first.
func (s *FileStore) versionsOf(name string) ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var versions []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n, v, ok := parseArtifactFilename(e.Name())
		if ok && n == name {
			versions = append(versions, v)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	return versions, nil
}

// latest returns the newest version of name, or 0.
func (s *FileStore) latest(name string) (int, error) {
	versions, err := s.versionsOf(name)
	if err != nil || len(versions) == 0 {
		return 0, err
	}
	return versions[0], nil
}

// parseArtifactFilename splits "{name}_v{version}.gob.gz".
func parseArtifactFilename(filename string) (name string, version int, ok bool) {
	base, found := strings.CutSuffix(filename, fileSuffix)
	if !found {
		return "", 0, false
	}
	i := strings.LastIndex(base, "_v")
	if i <= 0 {
		return "", 0, false
	}
	v, err := strconv.Atoi(base[i+2:])
	if err != nil || v <= 0 {
		return "", 0, false
	}
	return base[:i], v, true
}

func (s *FileStore) path(name string, version int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_v%d%s", name, version, fileSuffix))
}

// Save implements Store. The artifact is written to a temp file, fsynced
// and renamed into place.
//
//nolint:gocritic // meta passed by value is filled in and returned
func (s *FileStore) Save(ctx context.Context, name string, data interface{}, meta Metadata) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.latest(name)
	if err != nil {
		return nil, fmt.Errorf("read model directory: %w", err)
	}
	meta.Name = name
	meta.Version = prev + 1

	payload, saved, err := encode(data, meta)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) } //nolint:errcheck // best-effort temp cleanup

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close() //nolint:errcheck // write already failed
		cleanup()
		return nil, fmt.Errorf("write model file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close() //nolint:errcheck // sync already failed
		cleanup()
		return nil, fmt.Errorf("sync model file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return nil, fmt.Errorf("close model file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(name, meta.Version)); err != nil {
		cleanup()
		return nil, fmt.Errorf("rename model file: %w", err)
	}

	return saved, nil
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, name string, target interface{}) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	version, err := s.latest(name)
	if err != nil {
		return nil, fmt.Errorf("read model directory: %w", err)
	}
	if version == 0 {
		return nil, ErrNotFound
	}

	payload, err := os.ReadFile(s.path(name, version))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open model file: %w", err)
	}
	return decode(bytes.NewReader(payload), target)
}

// Exists implements Store.
func (s *FileStore) Exists(_ context.Context, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.latest(name)
	return err == nil && v > 0
}

// List implements Store. Unreadable files are skipped.
func (s *FileStore) List(_ context.Context) ([]Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read model directory: %w", err)
	}
	latest := make(map[string]int)
	for _, e := range entries {
		if n, v, ok := parseArtifactFilename(e.Name()); ok && v > latest[n] {
			latest[n] = v
		}
	}
	names := make([]string, 0, len(latest))
	for n := range latest {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]Metadata, 0, len(names))
	for _, n := range names {
		f, err := os.Open(s.path(n, latest[n]))
		if err != nil {
			continue
		}
		meta, err := decodeMetadata(f)
		_ = f.Close() //nolint:errcheck // read-only file
		if err != nil {
			continue
		}
		out = append(out, *meta)
	}
	return out, nil
}

// Prune removes all but the newest keep versions of name.
func (s *FileStore) Prune(_ context.Context, name string, keep int) error {
	if keep < 1 {
		keep = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	versions, err := s.versionsOf(name)
	if err != nil {
		return fmt.Errorf("read model directory: %w", err)
	}
	for _, v := range versions[min(keep, len(versions)):] {
		if err := os.Remove(s.path(name, v)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove model version %d: %w", v, err)
		}
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}
