// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package storage

import (
	"fmt"
	"path/filepath"
)

// Backend names a Store implementation.
type Backend string

const (
	// BackendFile stores artifacts as files (default).
	BackendFile Backend = "file"

	// BackendBadger stores artifacts in an embedded BadgerDB under dir/badger.
	BackendBadger Backend = "badger"
)

// Open returns the store selected by backend, rooted at dir.
func Open(backend Backend, dir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendBadger:
		return NewBadgerStore(filepath.Join(dir, "badger"))
	default:
		return nil, fmt.Errorf("unknown model store backend %q", backend)
	}
}
