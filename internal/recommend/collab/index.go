// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package collab

import (
	"bytes"
	"encoding/gob"
)

// IndexTable is a bidirectional mapping between ids and dense indices.
// Indices are assigned in insertion order; re-adding an id keeps its first
// index.
type IndexTable struct {
	ids   []string
	index map[string]int
}

// NewIndexTable builds a table from ids in order.
func NewIndexTable(ids ...string) *IndexTable {
	t := &IndexTable{index: make(map[string]int, len(ids))}
	for _, id := range ids {
		t.Add(id)
	}
	return t
}

// Add inserts id if absent and returns its index.
func (t *IndexTable) Add(id string) int {
	if i, ok := t.index[id]; ok {
		return i
	}
	i := len(t.ids)
	t.ids = append(t.ids, id)
	t.index[id] = i
	return i
}

// Index returns the index of id.
func (t *IndexTable) Index(id string) (int, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[id]
	return i, ok
}

// ID returns the id at index i.
func (t *IndexTable) ID(i int) string {
	return t.ids[i]
}

// Len returns the number of ids.
func (t *IndexTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ids)
}

// IDs returns a copy of the ids in index order.
func (t *IndexTable) IDs() []string {
	return append([]string(nil), t.ids...)
}

// GobEncode implements gob.GobEncoder. Only the ordered ids are stored.
func (t *IndexTable) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(t.ids); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (t *IndexTable) GobDecode(data []byte) error {
	var ids []string
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&ids); err != nil {
		return err
	}
	*t = *NewIndexTable(ids...)
	return nil
}
