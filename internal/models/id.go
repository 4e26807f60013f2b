// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package models

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// ID is a document identifier normalized to its string form.
//
// Producers emit identifiers as plain strings, JSON numbers, or extended-JSON
// ObjectIds ({"$oid": "..."}). All of them decode to the same string so that
// user and career lookups compare equal regardless of origin.
type ID string

// String returns the identifier text.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// UnmarshalJSON accepts strings, numbers, null and {"$oid": "..."} objects.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id string: %w", err)
		}
		*id = ID(s)
		return nil
	case '{':
		var oid struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(data, &oid); err != nil {
			return fmt.Errorf("decode id object: %w", err)
		}
		*id = ID(oid.OID)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decode id: unsupported value %s", string(data))
		}
		*id = ID(n.String())
		return nil
	}
}

// MarshalJSON always emits the identifier as a JSON string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}
