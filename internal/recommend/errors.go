// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"errors"
	"fmt"
)

// Kind classifies failures of the scoring engine so that callers can tell
// "no model trained" apart from "artifact unreadable" or "no data".
type Kind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown Kind = iota

	// KindDataUnavailable means the data source could not be reached or
	// returned no records. Training degrades to bootstrap data.
	KindDataUnavailable

	// KindInsufficientData means training was given an empty sample set.
	KindInsufficientData

	// KindNoData means the interaction matrix would have zero users or careers.
	KindNoData

	// KindNotReady means a training step ran before the matrix was built.
	KindNotReady

	// KindModelNotTrained means no trained model is loaded and none could be
	// loaded from the artifact store.
	KindModelNotTrained

	// KindPersistence means an artifact could not be read or written.
	KindPersistence

	// KindPrediction means a model produced an unusable value.
	KindPrediction
)

// String returns a stable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindDataUnavailable:
		return "data_unavailable"
	case KindInsufficientData:
		return "insufficient_data"
	case KindNoData:
		return "no_data"
	case KindNotReady:
		return "not_ready"
	case KindModelNotTrained:
		return "model_not_trained"
	case KindPersistence:
		return "persistence"
	case KindPrediction:
		return "prediction"
	default:
		return "unknown"
	}
}

// Error is a classified engine error.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Op names the operation that failed (e.g. "collab.BuildMatrix").
	Op string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Op == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors of the same kind, so errors.Is(err, ErrNotReady)
// holds for any *Error with Kind == KindNotReady.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinel errors for use with errors.Is.
var (
	ErrDataUnavailable  = &Error{Kind: KindDataUnavailable}
	ErrInsufficientData = &Error{Kind: KindInsufficientData}
	ErrNoData           = &Error{Kind: KindNoData}
	ErrNotReady         = &Error{Kind: KindNotReady}
	ErrModelNotTrained  = &Error{Kind: KindModelNotTrained}
	ErrPersistence      = &Error{Kind: KindPersistence}
	ErrPrediction       = &Error{Kind: KindPrediction}
)

// E builds a classified error.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
