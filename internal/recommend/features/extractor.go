// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package features

import (
	"math"
	"strings"

	"github.com/tomtom215/careerpath/internal/models"
)

// Feature positions within a Vector.
const (
	MeanPoints = iota
	Mathematics
	English
	Kiswahili
	Physics
	Chemistry
	Biology
	History
	Geography
	Business
	Computer

	// NumFeatures is the width of a Vector.
	NumFeatures
)

// Names are the column names of a Vector, in order.
var Names = [NumFeatures]string{
	"mean_points",
	"mathematics",
	"english",
	"kiswahili",
	"physics",
	"chemistry",
	"biology",
	"history",
	"geography",
	"business",
	"computer",
}

// Vector is the fixed-width numeric encoding of one exam result.
type Vector [NumFeatures]float64

// Slice returns the vector as a freshly allocated slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

// subjectColumns maps lower-cased subject names to vector positions. Both the
// canonical KCSE names and the bare names are accepted.
var subjectColumns = map[string]int{
	"mathematics":          Mathematics,
	"english":              English,
	"kiswahili":            Kiswahili,
	"physics":              Physics,
	"chemistry":            Chemistry,
	"biology":              Biology,
	"history & government": History,
	"history":              History,
	"geography":            Geography,
	"business studies":     Business,
	"business":             Business,
	"computer studies":     Computer,
	"computer":             Computer,
}

// canonicalSubjects is the subject name each column is recorded under.
var canonicalSubjects = map[int]string{
	History:  "history & government",
	Business: "business studies",
	Computer: "computer studies",
}

// CanonicalSubject returns the canonical lower-cased name for subject, or
// the lower-cased input when it has no alias.
func CanonicalSubject(subject string) string {
	s := strings.ToLower(strings.TrimSpace(subject))
	if col, ok := subjectColumns[s]; ok {
		if canon, ok := canonicalSubjects[col]; ok {
			return canon
		}
	}
	return s
}

// SubjectPoints returns the point value of every listed subject keyed by its
// lower-cased name. A subject listed twice keeps its last grade.
func SubjectPoints(results *models.KCSEResults) map[string]int {
	if results == nil {
		return map[string]int{}
	}
	out := make(map[string]int, len(results.Subjects))
	for _, s := range results.Subjects {
		out[strings.ToLower(strings.TrimSpace(s.Subject))] = GradePoints(s.Grade)
	}
	return out
}

// Extract builds the feature vector for an exam result. A nil result yields
// the all-default vector. Mean points are clamped to [MinPoints, MaxPoints].
func Extract(results *models.KCSEResults) Vector {
	var v Vector
	for i := range v {
		v[i] = DefaultPoints
	}
	v[MeanPoints] = clampMean(results.MeanPointsOrDefault())

	if results == nil {
		return v
	}
	for _, s := range results.Subjects {
		col, ok := subjectColumns[strings.ToLower(strings.TrimSpace(s.Subject))]
		if !ok {
			continue
		}
		v[col] = float64(GradePoints(s.Grade))
	}
	return v
}

func clampMean(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return DefaultPoints
	case p < MinPoints:
		return MinPoints
	case p > MaxPoints:
		return MaxPoints
	}
	return p
}
