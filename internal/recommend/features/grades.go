// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package features

import "strings"

// DefaultPoints is the point value of grade "C", used for anything unknown.
const DefaultPoints = 6

// MinPoints and MaxPoints bound the KCSE point scale (grade E to grade A).
const (
	MinPoints = 1
	MaxPoints = 12
)

// gradePoints is the KCSE letter scale. Strictly decreasing from A to E.
var gradePoints = map[string]int{
	"A":  12,
	"A-": 11,
	"B+": 10,
	"B":  9,
	"B-": 8,
	"C+": 7,
	"C":  6,
	"C-": 5,
	"D+": 4,
	"D":  3,
	"D-": 2,
	"E":  1,
}

// Grades lists the letter grades from best to worst.
var Grades = []string{"A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-", "E"}

// GradePoints maps a letter grade to points. Input is trimmed and
// upper-cased; unrecognised grades return DefaultPoints.
func GradePoints(grade string) int {
	if p, ok := gradePoints[strings.ToUpper(strings.TrimSpace(grade))]; ok {
		return p
	}
	return DefaultPoints
}

// GradeTable returns a copy of the letter to points table.
func GradeTable() map[string]int {
	out := make(map[string]int, len(gradePoints))
	for k, v := range gradePoints {
		out[k] = v
	}
	return out
}
