// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package models

// SubjectGrade is a single subject result on the KCSE letter scale.
type SubjectGrade struct {
	// Subject is the subject name as entered (e.g. "Mathematics", "History & Government").
	Subject string `json:"subject" bson:"subject"`

	// Grade is the letter grade (A, A-, B+ ... E).
	Grade string `json:"grade" bson:"grade"`

	// Points is the producer-computed point value. Informational only; the
	// letter grade is authoritative.
	Points *float64 `json:"points,omitempty" bson:"points,omitempty"`
}

// KCSEResults holds a student's exam results.
type KCSEResults struct {
	Year      int            `json:"year,omitempty" bson:"year,omitempty"`
	MeanGrade string         `json:"meanGrade,omitempty" bson:"meanGrade,omitempty"`
	Subjects  []SubjectGrade `json:"subjects" bson:"subjects"`

	// MeanPoints is nil when the producer omitted it; consumers substitute
	// the midpoint of the scale.
	MeanPoints *float64 `json:"meanPoints,omitempty" bson:"meanPoints,omitempty"`
}

// DefaultMeanPoints is used when an exam result carries no meanPoints.
const DefaultMeanPoints = 6.0

// MeanPointsOrDefault returns MeanPoints, or DefaultMeanPoints when absent.
func (r *KCSEResults) MeanPointsOrDefault() float64 {
	if r == nil || r.MeanPoints == nil {
		return DefaultMeanPoints
	}
	return *r.MeanPoints
}

// HasSubjects reports whether the result lists at least one subject.
func (r *KCSEResults) HasSubjects() bool {
	return r != nil && len(r.Subjects) > 0
}

// User is the subset of a student profile the ML layer consumes.
type User struct {
	ID          ID           `json:"_id" bson:"_id"`
	Name        string       `json:"name,omitempty" bson:"name,omitempty"`
	KCSEResults *KCSEResults `json:"kcseResults,omitempty" bson:"kcseResults,omitempty"`
}

// UserIDOrUnknown returns the user id, or "unknown" when it is missing.
func (u *User) UserIDOrUnknown() string {
	if u == nil || u.ID.IsZero() {
		return "unknown"
	}
	return u.ID.String()
}

// HasExamResults reports whether exam results were supplied.
func (u *User) HasExamResults() bool {
	return u != nil && u.KCSEResults != nil
}
