// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package academic

import (
	"fmt"
	"strings"

	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend/features"
)

const (
	// MaxSuggestions caps the suggestions returned per career.
	MaxSuggestions = 3

	// weakSubjectPoints is the first point value considered strong ("B").
	weakSubjectPoints = 9

	// weakMeanPoints is the mean below which a general suggestion is added.
	weakMeanPoints = 8

	generalSuggestion = "Focus on improving your overall academic performance"
)

// ImprovementSuggestions lists up to three ways to raise the match for a
// career: one per key subject graded below B, then a general note when the
// mean score is below 8. A key subject the student did not sit counts as C.
func (p *Predictor) ImprovementSuggestions(results *models.KCSEResults, career models.Career) []string {
	return ImprovementSuggestions(results, career)
}

// ImprovementSuggestions is the stateless form of Predictor.ImprovementSuggestions.
//
//nolint:gocritic // Career is passed by value to match the AcademicModel interface
func ImprovementSuggestions(results *models.KCSEResults, career models.Career) []string {
	suggestions := []string{}
	if results == nil {
		return suggestions
	}

	points := features.SubjectPoints(results)
	canonical := make(map[string]int, len(points))
	for name, pts := range points {
		canonical[features.CanonicalSubject(name)] = pts
	}

	title := career.TitleOrDefault()
	for _, subject := range career.KeySubjects {
		if subjectPoints(subject, points, canonical) < weakSubjectPoints {
			suggestions = append(suggestions, fmt.Sprintf(
				"Consider improving your %s grade to enhance your suitability for %s", subject, title))
		}
	}

	if results.MeanPointsOrDefault() < weakMeanPoints {
		suggestions = append(suggestions, generalSuggestion)
	}

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}

// subjectPoints resolves a key subject by exact name, then by alias.
func subjectPoints(subject string, exact, canonical map[string]int) int {
	s := strings.ToLower(strings.TrimSpace(subject))
	if pts, ok := exact[s]; ok {
		return pts
	}
	if pts, ok := canonical[features.CanonicalSubject(s)]; ok {
		return pts
	}
	return features.DefaultPoints
}
