// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"context"

	"github.com/tomtom215/careerpath/internal/models"
)

// CareerScore is a collaborative-filtering recommendation for one career.
type CareerScore struct {
	// CareerID is the recommended career.
	CareerID string `json:"career_id"`

	// MLEnhancedScore is the accumulated neighbour score capped at 1.
	MLEnhancedScore float64 `json:"ml_enhanced_score"`

	// Confidence is the accumulated score on a 0-100 scale, capped at 100.
	Confidence float64 `json:"confidence"`
}

// SimilarCareer is a career ranked by item-item similarity.
type SimilarCareer struct {
	CareerID        string  `json:"career_id"`
	SimilarityScore float64 `json:"similarity_score"`
}

// TrendPrediction labels the direction of a career's recommendation frequency.
type TrendPrediction string

const (
	// TrendIncreasing marks careers recommended more than TrendThreshold times.
	TrendIncreasing TrendPrediction = "increasing"

	// TrendStable marks all other careers.
	TrendStable TrendPrediction = "stable"
)

// Trend is a career ranked by how often it was recommended.
type Trend struct {
	CareerID   string          `json:"career_id"`
	TrendScore int             `json:"trend_score"`
	Prediction TrendPrediction `json:"prediction"`
}

// CollaborativeModel is the read side of the collaborative-filtering engine
// consumed by the Blender.
type CollaborativeModel interface {
	// RecommendFor returns up to n careers the user has not rated, ranked by
	// neighbour score. Unknown users yield an empty list and a nil error.
	RecommendFor(ctx context.Context, userID string, n int) ([]CareerScore, error)

	// SnapshotID identifies the active model snapshot, or "" if none is loaded.
	SnapshotID() string
}

// AcademicModel is the read side of the academic performance predictor
// consumed by the Blender.
type AcademicModel interface {
	// PredictMatch predicts a match score in [0, 100]. It returns a
	// KindModelNotTrained error when no model is available.
	PredictMatch(ctx context.Context, results *models.KCSEResults, careerID string) (float64, error)

	// ImprovementSuggestions returns at most three suggestions for the career.
	ImprovementSuggestions(results *models.KCSEResults, career models.Career) []string
}

// Result is the outcome of Blender.Enhance.
type Result struct {
	// Recommendations is the ranked, annotated list. When MLEnhanced is false
	// it holds the original candidates untouched and in their original order.
	Recommendations []models.EnhancedRecommendation `json:"enhanced_recommendations"`

	// MLEnhanced reports whether ML signals were applied.
	MLEnhanced bool `json:"ml_enhanced"`

	// Err is the failure that forced the fallback, if any.
	Err error `json:"-"`

	// SnapshotID identifies the collaborative snapshot used, if any.
	SnapshotID string `json:"-"`
}
