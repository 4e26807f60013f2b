// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package service

import (
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/recommend/academic"
	"github.com/tomtom215/careerpath/internal/recommend/collab"
	"github.com/tomtom215/careerpath/internal/recommend/storage"
)

// Result messages.
const (
	MessageTrained      = "Models trained successfully"
	MessageBootstrapped = "Dummy models created for testing"
	MessageReloaded     = "Models reloaded"
)

// Health status values.
const (
	StatusOperational = "operational"
	StatusDegraded    = "degraded"
)

// DefaultSimilarLimit is used when no positive limit is given.
const DefaultSimilarLimit = 5

// EnhanceRequest is the input of enhance_recommendations.
type EnhanceRequest struct {
	User            models.User        `json:"user"`
	Recommendations []models.Candidate `json:"recommendations" validate:"max=1000"`
}

// TrendsRequest is the input of predict_trends.
type TrendsRequest struct {
	HistoricalData []models.RecommendationRecord `json:"historical_data" validate:"max=100000"`
}

// PredictRequest is the input of predict_match.
type PredictRequest struct {
	User     models.User `json:"user"`
	CareerID models.ID   `json:"career_id" validate:"required"`
}

// TrainResult is the output of train_models.
type TrainResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`

	Collaborative *collab.TrainReport   `json:"collaborative_filtering,omitempty"`
	Academic      *academic.TrainReport `json:"academic_predictor,omitempty"`
}

// EnhanceResult is the output of enhance_recommendations. On failure it
// carries the original recommendations untouched.
type EnhanceResult struct {
	Success                 bool                            `json:"success"`
	EnhancedRecommendations []models.EnhancedRecommendation `json:"enhanced_recommendations"`
	MLEnhanced              bool                            `json:"ml_enhanced"`
	Timestamp               string                          `json:"timestamp"`
	Error                   string                          `json:"error,omitempty"`
}

// SimilarResult is the output of similar_careers.
type SimilarResult struct {
	Success        bool                      `json:"success"`
	SimilarCareers []recommend.SimilarCareer `json:"similar_careers"`
	Error          string                    `json:"error,omitempty"`
}

// TrendsResult is the output of predict_trends.
type TrendsResult struct {
	Success bool              `json:"success"`
	Trends  []recommend.Trend `json:"trends"`
	Error   string            `json:"error,omitempty"`
}

// Components reports per-component health.
type Components struct {
	Database               bool `json:"database"`
	CollaborativeFiltering bool `json:"collaborative_filtering"`
	AcademicPredictor      bool `json:"academic_predictor"`
}

// HealthResult is the output of health_check.
type HealthResult struct {
	Healthy    bool       `json:"healthy"`
	Status     string     `json:"status"`
	Components Components `json:"components"`
	Timestamp  string     `json:"timestamp"`
}

// EngineReload reports the outcome of reloading one engine.
type EngineReload struct {
	Loaded     bool   `json:"loaded"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ReloadResult is the output of a model reload.
type ReloadResult struct {
	Success                bool         `json:"success"`
	Message                string       `json:"message,omitempty"`
	CollaborativeFiltering EngineReload `json:"collaborative_filtering"`
	AcademicPredictor      EngineReload `json:"academic_predictor"`
	Timestamp              string       `json:"timestamp"`
}

// ExportResult is the output of export_training_data.
type ExportResult struct {
	Success   bool   `json:"success"`
	Path      string `json:"path"`
	Records   int    `json:"records"`
	Careers   int    `json:"careers"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// PredictResult is the output of predict_match. CollaborativeRating is the
// factor model's reconstructed rating in [0, 1], omitted when the user or
// career is unknown to it.
type PredictResult struct {
	Success             bool     `json:"success"`
	UserID              string   `json:"user_id"`
	CareerID            string   `json:"career_id"`
	SuccessProbability  float64  `json:"success_probability"`
	CollaborativeRating *float64 `json:"collaborative_rating,omitempty"`
	Timestamp           string   `json:"timestamp"`
}

// ActiveModels identifies the snapshots currently serving requests.
type ActiveModels struct {
	CollaborativeFiltering string `json:"collaborative_filtering,omitempty"`
	AcademicPredictor      string `json:"academic_predictor,omitempty"`
	ServingRegressor       string `json:"serving_regressor,omitempty"`
	SelectionPolicy        string `json:"selection_policy"`
}

// ModelInfoResult is the output of model_info.
type ModelInfoResult struct {
	Success   bool                   `json:"success"`
	Artifacts []storage.Metadata     `json:"artifacts"`
	Active    ActiveModels           `json:"active"`
	Blender   recommend.BlenderStats `json:"blender"`
	Error     string                 `json:"error,omitempty"`
	Timestamp string                 `json:"timestamp"`
}
