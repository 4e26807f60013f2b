// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"context"
	"time"

	"github.com/tomtom215/careerpath/internal/service"
)

// MLService is the command surface served over HTTP. *service.Service
// implements it.
type MLService interface {
	TrainModels(ctx context.Context) *service.TrainResult
	EnhanceRecommendations(ctx context.Context, req *service.EnhanceRequest) *service.EnhanceResult
	SimilarCareers(ctx context.Context, careerID string, limit int) *service.SimilarResult
	PredictTrends(ctx context.Context, req *service.TrendsRequest) *service.TrendsResult
	PredictMatch(ctx context.Context, req *service.PredictRequest) *service.PredictResult
	ModelInfo(ctx context.Context) *service.ModelInfoResult
	HealthCheck(ctx context.Context) *service.HealthResult
	Reload(ctx context.Context) *service.ReloadResult
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	svc       MLService
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(svc MLService) *Handler {
	return &Handler{
		svc:       svc,
		startTime: time.Now(),
	}
}

var _ MLService = (*service.Service)(nil)
