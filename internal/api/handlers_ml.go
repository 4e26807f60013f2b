// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/service"
)

// Train runs a training cycle synchronously.
func (h *Handler) Train(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	res := h.svc.TrainModels(r.Context())
	if !res.Success {
		status, code := http.StatusInternalServerError, models.ErrCodeInternal
		if res.Error == service.ErrTrainingInProgress.Error() {
			status, code = http.StatusConflict, models.ErrCodeTrainingInProgress
		}
		respondError(w, r, status, code, res.Error, nil)
		return
	}

	respondData(w, r, start, res)
}

// Enhance blends upstream recommendations. A failed blend is still a 200:
// the body carries the original list with ml_enhanced=false.
func (h *Handler) Enhance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req service.EnhanceRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}
	if req.Recommendations == nil {
		req.Recommendations = []models.Candidate{}
	}

	res := h.svc.EnhanceRecommendations(r.Context(), &req)
	respondData(w, r, start, res)
}

// SimilarCareers returns careers similar to {id}.
func (h *Handler) SimilarCareers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, ok := getIntParam(r, "limit", service.DefaultSimilarLimit)
	if !ok {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, "limit must be an integer", nil)
		return
	}
	if limit < 1 || limit > 100 {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, "limit must be between 1 and 100", nil)
		return
	}

	res := h.svc.SimilarCareers(r.Context(), chi.URLParam(r, "id"), limit)
	respondData(w, r, start, res)
}

// Trends ranks careers by recommendation frequency.
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req service.TrendsRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	respondData(w, r, start, h.svc.PredictTrends(r.Context(), &req))
}

// Predict scores one user and career pair.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req service.PredictRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	respondData(w, r, start, h.svc.PredictMatch(r.Context(), &req))
}

// ModelInfo lists stored artifacts, the active snapshots and blender stats.
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	res := h.svc.ModelInfo(r.Context())
	if !res.Success {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, res.Error, nil)
		return
	}
	respondData(w, r, start, res)
}

// Reload swaps in the latest stored model artifacts.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	res := h.svc.Reload(r.Context())
	if !res.Success {
		respondJSON(w, http.StatusInternalServerError, &models.APIResponse{
			Success: false,
			Data:    res,
			Error:   &models.APIError{Code: models.ErrCodeInternal, Message: "model reload failed"},
			Meta:    meta(r, start),
		})
		return
	}
	respondData(w, r, start, res)
}
