// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with custom validators and user-friendly error
// messages. It integrates with the API error envelope for consistent responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Field names reported by their json (or koanf) tag
//   - Error translation to human-readable messages
//   - APIError conversion matching the response envelope
//
// # Custom Validators
//
//   - selection_policy: an academic model selection policy name
//     (fixed-preference, best-by-score and their aliases)
//   - cron_schedule: a five-field cron expression or descriptor such as
//     @daily, parsed with robfig/cron; empty disables scheduling
//
// # Quick Start
//
//	type EnhanceRequest struct {
//	    User            *models.User       `json:"user" validate:"required"`
//	    Recommendations []models.Candidate `json:"recommendations" validate:"required,max=500"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use.
package validation
