// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with metadata
// for observability.
//
// Fields:
//   - Success: Whether the request completed successfully
//   - Data: Response payload (any JSON-serializable type)
//   - Error: Error details (populated only when Success is false)
//   - Meta: Request metadata (timing, correlation id, model snapshot)
//
// Example successful response:
//
//	{
//	  "success": true,
//	  "data": {"trends": [...]},
//	  "meta": {
//	    "timestamp": "2026-03-01T12:00:00.123456789Z",
//	    "duration_ms": 4,
//	    "correlation_id": "a1b2c3d4"
//	  }
//	}
//
// Example error response:
//
//	{
//	  "success": false,
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "Invalid request body",
//	    "details": {"limit": "must be at most 100"}
//	  },
//	  "meta": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    Metadata    `json:"meta"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp     time.Time `json:"timestamp"`
	DurationMS    int64     `json:"duration_ms,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	SnapshotID    string    `json:"snapshot_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - BAD_REQUEST: Body could not be decoded
//   - AUTHENTICATION_ERROR: Invalid/missing credentials
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - TRAINING_IN_PROGRESS: A training run is already active
//   - INTERNAL_ERROR: Unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes returned in APIError.Code.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeAuthentication     = "AUTHENTICATION_ERROR"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodeTrainingInProgress = "TRAINING_IN_PROGRESS"
	ErrCodeInternal           = "INTERNAL_ERROR"
)
