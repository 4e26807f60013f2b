// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/models"
)

// Health reports component health. A degraded service answers 503 so load
// balancers stop routing to an instance without models.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res := h.svc.HealthCheck(r.Context())

	status := http.StatusOK
	if !res.Healthy {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, &models.APIResponse{
		Success: res.Healthy,
		Data:    res,
		Meta:    meta(r, start),
	})
}

// HealthLive reports that the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	metrics.UpdateUptime(h.startTime)
	respondData(w, r, time.Time{}, map[string]interface{}{
		"status":         "alive",
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	})
}
