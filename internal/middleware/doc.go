// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package middleware provides HTTP middleware shared by the serve-mode router.

  - RequestID: assigns X-Request-ID and uses it as the logging correlation ID
  - PrometheusMetrics: request count, latency and in-flight gauge, labeled by
    chi route pattern

Both are plain func(http.Handler) http.Handler and compose with chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
