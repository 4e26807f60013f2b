// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package metrics provides Prometheus metrics for the recommendation engine.

All collectors are registered with the default registry through promauto and
are exposed at /metrics in serve mode:

	curl http://localhost:8090/metrics

# Available Metrics

Training:
  - careerml_training_runs_total{engine,outcome}
  - careerml_training_duration_seconds{engine}
  - careerml_training_samples{engine}
  - careerml_regressor_r2{model}

Model artifacts:
  - careerml_model_loads_total{engine,outcome}
  - careerml_model_version{engine}

Serving:
  - careerml_blend_requests_total{outcome}
  - careerml_blend_duration_seconds
  - careerml_cf_cache_hits_total / careerml_cf_cache_misses_total
  - careerml_breaker_state{name}
  - careerml_source_query_duration_seconds{backend,collection}
  - careerml_http_requests_total{method,endpoint,status}
  - careerml_http_request_duration_seconds{method,endpoint}

# Textfile Export

One-shot CLI commands exit before Prometheus can scrape them. When
METRICS_TEXTFILE is set, the CLI calls WriteToTextfile before exiting so a
node_exporter textfile collector can pick the values up.
*/
package metrics
