// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package api serves the recommendation engine over HTTP.

Routes:

	GET  /api/v1/health                     component health (503 when degraded)
	GET  /api/v1/health/live                liveness
	POST /api/v1/ml/enhance                 blend upstream recommendations
	GET  /api/v1/ml/careers/{id}/similar    similar careers (?limit=1..100, default 5)
	POST /api/v1/ml/trends                  trend ranking over historical data
	POST /api/v1/ml/predict                 success probability and CF rating for one pair
	GET  /api/v1/ml/models                  stored artifacts, active snapshots, blender stats
	POST /api/v1/ml/train                   retrain (admin)
	POST /api/v1/ml/reload                  reload stored artifacts (admin)
	GET  /metrics                           Prometheus exposition

Every response uses the models.APIResponse envelope. The payload of each ML
endpoint is the same JSON document the matching CLI command prints, so
clients can switch between the two without reshaping data.

The /api/v1/ml routes require a bearer token when security.auth_mode is
"jwt". Tokens are issued offline with the issue_token command.
*/
package api
