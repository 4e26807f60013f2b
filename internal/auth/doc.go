// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package auth provides bearer-token authentication for the serve-mode API.

With security.auth_mode=jwt every /api/v1/ml request must carry
"Authorization: Bearer <token>" signed with security.jwt_secret (HS256).
Training and reload additionally require the admin role.

Tokens are minted with the CLI:

	careerml issue_token recommender-api client
*/
package auth
