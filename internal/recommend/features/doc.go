// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package features turns KCSE exam results into the fixed-width numeric
// vectors consumed by the academic regressors.
//
// Extraction never fails. Unknown grades, missing subjects and a missing
// mean score all fall back to 6 points, the "C" midpoint of the scale.
package features
