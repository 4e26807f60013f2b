// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package recommend implements the hybrid career scoring engine.
//
// # Architecture
//
// Upstream, a rule-based engine produces candidate careers with a match score.
// This package re-ranks those candidates by blending in two learned signals:
//
//   - Collaborative filtering (package collab): careers liked by users with
//     similar recommendation histories.
//   - Academic prediction (package academic): a regression ensemble that maps
//     KCSE subject grades to a match score.
//
// The Blender combines them:
//
//	final = original
//	if cf present: final = 0.6*final + 0.4*cf*100
//	if ap present: final = 0.7*final + 0.3*ap
//	final = clamp(final, 0, 100)
//
// The weights are configurable through BlendConfig.
//
// # Degradation
//
// The serving path never fails. Missing models simply drop their signal, and
// any error or panic during blending returns the original candidates untouched
// with MLEnhanced=false.
//
// # Package Layout
//
//   - recommend: Blender, PredictTrends, the error taxonomy and shared types
//   - recommend/features: KCSE grade table and feature extraction
//   - recommend/collab: interaction matrix, similarity and NMF engine
//   - recommend/academic: regressors and the academic predictor
//   - recommend/storage: versioned model artifact stores (file, BadgerDB)
//
// Subpackages import this package for errors and types. This package never
// imports its subpackages; the Blender consumes them through the
// CollaborativeModel and AcademicModel interfaces.
package recommend
