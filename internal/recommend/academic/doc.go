// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package academic predicts a career match score from exam results.

Three regressors are trained on the same standardized feature vectors:

  - random_forest: 100 bootstrap regression trees of depth at most 10
  - gradient_boosting: 100 depth-3 trees fitted to residuals, learning rate 0.1
  - linear_regression: ordinary least squares with intercept

Each is scored by R² on a seeded 80/20 holdout. The trained set, its scaler
and the grade table form an immutable Snapshot that is persisted through a
storage.Store and swapped into the Predictor atomically.

Serving picks one regressor by SelectionPolicy. The default keeps the
historical behaviour of always serving random_forest when present.

	p := academic.NewPredictor(store, academic.PolicyFixedPreference, logger)
	report, err := p.Train(ctx, samples)
	score, err := p.PredictMatch(ctx, user.KCSEResults, careerID)
*/
package academic
