// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package academic

import (
	"context"
	"encoding/gob"
)

// Regressor names.
const (
	RandomForestName     = "random_forest"
	GradientBoostingName = "gradient_boosting"
	LinearRegressionName = "linear_regression"
)

// Regressor is a trained or trainable regression model over dense rows.
type Regressor interface {
	// Name returns the regressor's registry name.
	Name() string

	// Fit trains on rows X with targets y. len(X) == len(y) > 0.
	Fit(ctx context.Context, X [][]float64, y []float64) error

	// Predict returns the prediction for one row.
	Predict(x []float64) float64
}

// Sample is one training example.
type Sample struct {
	Features []float64
	Target   float64
}

// newRegressors returns untrained instances of every regressor.
func newRegressors() []Regressor {
	return []Regressor{
		NewRandomForest(DefaultForestTrees, DefaultForestDepth, DefaultSeed),
		NewGradientBoosting(DefaultBoostingStages, DefaultBoostingDepth, DefaultLearningRate),
		NewLinearRegression(),
	}
}

//nolint:gochecknoinits // gob.Register must run before any snapshot is decoded
func init() {
	gob.Register(&RandomForest{})
	gob.Register(&GradientBoosting{})
	gob.Register(&LinearRegression{})
}
