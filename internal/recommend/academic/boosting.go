// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package academic

import (
	"context"

	"gonum.org/v1/gonum/stat"
)

// Boosting defaults.
const (
	DefaultBoostingStages = 100
	DefaultBoostingDepth  = 3
	DefaultLearningRate   = 0.1
)

// GradientBoosting is least-squares gradient boosting over shallow trees.
type GradientBoosting struct {
	Init         float64
	Stages       []Tree
	NumStages    int
	MaxDepth     int
	LearningRate float64
}

// NewGradientBoosting returns an untrained booster.
func NewGradientBoosting(stages, maxDepth int, learningRate float64) *GradientBoosting {
	return &GradientBoosting{NumStages: stages, MaxDepth: maxDepth, LearningRate: learningRate}
}

// Name implements Regressor.
func (g *GradientBoosting) Name() string { return GradientBoostingName }

// Fit implements Regressor. The initial prediction is the target mean and
// every stage fits a tree to the current residuals.
func (g *GradientBoosting) Fit(ctx context.Context, X [][]float64, y []float64) error {
	n := len(y)
	g.Init = stat.Mean(y, nil)

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = g.Init
	}
	residual := make([]float64, n)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	params := treeParams{maxDepth: g.MaxDepth, minLeaf: 1}
	stages := make([]Tree, 0, g.NumStages)
	for s := 0; s < g.NumStages; s++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range residual {
			residual[i] = y[i] - pred[i]
		}
		t := fitTree(X, residual, idx, params)
		for i := range pred {
			pred[i] += g.LearningRate * t.Predict(X[i])
		}
		stages = append(stages, t)
	}

	g.Stages = stages
	return nil
}

// Predict implements Regressor.
func (g *GradientBoosting) Predict(x []float64) float64 {
	out := g.Init
	for i := range g.Stages {
		out += g.LearningRate * g.Stages[i].Predict(x)
	}
	return out
}
