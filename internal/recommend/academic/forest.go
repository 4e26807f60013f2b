// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package academic

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Forest defaults.
const (
	DefaultForestTrees = 100
	DefaultForestDepth = 10
	DefaultSeed        = 42
)

// RandomForest averages bootstrap regression trees. Every tree considers all
// features at every split.
type RandomForest struct {
	Trees    []Tree
	NumTrees int
	MaxDepth int
	Seed     int64
}

// NewRandomForest returns an untrained forest.
func NewRandomForest(numTrees, maxDepth int, seed int64) *RandomForest {
	return &RandomForest{NumTrees: numTrees, MaxDepth: maxDepth, Seed: seed}
}

// Name implements Regressor.
func (f *RandomForest) Name() string { return RandomForestName }

// Fit implements Regressor. Trees are grown concurrently; tree i draws its
// bootstrap sample from a source seeded with Seed+i, so the result does not
// depend on scheduling.
func (f *RandomForest) Fit(ctx context.Context, X [][]float64, y []float64) error {
	n := len(y)
	trees := make([]Tree, f.NumTrees)
	params := treeParams{maxDepth: f.MaxDepth, minLeaf: 1}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range trees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(f.Seed + int64(i))) //nolint:gosec // deterministic model seeding
			sample := make([]int, n)
			for k := range sample {
				sample[k] = rng.Intn(n)
			}
			trees[i] = fitTree(X, y, sample, params)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	f.Trees = trees
	return nil
}

// Predict implements Regressor.
func (f *RandomForest) Predict(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	var sum float64
	for i := range f.Trees {
		sum += f.Trees[i].Predict(x)
	}
	return sum / float64(len(f.Trees))
}
