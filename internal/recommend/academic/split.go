// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package academic

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// DefaultTestFraction is the share of samples held out for scoring.
const DefaultTestFraction = 0.2

// trainTestSplit shuffles 0..n-1 with a seeded source and returns the
// train and holdout indices. The holdout holds ceil(frac·n) samples, at
// least one. With a single sample both sets are that sample.
func trainTestSplit(n int, frac float64, seed int64) (train, test []int) {
	if n == 1 {
		return []int{0}, []int{0}
	}
	nTest := int(math.Ceil(frac * float64(n)))
	if nTest < 1 {
		nTest = 1
	}
	if nTest >= n {
		nTest = n - 1
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n) //nolint:gosec // deterministic split
	return perm[nTest:], perm[:nTest]
}

// r2Score is the coefficient of determination of predictions against
// actual values. Undefined results (constant targets) are reported as 0.
func r2Score(predicted, actual []float64) float64 {
	r2 := stat.RSquaredFrom(predicted, actual, nil)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		return 0
	}
	return r2
}
