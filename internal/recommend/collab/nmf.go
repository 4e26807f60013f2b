// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package collab

import (
	"context"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// NMF parameters.
const (
	MaxRank        = 10
	NMFIterations  = 200
	NMFSeed        = 42
	nmfEpsilon     = 1e-10
	nmfTolerance   = 1e-4
	nmfCheckPeriod = 10
)

// factorRank returns max(1, min(MaxRank, min(rows, cols) - 1)).
func factorRank(rows, cols int) int {
	k := min(MaxRank, min(rows, cols)-1)
	if k < 1 {
		k = 1
	}
	return k
}

// factorize approximates the non-negative matrix X as W·H using
// Lee-Seung multiplicative updates on the Frobenius loss.
func factorize(ctx context.Context, X *mat.Dense, k int) (*mat.Dense, *mat.Dense, error) {
	r, c := X.Dims()

	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			sum += X.At(i, j)
		}
	}
	avg := math.Sqrt(sum / float64(r*c) / float64(k))

	rng := rand.New(rand.NewSource(NMFSeed)) //nolint:gosec // deterministic model seeding
	W := mat.NewDense(r, k, nil)
	H := mat.NewDense(k, c, nil)
	W.Apply(func(_, _ int, _ float64) float64 { return avg * math.Abs(rng.NormFloat64()) }, W)
	H.Apply(func(_, _ int, _ float64) float64 { return avg * math.Abs(rng.NormFloat64()) }, H)

	var (
		num, den, tmp mat.Dense
		wh            mat.Dense
	)
	prevErr := reconstructionError(X, W, H, &wh)

	for iter := 1; iter <= NMFIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		// H <- H * (WᵀX) / (WᵀWH)
		num.Mul(W.T(), X)
		tmp.Mul(W.T(), W)
		den.Mul(&tmp, H)
		H.Apply(func(i, j int, v float64) float64 {
			return v * num.At(i, j) / (den.At(i, j) + nmfEpsilon)
		}, H)
		num.Reset()
		den.Reset()
		tmp.Reset()

		// W <- W * (XHᵀ) / (WHHᵀ)
		num.Mul(X, H.T())
		tmp.Mul(H, H.T())
		den.Mul(W, &tmp)
		W.Apply(func(i, j int, v float64) float64 {
			return v * num.At(i, j) / (den.At(i, j) + nmfEpsilon)
		}, W)
		num.Reset()
		den.Reset()
		tmp.Reset()

		if iter%nmfCheckPeriod == 0 {
			curErr := reconstructionError(X, W, H, &wh)
			if prevErr > 0 && (prevErr-curErr)/prevErr < nmfTolerance {
				break
			}
			prevErr = curErr
		}
	}
	return W, H, nil
}

// reconstructionError returns ‖X - W·H‖_F, using wh as scratch space.
func reconstructionError(X, W, H *mat.Dense, wh *mat.Dense) float64 {
	wh.Reset()
	wh.Mul(W, H)
	wh.Sub(X, wh)
	return mat.Norm(wh, 2)
}
