// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package collab

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// cosineSimilarity returns the row-row cosine similarity of m. Rows that are
// all zero have similarity 0 with everything, themselves included. The
// diagonal of every non-zero row is exactly 1.
func cosineSimilarity(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	normalized := mat.NewDense(r, c, nil)
	nonZero := make([]bool, r)

	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, m)
		norm := floats.Norm(row, 2)
		if norm == 0 {
			continue
		}
		nonZero[i] = true
		floats.Scale(1/norm, row)
		normalized.SetRow(i, row)
	}

	sim := mat.NewDense(r, r, nil)
	sim.Mul(normalized, normalized.T())

	for i := 0; i < r; i++ {
		if nonZero[i] {
			sim.Set(i, i, 1)
		}
		for j := i + 1; j < r; j++ {
			v := (sim.At(i, j) + sim.At(j, i)) / 2
			sim.Set(i, j, v)
			sim.Set(j, i, v)
		}
	}
	return sim
}

// rankedIndex is a (position, score) pair for ordering.
type rankedIndex struct {
	index int
	score float64
}
