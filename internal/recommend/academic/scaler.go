// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package academic

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler centers columns on their mean and divides by their
// population standard deviation. A zero deviation is treated as 1.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// FitScaler computes column statistics over X.
func FitScaler(X [][]float64) *StandardScaler {
	n, p := len(X), len(X[0])
	s := &StandardScaler{Mean: make([]float64, p), Scale: make([]float64, p)}

	col := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := range X {
			col[i] = X[i][j]
		}
		mean, variance := stat.MeanVariance(col, nil)
		popVar := 0.0
		if n > 1 {
			popVar = variance * float64(n-1) / float64(n)
		}
		std := math.Sqrt(popVar)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.Mean[j] = mean
		s.Scale[j] = std
	}
	return s
}

// Transform returns a scaled copy of x.
func (s *StandardScaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for j := range x {
		out[j] = (x[j] - s.Mean[j]) / s.Scale[j]
	}
	return out
}

// TransformAll scales every row of X.
func (s *StandardScaler) TransformAll(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = s.Transform(row)
	}
	return out
}
