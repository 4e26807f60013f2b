// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package academic

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ridgeEpsilon is added to the normal-equation diagonal so that collinear
// or constant columns still factorize.
const ridgeEpsilon = 1e-8

// LinearRegression is ordinary least squares with an intercept.
type LinearRegression struct {
	Intercept float64
	Coef      []float64
}

// NewLinearRegression returns an untrained model.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Name implements Regressor.
func (l *LinearRegression) Name() string { return LinearRegressionName }

// Fit implements Regressor. It solves the centered normal equations
// (XᵀX + εI)β = Xᵀy by Cholesky factorization.
func (l *LinearRegression) Fit(_ context.Context, X [][]float64, y []float64) error {
	n, p := len(X), len(X[0])

	xMean := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := range X {
			col[i] = X[i][j]
		}
		xMean[j] = stat.Mean(col, nil)
	}
	yMean := stat.Mean(y, nil)

	xc := mat.NewDense(n, p, nil)
	yc := mat.NewVecDense(n, nil)
	for i := range X {
		for j := 0; j < p; j++ {
			xc.Set(i, j, X[i][j]-xMean[j])
		}
		yc.SetVec(i, y[i]-yMean)
	}

	var xtx mat.SymDense
	xtx.SymOuterK(1, xc.T())
	for j := 0; j < p; j++ {
		xtx.SetSym(j, j, xtx.At(j, j)+ridgeEpsilon)
	}

	xty := mat.NewVecDense(p, nil)
	xty.MulVec(xc.T(), yc)

	var chol mat.Cholesky
	if ok := chol.Factorize(&xtx); !ok {
		return fmt.Errorf("linear regression: normal equations not positive definite")
	}
	beta := mat.NewVecDense(p, nil)
	if err := chol.SolveVecTo(beta, xty); err != nil {
		return fmt.Errorf("linear regression: solve: %w", err)
	}

	l.Coef = make([]float64, p)
	for j := range l.Coef {
		l.Coef[j] = beta.AtVec(j)
	}
	l.Intercept = yMean - floats.Dot(l.Coef, xMean)
	return nil
}

// Predict implements Regressor.
func (l *LinearRegression) Predict(x []float64) float64 {
	if len(l.Coef) == 0 {
		return l.Intercept
	}
	return l.Intercept + floats.Dot(l.Coef, x[:len(l.Coef)])
}
