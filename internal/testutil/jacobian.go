package testutil

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// fivePoint is the fourth-order central stencil for first derivatives.
var fivePoint = fd.Formula{
	Stencil: []fd.Point{
		{Loc: -2, Coeff: 1.0 / 12},
		{Loc: -1, Coeff: -8.0 / 12},
		{Loc: 1, Coeff: 8.0 / 12},
		{Loc: 2, Coeff: -1.0 / 12},
	},
	Derivative: 1,
	Step:       1e-3,
}

// Log10Jacobian differentiates f numerically with respect to y = log10(x)
// and returns the m x len(x) Jacobian dF/dy. Every x must be positive.
//
// Stepping in log10 space gives each parameter a step relative to its
// magnitude, so parameters spanning many decades share one step size.
func Log10Jacobian(f func(x []float64) []float64, x []float64, m int) *mat.Dense {
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = math.Log10(v)
	}

	lin := make([]float64, len(x))
	dst := mat.NewDense(m, len(x), nil)
	fd.Jacobian(dst, func(out, yy []float64) {
		for i, v := range yy {
			lin[i] = math.Pow(10, v)
		}
		copy(out, f(lin))
	}, y, &fd.JacobianSettings{Formula: fivePoint, Step: fivePoint.Step})
	return dst
}

// LinearJacobian converts a Jacobian with respect to log10(x) into one with
// respect to x.
func LinearJacobian(log10J *mat.Dense, x []float64) *mat.Dense {
	out := mat.DenseCopyOf(log10J)
	r, _ := out.Dims()
	for j, v := range x {
		for i := 0; i < r; i++ {
			out.Set(i, j, out.At(i, j)/(math.Ln10*v))
		}
	}
	return out
}

// NumericalJacobian differentiates f with respect to x, which must be
// positive, via [Log10Jacobian] and [LinearJacobian].
func NumericalJacobian(f func(x []float64) []float64, x []float64, m int) *mat.Dense {
	return LinearJacobian(Log10Jacobian(f, x, m), x)
}
