package spectrum

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogFrequencies returns n frequencies evenly spaced in log10 between fmin
// and fmax, computed as numpy.logspace does (powers of ten of a linear
// span). It panics if n < 2.
func LogFrequencies(fmin, fmax float64, n int) []float64 {
	out := floats.Span(make([]float64, n), math.Log10(fmin), math.Log10(fmax))
	for i, e := range out {
		out[i] = math.Pow(10, e)
	}
	return out
}
