package colecole

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-sip/internal/testutil"
	"github.com/cwbudde/algo-sip/sip/params"
	"github.com/cwbudde/algo-sip/sip/spectrum"
)

const (
	derivAtol = 1e-6
	derivRtol = 1e-4
)

type derivCase struct {
	name   string
	domain Domain
	freqs  []float64
	pars   params.Flat
}

func derivCases() []derivCase {
	f20 := spectrum.LogFrequencies(1e-3, 1e3, 20)
	f22 := spectrum.LogFrequencies(1e-3, 1e4, 22)
	return []derivCase{
		{"res/one term", Resistivity, f20, params.Flat{100, 0.1, 0.04, 0.8}},
		{"res/two terms", Resistivity, f20, params.Flat{100, 0.1, 0.2, 0.04, 0.004, 0.6, 0.8}},
		{"res/two wide terms", Resistivity, f22, params.Flat{100, 0.15, 0.2, 0.4, 0.004, 0.5, 0.8}},
		{"res/three terms", Resistivity, f22, params.Flat{30, 0.05, 0.1, 0.2, 10, 0.1, 0.0001, 0.3, 0.6, 0.9}},
		{"cond/one term", Conductivity, f20, params.Flat{0.01, 0.1, 0.04, 0.6}},
		{"cond/two terms", Conductivity, f22, params.Flat{0.01, 0.1, 0.2, 0.04, 0.0001, 0.4, 0.8}},
		{"cond/large base", Conductivity, f20, params.Flat{100, 0.1, 0.2, 0.04, 0.004, 0.6, 0.8}},
	}
}

// forward stacks [Re; Im] of the model response for a flat parameter vector.
func forward(t *testing.T, md *Model) func(x []float64) []float64 {
	return func(x []float64) []float64 {
		z, err := md.Complex(params.Flat(x))
		require.NoError(t, err)
		out := make([]float64, 2*len(z))
		for i, v := range z {
			out[i] = real(v)
			out[len(z)+i] = imag(v)
		}
		return out
	}
}

// numericalBlocks returns the numerical Jacobians of Re and Im (N x (1+3k)).
func numericalBlocks(t *testing.T, md *Model, x []float64, log10 bool) (re, im *mat.Dense) {
	n := len(md.Frequencies())
	var J *mat.Dense
	if log10 {
		J = testutil.Log10Jacobian(forward(t, md), x, 2*n)
	} else {
		J = testutil.NumericalJacobian(forward(t, md), x, 2*n)
	}
	_, p := J.Dims()
	return mat.DenseCopyOf(J.Slice(0, n, 0, p)), mat.DenseCopyOf(J.Slice(n, 2*n, 0, p))
}

func column(v []float64) *mat.Dense {
	return mat.NewDense(len(v), 1, v)
}

func TestDerivativesMatchNumerical(t *testing.T) {
	for _, tc := range derivCases() {
		t.Run(tc.name, func(t *testing.T) {
			md, err := New(tc.domain, tc.freqs)
			require.NoError(t, err)

			k := (len(tc.pars) - 1) / 3
			numRe, numIm := numericalBlocks(t, md, tc.pars, false)
			n := len(tc.freqs)
			block := func(J *mat.Dense, c0, width int) mat.Matrix {
				return J.Slice(0, n, c0, c0+width)
			}

			reBase, err := md.DReDBase(tc.pars)
			require.NoError(t, err)
			testutil.RequireMatrixClose(t, column(reBase), block(numRe, 0, 1), derivAtol, derivRtol)

			imBase, err := md.DImDBase(tc.pars)
			require.NoError(t, err)
			testutil.RequireMatrixClose(t, column(imBase), block(numIm, 0, 1), derivAtol, derivRtol)

			terms := []struct {
				name string
				re   func(params.Parameters) (*mat.Dense, error)
				im   func(params.Parameters) (*mat.Dense, error)
			}{
				{"m", md.DReDM, md.DImDM},
				{"tau", md.DReDTau, md.DImDTau},
				{"c", md.DReDC, md.DImDC},
			}
			for i, term := range terms {
				c0 := 1 + i*k

				got, err := term.re(tc.pars)
				require.NoError(t, err, term.name)
				testutil.RequireMatrixClose(t, got, block(numRe, c0, k), derivAtol, derivRtol)

				got, err = term.im(tc.pars)
				require.NoError(t, err, term.name)
				testutil.RequireMatrixClose(t, got, block(numIm, c0, k), derivAtol, derivRtol)
			}
		})
	}
}

func TestLog10DerivativesMatchNumerical(t *testing.T) {
	for _, tc := range derivCases() {
		t.Run(tc.name, func(t *testing.T) {
			md, err := New(tc.domain, tc.freqs)
			require.NoError(t, err)

			numRe, numIm := numericalBlocks(t, md, tc.pars, true)
			_, p := numRe.Dims()
			n := len(tc.freqs)

			J, err := md.JacobianLog10ReIm(tc.pars)
			require.NoError(t, err)
			testutil.RequireMatrixClose(t, J.Slice(0, n, 0, p), numRe, derivAtol, derivRtol)
			testutil.RequireMatrixClose(t, J.Slice(0, n, p, 2*p), numIm, derivAtol, derivRtol)
		})
	}
}

func TestLog10ChainRuleIdentity(t *testing.T) {
	for _, tc := range derivCases() {
		t.Run(tc.name, func(t *testing.T) {
			md, err := New(tc.domain, tc.freqs)
			require.NoError(t, err)
			set, err := params.Resolve(tc.pars, tc.domain.BaseKey())
			require.NoError(t, err)

			vecs := []struct {
				lin, log func(params.Parameters) ([]float64, error)
			}{
				{md.DReDBase, md.DReDLog10Base},
				{md.DImDBase, md.DImDLog10Base},
			}
			for _, v := range vecs {
				lin, err := v.lin(tc.pars)
				require.NoError(t, err)
				got, err := v.log(tc.pars)
				require.NoError(t, err)
				for i := range lin {
					assert.Equal(t, lin[i]*(math.Ln10*set.Base), got[i])
				}
			}

			mats := []struct {
				lin, log func(params.Parameters) (*mat.Dense, error)
				x        []float64
			}{
				{md.DReDM, md.DReDLog10M, set.M},
				{md.DImDM, md.DImDLog10M, set.M},
				{md.DReDTau, md.DReDLog10Tau, set.Tau},
				{md.DImDTau, md.DImDLog10Tau, set.Tau},
				{md.DReDC, md.DReDLog10C, set.C},
				{md.DImDC, md.DImDLog10C, set.C},
			}
			for _, m := range mats {
				lin, err := m.lin(tc.pars)
				require.NoError(t, err)
				got, err := m.log(tc.pars)
				require.NoError(t, err)

				r, c := lin.Dims()
				for i := 0; i < r; i++ {
					for j := 0; j < c; j++ {
						assert.Equal(t, lin.At(i, j)*(math.Ln10*m.x[j]), got.At(i, j))
					}
				}
			}
		})
	}
}

func TestRealPartIsLinearInBase(t *testing.T) {
	for _, tc := range derivCases() {
		md, err := New(tc.domain, tc.freqs)
		require.NoError(t, err)

		z, err := md.Complex(tc.pars)
		require.NoError(t, err)
		dRe, err := md.DReDBase(tc.pars)
		require.NoError(t, err)
		dIm, err := md.DImDBase(tc.pars)
		require.NoError(t, err)

		base := tc.pars[0]
		for i := range z {
			assert.InDelta(t, real(z[i]), base*dRe[i], 1e-12*base, tc.name)
			assert.InDelta(t, imag(z[i]), base*dIm[i], 1e-12*base, tc.name)
		}
	}
}

func TestDerivativeShapes(t *testing.T) {
	md, err := NewResistivity(spectrum.LogFrequencies(1e-3, 1e3, 20))
	require.NoError(t, err)
	pars := params.Flat{100, 0.1, 0.2, 0.04, 0.004, 0.6, 0.8}

	base, err := md.DReDBase(pars)
	require.NoError(t, err)
	assert.Len(t, base, 20)

	for _, fn := range []func(params.Parameters) (*mat.Dense, error){
		md.DReDM, md.DReDTau, md.DReDC, md.DImDM, md.DImDTau, md.DImDC,
		md.DReDLog10M, md.DReDLog10Tau, md.DReDLog10C,
		md.DImDLog10M, md.DImDLog10Tau, md.DImDLog10C,
	} {
		d, err := fn(pars)
		require.NoError(t, err)
		r, c := d.Dims()
		assert.Equal(t, 20, r)
		assert.Equal(t, 2, c)
	}
}

func TestDerivativesRejectInvalidParameters(t *testing.T) {
	md, err := NewConductivity([]float64{1, 10})
	require.NoError(t, err)
	bad := params.Flat{0.01, 0.1, 0.04, 0.6, 0.1}

	for _, fn := range []func(params.Parameters) ([]float64, error){
		md.DReDBase, md.DImDBase, md.DReDLog10Base, md.DImDLog10Base,
	} {
		_, err := fn(bad)
		assert.ErrorIs(t, err, params.ErrInvalidParameters)
	}
	for _, fn := range []func(params.Parameters) (*mat.Dense, error){
		md.DReDM, md.DReDTau, md.DReDC, md.DImDM, md.DImDTau, md.DImDC,
		md.DReDLog10M, md.DReDLog10Tau, md.DReDLog10C,
		md.DImDLog10M, md.DImDLog10Tau, md.DImDLog10C,
		md.JacobianReIm, md.JacobianLog10ReIm, md.JacobianStacked,
	} {
		_, err := fn(bad)
		assert.ErrorIs(t, err, params.ErrInvalidParameters)
	}
}

func TestJacobiansMatchNumerical(t *testing.T) {
	for _, tc := range derivCases() {
		t.Run(tc.name, func(t *testing.T) {
			md, err := New(tc.domain, tc.freqs)
			require.NoError(t, err)

			n := len(tc.freqs)
			p := len(tc.pars)
			numRe, numIm := numericalBlocks(t, md, tc.pars, false)

			J, err := md.JacobianReIm(tc.pars)
			require.NoError(t, err)
			r, c := J.Dims()
			require.Equal(t, n, r)
			require.Equal(t, 2*p, c)
			for i := 0; i < r; i++ {
				testutil.RequireFinite(t, J.RawRowView(i))
			}
			testutil.RequireMatrixClose(t, J.Slice(0, n, 0, p), numRe, derivAtol, derivRtol)
			testutil.RequireMatrixClose(t, J.Slice(0, n, p, 2*p), numIm, derivAtol, derivRtol)

			S, err := md.JacobianStacked(tc.pars)
			require.NoError(t, err)
			r, c = S.Dims()
			require.Equal(t, 2*n, r)
			require.Equal(t, p, c)
			testutil.RequireMatrixClose(t, S.Slice(0, n, 0, p), numRe, derivAtol, derivRtol)
			testutil.RequireMatrixClose(t, S.Slice(n, 2*n, 0, p), numIm, derivAtol, derivRtol)

			// Both layouts hold the same values.
			for i := 0; i < n; i++ {
				d, err := testutil.MaxAbsDiff(S.RawRowView(i), J.RawRowView(i)[:p])
				require.NoError(t, err)
				assert.Zero(t, d)
				d, err = testutil.MaxAbsDiff(S.RawRowView(n+i), J.RawRowView(i)[p:])
				require.NoError(t, err)
				assert.Zero(t, d)
			}
		})
	}
}
