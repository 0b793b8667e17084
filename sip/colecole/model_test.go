package colecole

import (
	"math/cmplx"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-sip/sip/convert"
	"github.com/cwbudde/algo-sip/sip/params"
	"github.com/cwbudde/algo-sip/sip/spectrum"
)

func TestNewValidatesFrequencies(t *testing.T) {
	tests := []struct {
		name  string
		freqs []float64
	}{
		{"empty", nil},
		{"zero", []float64{0, 1}},
		{"negative", []float64{-1, 1}},
		{"descending", []float64{10, 1}},
		{"duplicate", []float64{1, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewResistivity(tc.freqs)
			assert.ErrorIs(t, err, ErrInvalidFrequencies)
		})
	}

	_, err := New(Domain{}, []float64{1})
	assert.ErrorIs(t, err, ErrUnknownDomain)
}

func TestParseDomain(t *testing.T) {
	for in, want := range map[string]string{
		"res":           "resistivity",
		"Resistivity":   "resistivity",
		"cond":          "conductivity",
		" conductivity": "conductivity",
	} {
		d, err := ParseDomain(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, d.Name())
	}

	_, err := ParseDomain("impedance")
	assert.ErrorIs(t, err, ErrUnknownDomain)
	assert.Equal(t, "Domain(unknown)", Domain{}.String())
	assert.Equal(t, params.BaseSigmai, Conductivity.BaseKey())
	assert.Equal(t, convert.RComplex, Resistivity.Format())
}

func TestFrequenciesAreCopied(t *testing.T) {
	freqs := []float64{1, 2, 3}
	md, err := NewResistivity(freqs)
	require.NoError(t, err)

	freqs[0] = 100
	got := md.Frequencies()
	assert.Equal(t, []float64{1, 2, 3}, got)

	got[1] = 100
	assert.Equal(t, 2.0, md.Frequencies()[1])
}

func TestResistivityReferenceFixture(t *testing.T) {
	md, err := NewResistivity(spectrum.LogFrequencies(1e-3, 1e3, 20))
	require.NoError(t, err)

	resp, err := md.Response(params.Flat{100, 0.1, 0.04, 0.8})
	require.NoError(t, err)

	assert.InDelta(t, 99.99591050939762, resp.RRe[0], 1e-6)
	assert.InDelta(t, -0.012532670299074473, resp.RIm[0], 1e-6)

	// High frequency limit: rho0*(1-m).
	assert.InDelta(t, 90, resp.RRe[19], 0.05)
	for i, v := range resp.RIm {
		assert.Less(t, v, 0.0, "index %d", i)
	}
}

func TestConductivityResponse(t *testing.T) {
	freqs := spectrum.LogFrequencies(1e-3, 1e4, 22)
	md, err := NewConductivity(freqs)
	require.NoError(t, err)

	resp, err := md.Response(params.Flat{0.01, 0.1, 0.04, 0.6})
	require.NoError(t, err)

	// Low frequency limit sigma0 = (1-m)*sigmai, high frequency limit sigmai.
	assert.InDelta(t, 0.009, resp.CRe[0], 1e-4)
	assert.InDelta(t, 0.01, resp.CRe[len(freqs)-1], 1e-4)
	for i, v := range resp.CIm {
		assert.Greater(t, v, 0.0, "index %d", i)
	}
	assert.Equal(t, len(freqs), resp.Len())

	for i := range freqs {
		assert.InDelta(t, 0, cmplx.Abs(resp.RComplex[i]*resp.CComplex[i]-1), 1e-12)
	}
}

func TestEncodingInvariance(t *testing.T) {
	freqs := spectrum.LogFrequencies(1e-3, 1e3, 20)
	for _, d := range []Domain{Resistivity, Conductivity} {
		md, err := New(d, freqs)
		require.NoError(t, err)

		set := params.Set{
			Base: 100,
			M:    []float64{0.1, 0.2},
			Tau:  []float64{0.04, 0.004},
			C:    []float64{0.6, 0.8},
		}
		fromFlat, err := md.Complex(set.Flat())
		require.NoError(t, err)
		fromKeyed, err := md.Complex(set.Keyed(d.BaseKey()))
		require.NoError(t, err)
		fromSet, err := md.Complex(set)
		require.NoError(t, err)

		assert.Equal(t, fromFlat, fromKeyed, d.Name())
		assert.Equal(t, fromFlat, fromSet, d.Name())
	}
}

func TestScalarKeyedMatchesFlat(t *testing.T) {
	md, err := NewResistivity(spectrum.LogFrequencies(1e-2, 1e2, 9))
	require.NoError(t, err)

	a, err := md.Complex(params.Keyed{"rho0": {100}, "m": {0.1}, "tau": {0.04}, "c": {0.6}})
	require.NoError(t, err)
	b, err := md.Complex(params.Flat{100, 0.1, 0.04, 0.6})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDegenerateTerm(t *testing.T) {
	freqs := spectrum.LogFrequencies(1e-3, 1e3, 20)
	for _, d := range []Domain{Resistivity, Conductivity} {
		md, err := New(d, freqs)
		require.NoError(t, err)

		one, err := md.Complex(params.Flat{100, 0.1, 0.04, 0.8})
		require.NoError(t, err)
		two, err := md.Complex(params.Flat{100, 0.1, 0, 0.04, 0.5, 0.8, 0.3})
		require.NoError(t, err)

		for i := range one {
			assert.InDelta(t, 0, cmplx.Abs(one[i]-two[i]), 1e-12, "%s index %d", d.Name(), i)
		}
	}
}

func TestSuperposition(t *testing.T) {
	freqs := spectrum.LogFrequencies(1e-3, 1e3, 20)
	const base = 100.0
	for _, d := range []Domain{Resistivity, Conductivity} {
		md, err := New(d, freqs)
		require.NoError(t, err)

		two, err := md.Complex(params.Flat{base, 0.1, 0.2, 0.04, 0.004, 0.6, 0.8})
		require.NoError(t, err)
		first, err := md.Complex(params.Flat{base, 0.1, 0.04, 0.6})
		require.NoError(t, err)
		second, err := md.Complex(params.Flat{base, 0.2, 0.004, 0.8})
		require.NoError(t, err)

		for i := range two {
			// Each single-term response is base*(1 - m*K), so m*K = 1 - r/base.
			c1 := 1 - first[i]/base
			c2 := 1 - second[i]/base
			want := base * (1 - (c1 + c2))
			assert.InDelta(t, 0, cmplx.Abs(two[i]-want), 1e-10, "%s index %d", d.Name(), i)
		}
	}
}

func TestInvalidParameters(t *testing.T) {
	md, err := NewResistivity([]float64{1, 10})
	require.NoError(t, err)

	bad := []params.Parameters{
		params.Flat{100, 0.1, 0.04, 0.8, 0.5},
		params.Keyed{"rho0": {100}, "m": {0.1}, "c": {0.8}},
		nil,
	}
	for _, p := range bad {
		_, err := md.Response(p)
		assert.ErrorIs(t, err, params.ErrInvalidParameters)
	}
}

func TestConductivityRejectsResistivityKeys(t *testing.T) {
	md, err := NewConductivity([]float64{1, 10})
	require.NoError(t, err)

	_, err = md.Response(params.Keyed{"rho0": {100}, "m": {0.1}, "tau": {0.04}, "c": {0.8}})
	assert.ErrorIs(t, err, params.ErrInvalidParameters)
}

func TestWithConverterIsUsed(t *testing.T) {
	calls := 0
	conv := convert.ConverterFunc(func(from, to convert.Format, in []complex128) ([]complex128, error) {
		calls++
		return convert.Convert(from, to, in)
	})
	md, err := NewResistivity([]float64{1, 10}, WithConverter(conv))
	require.NoError(t, err)

	_, err = md.Response(params.Flat{100, 0.1, 0.04, 0.8})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestConcurrentCalls(t *testing.T) {
	md, err := NewResistivity(spectrum.LogFrequencies(1e-3, 1e3, 20))
	require.NoError(t, err)

	sets := []params.Flat{
		{100, 0.1, 0.04, 0.8},
		{50, 0.3, 0.2, 0.004, 0.001, 0.5, 0.7},
	}
	want := make([][]complex128, len(sets))
	for i, p := range sets {
		want[i], err = md.Complex(p)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			idx := g % len(sets)
			got, err := md.Complex(sets[idx])
			if err != nil {
				errs <- err
				return
			}
			if _, err := md.JacobianReIm(sets[idx]); err != nil {
				errs <- err
				return
			}
			for i := range got {
				if got[i] != want[idx][i] {
					t.Errorf("goroutine %d: index %d: got %v, want %v", g, i, got[i], want[idx][i])
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
