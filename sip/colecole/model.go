package colecole

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-sip/sip/convert"
	"github.com/cwbudde/algo-sip/sip/params"
	"github.com/cwbudde/algo-sip/sip/spectrum"
)

// ErrInvalidFrequencies is returned when the frequency vector is empty, not
// positive or not strictly ascending.
var ErrInvalidFrequencies = errors.New("colecole: invalid frequencies")

// Config holds optional model settings.
type Config struct {
	// Converter derives the dual domain of every response.
	Converter convert.Converter
}

// Option mutates a Config.
type Option func(*Config)

// WithConverter sets the converter passed to every response.
func WithConverter(c convert.Converter) Option {
	return func(cfg *Config) {
		if c != nil {
			cfg.Converter = c
		}
	}
}

// Model evaluates one Cole-Cole formulation on a fixed frequency vector.
type Model struct {
	domain    Domain
	freqs     []float64
	converter convert.Converter
}

// New returns a model of domain d evaluated at frequencies (Hz). The
// frequencies are copied.
func New(d Domain, frequencies []float64, opts ...Option) (*Model, error) {
	if !d.valid() {
		return nil, ErrUnknownDomain
	}
	if err := validateFrequencies(frequencies); err != nil {
		return nil, err
	}

	cfg := Config{Converter: convert.Default}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Model{
		domain:    d,
		freqs:     append([]float64(nil), frequencies...),
		converter: cfg.Converter,
	}, nil
}

// NewResistivity returns a resistivity model (base parameter rho0).
func NewResistivity(frequencies []float64, opts ...Option) (*Model, error) {
	return New(Resistivity, frequencies, opts...)
}

// NewConductivity returns a conductivity model (base parameter sigmai).
func NewConductivity(frequencies []float64, opts ...Option) (*Model, error) {
	return New(Conductivity, frequencies, opts...)
}

func validateFrequencies(f []float64) error {
	if len(f) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidFrequencies)
	}
	for i, v := range f {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: index %d: %v is not a positive finite value", ErrInvalidFrequencies, i, v)
		}
		if i > 0 && !(v > f[i-1]) {
			return fmt.Errorf("%w: not strictly ascending at index %d", ErrInvalidFrequencies, i)
		}
	}
	return nil
}

// Domain returns the model formulation.
func (md *Model) Domain() Domain { return md.domain }

// Frequencies returns a copy of the frequency vector.
func (md *Model) Frequencies() []float64 {
	return append([]float64(nil), md.freqs...)
}

// Normalize resolves p against the model frequencies.
func (md *Model) Normalize(p params.Parameters) (*params.State, error) {
	return params.Normalize(md.freqs, p, md.domain.baseKey)
}

// Complex returns the forward response in the model domain:
//
//	base * (1 - sum_k m_k * K((j*w*tau_k)^c_k))
//
// (j*w*tau)^c uses the principal branch.
func (md *Model) Complex(p params.Parameters) ([]complex128, error) {
	st, err := md.Normalize(p)
	if err != nil {
		return nil, err
	}

	n, k := st.Dims()
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		var sum complex128
		for j := 0; j < k; j++ {
			jwt := complex(0, st.W.At(i, j)*st.Tau.At(i, j))
			z := cmplx.Pow(jwt, complex(st.C.At(i, j), 0))
			sum += complex(st.M.At(i, j), 0) * md.domain.kernel(z)
		}
		out[i] = complex(st.Set.Base, 0) * (1 - sum)
	}
	return out, nil
}

// Response computes the forward response and wraps it in a new spectrum.
func (md *Model) Response(p params.Parameters) (*spectrum.Response, error) {
	z, err := md.Complex(p)
	if err != nil {
		return nil, err
	}
	opt := spectrum.WithConverter(md.converter)
	if md.domain.format == convert.CComplex {
		return spectrum.FromConductivity(md.freqs, z, opt)
	}
	return spectrum.FromResistivity(md.freqs, z, opt)
}
