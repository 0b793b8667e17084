package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sip/sip/convert"
)

// Errors returned by the spectrum container.
var (
	ErrInvalidInitialization = errors.New("spectrum: exactly one of rcomplex or ccomplex is required")
	ErrUnknownView           = errors.New("spectrum: unknown view")
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Response is one spectrum in both domains. All slices have the length of
// Frequencies and are owned by the Response.
type Response struct {
	Frequencies []float64

	RComplex []complex128
	CComplex []complex128

	RMag []float64 // |rho|
	RPha []float64 // atan2(Im, Re) in mrad
	CMag []float64
	CPha []float64

	RRe []float64
	RIm []float64
	CRe []float64
	CIm []float64
}

type config struct {
	converter convert.Converter
}

// Option configures [New].
type Option func(*config)

// WithConverter sets the converter used to derive the dual domain. A nil
// converter keeps [convert.Default].
func WithConverter(c convert.Converter) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.converter = c
		}
	}
}

// New builds a Response from exactly one of rcomplex and ccomplex; the other
// must be nil. The inputs are copied.
func New(frequencies []float64, rcomplex, ccomplex []complex128, opts ...Option) (*Response, error) {
	if rcomplex == nil && ccomplex == nil {
		return nil, fmt.Errorf("%w: none given", ErrInvalidInitialization)
	}
	if rcomplex != nil && ccomplex != nil {
		return nil, fmt.Errorf("%w: both given", ErrInvalidInitialization)
	}

	cfg := config{converter: convert.Default}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	from, src := convert.RComplex, rcomplex
	if ccomplex != nil {
		from, src = convert.CComplex, ccomplex
	}
	if len(src) != len(frequencies) {
		return nil, fmt.Errorf("%w: %d values for %d frequencies",
			ErrInvalidInitialization, len(src), len(frequencies))
	}

	to, err := from.Dual()
	if err != nil {
		return nil, err
	}
	dual, err := cfg.converter.Convert(from, to, src)
	if err != nil {
		return nil, fmt.Errorf("spectrum: convert %v to %v: %w", from, to, err)
	}
	if len(dual) != len(src) {
		return nil, fmt.Errorf("spectrum: converter returned %d values, want %d", len(dual), len(src))
	}

	r := &Response{Frequencies: append([]float64(nil), frequencies...)}
	if from == convert.RComplex {
		r.RComplex = append([]complex128(nil), src...)
		r.CComplex = dual
	} else {
		r.CComplex = append([]complex128(nil), src...)
		r.RComplex = dual
	}

	r.RRe, r.RIm = parts(r.RComplex)
	r.CRe, r.CIm = parts(r.CComplex)
	r.RMag = magnitude(r.RRe, r.RIm)
	r.CMag = magnitude(r.CRe, r.CIm)
	r.RPha = phaseMrad(r.RRe, r.RIm)
	r.CPha = phaseMrad(r.CRe, r.CIm)
	return r, nil
}

// FromResistivity builds a Response from a complex resistivity array.
func FromResistivity(frequencies []float64, rcomplex []complex128, opts ...Option) (*Response, error) {
	if rcomplex == nil {
		rcomplex = []complex128{}
	}
	return New(frequencies, rcomplex, nil, opts...)
}

// FromConductivity builds a Response from a complex conductivity array.
func FromConductivity(frequencies []float64, ccomplex []complex128, opts ...Option) (*Response, error) {
	if ccomplex == nil {
		ccomplex = []complex128{}
	}
	return New(frequencies, nil, ccomplex, opts...)
}

// Len returns the number of frequencies.
func (r *Response) Len() int { return len(r.Frequencies) }

func parts(z []complex128) (re, im []float64) {
	re = make([]float64, len(z))
	im = make([]float64, len(z))
	for i, c := range z {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im
}

// magnitude computes sqrt(re^2 + im^2) with the SIMD kernels of vecmath.
// re and im are copied into pooled scratch so the caller's slices stay
// untouched by the kernel.
func magnitude(re, im []float64) []float64 {
	out := make([]float64, len(re))
	if len(re) == 0 {
		return out
	}
	sre, sim, buf := getScratch(len(re))
	copy(sre, re)
	copy(sim, im)
	vecmath.Magnitude(out, sre, sim)
	putScratch(buf)
	return out
}

func phaseMrad(re, im []float64) []float64 {
	out := make([]float64, len(re))
	for i := range re {
		out[i] = math.Atan2(im[i], re[i]) * 1000
	}
	return out
}
