package params

import (
	"errors"
	"fmt"
)

// Base parameter keys used by the keyed encoding.
const (
	BaseRho0   = "rho0"
	BaseSigmai = "sigmai"
)

// Term parameter keys used by the keyed encoding.
const (
	KeyM   = "m"
	KeyTau = "tau"
	KeyC   = "c"
)

// ErrInvalidParameters is returned for malformed parameter encodings.
var ErrInvalidParameters = errors.New("params: invalid parameters")

// Parameters is one of the accepted parameter encodings: [Flat], [Keyed] or
// an already resolved [Set]. The interface is closed.
type Parameters interface {
	resolve(baseKey string) (Set, error)
}

// Resolve parses p into the canonical parameter set. baseKey names the base
// parameter in keyed encodings.
func Resolve(p Parameters, baseKey string) (Set, error) {
	if p == nil {
		return Set{}, fmt.Errorf("%w: no parameters given", ErrInvalidParameters)
	}
	return p.resolve(baseKey)
}

// Set is the canonical Cole-Cole parameter set: one base value and k
// relaxation terms.
type Set struct {
	Base float64
	M    []float64
	Tau  []float64
	C    []float64
}

// Terms returns the number of relaxation terms.
func (s Set) Terms() int { return len(s.M) }

// Validate checks that the term slices are non-empty and of equal length.
func (s Set) Validate() error {
	k := len(s.M)
	if k == 0 {
		return fmt.Errorf("%w: at least one term is required", ErrInvalidParameters)
	}
	if len(s.Tau) != k || len(s.C) != k {
		return fmt.Errorf("%w: term lengths differ: m=%d tau=%d c=%d",
			ErrInvalidParameters, len(s.M), len(s.Tau), len(s.C))
	}
	return nil
}

// Flat returns the flat encoding [base, m.., tau.., c..].
func (s Set) Flat() Flat {
	out := make(Flat, 0, 1+3*len(s.M))
	out = append(out, s.Base)
	out = append(out, s.M...)
	out = append(out, s.Tau...)
	out = append(out, s.C...)
	return out
}

// Keyed returns the keyed encoding using baseKey for the base value.
func (s Set) Keyed(baseKey string) Keyed {
	return Keyed{
		baseKey: Values{s.Base},
		KeyM:    append(Values(nil), s.M...),
		KeyTau:  append(Values(nil), s.Tau...),
		KeyC:    append(Values(nil), s.C...),
	}
}

// Clone returns a deep copy of s.
func (s Set) Clone() Set {
	return Set{
		Base: s.Base,
		M:    append([]float64(nil), s.M...),
		Tau:  append([]float64(nil), s.Tau...),
		C:    append([]float64(nil), s.C...),
	}
}

func (s Set) resolve(string) (Set, error) {
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s.Clone(), nil
}

// Flat is the flat encoding [base, m1..mk, tau1..tauk, c1..ck].
type Flat []float64

func (f Flat) resolve(string) (Set, error) {
	if len(f) < 4 || (len(f)-1)%3 != 0 {
		return Set{}, fmt.Errorf("%w: flat length %d is not of the form 3k+1 with k >= 1",
			ErrInvalidParameters, len(f))
	}
	k := (len(f) - 1) / 3
	s := Set{Base: f[0]}
	s.M = append([]float64(nil), f[1:k+1]...)
	s.Tau = append([]float64(nil), f[k+1:2*k+1]...)
	s.C = append([]float64(nil), f[2*k+1:]...)
	return s, nil
}

// Keyed is the mapping encoding. Scalar entries are single-element Values.
type Keyed map[string]Values

func (kv Keyed) resolve(baseKey string) (Set, error) {
	if kv == nil {
		return Set{}, fmt.Errorf("%w: nil mapping", ErrInvalidParameters)
	}
	base, ok := kv[baseKey]
	if !ok {
		return Set{}, fmt.Errorf("%w: missing key %q", ErrInvalidParameters, baseKey)
	}
	if len(base) != 1 {
		return Set{}, fmt.Errorf("%w: %q must be a single value, got %d",
			ErrInvalidParameters, baseKey, len(base))
	}

	s := Set{Base: base[0]}
	for _, key := range []string{KeyM, KeyTau, KeyC} {
		v, ok := kv[key]
		if !ok {
			return Set{}, fmt.Errorf("%w: missing key %q", ErrInvalidParameters, key)
		}
		vals := append([]float64(nil), v...)
		switch key {
		case KeyM:
			s.M = vals
		case KeyTau:
			s.Tau = vals
		case KeyC:
			s.C = vals
		}
	}
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}
