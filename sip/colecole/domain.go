package colecole

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-sip/sip/convert"
	"github.com/cwbudde/algo-sip/sip/params"
)

// ErrUnknownDomain is returned for an unrecognized or zero Domain.
var ErrUnknownDomain = errors.New("colecole: unknown domain")

// Domain describes one Cole-Cole formulation. The per-term kernel is
//
//	K(z) = offset + sign * z/(1+z)
//
// and the response is base * (1 - sum m*K(z)).
type Domain struct {
	name    string
	baseKey string
	format  convert.Format
	offset  float64
	sign    float64
	kernel  func(z complex128) complex128
}

// The two supported formulations.
var (
	Resistivity = Domain{
		name:    "resistivity",
		baseKey: params.BaseRho0,
		format:  convert.RComplex,
		offset:  0,
		sign:    1,
		kernel:  func(z complex128) complex128 { return 1 - 1/(1+z) },
	}
	Conductivity = Domain{
		name:    "conductivity",
		baseKey: params.BaseSigmai,
		format:  convert.CComplex,
		offset:  1,
		sign:    -1,
		kernel:  func(z complex128) complex128 { return 1 / (1 + z) },
	}
)

// ParseDomain accepts "res", "resistivity", "cond" and "conductivity".
func ParseDomain(s string) (Domain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "res", "resistivity":
		return Resistivity, nil
	case "cond", "conductivity":
		return Conductivity, nil
	default:
		return Domain{}, fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
}

// Name returns "resistivity" or "conductivity".
func (d Domain) Name() string { return d.name }

// BaseKey returns the keyed-encoding name of the base parameter.
func (d Domain) BaseKey() string { return d.baseKey }

// Format returns the complex format the forward response is expressed in.
func (d Domain) Format() convert.Format { return d.format }

// String implements fmt.Stringer.
func (d Domain) String() string {
	if d.name == "" {
		return "Domain(unknown)"
	}
	return d.name
}

func (d Domain) valid() bool { return d.kernel != nil }
