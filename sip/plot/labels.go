package plot

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownLabelSet is returned for a label set other than material or
	// measurement.
	ErrUnknownLabelSet = errors.New("plot: unknown label set")
	// ErrUnknownQuantity is returned for a quantity without labels.
	ErrUnknownQuantity = errors.New("plot: unknown quantity")
)

// LabelSet selects between material properties (resistivity, conductivity)
// and raw measurement quantities (impedance, admittance).
type LabelSet int

const (
	Material LabelSet = iota + 1
	Measurement
)

func (s LabelSet) String() string {
	switch s {
	case Material:
		return "material"
	case Measurement:
		return "meas"
	default:
		return fmt.Sprintf("LabelSet(%d)", int(s))
	}
}

// ParseLabelSet accepts "material", "meas" and "measurement".
func ParseLabelSet(s string) (LabelSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "material":
		return Material, nil
	case "meas", "measurement":
		return Measurement, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabelSet, s)
	}
}

// TextMode selects the markup of axis labels.
type TextMode int

const (
	MathText TextMode = iota
	LaTeX
)

// Quantities with axis labels.
const (
	QuantityRMag = "rmag"
	QuantityRPha = "rpha"
	QuantityCRe  = "cre"
	QuantityCIm  = "cim"
)

type labelKey struct {
	quantity string
	set      LabelSet
}

// labels maps to the LaTeX and mathtext forms.
var labels = map[labelKey][2]string{
	{QuantityRMag, Material}:    {`$|\rho| [\Omega m]$`, `$|\rho|~[\Omega m]$`},
	{QuantityRMag, Measurement}: {`$|Z| [\Omega]$`, `$|Z|~[\Omega]$`},
	{QuantityRPha, Material}:    {`$-\phi [mrad]$`, `$-\phi~[mrad]$`},
	{QuantityRPha, Measurement}: {`$-\varphi [mrad]$`, `$-\varphi~[mrad]$`},
	{QuantityCRe, Material}:     {`$\sigma' [S/m]$`, `$\sigma'~[S/m]$`},
	{QuantityCRe, Measurement}:  {`$Y' [S]$`, `$Y'~[S]$`},
	{QuantityCIm, Material}:     {`$\sigma'' [S/m]$`, `$\sigma''~[S/m]$`},
	{QuantityCIm, Measurement}:  {`$Y'' [S]$`, `$Y''~[S]$`},
}

// Label returns the axis label of quantity in the given label set.
func Label(quantity string, set LabelSet, mode TextMode) (string, error) {
	if set != Material && set != Measurement {
		return "", fmt.Errorf("%w: %v", ErrUnknownLabelSet, set)
	}
	l, ok := labels[labelKey{quantity, set}]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuantity, quantity)
	}
	if mode == LaTeX {
		return l[1], nil
	}
	return l[0], nil
}
