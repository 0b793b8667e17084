// Package convert converts complex SIP spectra between the resistivity
// (impedance) and conductivity (admittance) domains.
package convert

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedConversion is returned for unknown formats or unsupported
// format pairs.
var ErrUnsupportedConversion = errors.New("convert: unsupported conversion")

// Format identifies a complex spectrum representation.
type Format int

const (
	// RComplex is complex resistivity (or impedance).
	RComplex Format = iota + 1
	// CComplex is complex conductivity (or admittance).
	CComplex
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case RComplex:
		return "rcomplex"
	case CComplex:
		return "ccomplex"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rcomplex":
		return RComplex, nil
	case "ccomplex":
		return CComplex, nil
	default:
		return 0, fmt.Errorf("%w: unknown format %q", ErrUnsupportedConversion, s)
	}
}

// Dual returns the format of the other domain.
func (f Format) Dual() (Format, error) {
	switch f {
	case RComplex:
		return CComplex, nil
	case CComplex:
		return RComplex, nil
	default:
		return 0, fmt.Errorf("%w: %v has no dual", ErrUnsupportedConversion, f)
	}
}

// Converter converts a complex spectrum between formats.
type Converter interface {
	Convert(from, to Format, in []complex128) ([]complex128, error)
}

// ConverterFunc adapts a function to [Converter].
type ConverterFunc func(from, to Format, in []complex128) ([]complex128, error)

// Convert calls f.
func (f ConverterFunc) Convert(from, to Format, in []complex128) ([]complex128, error) {
	return f(from, to, in)
}

// Standard converts between rcomplex and ccomplex by taking the
// elementwise reciprocal.
type Standard struct{}

// Default is the converter used when none is configured.
var Default Converter = Standard{}

// Convert returns a newly allocated slice; in is never modified.
func (Standard) Convert(from, to Format, in []complex128) ([]complex128, error) {
	if _, err := from.Dual(); err != nil {
		return nil, err
	}
	if _, err := to.Dual(); err != nil {
		return nil, err
	}

	out := make([]complex128, len(in))
	if from == to {
		copy(out, in)
		return out, nil
	}
	for i, z := range in {
		out[i] = 1 / z
	}
	return out, nil
}

// Convert converts in using [Default].
func Convert(from, to Format, in []complex128) ([]complex128, error) {
	return Default.Convert(from, to, in)
}
