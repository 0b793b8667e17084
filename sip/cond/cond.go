// Package cond implements the conductivity formulation of the Cole-Cole
// model (Tarasov and Titov, 2013):
//
//	sigma(w) = sigmai * (1 - sum_k m_k / (1 + (j*w*tau_k)^c_k))
//
// sigmai is the high frequency conductivity; the DC value is
// sigma0 = sigmai * (1 - sum_k m_k). Parameters use the base key "sigmai".
package cond

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-sip/sip/colecole"
	"github.com/cwbudde/algo-sip/sip/params"
)

// CC is a conductivity Cole-Cole model.
type CC struct {
	*colecole.Model
}

// New returns a conductivity model evaluated at frequencies (Hz).
func New(frequencies []float64, opts ...colecole.Option) (*CC, error) {
	md, err := colecole.NewConductivity(frequencies, opts...)
	if err != nil {
		return nil, err
	}
	return &CC{Model: md}, nil
}

// Sigma0 returns the DC conductivity of p.
func (cc *CC) Sigma0(p params.Parameters) (float64, error) {
	st, err := cc.Normalize(p)
	if err != nil {
		return 0, err
	}
	return st.Set.Base * (1 - floats.Sum(st.Set.M)), nil
}

// DReDSigmai returns d Re(sigma)/d sigmai.
func (cc *CC) DReDSigmai(p params.Parameters) ([]float64, error) { return cc.DReDBase(p) }

// DImDSigmai returns d Im(sigma)/d sigmai.
func (cc *CC) DImDSigmai(p params.Parameters) ([]float64, error) { return cc.DImDBase(p) }

// DReDLog10Sigmai returns d Re(sigma)/d log10(sigmai).
func (cc *CC) DReDLog10Sigmai(p params.Parameters) ([]float64, error) { return cc.DReDLog10Base(p) }

// DImDLog10Sigmai returns d Im(sigma)/d log10(sigmai).
func (cc *CC) DImDLog10Sigmai(p params.Parameters) ([]float64, error) { return cc.DImDLog10Base(p) }

// Jacobian is JacobianReIm under the name used by inversion code.
func (cc *CC) Jacobian(p params.Parameters) (*mat.Dense, error) { return cc.JacobianReIm(p) }
