// Package res implements the resistivity formulation of the Cole-Cole model
// (Pelton et al., 1978):
//
//	rho(w) = rho0 * (1 - sum_k m_k * (1 - 1/(1 + (j*w*tau_k)^c_k)))
//
// rho0 is the DC resistivity. Parameters use the base key "rho0".
package res

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-sip/sip/colecole"
	"github.com/cwbudde/algo-sip/sip/params"
)

// CC is a resistivity Cole-Cole model.
type CC struct {
	*colecole.Model
}

// New returns a resistivity model evaluated at frequencies (Hz).
func New(frequencies []float64, opts ...colecole.Option) (*CC, error) {
	md, err := colecole.NewResistivity(frequencies, opts...)
	if err != nil {
		return nil, err
	}
	return &CC{Model: md}, nil
}

// DReDRho0 returns d Re(rho)/d rho0.
func (cc *CC) DReDRho0(p params.Parameters) ([]float64, error) { return cc.DReDBase(p) }

// DImDRho0 returns d Im(rho)/d rho0.
func (cc *CC) DImDRho0(p params.Parameters) ([]float64, error) { return cc.DImDBase(p) }

// DReDLog10Rho0 returns d Re(rho)/d log10(rho0).
func (cc *CC) DReDLog10Rho0(p params.Parameters) ([]float64, error) { return cc.DReDLog10Base(p) }

// DImDLog10Rho0 returns d Im(rho)/d log10(rho0).
func (cc *CC) DImDLog10Rho0(p params.Parameters) ([]float64, error) { return cc.DImDLog10Base(p) }

// Jacobian is JacobianReIm under the name used by inversion code.
func (cc *CC) Jacobian(p params.Parameters) (*mat.Dense, error) { return cc.JacobianReIm(p) }
