package spectrum

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Names of the two-column views.
const (
	ViewRMagRPha = "rmag_rpha"
	ViewCMagCPha = "cmag_cpha"
	ViewRReRIm   = "rre_rim"
	ViewCReCIm   = "cre_cim"
)

// RMagRPha returns the N x 2 matrix [|rho|, phase].
func (r *Response) RMagRPha() *mat.Dense { return columns(r.RMag, r.RPha) }

// CMagCPha returns the N x 2 matrix [|sigma|, phase].
func (r *Response) CMagCPha() *mat.Dense { return columns(r.CMag, r.CPha) }

// RReRIm returns the N x 2 matrix [rho', rho''].
func (r *Response) RReRIm() *mat.Dense { return columns(r.RRe, r.RIm) }

// CReCIm returns the N x 2 matrix [sigma', sigma''].
func (r *Response) CReCIm() *mat.Dense { return columns(r.CRe, r.CIm) }

// View returns the two-column view with the given name.
func (r *Response) View(name string) (*mat.Dense, error) {
	switch name {
	case ViewRMagRPha:
		return r.RMagRPha(), nil
	case ViewCMagCPha:
		return r.CMagCPha(), nil
	case ViewRReRIm:
		return r.RReRIm(), nil
	case ViewCReCIm:
		return r.CReCIm(), nil
	default:
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownView, name, Views())
	}
}

// Views returns the known view names in sorted order.
func Views() []string {
	out := []string{ViewRMagRPha, ViewCMagCPha, ViewRReRIm, ViewCReCIm}
	sort.Strings(out)
	return out
}

func columns(a, b []float64) *mat.Dense {
	n := len(a)
	if n == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(n, 2, nil)
	out.SetCol(0, a)
	out.SetCol(1, b)
	return out
}

// ToOneLine flattens m column by column into a single row: all values of
// column 0, then column 1, and so on. Values are copied unchanged.
func ToOneLine(m mat.Matrix) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, 0, rows*cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}
