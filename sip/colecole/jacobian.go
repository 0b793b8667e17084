package colecole

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-sip/sip/params"
)

// partialSet is one complete derivative family: the base vector followed by
// the m, tau and c blocks.
type partialSet struct {
	base  []float64
	terms [3]*mat.Dense
}

func (md *Model) partials(p params.Parameters, log10 bool) (re, im partialSet, err error) {
	type vecFn func(params.Parameters) ([]float64, error)
	type matFn func(params.Parameters) (*mat.Dense, error)

	reBase, imBase := vecFn(md.DReDBase), vecFn(md.DImDBase)
	reTerms := [3]matFn{md.DReDM, md.DReDTau, md.DReDC}
	imTerms := [3]matFn{md.DImDM, md.DImDTau, md.DImDC}
	if log10 {
		reBase, imBase = md.DReDLog10Base, md.DImDLog10Base
		reTerms = [3]matFn{md.DReDLog10M, md.DReDLog10Tau, md.DReDLog10C}
		imTerms = [3]matFn{md.DImDLog10M, md.DImDLog10Tau, md.DImDLog10C}
	}

	if re.base, err = reBase(p); err != nil {
		return re, im, err
	}
	for i, fn := range reTerms {
		if re.terms[i], err = fn(p); err != nil {
			return re, im, err
		}
	}
	if im.base, err = imBase(p); err != nil {
		return re, im, err
	}
	for i, fn := range imTerms {
		if im.terms[i], err = fn(p); err != nil {
			return re, im, err
		}
	}
	return re, im, nil
}

// place copies ps into dst starting at (r0, c0) as the row block
// [base | m | tau | c] and returns the next free column.
func (ps partialSet) place(dst *mat.Dense, r0, c0 int) int {
	n := len(ps.base)
	dst.Slice(r0, r0+n, c0, c0+1).(*mat.Dense).Copy(mat.NewDense(n, 1, ps.base))
	col := c0 + 1
	for _, block := range ps.terms {
		_, k := block.Dims()
		dst.Slice(r0, r0+n, col, col+k).(*mat.Dense).Copy(block)
		col += k
	}
	return col
}

func assembleReIm(re, im partialSet) *mat.Dense {
	n := len(re.base)
	_, k := re.terms[0].Dims()
	J := mat.NewDense(n, 2+6*k, nil)
	col := re.place(J, 0, 0)
	im.place(J, 0, col)
	return J
}

// JacobianReIm returns the N x (2+6k) sensitivity matrix with columns
//
//	[dRe/dbase, dRe/dm, dRe/dtau, dRe/dc, dIm/dbase, dIm/dm, dIm/dtau, dIm/dc]
//
// Both domains use the same layout: the base derivative is a single column
// and each term block has k columns in term order. The columns of each half
// follow the flat parameter order.
func (md *Model) JacobianReIm(p params.Parameters) (*mat.Dense, error) {
	re, im, err := md.partials(p, false)
	if err != nil {
		return nil, err
	}
	return assembleReIm(re, im), nil
}

// JacobianLog10ReIm is JacobianReIm with respect to log10 of every
// parameter.
func (md *Model) JacobianLog10ReIm(p params.Parameters) (*mat.Dense, error) {
	re, im, err := md.partials(p, true)
	if err != nil {
		return nil, err
	}
	return assembleReIm(re, im), nil
}

// JacobianStacked returns the 2N x (1+3k) matrix with the real part
// derivatives in the first N rows and the imaginary part derivatives in the
// last N rows, the layout least-squares solvers expect for a residual
// vector [Re; Im]. Columns follow the flat parameter order.
func (md *Model) JacobianStacked(p params.Parameters) (*mat.Dense, error) {
	re, im, err := md.partials(p, false)
	if err != nil {
		return nil, err
	}
	n := len(re.base)
	_, k := re.terms[0].Dims()
	J := mat.NewDense(2*n, 1+3*k, nil)
	re.place(J, 0, 0)
	im.place(J, n, 0)
	return J, nil
}
