package colecole

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-sip/sip/params"
)

// kernelTerm holds z/(1+z) = P + jQ of one term at one frequency and the
// partials of P and Q with respect to tau and c.
type kernelTerm struct {
	p, q       float64
	pTau, qTau float64
	pC, qC     float64
}

// evalKernel evaluates term j at frequency i.
//
// Re(1/(1+z)) = num/denom, so P = 1 - num/denom. With u = (w*tau)^c and
// a = c*pi/2:
//
//	dP/du = (cos(a)*(1+u^2) + 2u) / denom^2
//	dQ/du = sin(a)*(1-u^2) / denom^2
//	dP/da = -u * dQ/du
//	dQ/da =  u * dP/du
//	du/dtau = c*u/tau,  du/dc = u*ln(w*tau),  da/dc = pi/2
func evalKernel(st *params.State, i, j int) kernelTerm {
	u := st.Otc.At(i, j)
	u2 := st.Otc2.At(i, j)
	d := st.Denom.At(i, j)
	num := st.Num.At(i, j)
	sinA, cosA := math.Sincos(st.Ang.At(i, j))
	w, tau, c := st.W.At(i, j), st.Tau.At(i, j), st.C.At(i, j)

	d2 := d * d
	pu := (cosA*(1+u2) + 2*u) / d2
	qu := sinA * (1 - u2) / d2
	pa := -u * qu
	qa := u * pu

	duTau := c * u / tau
	duC := u * math.Log(w*tau)
	const daC = math.Pi / 2

	return kernelTerm{
		p:    1 - num/d,
		q:    u * sinA / d,
		pTau: pu * duTau,
		qTau: qu * duTau,
		pC:   pu*duC + pa*daC,
		qC:   qu*duC + qa*daC,
	}
}

type termFunc func(base, m float64, t kernelTerm) float64

// termMatrix normalizes p and evaluates f for every frequency and term.
func (md *Model) termMatrix(p params.Parameters, f termFunc) (*mat.Dense, *params.State, error) {
	st, err := md.Normalize(p)
	if err != nil {
		return nil, nil, err
	}
	n, k := st.Dims()
	out := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			out.Set(i, j, f(st.Set.Base, st.M.At(i, j), evalKernel(st, i, j)))
		}
	}
	return out, st, nil
}

// termSums reduces a term matrix over the term axis.
func termSums(terms *mat.Dense) []float64 {
	n, _ := terms.Dims()
	out := make([]float64, n)
	for i := range out {
		out[i] = floats.Sum(terms.RawRowView(i))
	}
	return out
}

func (md *Model) dReDBase(p params.Parameters) ([]float64, *params.State, error) {
	d := md.domain
	terms, st, err := md.termMatrix(p, func(_, m float64, t kernelTerm) float64 {
		return m * (d.offset + d.sign*t.p)
	})
	if err != nil {
		return nil, nil, err
	}
	out := termSums(terms)
	for i := range out {
		out[i] = 1 - out[i]
	}
	return out, st, nil
}

func (md *Model) dImDBase(p params.Parameters) ([]float64, *params.State, error) {
	d := md.domain
	terms, st, err := md.termMatrix(p, func(_, m float64, t kernelTerm) float64 {
		return -d.sign * m * t.q
	})
	if err != nil {
		return nil, nil, err
	}
	return termSums(terms), st, nil
}

func (md *Model) dReDM(p params.Parameters) (*mat.Dense, *params.State, error) {
	d := md.domain
	return md.termMatrix(p, func(base, _ float64, t kernelTerm) float64 {
		return -base * (d.offset + d.sign*t.p)
	})
}

func (md *Model) dImDM(p params.Parameters) (*mat.Dense, *params.State, error) {
	d := md.domain
	return md.termMatrix(p, func(base, _ float64, t kernelTerm) float64 {
		return -base * d.sign * t.q
	})
}

func (md *Model) dReDTau(p params.Parameters) (*mat.Dense, *params.State, error) {
	d := md.domain
	return md.termMatrix(p, func(base, m float64, t kernelTerm) float64 {
		return -base * m * d.sign * t.pTau
	})
}

func (md *Model) dImDTau(p params.Parameters) (*mat.Dense, *params.State, error) {
	d := md.domain
	return md.termMatrix(p, func(base, m float64, t kernelTerm) float64 {
		return -base * m * d.sign * t.qTau
	})
}

func (md *Model) dReDC(p params.Parameters) (*mat.Dense, *params.State, error) {
	d := md.domain
	return md.termMatrix(p, func(base, m float64, t kernelTerm) float64 {
		return -base * m * d.sign * t.pC
	})
}

func (md *Model) dImDC(p params.Parameters) (*mat.Dense, *params.State, error) {
	d := md.domain
	return md.termMatrix(p, func(base, m float64, t kernelTerm) float64 {
		return -base * m * d.sign * t.qC
	})
}

// DReDBase returns d Re/d base, one value per frequency:
//
//	1 - sum_k m_k * Re K_k
func (md *Model) DReDBase(p params.Parameters) ([]float64, error) {
	out, _, err := md.dReDBase(p)
	return out, err
}

// DImDBase returns d Im/d base, one value per frequency:
//
//	-sum_k m_k * Im K_k
func (md *Model) DImDBase(p params.Parameters) ([]float64, error) {
	out, _, err := md.dImDBase(p)
	return out, err
}

// DReDM returns d Re/d m_k as an N x k matrix.
func (md *Model) DReDM(p params.Parameters) (*mat.Dense, error) {
	out, _, err := md.dReDM(p)
	return out, err
}

// DImDM returns d Im/d m_k as an N x k matrix.
func (md *Model) DImDM(p params.Parameters) (*mat.Dense, error) {
	out, _, err := md.dImDM(p)
	return out, err
}

// DReDTau returns d Re/d tau_k as an N x k matrix.
func (md *Model) DReDTau(p params.Parameters) (*mat.Dense, error) {
	out, _, err := md.dReDTau(p)
	return out, err
}

// DImDTau returns d Im/d tau_k as an N x k matrix.
func (md *Model) DImDTau(p params.Parameters) (*mat.Dense, error) {
	out, _, err := md.dImDTau(p)
	return out, err
}

// DReDC returns d Re/d c_k as an N x k matrix.
func (md *Model) DReDC(p params.Parameters) (*mat.Dense, error) {
	out, _, err := md.dReDC(p)
	return out, err
}

// DImDC returns d Im/d c_k as an N x k matrix.
func (md *Model) DImDC(p params.Parameters) (*mat.Dense, error) {
	out, _, err := md.dImDC(p)
	return out, err
}

// log10Vector returns ln(10)*x*lin.
func log10Vector(lin []float64, x float64) []float64 {
	out := make([]float64, len(lin))
	vecmath.ScaleBlock(out, lin, math.Ln10*x)
	return out
}

// log10Columns multiplies column j of lin by ln(10)*x[j] in place.
func log10Columns(lin *mat.Dense, x []float64) *mat.Dense {
	factors := make([]float64, len(x))
	for j, v := range x {
		factors[j] = math.Ln10 * v
	}
	n, _ := lin.Dims()
	for i := 0; i < n; i++ {
		vecmath.MulBlockInPlace(lin.RawRowView(i), factors)
	}
	return lin
}

// DReDLog10Base returns ln(10)*base * DReDBase.
func (md *Model) DReDLog10Base(p params.Parameters) ([]float64, error) {
	lin, st, err := md.dReDBase(p)
	if err != nil {
		return nil, err
	}
	return log10Vector(lin, st.Set.Base), nil
}

// DImDLog10Base returns ln(10)*base * DImDBase.
func (md *Model) DImDLog10Base(p params.Parameters) ([]float64, error) {
	lin, st, err := md.dImDBase(p)
	if err != nil {
		return nil, err
	}
	return log10Vector(lin, st.Set.Base), nil
}

// DReDLog10M returns ln(10)*m_k * DReDM.
func (md *Model) DReDLog10M(p params.Parameters) (*mat.Dense, error) {
	lin, st, err := md.dReDM(p)
	if err != nil {
		return nil, err
	}
	return log10Columns(lin, st.Set.M), nil
}

// DImDLog10M returns ln(10)*m_k * DImDM.
func (md *Model) DImDLog10M(p params.Parameters) (*mat.Dense, error) {
	lin, st, err := md.dImDM(p)
	if err != nil {
		return nil, err
	}
	return log10Columns(lin, st.Set.M), nil
}

// DReDLog10Tau returns ln(10)*tau_k * DReDTau.
func (md *Model) DReDLog10Tau(p params.Parameters) (*mat.Dense, error) {
	lin, st, err := md.dReDTau(p)
	if err != nil {
		return nil, err
	}
	return log10Columns(lin, st.Set.Tau), nil
}

// DImDLog10Tau returns ln(10)*tau_k * DImDTau.
func (md *Model) DImDLog10Tau(p params.Parameters) (*mat.Dense, error) {
	lin, st, err := md.dImDTau(p)
	if err != nil {
		return nil, err
	}
	return log10Columns(lin, st.Set.Tau), nil
}

// DReDLog10C returns ln(10)*c_k * DReDC.
func (md *Model) DReDLog10C(p params.Parameters) (*mat.Dense, error) {
	lin, st, err := md.dReDC(p)
	if err != nil {
		return nil, err
	}
	return log10Columns(lin, st.Set.C), nil
}

// DImDLog10C returns ln(10)*c_k * DImDC.
func (md *Model) DImDLog10C(p params.Parameters) (*mat.Dense, error) {
	lin, st, err := md.dImDC(p)
	if err != nil {
		return nil, err
	}
	return log10Columns(lin, st.Set.C), nil
}
