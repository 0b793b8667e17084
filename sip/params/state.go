package params

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrNoFrequencies is returned when normalizing against an empty frequency
// vector.
var ErrNoFrequencies = errors.New("params: frequency vector is empty")

// State is a parameter set broadcast over N frequencies and k terms,
// together with the intermediate terms shared by the forward response and
// all derivatives. Every matrix is N x k; row i belongs to frequency i and
// column j to term j.
type State struct {
	Set Set

	W   *mat.Dense // angular frequency 2*pi*f
	M   *mat.Dense
	Tau *mat.Dense
	C   *mat.Dense

	Otc   *mat.Dense // (w*tau)^c
	Otc2  *mat.Dense // (w*tau)^(2c)
	Ang   *mat.Dense // c*pi/2
	Denom *mat.Dense // 1 + 2*otc*cos(ang) + otc2
	Num   *mat.Dense // 1 + otc*cos(ang)
}

// Normalize resolves p and broadcasts it against frequencies. Nothing is
// returned on error.
func Normalize(frequencies []float64, p Parameters, baseKey string) (*State, error) {
	if len(frequencies) == 0 {
		return nil, ErrNoFrequencies
	}
	set, err := Resolve(p, baseKey)
	if err != nil {
		return nil, err
	}
	return broadcast(frequencies, set), nil
}

func broadcast(frequencies []float64, set Set) *State {
	n, k := len(frequencies), set.Terms()
	st := &State{
		Set:   set,
		W:     mat.NewDense(n, k, nil),
		M:     mat.NewDense(n, k, nil),
		Tau:   mat.NewDense(n, k, nil),
		C:     mat.NewDense(n, k, nil),
		Otc:   mat.NewDense(n, k, nil),
		Otc2:  mat.NewDense(n, k, nil),
		Ang:   mat.NewDense(n, k, nil),
		Denom: mat.NewDense(n, k, nil),
		Num:   mat.NewDense(n, k, nil),
	}

	for i, f := range frequencies {
		w := 2 * math.Pi * f
		for j := 0; j < k; j++ {
			m, tau, c := set.M[j], set.Tau[j], set.C[j]
			otc := math.Pow(w*tau, c)
			otc2 := math.Pow(w*tau, 2*c)
			ang := c * math.Pi / 2
			cosAng := math.Cos(ang)

			st.W.Set(i, j, w)
			st.M.Set(i, j, m)
			st.Tau.Set(i, j, tau)
			st.C.Set(i, j, c)
			st.Otc.Set(i, j, otc)
			st.Otc2.Set(i, j, otc2)
			st.Ang.Set(i, j, ang)
			st.Denom.Set(i, j, 1+2*otc*cosAng+otc2)
			st.Num.Set(i, j, 1+otc*cosAng)
		}
	}
	return st
}

// Dims returns the number of frequencies and terms.
func (st *State) Dims() (n, k int) {
	return st.W.Dims()
}

// Sigma0 returns (1-m)*base broadcast to N x k. For the conductivity
// formulation this is the per-term DC conductivity.
func (st *State) Sigma0() *mat.Dense {
	n, k := st.Dims()
	out := mat.NewDense(n, k, nil)
	out.Apply(func(_, _ int, m float64) float64 {
		return (1 - m) * st.Set.Base
	}, st.M)
	return out
}

// String implements fmt.Stringer.
func (st *State) String() string {
	n, k := st.Dims()
	return fmt.Sprintf("params.State{base=%g terms=%d frequencies=%d}", st.Set.Base, k, n)
}
