// Package params resolves Cole-Cole parameter encodings into a canonical
// parameter set and normalizes that set against a frequency vector.
//
// Two external encodings are accepted:
//
//   - [Flat]: [base, m1..mk, tau1..tauk, c1..ck], length 3k+1.
//   - [Keyed]: {base: v, "m": v|[...], "tau": v|[...], "c": v|[...]}, where
//     the base key is "rho0" for resistivity and "sigmai" for conductivity.
//
// Both resolve to a [Set]. [Normalize] broadcasts a Set over N frequencies
// and k terms and precomputes the intermediate terms shared by the forward
// response and every derivative. The returned [State] is a value owned by
// the caller, so normalization is re-entrant.
//
// # Usage
//
//	st, err := params.Normalize(freqs, params.Flat{100, 0.1, 0.04, 0.8}, params.BaseRho0)
//	if err != nil {
//	    // errors.Is(err, params.ErrInvalidParameters)
//	}
//	d := st.Denom.At(0, 0)
package params
