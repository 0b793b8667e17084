// Package colecole computes the complex response of multi-term Cole-Cole
// models and its analytic partial derivatives.
//
// Two formulations share one engine, selected by a [Domain]:
//
//	resistivity (Pelton et al., 1978):
//	  rho(w)   = rho0   * (1 - sum_k m_k * (1 - 1/(1 + (j*w*tau_k)^c_k)))
//	conductivity (Tarasov and Titov, 2013):
//	  sigma(w) = sigmai * (1 - sum_k m_k / (1 + (j*w*tau_k)^c_k))
//
// With z = (j*w*tau)^c and z/(1+z) = P + jQ, where
//
//	P = (otc*cos(ang) + otc2) / denom
//	Q = otc*sin(ang) / denom
//
// both kernels are affine in P + jQ: z/(1+z) for resistivity and
// 1 - z/(1+z) for conductivity. Every derivative is therefore expressed
// through P, Q and their partials with respect to tau and c.
//
// Derivatives with respect to the base parameter (rho0 or sigmai) are
// vectors of length N. Derivatives with respect to m, tau and c are N x k
// matrices, one column per term. The Log10 variants are the linear
// derivatives multiplied by ln(10)*X, the chain rule for X = 10^y.
//
// # Usage
//
//	md, err := colecole.NewResistivity(freqs)
//	if err != nil {
//	    return err
//	}
//	resp, err := md.Response(params.Flat{100, 0.1, 0.04, 0.8})
//	J, err := md.JacobianReIm(params.Flat{100, 0.1, 0.04, 0.8})
//
// A Model only holds its frequency vector; each call normalizes its
// parameters into a fresh state, so a Model may be shared between
// goroutines.
package colecole
