// Package blackscholes implements the closed-form Black-Scholes-Merton model
// for European vanilla options: pricing, analytic greeks, and the
// Newton-Raphson implied-volatility solver that inverts the pricer.
//
// See https://en.wikipedia.org/wiki/Black%E2%80%93Scholes_model
package blackscholes

import (
	"math"

	"github.com/deltafour/optionengine/option"
)

// Greeks holds the analytic sensitivities of one contract, computed jointly
// from a single pair of (d1, d2) intermediates so that call and put share
// identical gamma and vega at equal inputs.
//
// Vega and Rho follow the per-1-percentage-point convention (scaled by 0.01).
// Theta is annualized; divide by 365 for per-day decay.
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}

// d1d2 returns the shared Black-Scholes intermediates
//
//	d1 = [ln(S/K) + (r + sigma^2/2)T] / (sigma sqrt(T))
//	d2 = d1 - sigma sqrt(T)
//
// Callers guarantee T > 0.
func d1d2(s, k, r, sigma, t float64) (d1, d2 float64) {
	sqrtT := math.Sqrt(t)
	d1 = (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * sqrtT)
	return d1, d1 - sigma*sqrtT
}

// Price returns the Black-Scholes-Merton price of c.
//
// At T=0 the price collapses to the intrinsic value exactly, with no sigma
// dependency. For T>0, put price minus call price equals K e^{-rT} - S to
// floating tolerance; parity is a property of the formulas, not enforced
// separately.
func Price(c option.Contract) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if c.T == 0 {
		return c.Intrinsic(), nil
	}

	d1, d2 := d1d2(c.S, c.K, c.R, c.Sigma, c.T)
	discount := math.Exp(-c.R * c.T)
	if c.Kind == option.Call {
		return c.S*option.NormCDF(d1) - c.K*discount*option.NormCDF(d2), nil
	}
	return c.K*discount*option.NormCDF(-d2) - c.S*option.NormCDF(-d1), nil
}

// ComputeGreeks returns the analytic greeks of c.
//
// At T=0 the sensitivities are trivial: delta is 1 for an in-the-money call
// (0 otherwise) and -1 for an in-the-money put (0 otherwise); gamma, vega,
// theta and rho are all 0.
func ComputeGreeks(c option.Contract) (Greeks, error) {
	if err := c.Validate(); err != nil {
		return Greeks{}, err
	}
	if c.T == 0 {
		return expiryGreeks(c), nil
	}

	d1, d2 := d1d2(c.S, c.K, c.R, c.Sigma, c.T)
	sqrtT := math.Sqrt(c.T)
	pdf := option.NormPDF(d1)
	discountK := c.K * math.Exp(-c.R*c.T)

	g := Greeks{
		Gamma: pdf / (c.S * c.Sigma * sqrtT),
		Vega:  c.S * pdf * sqrtT * 0.01,
	}
	if c.Kind == option.Call {
		g.Delta = option.NormCDF(d1)
		g.Theta = -(c.S*pdf*c.Sigma)/(2*sqrtT) - c.R*discountK*option.NormCDF(d2)
		g.Rho = c.T * discountK * option.NormCDF(d2) * 0.01
	} else {
		g.Delta = option.NormCDF(d1) - 1
		g.Theta = -(c.S*pdf*c.Sigma)/(2*sqrtT) + c.R*discountK*option.NormCDF(-d2)
		g.Rho = -c.T * discountK * option.NormCDF(-d2) * 0.01
	}
	return g, nil
}

func expiryGreeks(c option.Contract) Greeks {
	var delta float64
	if c.Kind == option.Call && c.S > c.K {
		delta = 1
	}
	if c.Kind == option.Put && c.S < c.K {
		delta = -1
	}
	return Greeks{Delta: delta}
}

// rawVega is the unscaled dPrice/dSigma used as the Newton-Raphson
// derivative. Callers guarantee T > 0.
func rawVega(s, k, r, sigma, t float64) float64 {
	d1, _ := d1d2(s, k, r, sigma, t)
	return s * option.NormPDF(d1) * math.Sqrt(t)
}
