// Package montecarlo prices European vanilla options by simulating the
// underlying under Geometric Brownian Motion. It is a competing, validating
// estimator of the same price the closed-form engine produces: the discounted
// mean terminal payoff over many simulated paths, with sampling error that
// shrinks as 1/sqrt(paths).
//
// Randomness is an explicit data dependency. Every simulation consumes an
// owned rand.Source passed by the caller; a nil source falls back to the
// ambient generator and is not reproducible. Given the same source seed the
// lattice is bit-for-bit identical between runs.
package montecarlo

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/deltafour/optionengine/option"
)

// DefaultBump is the absolute bump size for the finite-difference greeks.
const DefaultBump = 0.01

// sigmaFloor keeps the downward vega bump at a positive volatility.
const sigmaFloor = 1e-4

// SimulatePaths simulates GBM trajectories of the underlying and returns the
// price lattice as a paths x (steps+1) matrix: row i is one trajectory,
// column 0 is exactly s0 for every row, and the last column holds the
// terminal prices at time t.
//
// Each step applies the exact GBM transition
//
//	S_{t+dt} = S_t * exp[(r - sigma^2/2) dt + sigma sqrt(dt) Z]
//
// with dt = t/steps and Z drawn i.i.d. standard normal per (path, step), so
// there is no discretization bias for terminal-payoff pricing. Draws come
// from src; pass rand.NewSource(seed) for reproducible output or nil for the
// ambient generator.
func SimulatePaths(s0, r, sigma, t float64, steps, paths int, src rand.Source) (*mat.Dense, error) {
	switch {
	case s0 <= 0:
		return nil, fmt.Errorf("%w: initial price S0 must be positive, got %v", option.ErrInvalidInput, s0)
	case sigma <= 0:
		return nil, fmt.Errorf("%w: volatility sigma must be positive, got %v", option.ErrInvalidInput, sigma)
	case t <= 0:
		return nil, fmt.Errorf("%w: time horizon T must be positive, got %v", option.ErrInvalidInput, t)
	case steps < 1:
		return nil, fmt.Errorf("%w: steps must be at least 1, got %d", option.ErrInvalidInput, steps)
	case paths < 1:
		return nil, fmt.Errorf("%w: paths must be at least 1, got %d", option.ErrInvalidInput, paths)
	}

	dt := t / float64(steps)
	drift := (r - 0.5*sigma*sigma) * dt
	diffusion := sigma * math.Sqrt(dt)
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	lattice := mat.NewDense(paths, steps+1, nil)
	for i := 0; i < paths; i++ {
		price := s0
		lattice.Set(i, 0, price)
		for j := 1; j <= steps; j++ {
			price *= math.Exp(drift + diffusion*normal.Rand())
			lattice.Set(i, j, price)
		}
	}
	return lattice, nil
}

// Price estimates the price of c as the discounted mean terminal payoff over
// a fresh lattice. At T=0 it returns the intrinsic value directly, bypassing
// simulation. No variance reduction is applied; callers needing tighter
// precision must request more paths.
func Price(c option.Contract, steps, paths int, src rand.Source) (float64, error) {
	price, _, err := PriceStdErr(c, steps, paths, src)
	return price, err
}

// PriceStdErr is Price plus the standard error of the estimate, letting
// callers size their path count against the O(1/sqrt(paths)) sampling error.
// At T=0 the standard error is 0.
func PriceStdErr(c option.Contract, steps, paths int, src rand.Source) (price, stderr float64, err error) {
	if err := c.Validate(); err != nil {
		return 0, 0, err
	}
	if c.T == 0 {
		return c.Intrinsic(), 0, nil
	}

	lattice, err := SimulatePaths(c.S, c.R, c.Sigma, c.T, steps, paths, src)
	if err != nil {
		return 0, 0, err
	}

	// Terminal column, turned into discounted payoffs in place.
	payoffs := mat.Col(nil, steps, lattice)
	for i, terminal := range payoffs {
		payoffs[i] = option.Intrinsic(terminal, c.K, c.Kind)
	}
	floats.Scale(math.Exp(-c.R*c.T), payoffs)

	price = stat.Mean(payoffs, nil)
	stderr = stat.StdDev(payoffs, nil) / math.Sqrt(float64(paths))
	return price, stderr, nil
}

// Delta estimates dPrice/dS by central difference, re-pricing at S+h and S-h
// with the same seed for both evaluations. Reusing the draws (common random
// numbers) cancels the sampling noise between the two re-pricings, so the
// difference is far less noisy than two independent estimates would be.
func Delta(c option.Contract, steps, paths int, h float64, seed uint64) (float64, error) {
	if h <= 0 {
		return 0, fmt.Errorf("%w: bump size h must be positive, got %v", option.ErrInvalidInput, h)
	}

	up := c
	up.S += h
	down := c
	down.S -= h

	priceUp, err := Price(up, steps, paths, rand.NewSource(seed))
	if err != nil {
		return 0, err
	}
	priceDown, err := Price(down, steps, paths, rand.NewSource(seed))
	if err != nil {
		return 0, err
	}
	return (priceUp - priceDown) / (2 * h), nil
}

// Vega estimates dPrice/dSigma by central difference with common random
// numbers, bumping sigma by +-h. The downward bump is floored at a small
// positive volatility; the divisor stays 2h regardless.
func Vega(c option.Contract, steps, paths int, h float64, seed uint64) (float64, error) {
	if h <= 0 {
		return 0, fmt.Errorf("%w: bump size h must be positive, got %v", option.ErrInvalidInput, h)
	}

	up := c
	up.Sigma += h
	down := c
	down.Sigma = math.Max(c.Sigma-h, sigmaFloor)

	priceUp, err := Price(up, steps, paths, rand.NewSource(seed))
	if err != nil {
		return 0, err
	}
	priceDown, err := Price(down, steps, paths, rand.NewSource(seed))
	if err != nil {
		return 0, err
	}
	return (priceUp - priceDown) / (2 * h), nil
}
