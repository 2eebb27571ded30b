package blackscholes

import (
	"errors"
	"fmt"
	"math"

	"github.com/deltafour/optionengine/option"
)

// ErrArbitrageViolation reports a market price below the model-free intrinsic
// value of the contract, which no volatility can reproduce.
var ErrArbitrageViolation = errors.New("blackscholes: market price below intrinsic value")

// ErrDegenerateVega reports that the Newton-Raphson derivative is too small
// to divide by safely. This occurs for deep out-of-the-money or very
// short-dated contracts.
var ErrDegenerateVega = errors.New("blackscholes: vega too small for Newton-Raphson")

// ConvergenceError reports that the solver exhausted its iteration budget.
// It carries the last sigma estimate and price residual for diagnostics;
// a caller may retry with a different initial guess.
type ConvergenceError struct {
	Sigma      float64
	Residual   float64
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("blackscholes: implied volatility did not converge after %d iterations (last sigma %.6f, residual %.6g)",
		e.Iterations, e.Sigma, e.Residual)
}

// Solver defaults and stability bounds.
const (
	DefaultInitialGuess = 0.2
	DefaultTol          = 1e-6
	DefaultMaxIter      = 100

	// Iterates are clamped into [sigmaMin, sigmaMax] to keep them physical.
	sigmaMin = 1e-4
	sigmaMax = 5.0

	// Below this the derivative is unusable.
	vegaMin = 1e-10
)

// IVSolver inverts Price for sigma given an observed market price, using
// Newton-Raphson with the model's own vega as the derivative. The zero value
// uses the package defaults.
type IVSolver struct {
	InitialGuess float64 // starting sigma; default 0.2
	Tol          float64 // price tolerance for convergence; default 1e-6
	MaxIter      int     // iteration budget; default 100
}

// Result describes a completed or abandoned solve. Clamped records whether
// any iterate had to be forced back into the physical sigma bounds; a
// clamped solve that still converged may indicate slow or oscillating
// convergence near the bounds.
type Result struct {
	Sigma      float64
	Iterations int
	Residual   float64
	Clamped    bool
}

// ImpliedVol solves for the implied volatility of c at marketPrice using the
// default solver settings. The Sigma field of c is ignored.
func ImpliedVol(marketPrice float64, c option.Contract) (float64, error) {
	res, err := IVSolver{}.Solve(marketPrice, c)
	if err != nil {
		return 0, err
	}
	return res.Sigma, nil
}

// Solve runs Newton-Raphson from the initial guess until the model price is
// within Tol of marketPrice. The Sigma field of c is a placeholder, not the
// unknown; it is ignored.
//
// Failure modes, each surfaced before any iteration where possible:
// option.ErrInvalidInput for structural violations (including marketPrice <= 0
// and T = 0, where no volatility is recoverable), ErrArbitrageViolation for a
// market price below intrinsic, ErrDegenerateVega when the derivative
// collapses mid-iteration, and *ConvergenceError on budget exhaustion. On
// failure mid-iteration the returned Result still carries the last state.
func (s IVSolver) Solve(marketPrice float64, c option.Contract) (Result, error) {
	guess := s.InitialGuess
	if guess == 0 {
		guess = DefaultInitialGuess
	}
	tol := s.Tol
	if tol == 0 {
		tol = DefaultTol
	}
	maxIter := s.MaxIter
	if maxIter == 0 {
		maxIter = DefaultMaxIter
	}

	probe := c
	probe.Sigma = guess
	if err := probe.Validate(); err != nil {
		return Result{}, err
	}
	if marketPrice <= 0 {
		return Result{}, fmt.Errorf("%w: market price must be positive, got %v", option.ErrInvalidInput, marketPrice)
	}
	if intrinsic := c.Intrinsic(); marketPrice < intrinsic {
		return Result{}, fmt.Errorf("%w: market price %.4f < intrinsic value %.4f",
			ErrArbitrageViolation, marketPrice, intrinsic)
	}
	if c.T == 0 {
		return Result{}, fmt.Errorf("%w: cannot solve for implied volatility at expiry (T=0)", option.ErrInvalidInput)
	}

	sigma := guess
	clamped := false
	var residual float64
	for i := 0; i < maxIter; i++ {
		trial := c
		trial.Sigma = sigma
		modelPrice, err := Price(trial)
		if err != nil {
			return Result{Sigma: sigma, Iterations: i, Residual: residual, Clamped: clamped},
				fmt.Errorf("blackscholes: implied volatility iteration %d: %w", i, err)
		}

		vega := rawVega(c.S, c.K, c.R, sigma, c.T)
		residual = modelPrice - marketPrice
		if vega < vegaMin {
			return Result{Sigma: sigma, Iterations: i, Residual: residual, Clamped: clamped},
				fmt.Errorf("blackscholes: implied volatility iteration %d: %w (sigma %.6f, vega %.3g)",
					i, ErrDegenerateVega, sigma, vega)
		}

		if math.Abs(residual) < tol {
			return Result{Sigma: sigma, Iterations: i, Residual: residual, Clamped: clamped}, nil
		}

		next := sigma - residual/vega
		if next < sigmaMin {
			next = sigmaMin
			clamped = true
		} else if next > sigmaMax {
			next = sigmaMax
			clamped = true
		}
		sigma = next
	}

	res := Result{Sigma: sigma, Iterations: maxIter, Residual: residual, Clamped: clamped}
	return res, &ConvergenceError{Sigma: sigma, Residual: residual, Iterations: maxIter}
}
