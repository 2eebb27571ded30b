// Package option defines the vanilla option contract value object and the
// numeric primitives shared by the analytic and Monte Carlo engines.
package option

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput reports a structural precondition violation: non-positive
// spot, strike or volatility, negative time to expiry, or an unrecognized
// option kind at the parse boundary. It is always detected before any
// numerical work begins.
var ErrInvalidInput = errors.New("option: invalid input")

// Kind selects between the two vanilla payoffs.
type Kind int

const (
	Call Kind = iota
	Put
)

func (k Kind) String() string {
	switch k {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts an external option-kind string ("call" or "put",
// case-insensitive) into a Kind. All string input enters through here;
// past this boundary the kind is a closed variant.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "call":
		return Call, nil
	case "put":
		return Put, nil
	}
	return 0, fmt.Errorf(`%w: option kind must be "call" or "put", got %q`, ErrInvalidInput, s)
}

// Contract holds the parameters of one European vanilla option. It is a
// transient value object: constructed per call, never shared or mutated by
// the engines.
type Contract struct {
	Kind  Kind
	S     float64 // spot price of the underlying
	K     float64 // strike price
	R     float64 // risk-free rate, annualized; may be negative
	Sigma float64 // volatility, annualized
	T     float64 // time to expiry in years
}

// Validate checks the structural preconditions common to both engines.
// The rate is unconstrained. Sigma must be positive even at T=0; the T=0
// boundary is handled by the pricers, which bypass sigma entirely.
func (c Contract) Validate() error {
	switch {
	case c.S <= 0:
		return fmt.Errorf("%w: spot price S must be positive, got %v", ErrInvalidInput, c.S)
	case c.K <= 0:
		return fmt.Errorf("%w: strike price K must be positive, got %v", ErrInvalidInput, c.K)
	case c.Sigma <= 0:
		return fmt.Errorf("%w: volatility sigma must be positive, got %v", ErrInvalidInput, c.Sigma)
	case c.T < 0:
		return fmt.Errorf("%w: time to expiry T must be non-negative, got %v", ErrInvalidInput, c.T)
	}
	return nil
}

// Intrinsic returns the value of the contract if it expired immediately.
func (c Contract) Intrinsic() float64 {
	return Intrinsic(c.S, c.K, c.Kind)
}

// Intrinsic returns max(S-K, 0) for a call and max(K-S, 0) for a put.
func Intrinsic(s, k float64, kind Kind) float64 {
	if kind == Call {
		return math.Max(s-k, 0)
	}
	return math.Max(k-s, 0)
}
