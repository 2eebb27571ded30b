package main

import (
	"fmt"
	"log"

	"golang.org/x/exp/rand"

	"github.com/deltafour/optionengine/blackscholes"
	"github.com/deltafour/optionengine/montecarlo"
	"github.com/deltafour/optionengine/option"
)

func main() {
	c := option.Contract{Kind: option.Call, S: 100, K: 100, R: 0.05, Sigma: 0.2, T: 1.0}

	analytic, err := blackscholes.Price(c)
	if err != nil {
		log.Fatalf("bsm price: %s", err)
	}
	fmt.Printf("bsm price: %.4f\n", analytic)

	greeks, err := blackscholes.ComputeGreeks(c)
	if err != nil {
		log.Fatalf("greeks: %s", err)
	}
	fmt.Printf("greeks: %+v\n", greeks)

	res, err := blackscholes.IVSolver{}.Solve(analytic, c)
	if err != nil {
		log.Fatalf("implied vol: %s", err)
	}
	log.Printf("implied vol: %.6f in %d iterations (clamped=%v)", res.Sigma, res.Iterations, res.Clamped)

	mc, stderr, err := montecarlo.PriceStdErr(c, 100, 100000, rand.NewSource(42))
	if err != nil {
		log.Fatalf("mc price: %s", err)
	}
	log.Printf("mc price: %.4f (stderr %.4f)", mc, stderr)

	delta, err := montecarlo.Delta(c, 100, 20000, montecarlo.DefaultBump, 42)
	if err != nil {
		log.Fatalf("mc delta: %s", err)
	}
	log.Printf("mc delta: %.4f (analytic %.4f)", delta, greeks.Delta)
}
