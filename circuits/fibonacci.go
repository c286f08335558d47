package circuits

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
)

// FibonacciCircuit proves that the additive recurrence (a, b) -> (b, a+b)
// seeded with the two public first terms reaches Result after Rounds steps.
// Seeds and result are public, so a verifier learns the whole statement; the
// proof only shows the recurrence was followed.
type FibonacciCircuit struct {
	First  frontend.Variable `gnark:",public"`
	Second frontend.Variable `gnark:",public"`
	Result frontend.Variable `gnark:",public"`

	// Rounds is the number of additive steps, fixed at compile time.
	Rounds int
}

func (c *FibonacciCircuit) Define(api frontend.API) error {
	if c.Rounds < 1 {
		return fmt.Errorf("fibonacci: rounds must be >= 1, got %d", c.Rounds)
	}

	a := c.First
	b := c.Second
	for i := 0; i < c.Rounds; i++ {
		a, b = b, api.Add(a, b)
	}
	api.AssertIsEqual(b, c.Result)
	return nil
}

// SkewedFibonacciCircuit is the modified-gate variant: (a, b) -> (b, a+2b).
// Here the seeds stay private and only the final term is public, proving
// knowledge of seeds that reach Result.
type SkewedFibonacciCircuit struct {
	First  frontend.Variable
	Second frontend.Variable
	Result frontend.Variable `gnark:",public"`

	Rounds int
}

func (c *SkewedFibonacciCircuit) Define(api frontend.API) error {
	if c.Rounds < 1 {
		return fmt.Errorf("fibonacci: rounds must be >= 1, got %d", c.Rounds)
	}

	a := c.First
	b := c.Second
	for i := 0; i < c.Rounds; i++ {
		a, b = b, api.Add(a, b, b)
	}
	api.AssertIsEqual(b, c.Result)
	return nil
}
