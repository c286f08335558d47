package circuits

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
)

// MaxBruteForceRange caps RangeCheckCircuit: the constraint count grows
// linearly with the range, so past a few hundred values the decomposed
// variant is the right tool.
const MaxBruteForceRange = 256

// RangeCheckCircuit proves that the private Value lies in [0, Range) by
// constraining the product
//
//	v * (v-1) * (v-2) * ... * (v-(Range-1)) == 0
//
// which vanishes exactly on the range members.
type RangeCheckCircuit struct {
	Value frontend.Variable

	Range int
}

func (c *RangeCheckCircuit) Define(api frontend.API) error {
	if c.Range < 2 {
		return fmt.Errorf("rangecheck: range must be >= 2, got %d", c.Range)
	}
	if c.Range > MaxBruteForceRange {
		return fmt.Errorf("rangecheck: range %d exceeds brute-force cap %d", c.Range, MaxBruteForceRange)
	}

	acc := c.Value
	for i := 1; i < c.Range; i++ {
		acc = api.Mul(acc, api.Sub(c.Value, i))
	}
	api.AssertIsEqual(acc, 0)
	return nil
}
