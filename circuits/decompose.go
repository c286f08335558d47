package circuits

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/lookup/logderivlookup"
)

// MaxLimbBits caps the lookup table at 256 entries.
const MaxLimbBits = 8

// DecomposedRangeCheckCircuit proves that the private Value lies in
// [0, 2^(LimbBits*len(Limbs))). The prover supplies the little-endian
// LimbBits-wide limbs of Value as witness; the circuit checks each limb
// against a lookup table holding [0, 2^LimbBits) and constrains the weighted
// recomposition to equal Value. A limb outside the table makes the lookup
// argument unsatisfiable.
type DecomposedRangeCheckCircuit struct {
	Value frontend.Variable
	Limbs []frontend.Variable

	LimbBits int
}

func (c *DecomposedRangeCheckCircuit) Define(api frontend.API) error {
	if c.LimbBits < 1 || c.LimbBits > MaxLimbBits {
		return fmt.Errorf("rangecheck: limb width %d out of range [1,%d]", c.LimbBits, MaxLimbBits)
	}
	if len(c.Limbs) == 0 {
		return fmt.Errorf("rangecheck: no limbs")
	}
	// Past 64 bits the weighted recomposition wraps modulo the field and
	// distinct limb vectors alias.
	if c.LimbBits*len(c.Limbs) > 64 {
		return fmt.Errorf("rangecheck: %d limbs of %d bits exceed 64 bits", len(c.Limbs), c.LimbBits)
	}

	// Identity table over [0, 2^LimbBits). Looking a limb up both bounds it
	// by the table size and pins the returned entry to the limb itself.
	table := logderivlookup.New(api)
	for i := 0; i < 1<<c.LimbBits; i++ {
		table.Insert(i)
	}
	entries := table.Lookup(c.Limbs...)

	acc := frontend.Variable(0)
	coeff := big.NewInt(1)
	for i, limb := range c.Limbs {
		api.AssertIsEqual(entries[i], limb)
		acc = api.Add(acc, api.Mul(limb, coeff))
		coeff = new(big.Int).Lsh(coeff, uint(c.LimbBits))
	}
	api.AssertIsEqual(acc, c.Value)
	return nil
}
