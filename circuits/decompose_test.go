package circuits

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"

	"github.com/zk-learning-group/circuitlab/utils"
)

func decomposedAssignment(t *testing.T, value uint64, limbBits, limbCount int) *DecomposedRangeCheckCircuit {
	t.Helper()
	limbs, err := utils.Decompose(value, limbBits, limbCount)
	if err != nil {
		t.Fatal(err)
	}
	a := &DecomposedRangeCheckCircuit{
		Value:    value,
		Limbs:    make([]frontend.Variable, limbCount),
		LimbBits: limbBits,
	}
	for i, l := range limbs {
		a.Limbs[i] = l
	}
	return a
}

func TestDecomposedRangeCheckCircuit(t *testing.T) {
	assert := test.NewAssert(t)

	// 3-bit limbs, 4 limbs: range [0, 2^12)
	circuit := &DecomposedRangeCheckCircuit{
		Limbs:    make([]frontend.Variable, 4),
		LimbBits: 3,
	}

	// 371 = 0b101_110_011 decomposes into limbs 3, 6, 5, 0
	assert.CheckCircuit(circuit,
		test.WithValidAssignment(decomposedAssignment(t, 371, 3, 4)),
		test.WithValidAssignment(decomposedAssignment(t, 0, 3, 4)),
		test.WithValidAssignment(decomposedAssignment(t, 1<<12-1, 3, 4)),
		// limb 8 is outside the 3-bit table even though the recomposition holds
		test.WithInvalidAssignment(&DecomposedRangeCheckCircuit{
			Value:    1 << 12,
			Limbs:    []frontend.Variable{0, 0, 0, 8},
			LimbBits: 3,
		}),
		// in-range limbs that do not recompose to the value
		test.WithInvalidAssignment(&DecomposedRangeCheckCircuit{
			Value:    371,
			Limbs:    []frontend.Variable{4, 6, 5, 0},
			LimbBits: 3,
		}),
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.PLONK, backend.GROTH16),
	)
}

func TestDecomposedRangeCheckRejectsBadParams(t *testing.T) {
	assert := test.NewAssert(t)

	err := test.IsSolved(
		&DecomposedRangeCheckCircuit{Limbs: make([]frontend.Variable, 4), LimbBits: 0},
		&DecomposedRangeCheckCircuit{Value: 0, Limbs: []frontend.Variable{0, 0, 0, 0}, LimbBits: 0},
		ecc.BN254.ScalarField())
	assert.Error(err)

	err = test.IsSolved(
		&DecomposedRangeCheckCircuit{LimbBits: 3},
		&DecomposedRangeCheckCircuit{Value: 0, LimbBits: 3},
		ecc.BN254.ScalarField())
	assert.Error(err)
}

func TestDecomposedRangeCheckRejectsOversizedWidth(t *testing.T) {
	assert := test.NewAssert(t)

	// 33 limbs of 8 bits is 264 bits, past the field size
	assignment := &DecomposedRangeCheckCircuit{
		Value:    0,
		Limbs:    make([]frontend.Variable, 33),
		LimbBits: 8,
	}
	for i := range assignment.Limbs {
		assignment.Limbs[i] = 0
	}
	err := test.IsSolved(
		&DecomposedRangeCheckCircuit{Limbs: make([]frontend.Variable, 33), LimbBits: 8},
		assignment,
		ecc.BN254.ScalarField())
	assert.Error(err)
}
