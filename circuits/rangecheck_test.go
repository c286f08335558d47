package circuits

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"
)

func TestRangeCheckCircuit(t *testing.T) {
	assert := test.NewAssert(t)

	assert.CheckCircuit(
		&RangeCheckCircuit{Range: 10},
		test.WithValidAssignment(&RangeCheckCircuit{Range: 10, Value: 0}),
		test.WithValidAssignment(&RangeCheckCircuit{Range: 10, Value: 5}),
		test.WithValidAssignment(&RangeCheckCircuit{Range: 10, Value: 9}),
		test.WithInvalidAssignment(&RangeCheckCircuit{Range: 10, Value: 10}),
		test.WithInvalidAssignment(&RangeCheckCircuit{Range: 10, Value: 11}),
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.PLONK, backend.GROTH16),
	)
}

func TestRangeCheckCircuitRejectsBadRange(t *testing.T) {
	assert := test.NewAssert(t)

	err := test.IsSolved(&RangeCheckCircuit{Range: 1},
		&RangeCheckCircuit{Range: 1, Value: 0},
		ecc.BN254.ScalarField())
	assert.Error(err)

	err = test.IsSolved(&RangeCheckCircuit{Range: MaxBruteForceRange + 1},
		&RangeCheckCircuit{Range: MaxBruteForceRange + 1, Value: 0},
		ecc.BN254.ScalarField())
	assert.Error(err)
}
