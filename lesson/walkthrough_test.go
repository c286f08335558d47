package lesson

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/zk-learning-group/circuitlab/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	return cfg
}

func TestByName(t *testing.T) {
	for _, ex := range All() {
		got, err := ByName(ex.Name)
		require.NoError(t, err)
		require.Equal(t, ex.Name, got.Name)
	}

	_, err := ByName("preimage")
	require.Error(t, err)
}

func TestExerciseWitnessesSolve(t *testing.T) {
	cfg := testConfig(t)
	field := ecc.BN254.ScalarField()

	for _, ex := range All() {
		circuit := ex.Circuit(cfg)
		good, err := ex.Assignment(cfg, field)
		require.NoError(t, err, ex.Name)
		require.NoError(t, test.IsSolved(circuit, good, field), ex.Name)

		if ex.Invalid == nil {
			continue
		}
		bad, err := ex.Invalid(cfg, field)
		require.NoError(t, err, ex.Name)
		require.Error(t, test.IsSolved(circuit, bad, field), ex.Name)
	}
}

func TestRunFibonacci(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, Run(cfg, zerolog.Nop(), "fibonacci"))
}

func TestRunUnknownExercise(t *testing.T) {
	cfg := testConfig(t)
	require.Error(t, Run(cfg, zerolog.Nop(), "preimage"))
}

func TestProveVerifyRoundTrip(t *testing.T) {
	cfg := testConfig(t)

	artifact, err := Prove(cfg, zerolog.Nop(), "range-check")
	require.NoError(t, err)
	require.NoError(t, Verify(cfg, zerolog.Nop(), artifact))

	tampered := *artifact
	tampered.Name = "fibonacci"
	require.Error(t, Verify(cfg, zerolog.Nop(), &tampered))
}
