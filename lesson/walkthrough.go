package lesson

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/consensys/gnark/test"
	"github.com/rs/zerolog"

	"github.com/zk-learning-group/circuitlab/config"
	"github.com/zk-learning-group/circuitlab/prover"
)

// Run walks through the named exercises (all of them when names is empty):
// mock-solve the satisfying witness, demonstrate that the bad witness is
// rejected, then compile, prove and verify for real.
func Run(cfg *config.Config, log zerolog.Logger, names ...string) error {
	exercises, err := selectExercises(names)
	if err != nil {
		return err
	}

	for _, ex := range exercises {
		if err := runOne(cfg, log, ex); err != nil {
			return fmt.Errorf("lesson: %s: %w", ex.Name, err)
		}
	}
	return nil
}

func selectExercises(names []string) ([]Exercise, error) {
	if len(names) == 0 {
		return All(), nil
	}
	exercises := make([]Exercise, 0, len(names))
	for _, name := range names {
		ex, err := ByName(name)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	return exercises, nil
}

func runOne(cfg *config.Config, log zerolog.Logger, ex Exercise) error {
	log = log.With().Str("exercise", ex.Name).Logger()
	log.Info().Msg(ex.Description)

	curve, err := prover.CurveFromString(cfg.Curve)
	if err != nil {
		return err
	}
	backend, err := prover.BackendFromString(cfg.Backend)
	if err != nil {
		return err
	}
	field := curve.ScalarField()

	circuit := ex.Circuit(cfg)
	assignment, err := ex.Assignment(cfg, field)
	if err != nil {
		return err
	}

	// The solver check is the cheap sanity pass: it runs the circuit over
	// concrete values without any proving machinery.
	start := time.Now()
	if err := test.IsSolved(circuit, assignment, field); err != nil {
		return fmt.Errorf("witness does not satisfy circuit: %w", err)
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("witness solves the circuit")

	if ex.Invalid != nil {
		bad, err := ex.Invalid(cfg, field)
		if err != nil {
			return err
		}
		if err := test.IsSolved(circuit, bad, field); err == nil {
			return fmt.Errorf("out-of-relation witness was accepted")
		}
		log.Info().Msg("out-of-relation witness rejected by the solver")
	}

	pipe := prover.NewPipeline(ex.Name, curve, backend, cacheDir(cfg), log)
	if err := pipe.Setup(circuit); err != nil {
		return err
	}
	log.Info().Int("constraints", pipe.ConstraintCount()).Msg("setup done")

	artifact, err := pipe.Prove(assignment)
	if err != nil {
		return err
	}
	start = time.Now()
	if err := pipe.Verify(artifact); err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("proof verified")
	return nil
}

// Prove generates and verifies a proof for the named exercise and returns
// the resulting artifact.
func Prove(cfg *config.Config, log zerolog.Logger, name string) (*prover.Artifact, error) {
	ex, err := ByName(name)
	if err != nil {
		return nil, err
	}
	curve, err := prover.CurveFromString(cfg.Curve)
	if err != nil {
		return nil, err
	}
	backend, err := prover.BackendFromString(cfg.Backend)
	if err != nil {
		return nil, err
	}

	assignment, err := ex.Assignment(cfg, curve.ScalarField())
	if err != nil {
		return nil, err
	}

	pipe := prover.NewPipeline(ex.Name, curve, backend, cacheDir(cfg), log)
	if err := pipe.Setup(ex.Circuit(cfg)); err != nil {
		return nil, err
	}
	return pipe.Prove(assignment)
}

// Verify checks a stored artifact. The exercise circuit is rebuilt from the
// config, so the config must still describe the circuit the artifact was
// proved against; a cached setup makes this cheap.
func Verify(cfg *config.Config, log zerolog.Logger, a *prover.Artifact) error {
	ex, err := ByName(a.Name)
	if err != nil {
		return err
	}
	curve, err := prover.CurveFromString(a.Curve)
	if err != nil {
		return err
	}
	backend, err := prover.BackendFromString(a.Backend)
	if err != nil {
		return err
	}

	pipe := prover.NewPipeline(ex.Name, curve, backend, cacheDir(cfg), log)
	if err := pipe.Setup(ex.Circuit(cfg)); err != nil {
		return err
	}
	return pipe.Verify(a)
}

func cacheDir(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "cache")
}
