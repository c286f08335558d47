// Package lesson binds the exercise circuits to concrete workbench
// parameters and runs them end to end.
package lesson

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/zk-learning-group/circuitlab/circuits"
	"github.com/zk-learning-group/circuitlab/config"
	"github.com/zk-learning-group/circuitlab/utils"
)

// Exercise describes one lecture exercise: how to build its circuit shape
// from the config, a witness that satisfies it, and (when the exercise has a
// useful negative demonstration) a witness that must be rejected.
type Exercise struct {
	Name        string
	Description string

	Circuit    func(cfg *config.Config) frontend.Circuit
	Assignment func(cfg *config.Config, field *big.Int) (frontend.Circuit, error)
	Invalid    func(cfg *config.Config, field *big.Int) (frontend.Circuit, error)
}

// All returns the exercises in lecture order.
func All() []Exercise {
	return []Exercise{
		{
			Name:        "fibonacci",
			Description: "additive recurrence with public seeds and result",
			Circuit: func(cfg *config.Config) frontend.Circuit {
				return &circuits.FibonacciCircuit{Rounds: cfg.Fibonacci.Rounds}
			},
			Assignment: func(cfg *config.Config, field *big.Int) (frontend.Circuit, error) {
				f := cfg.Fibonacci
				result := utils.Fibonacci(big.NewInt(f.First), big.NewInt(f.Second), f.Rounds, field)
				return &circuits.FibonacciCircuit{
					Rounds: f.Rounds,
					First:  f.First,
					Second: f.Second,
					Result: result,
				}, nil
			},
			Invalid: func(cfg *config.Config, field *big.Int) (frontend.Circuit, error) {
				f := cfg.Fibonacci
				result := utils.Fibonacci(big.NewInt(f.First), big.NewInt(f.Second), f.Rounds, field)
				wrong := new(big.Int).Add(result, big.NewInt(1))
				return &circuits.FibonacciCircuit{
					Rounds: f.Rounds,
					First:  f.First,
					Second: f.Second,
					Result: wrong,
				}, nil
			},
		},
		{
			Name:        "fibonacci-skewed",
			Description: "a+2b recurrence with private seeds",
			Circuit: func(cfg *config.Config) frontend.Circuit {
				return &circuits.SkewedFibonacciCircuit{Rounds: cfg.Fibonacci.Rounds}
			},
			Assignment: func(cfg *config.Config, field *big.Int) (frontend.Circuit, error) {
				f := cfg.Fibonacci
				result := utils.SkewedFibonacci(big.NewInt(f.First), big.NewInt(f.Second), f.Rounds, field)
				return &circuits.SkewedFibonacciCircuit{
					Rounds: f.Rounds,
					First:  f.First,
					Second: f.Second,
					Result: result,
				}, nil
			},
			Invalid: func(cfg *config.Config, field *big.Int) (frontend.Circuit, error) {
				f := cfg.Fibonacci
				result := utils.SkewedFibonacci(big.NewInt(f.First), big.NewInt(f.Second), f.Rounds, field)
				wrong := new(big.Int).Add(result, big.NewInt(1))
				return &circuits.SkewedFibonacciCircuit{
					Rounds: f.Rounds,
					First:  f.First,
					Second: f.Second,
					Result: wrong,
				}, nil
			},
		},
		{
			Name:        "range-check",
			Description: "brute-force polynomial range check",
			Circuit: func(cfg *config.Config) frontend.Circuit {
				return &circuits.RangeCheckCircuit{Range: cfg.RangeCheck.Range}
			},
			Assignment: func(cfg *config.Config, _ *big.Int) (frontend.Circuit, error) {
				return &circuits.RangeCheckCircuit{
					Range: cfg.RangeCheck.Range,
					Value: cfg.RangeCheck.Value,
				}, nil
			},
			Invalid: func(cfg *config.Config, _ *big.Int) (frontend.Circuit, error) {
				// first value past the range boundary
				return &circuits.RangeCheckCircuit{
					Range: cfg.RangeCheck.Range,
					Value: cfg.RangeCheck.Range,
				}, nil
			},
		},
		{
			Name:        "decomposed-range-check",
			Description: "range check by limb decomposition and lookup table",
			Circuit: func(cfg *config.Config) frontend.Circuit {
				return &circuits.DecomposedRangeCheckCircuit{
					Limbs:    make([]frontend.Variable, cfg.Decompose.LimbCount),
					LimbBits: cfg.Decompose.LimbBits,
				}
			},
			Assignment: func(cfg *config.Config, _ *big.Int) (frontend.Circuit, error) {
				d := cfg.Decompose
				limbs, err := utils.Decompose(d.Value, d.LimbBits, d.LimbCount)
				if err != nil {
					return nil, err
				}
				a := &circuits.DecomposedRangeCheckCircuit{
					Value:    d.Value,
					Limbs:    make([]frontend.Variable, d.LimbCount),
					LimbBits: d.LimbBits,
				}
				for i, l := range limbs {
					a.Limbs[i] = l
				}
				return a, nil
			},
			Invalid: func(cfg *config.Config, _ *big.Int) (frontend.Circuit, error) {
				// one limb past the lookup table; the recomposition still
				// holds so only the lookup argument can catch it
				d := cfg.Decompose
				a := &circuits.DecomposedRangeCheckCircuit{
					Value:    uint64(1) << d.LimbBits,
					Limbs:    make([]frontend.Variable, d.LimbCount),
					LimbBits: d.LimbBits,
				}
				a.Limbs[0] = uint64(1) << d.LimbBits
				for i := 1; i < d.LimbCount; i++ {
					a.Limbs[i] = 0
				}
				return a, nil
			},
		},
	}
}

// ByName returns the named exercise.
func ByName(name string) (Exercise, error) {
	for _, ex := range All() {
		if ex.Name == name {
			return ex, nil
		}
	}
	return Exercise{}, fmt.Errorf("lesson: unknown exercise %q", name)
}
