// Package config implements the circuitlab workbench configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/zk-learning-group/circuitlab/circuits"
)

const (
	defaultDataDir  = "data"
	defaultCurve    = "bn254"
	defaultBackend  = "plonk"
	defaultLogLevel = "info"
)

// Fibonacci holds the parameters of the Fibonacci exercises.
type Fibonacci struct {
	// Rounds is the number of additive steps.
	Rounds int

	// First and Second seed the recurrence.
	First  int64
	Second int64
}

func (cfg *Fibonacci) validate() error {
	if cfg.Rounds < 1 {
		return fmt.Errorf("config: Fibonacci.Rounds must be >= 1, got %d", cfg.Rounds)
	}
	if cfg.First < 0 || cfg.Second < 0 {
		return fmt.Errorf("config: Fibonacci seeds must be non-negative")
	}
	return nil
}

// RangeCheck holds the parameters of the brute-force range check exercise.
type RangeCheck struct {
	// Range bounds the value: the circuit proves Value in [0, Range).
	Range int

	// Value is the witness proved to be in range.
	Value int64
}

func (cfg *RangeCheck) validate() error {
	if cfg.Range < 2 || cfg.Range > circuits.MaxBruteForceRange {
		return fmt.Errorf("config: RangeCheck.Range must be in [2,%d], got %d", circuits.MaxBruteForceRange, cfg.Range)
	}
	if cfg.Value < 0 || cfg.Value >= int64(cfg.Range) {
		return fmt.Errorf("config: RangeCheck.Value %d outside [0,%d)", cfg.Value, cfg.Range)
	}
	return nil
}

// Decompose holds the parameters of the decomposed range check exercise.
type Decompose struct {
	// LimbBits is the bit width of each limb.
	LimbBits int

	// LimbCount is the number of limbs; the proved range is
	// [0, 2^(LimbBits*LimbCount)).
	LimbCount int

	// Value is the witness proved to be in range.
	Value uint64
}

func (cfg *Decompose) validate() error {
	if cfg.LimbBits < 1 || cfg.LimbBits > circuits.MaxLimbBits {
		return fmt.Errorf("config: Decompose.LimbBits must be in [1,%d], got %d", circuits.MaxLimbBits, cfg.LimbBits)
	}
	if cfg.LimbCount < 1 || cfg.LimbBits*cfg.LimbCount > 64 {
		return fmt.Errorf("config: Decompose limbs must cover at most 64 bits")
	}
	if bits := cfg.LimbBits * cfg.LimbCount; bits < 64 && cfg.Value>>bits != 0 {
		return fmt.Errorf("config: Decompose.Value %d does not fit in %d bits", cfg.Value, bits)
	}
	return nil
}

// Config is the top level workbench configuration.
type Config struct {
	// DataDir is where key caches and the artifact store live.
	DataDir string

	// Curve selects the proving curve.
	Curve string

	// Backend selects the proof system, "plonk" or "groth16".
	Backend string

	// LogLevel is a zerolog level string.
	LogLevel string

	Fibonacci  Fibonacci
	RangeCheck RangeCheck
	Decompose  Decompose
}

// FixupAndValidate applies defaults to config entries and validates the
// supplied config.
func (c *Config) FixupAndValidate() error {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir
	}
	if c.Curve == "" {
		c.Curve = defaultCurve
	}
	if c.Backend == "" {
		c.Backend = defaultBackend
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}

	switch strings.ToLower(c.Backend) {
	case "plonk", "groth16":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}

	if c.Fibonacci == (Fibonacci{}) {
		c.Fibonacci = Fibonacci{Rounds: 8, First: 1, Second: 1}
	}
	if c.RangeCheck == (RangeCheck{}) {
		c.RangeCheck = RangeCheck{Range: 10, Value: 5}
	}
	if c.Decompose == (Decompose{}) {
		c.Decompose = Decompose{LimbBits: 4, LimbCount: 8, Value: 48879}
	}

	if err := c.Fibonacci.validate(); err != nil {
		return err
	}
	if err := c.RangeCheck.validate(); err != nil {
		return err
	}
	return c.Decompose.validate()
}

// Load parses and validates the provided TOML buffer.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses and validates the provided TOML file.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Load(b)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := new(Config)
	if err := cfg.FixupAndValidate(); err != nil {
		panic(err)
	}
	return cfg
}
