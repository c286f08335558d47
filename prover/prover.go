// Package prover drives the compile, setup, prove and verify pipeline for
// circuitlab exercises. Setup material (constraint system, proving key,
// verifying key) is cached on disk so repeated runs skip the expensive
// compile and setup phases.
package prover

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test/unsafekzg"
	"github.com/rs/zerolog"
)

// Backend selects the proof system.
type Backend string

const (
	BackendPlonk   Backend = "plonk"
	BackendGroth16 Backend = "groth16"
)

// BackendFromString parses a backend name.
func BackendFromString(s string) (Backend, error) {
	switch Backend(strings.ToLower(s)) {
	case BackendPlonk:
		return BackendPlonk, nil
	case BackendGroth16:
		return BackendGroth16, nil
	default:
		return "", fmt.Errorf("prover: unknown backend %q", s)
	}
}

// CurveFromString parses a curve name.
func CurveFromString(s string) (ecc.ID, error) {
	for _, id := range ecc.Implemented() {
		if strings.EqualFold(s, id.String()) {
			return id, nil
		}
	}
	return ecc.UNKNOWN, fmt.Errorf("prover: unknown curve %q", s)
}

// Pipeline owns the proving lifecycle of a single circuit on a fixed curve
// and backend. It is not safe for concurrent use.
type Pipeline struct {
	name     string
	curve    ecc.ID
	backend  Backend
	cacheDir string
	shape    string
	log      zerolog.Logger

	ccs constraint.ConstraintSystem

	plonkPK plonk.ProvingKey
	plonkVK plonk.VerifyingKey
	g16PK   groth16.ProvingKey
	g16VK   groth16.VerifyingKey
}

// NewPipeline creates a pipeline for the named circuit. The name keys the
// on-disk setup cache and the resulting proof artifacts.
func NewPipeline(name string, curve ecc.ID, backend Backend, cacheDir string, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		name:     name,
		curve:    curve,
		backend:  backend,
		cacheDir: cacheDir,
		log:      log.With().Str("circuit", name).Logger(),
	}
}

// Name returns the circuit name the pipeline was created with.
func (p *Pipeline) Name() string { return p.name }

// ConstraintCount returns the number of constraints of the compiled circuit,
// or 0 before Setup.
func (p *Pipeline) ConstraintCount() int {
	if p.ccs == nil {
		return 0
	}
	return p.ccs.GetNbConstraints()
}

// Setup compiles the circuit and runs the backend setup, or loads both from
// the cache when a previous run left one behind. A corrupt cache entry is
// logged and recompiled over.
func (p *Pipeline) Setup(circuit frontend.Circuit) error {
	if p.ccs != nil {
		return nil
	}
	p.shape = shapeID(circuit)

	if ok, err := p.loadCache(); ok {
		p.log.Debug().Msg("setup material loaded from cache")
		return nil
	} else if err != nil {
		p.log.Warn().Err(err).Msg("setup cache unreadable, recompiling")
	}

	start := time.Now()
	switch p.backend {
	case BackendPlonk:
		ccs, err := frontend.Compile(p.curve.ScalarField(), scs.NewBuilder, circuit)
		if err != nil {
			return fmt.Errorf("prover: compile %s: %w", p.name, err)
		}
		srs, srsLagrange, err := unsafekzg.NewSRS(ccs)
		if err != nil {
			return fmt.Errorf("prover: SRS for %s: %w", p.name, err)
		}
		pk, vk, err := plonk.Setup(ccs, srs, srsLagrange)
		if err != nil {
			return fmt.Errorf("prover: plonk setup %s: %w", p.name, err)
		}
		p.ccs, p.plonkPK, p.plonkVK = ccs, pk, vk
	case BackendGroth16:
		ccs, err := frontend.Compile(p.curve.ScalarField(), r1cs.NewBuilder, circuit)
		if err != nil {
			return fmt.Errorf("prover: compile %s: %w", p.name, err)
		}
		pk, vk, err := groth16.Setup(ccs)
		if err != nil {
			return fmt.Errorf("prover: groth16 setup %s: %w", p.name, err)
		}
		p.ccs, p.g16PK, p.g16VK = ccs, pk, vk
	default:
		return fmt.Errorf("prover: unknown backend %q", p.backend)
	}
	p.log.Info().
		Int("constraints", p.ccs.GetNbConstraints()).
		Dur("elapsed", time.Since(start)).
		Msg("circuit compiled and set up")

	if err := p.saveCache(); err != nil {
		p.log.Warn().Err(err).Msg("failed to save setup cache")
	}
	return nil
}

// Prove builds a full witness from the assignment, generates a proof and
// bundles it with the public witness into an Artifact.
func (p *Pipeline) Prove(assignment frontend.Circuit) (*Artifact, error) {
	if p.ccs == nil {
		return nil, fmt.Errorf("prover: %s: Prove called before Setup", p.name)
	}

	w, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("prover: witness for %s: %w", p.name, err)
	}
	pub, err := w.Public()
	if err != nil {
		return nil, fmt.Errorf("prover: public witness for %s: %w", p.name, err)
	}

	start := time.Now()
	var proofBuf bytes.Buffer
	switch p.backend {
	case BackendPlonk:
		proof, err := plonk.Prove(p.ccs, p.plonkPK, w)
		if err != nil {
			return nil, fmt.Errorf("prover: plonk prove %s: %w", p.name, err)
		}
		if _, err := proof.WriteTo(&proofBuf); err != nil {
			return nil, fmt.Errorf("prover: serialize proof for %s: %w", p.name, err)
		}
	case BackendGroth16:
		proof, err := groth16.Prove(p.ccs, p.g16PK, w)
		if err != nil {
			return nil, fmt.Errorf("prover: groth16 prove %s: %w", p.name, err)
		}
		if _, err := proof.WriteTo(&proofBuf); err != nil {
			return nil, fmt.Errorf("prover: serialize proof for %s: %w", p.name, err)
		}
	default:
		return nil, fmt.Errorf("prover: unknown backend %q", p.backend)
	}

	var pubBuf bytes.Buffer
	if _, err := pub.WriteTo(&pubBuf); err != nil {
		return nil, fmt.Errorf("prover: serialize public witness for %s: %w", p.name, err)
	}

	p.log.Info().
		Int("proof_bytes", proofBuf.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("proof generated")

	return &Artifact{
		Name:          p.name,
		Curve:         p.curve.String(),
		Backend:       string(p.backend),
		CreatedAt:     time.Now().UTC(),
		Proof:         proofBuf.Bytes(),
		PublicWitness: pubBuf.Bytes(),
	}, nil
}

// Verify checks an artifact against the pipeline's verifying key.
func (p *Pipeline) Verify(a *Artifact) error {
	if p.ccs == nil {
		return fmt.Errorf("prover: %s: Verify called before Setup", p.name)
	}
	if a.Name != p.name {
		return fmt.Errorf("prover: artifact is for circuit %q, pipeline is %q", a.Name, p.name)
	}
	if a.Curve != p.curve.String() || a.Backend != string(p.backend) {
		return fmt.Errorf("prover: artifact %s/%s does not match pipeline %s/%s",
			a.Curve, a.Backend, p.curve, p.backend)
	}

	pub, err := witness.New(p.curve.ScalarField())
	if err != nil {
		return fmt.Errorf("prover: new public witness: %w", err)
	}
	if _, err := pub.ReadFrom(bytes.NewReader(a.PublicWitness)); err != nil {
		return fmt.Errorf("prover: decode public witness: %w", err)
	}

	switch p.backend {
	case BackendPlonk:
		proof := plonk.NewProof(p.curve)
		if _, err := proof.ReadFrom(bytes.NewReader(a.Proof)); err != nil {
			return fmt.Errorf("prover: decode proof: %w", err)
		}
		if err := plonk.Verify(proof, p.plonkVK, pub); err != nil {
			return fmt.Errorf("prover: verify %s: %w", p.name, err)
		}
	case BackendGroth16:
		proof := groth16.NewProof(p.curve)
		if _, err := proof.ReadFrom(bytes.NewReader(a.Proof)); err != nil {
			return fmt.Errorf("prover: decode proof: %w", err)
		}
		if err := groth16.Verify(proof, p.g16VK, pub); err != nil {
			return fmt.Errorf("prover: verify %s: %w", p.name, err)
		}
	default:
		return fmt.Errorf("prover: unknown backend %q", p.backend)
	}
	return nil
}
