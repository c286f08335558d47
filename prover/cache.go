package prover

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/frontend"
)

// The setup cache stores the compiled constraint system, proving key and
// verifying key back to back in a single file per circuit/curve/backend/shape
// tuple. Loading reads them in the same order.

// shapeID fingerprints the circuit's compile-time shape (parameter fields,
// limb counts) so that cached setup material is not reused when the exercise
// parameters change.
func shapeID(circuit frontend.Circuit) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%T %+v", circuit, circuit)))
	return hex.EncodeToString(sum[:4])
}

func (p *Pipeline) cachePath() string {
	return filepath.Join(p.cacheDir, fmt.Sprintf("%s-%s-%s-%s.cache", p.name, p.curve, p.backend, p.shape))
}

func (p *Pipeline) saveCache() error {
	if p.cacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(p.cacheDir, 0o700); err != nil {
		return err
	}

	f, err := os.Create(p.cachePath())
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := p.ccs.WriteTo(f); err != nil {
		return err
	}
	switch p.backend {
	case BackendPlonk:
		if _, err := p.plonkPK.WriteTo(f); err != nil {
			return err
		}
		_, err = p.plonkVK.WriteTo(f)
	case BackendGroth16:
		if _, err := p.g16PK.WriteTo(f); err != nil {
			return err
		}
		_, err = p.g16VK.WriteTo(f)
	}
	return err
}

// loadCache returns (true, nil) on a cache hit, (false, nil) when no cache
// file exists, and (false, err) when one exists but cannot be read.
func (p *Pipeline) loadCache() (bool, error) {
	if p.cacheDir == "" {
		return false, nil
	}

	f, err := os.Open(p.cachePath())
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	defer f.Close()

	switch p.backend {
	case BackendPlonk:
		ccs := plonk.NewCS(p.curve)
		if _, err := ccs.ReadFrom(f); err != nil {
			return false, fmt.Errorf("constraint system: %w", err)
		}
		pk := plonk.NewProvingKey(p.curve)
		if _, err := pk.ReadFrom(f); err != nil {
			return false, fmt.Errorf("proving key: %w", err)
		}
		vk := plonk.NewVerifyingKey(p.curve)
		if _, err := vk.ReadFrom(f); err != nil {
			return false, fmt.Errorf("verifying key: %w", err)
		}
		p.ccs, p.plonkPK, p.plonkVK = ccs, pk, vk
	case BackendGroth16:
		ccs := groth16.NewCS(p.curve)
		if _, err := ccs.ReadFrom(f); err != nil {
			return false, fmt.Errorf("constraint system: %w", err)
		}
		pk := groth16.NewProvingKey(p.curve)
		if _, err := pk.ReadFrom(f); err != nil {
			return false, fmt.Errorf("proving key: %w", err)
		}
		vk := groth16.NewVerifyingKey(p.curve)
		if _, err := vk.ReadFrom(f); err != nil {
			return false, fmt.Errorf("verifying key: %w", err)
		}
		p.ccs, p.g16PK, p.g16VK = ccs, pk, vk
	default:
		return false, fmt.Errorf("unknown backend %q", p.backend)
	}
	return true, nil
}
