package prover

import (
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Artifact bundles a proof with the public witness it verifies against and
// enough metadata to route it back to the right pipeline. Proof and witness
// use their gnark-native serialization; the bundle itself is CBOR.
type Artifact struct {
	Name          string    `cbor:"name"`
	Curve         string    `cbor:"curve"`
	Backend       string    `cbor:"backend"`
	CreatedAt     time.Time `cbor:"created_at"`
	Proof         []byte    `cbor:"proof"`
	PublicWitness []byte    `cbor:"public_witness"`
}

// Encode serializes the artifact to its CBOR wire form.
func (a *Artifact) Encode() ([]byte, error) {
	return cbor.Marshal(a)
}

// DecodeArtifact parses an artifact from its CBOR wire form.
func DecodeArtifact(b []byte) (*Artifact, error) {
	a := new(Artifact)
	if err := cbor.Unmarshal(b, a); err != nil {
		return nil, err
	}
	return a, nil
}
