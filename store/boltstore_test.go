package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zk-learning-group/circuitlab/prover"
)

func testArtifact(name string) *prover.Artifact {
	return &prover.Artifact{
		Name:          name,
		Curve:         "bn254",
		Backend:       "plonk",
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
		Proof:         []byte{0x01, 0x02, 0x03},
		PublicWitness: []byte{0x04, 0x05},
	}
}

func TestPutGet(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "artifacts.db"))
	require.NoError(t, err)
	defer s.Close()

	id, err := s.Put(testArtifact("fibonacci"))
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	got, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, "fibonacci", got.Name)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, got.Proof)
}

func TestGetNotFound(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "artifacts.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListOrder(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "artifacts.db"))
	require.NoError(t, err)
	defer s.Close()

	for _, name := range []string{"fibonacci", "range-check", "fibonacci"} {
		_, err := s.Put(testArtifact(name))
		require.NoError(t, err)
	}

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, uint64(1), entries[0].ID)
	require.Equal(t, "range-check", entries[1].Artifact.Name)
	require.Equal(t, uint64(3), entries[2].ID)
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.db")

	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.Put(testArtifact("range-check"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, "range-check", got.Name)
}
