// Package store persists proof artifacts with a simple bbolt backend.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/zk-learning-group/circuitlab/prover"
)

const artifactsBucket = "artifacts"

// ErrNotFound is returned by Get for unknown artifact IDs.
var ErrNotFound = errors.New("store: artifact not found")

// Store is a bbolt backed artifact store. Artifacts get a monotonically
// increasing ID on insertion.
type Store struct {
	db *bolt.DB
}

// Entry pairs an artifact with its store ID.
type Entry struct {
	ID       uint64
	Artifact *prover.Artifact
}

// Open opens or creates the store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(artifactsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the backing database.
func (s *Store) Close() error {
	if err := s.db.Sync(); err != nil {
		s.db.Close()
		return fmt.Errorf("store: sync: %w", err)
	}
	return s.db.Close()
}

// Put inserts an artifact and returns its ID.
func (s *Store) Put(a *prover.Artifact) (uint64, error) {
	raw, err := a.Encode()
	if err != nil {
		return 0, fmt.Errorf("store: encode artifact: %w", err)
	}

	var id uint64
	err = s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(artifactsBucket))
		seq, err := bkt.NextSequence()
		if err != nil {
			return err
		}
		id = seq
		var key [8]byte
		binary.BigEndian.PutUint64(key[:], seq)
		return bkt.Put(key[:], raw)
	})
	if err != nil {
		return 0, fmt.Errorf("store: put artifact: %w", err)
	}
	return id, nil
}

// Get returns the artifact with the given ID, or ErrNotFound.
func (s *Store) Get(id uint64) (*prover.Artifact, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		var key [8]byte
		binary.BigEndian.PutUint64(key[:], id)
		v := tx.Bucket([]byte(artifactsBucket)).Get(key[:])
		if v == nil {
			return ErrNotFound
		}
		raw = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	a, err := prover.DecodeArtifact(raw)
	if err != nil {
		return nil, fmt.Errorf("store: decode artifact %d: %w", id, err)
	}
	return a, nil
}

// List returns all stored artifacts in insertion order.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(artifactsBucket)).ForEach(func(k, v []byte) error {
			a, err := prover.DecodeArtifact(v)
			if err != nil {
				return fmt.Errorf("store: decode artifact %d: %w", binary.BigEndian.Uint64(k), err)
			}
			entries = append(entries, Entry{ID: binary.BigEndian.Uint64(k), Artifact: a})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
