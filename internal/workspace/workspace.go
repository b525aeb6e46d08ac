// Package workspace persists the designer state between CLI invocations in a
// single bbolt file.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/goliatone/go-aemdialog/pkg/designer"
)

const (
	bucketName = "aem-dialog-designer"
	stateKey   = "state"

	// envelopeVersion is bumped when the persisted layout changes.
	envelopeVersion = 1
)

var (
	// ErrBucketNotFound reports a workspace file without the designer bucket.
	ErrBucketNotFound = errors.New("workspace: bucket not found")
	// ErrUnsupportedVersion reports a state written by a newer release.
	ErrUnsupportedVersion = errors.New("workspace: unsupported state version")
)

type envelope struct {
	State   designer.State `json:"state"`
	Version int            `json:"version"`
}

// Store is an open workspace file. It is safe for concurrent use; writes are
// serialised by bbolt.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the workspace at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("workspace: %w", err)
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("workspace: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("workspace: init %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the persisted state. An empty workspace yields the zero State.
func (s *Store) Load(ctx context.Context) (designer.State, error) {
	if err := ctx.Err(); err != nil {
		return designer.State{}, err
	}
	var state designer.State
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		state, err = readState(tx)
		return err
	})
	return state, err
}

// Save replaces the persisted state.
func (s *Store) Save(ctx context.Context, state designer.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return writeState(tx, state)
	})
}

// Update loads the state, applies fn and stores the result in one
// transaction. Nothing is written when fn fails.
func (s *Store) Update(ctx context.Context, fn func(designer.State) (designer.State, error)) (designer.State, error) {
	if err := ctx.Err(); err != nil {
		return designer.State{}, err
	}
	var next designer.State
	err := s.db.Update(func(tx *bolt.Tx) error {
		current, err := readState(tx)
		if err != nil {
			return err
		}
		next, err = fn(current)
		if err != nil {
			return err
		}
		return writeState(tx, next)
	})
	if err != nil {
		return designer.State{}, err
	}
	return next, nil
}

// Snapshot opens path read-only, loads the state and closes the file, so a
// long running reader does not hold the write lock. A missing file yields the
// zero State.
func Snapshot(ctx context.Context, path string) (designer.State, error) {
	if err := ctx.Err(); err != nil {
		return designer.State{}, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return designer.State{}, nil
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second, ReadOnly: true})
	if err != nil {
		return designer.State{}, fmt.Errorf("workspace: open %s: %w", path, err)
	}
	defer db.Close()

	var state designer.State
	err = db.View(func(tx *bolt.Tx) error {
		var err error
		state, err = readState(tx)
		return err
	})
	return state, err
}

func readState(tx *bolt.Tx) (designer.State, error) {
	bucket := tx.Bucket([]byte(bucketName))
	if bucket == nil {
		return designer.State{}, nil
	}
	data := bucket.Get([]byte(stateKey))
	if data == nil {
		return designer.State{}, nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return designer.State{}, fmt.Errorf("workspace: decode state: %w", err)
	}
	if env.Version > envelopeVersion {
		return designer.State{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	return env.State, nil
}

func writeState(tx *bolt.Tx, state designer.State) error {
	bucket := tx.Bucket([]byte(bucketName))
	if bucket == nil {
		return ErrBucketNotFound
	}
	data, err := json.Marshal(envelope{State: state, Version: envelopeVersion})
	if err != nil {
		return fmt.Errorf("workspace: encode state: %w", err)
	}
	return bucket.Put([]byte(stateKey), data)
}
