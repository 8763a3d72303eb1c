package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// JSONStore persists the snapshot as a single JSON document on disk. A file
// lock next to the data file keeps concurrent processes from clobbering each
// other's writes.
type JSONStore struct {
	path string
	lock *flock.Flock
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	if err := s.acquireLock(); err != nil {
		return err
	}
	return s.Save(Snapshot{})
}

// acquireLock takes the inter-process lock on first use.
func (s *JSONStore) acquireLock() error {
	if s.lock != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	lock := flock.New(s.path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire data file lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another ritmo process is using %s", s.path)
	}
	s.lock = lock
	return nil
}

func (s *JSONStore) Load() (Snapshot, error) {
	if err := s.acquireLock(); err != nil {
		return Snapshot{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Never persisted; start from empty defaults.
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("failed to read storage: %w", err)
	}

	return DecodeSnapshot(data)
}

func (s *JSONStore) Save(snap Snapshot) error {
	if err := s.acquireLock(); err != nil {
		return err
	}

	data, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	if s.lock == nil {
		return nil
	}
	err := s.lock.Unlock()
	s.lock = nil
	return err
}

func (s *JSONStore) Path() string {
	return s.path
}
