package lead

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store is the persistence collaborator for lead records: append one,
// read all. Records are returned in insertion order.
type Store interface {
	Append(ctx context.Context, record Record) error
	All(ctx context.Context) ([]Record, error)
}

// FileStore keeps the collection as a JSON array on disk, matching the
// data/leads.json layout the dev tooling expects.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the given file path. The file and
// its parent directory are created on first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Append rewrites the collection with the record added.
func (s *FileStore) Append(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}
	records = append(records, record)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create lead store dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode lead store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write lead store: %w", err)
	}
	return nil
}

// All returns every persisted record. A missing file is an empty
// collection, not an error.
func (s *FileStore) All(_ context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) read() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lead store: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode lead store: %w", err)
	}
	return records, nil
}

// MemoryStore implements Store with an in-memory slice, suitable for tests
// and storage-less dev runs.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds the record to the collection.
func (s *MemoryStore) Append(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, record)
	return nil
}

// All returns a copy of the collection in insertion order.
func (s *MemoryStore) All(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Record(nil), s.items...), nil
}
