package autosave

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"sync"
)

// Store persists form snapshots under a key.
type Store interface {
	// Save replaces the snapshot stored under key.
	Save(ctx context.Context, key string, values map[string]string) error

	// Load returns the snapshot under key. A missing key is not an error.
	Load(ctx context.Context, key string) (map[string]string, bool, error)

	// Delete removes the snapshot under key.
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps snapshots as encoded JSON in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, key string, values map[string]string) error {
	raw, err := encode(values)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

func (s *MemoryStore) Load(_ context.Context, key string) (map[string]string, bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	values, err := decode(raw)
	if err != nil {
		return nil, false, err
	}
	return values, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Raw returns the encoded snapshot under key.
func (s *MemoryStore) Raw(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[key]
	return raw, ok
}

func encode(values map[string]string) ([]byte, error) {
	if values == nil {
		values = map[string]string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return raw, nil
}

func decode(raw []byte) (map[string]string, error) {
	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return maps.Clone(values), nil
}
