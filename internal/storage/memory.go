package storage

import (
	"encoding/json"
	"sync"
)

// MemStore is an in-memory Store used in tests. It round-trips values
// through JSON so typed fields behave exactly as with the file-backed
// store. Unavailable simulates a missing storage medium.
type MemStore struct {
	Unavailable bool

	mu   sync.Mutex
	data map[string][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Get decodes the stored JSON value for key into out.
func (s *MemStore) Get(key string, out any) (bool, error) {
	if s.Unavailable {
		return false, nil
	}

	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// Set serializes value as JSON and stores it under key.
func (s *MemStore) Set(key string, value any) bool {
	if s.Unavailable {
		return false
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return false
	}
	s.mu.Lock()
	if s.data == nil {
		s.data = make(map[string][]byte)
	}
	s.data[key] = raw
	s.mu.Unlock()
	return true
}

// Remove deletes the record under key.
func (s *MemStore) Remove(key string) bool {
	if s.Unavailable {
		return false
	}

	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return true
}
