package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps blobs in process memory. Used for local runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	types   map[string]string
	baseURL string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		blobs:   make(map[string][]byte),
		types:   make(map[string]string),
		baseURL: baseURL,
	}
}

// Get returns a copy of the stored blob.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, wrapNotExist(key)
	}
	return append([]byte(nil), data...), nil
}

// Put stores a copy of data.
func (s *MemoryStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = append([]byte(nil), data...)
	s.types[key] = contentType
	return nil
}

// URL returns a memory:// address unless a base URL was configured.
func (s *MemoryStore) URL(key string) string {
	return publicURL(s.baseURL, "memory://blobs", key)
}

// ContentType returns the content type a blob was stored with.
func (s *MemoryStore) ContentType(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types[key]
}

// Len returns the number of stored blobs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
