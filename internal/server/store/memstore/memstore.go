// Package memstore is the in-memory Store backend, used by tests and for
// running without persistence. Records are kept as marshaled JSON so reads
// return copies, never aliases of stored values.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/upcheck/internal/server/store"
)

type MemStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func New() *MemStore {
	return &MemStore{data: make(map[string]map[string][]byte)}
}

func (s *MemStore) Create(ctx context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.data[collection]
	if !ok {
		c = make(map[string][]byte)
		s.data[collection] = c
	}
	if _, ok := c[id]; ok {
		return store.ErrAlreadyExists
	}
	c[id] = raw
	return nil
}

func (s *MemStore) Read(ctx context.Context, collection, id string, out any) error {
	s.mu.RLock()
	raw, ok := s.data[collection][id]
	s.mu.RUnlock()

	if !ok {
		return store.ErrNotFound
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	return nil
}

func (s *MemStore) Update(ctx context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.data[collection]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := c[id]; !ok {
		return store.ErrNotFound
	}
	c[id] = raw
	return nil
}

func (s *MemStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.data[collection]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := c[id]; !ok {
		return store.ErrNotFound
	}
	delete(c, id)
	return nil
}
