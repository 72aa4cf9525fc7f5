package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"budgetbook/internal/core"
)

// MemoryStore is an in-process document store for tests and throwaway
// sessions. Nothing survives the process.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, name string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(doc))
	copy(cp, doc)
	s.docs[name] = cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, name)
	}
	cp := make([]byte, len(doc))
	copy(cp, doc)
	return cp, nil
}

func (s *MemoryStore) Names(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Close() error { return nil }
