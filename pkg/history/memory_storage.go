package history

import (
	"context"
	"slices"
	"sync"
)

// MemoryStorage keeps records in process memory.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string][]Record
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string][]Record),
	}
}

func (s *MemoryStorage) Store(ctx context.Context, rec Record) error {
	if err := rec.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.EntityID] = append(s.records[rec.EntityID], rec)
	return nil
}

func (s *MemoryStorage) List(ctx context.Context, entityID string, limit int) ([]Record, error) {
	if entityID == "" {
		return nil, ErrEmptyEntityID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.records[entityID]
	n := len(stored)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]Record, 0, n)
	for i := len(stored) - 1; i >= len(stored)-n; i-- {
		rec := stored[i]
		rec.Actions = slices.Clone(rec.Actions)
		out = append(out, rec)
	}
	return out, nil
}
