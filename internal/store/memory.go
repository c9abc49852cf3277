package store

import (
	"context"
	"sync"

	"boilerInspector/internal/models"
)

// MemoryStore keeps the history in process memory. It backs tests and
// throwaway sessions.
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.InspectionRecord
}

// NewMemoryStore returns a store seeded with records, newest first.
func NewMemoryStore(records ...models.InspectionRecord) *MemoryStore {
	s := &MemoryStore{}
	for _, r := range records {
		s.records = append(s.records, r.Clone())
	}
	return s
}

func (s *MemoryStore) LoadAll(ctx context.Context) []models.InspectionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.InspectionRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Clone())
	}
	return out
}

func (s *MemoryStore) Append(ctx context.Context, rec models.InspectionRecord) error {
	if err := ctx.Err(); err != nil {
		return persistErr("memory", "append record", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := prepend(s.records, rec)
	if err != nil {
		return persistErr("memory", "append record", err)
	}
	s.records = next
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
