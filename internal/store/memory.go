package store

import (
	"sync"

	"vkrishnan/ledger-match/internal/models"
)

// MemoryLearnedStore is an in-memory learned-mapping store, used in tests
// and as a session cache mirroring the durable store.
type MemoryLearnedStore struct {
	mu      sync.RWMutex
	entries map[string]models.LearnedMapping
}

// NewMemoryLearnedStore creates an empty in-memory store, optionally
// seeded with existing entries.
func NewMemoryLearnedStore(seed map[string]models.LearnedMapping) *MemoryLearnedStore {
	entries := make(map[string]models.LearnedMapping, len(seed))
	for key, entry := range seed {
		entries[key] = entry
	}
	return &MemoryLearnedStore{entries: entries}
}

func (s *MemoryLearnedStore) Get(key string) (models.LearnedMapping, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	return entry, ok, nil
}

func (s *MemoryLearnedStore) Put(key string, entry models.LearnedMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return nil
}

func (s *MemoryLearnedStore) All() (map[string]models.LearnedMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.LearnedMapping, len(s.entries))
	for key, entry := range s.entries {
		out[key] = entry
	}
	return out, nil
}
