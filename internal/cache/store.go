// Package cache holds the query-result cache shared with the presentation
// layer and the optimistic reconciliation applied around in-flight mutations.
package cache

import "sync"

// Entry is one cached item in a keyed collection. Pending entries carry a
// locally generated temporary id, never a real content hash.
type Entry struct {
	ID        string
	CreatedAt int64 // unix seconds, collections stay chronologically ordered
	Pending   bool
	Value     any
}

// Collection is an ordered cached result set for one cache key.
type Collection []Entry

// Store is a keyed mapping from opaque cache keys to cached collections.
type Store interface {
	// Get returns a snapshot of the collection for key.
	Get(key string) (Collection, bool)
	// Set replaces the collection for key.
	Set(key string, col Collection)
	// Invalidate drops the collection for key.
	Invalidate(key string)
}

// MemoryStore is a mutex-guarded in-memory Store. Reads return copies, so
// concurrent observers always see consistent snapshots.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Collection
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Collection)}
}

func (s *MemoryStore) Get(key string) (Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.data[key]
	if !ok {
		return nil, false
	}
	cp := make(Collection, len(col))
	copy(cp, col)
	return cp, true
}

func (s *MemoryStore) Set(key string, col Collection) {
	cp := make(Collection, len(col))
	copy(cp, col)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = cp
}

func (s *MemoryStore) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}
