package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore implements DocumentStore with an in-memory map, suitable for
// tests and local development without a database file.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]memoryDoc
}

type memoryDoc struct {
	data      json.RawMessage
	expiresAt time.Time
}

// NewMemory returns an empty in-memory document store.
func NewMemory() *MemoryStore {
	return &MemoryStore{docs: make(map[string]memoryDoc)}
}

func memoryKey(collection, id string) string {
	return collection + "/" + id
}

// Get retrieves a live document by collection and id.
func (s *MemoryStore) Get(_ context.Context, collection, id string) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[memoryKey(collection, id)]
	if !ok || !doc.expiresAt.After(time.Now()) {
		return nil, false, nil
	}
	out := make(json.RawMessage, len(doc.data))
	copy(out, doc.data)
	return out, true, nil
}

// Set creates or fully overwrites a document.
func (s *MemoryStore) Set(_ context.Context, collection, id string, doc json.RawMessage, expiresAt time.Time) error {
	stored := make(json.RawMessage, len(doc))
	copy(stored, doc)

	s.mu.Lock()
	s.docs[memoryKey(collection, id)] = memoryDoc{data: stored, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

// DeleteExpired removes documents whose expiry has passed.
func (s *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key, doc := range s.docs {
		if !doc.expiresAt.After(now) {
			delete(s.docs, key)
			removed++
		}
	}
	return removed, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
