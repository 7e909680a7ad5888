package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quibblegames/twentyq/backend/internal/model/game"
	"github.com/quibblegames/twentyq/backend/internal/store"
)

// Bridge unifies the in-memory cache and the durable document store into a
// single lookup/persist API. Store errors always propagate: silently losing
// session state would corrupt gameplay, so the boundary layer decides how
// to surface them.
type Bridge struct {
	cache *Cache
	docs  store.DocumentStore
	now   func() time.Time
}

// NewBridge wires a cache and a document store together.
func NewBridge(cache *Cache, docs store.DocumentStore) *Bridge {
	return &Bridge{cache: cache, docs: docs, now: time.Now}
}

// GetOrLoad returns the session for id, checking the cache first and
// falling back to the durable store. A durable hit is decoded and inserted
// into the cache before returning. The second return is false when the
// session exists nowhere.
func (b *Bridge) GetOrLoad(ctx context.Context, id string) (game.Session, bool, error) {
	if s, ok := b.cache.Get(id); ok {
		return s, true, nil
	}

	raw, ok, err := b.docs.Get(ctx, store.CollectionSessions, id)
	if err != nil {
		return nil, false, fmt.Errorf("load session %s: %w", id, err)
	}
	if !ok {
		return nil, false, nil
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, fmt.Errorf("unmarshal session document %s: %w", id, err)
	}
	s, err := Decode(doc)
	if err != nil {
		return nil, false, fmt.Errorf("decode session %s: %w", id, err)
	}

	b.cache.Put(id, s)
	return s, true, nil
}

// Persist encodes the session and fully overwrites its durable document,
// keeping the cache entry in step.
func (b *Bridge) Persist(ctx context.Context, id string, s game.Session) error {
	doc, err := Encode(s, b.now())
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal session document %s: %w", id, err)
	}

	if err := b.docs.Set(ctx, store.CollectionSessions, id, raw, doc.ExpiresAt); err != nil {
		return fmt.Errorf("persist session %s: %w", id, err)
	}
	b.cache.Put(id, s)
	return nil
}

// Cached returns the session for id from the cache only, never touching
// the durable store. Intended for ops and test inspection.
func (b *Bridge) Cached(id string) (game.Session, bool) {
	return b.cache.Get(id)
}

// Reset wipes the cache. Durable documents are untouched.
func (b *Bridge) Reset() {
	b.cache.Clear()
}
