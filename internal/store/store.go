// Package store provides the durable document persistence layer.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// Collections used by the service.
const (
	CollectionSessions = "gameSessions"
	CollectionMetadata = "gameMetadata"
)

// DocumentStore is a key-value document store with per-document expiry.
// Set is a full overwrite; Get never returns documents past their expiry.
type DocumentStore interface {
	// Get retrieves a document by collection and id. The second return is
	// false when the document is absent or expired.
	Get(ctx context.Context, collection, id string) (json.RawMessage, bool, error)

	// Set creates or fully overwrites a document.
	Set(ctx context.Context, collection, id string, doc json.RawMessage, expiresAt time.Time) error

	// DeleteExpired removes documents whose expiry has passed and returns
	// how many were deleted.
	DeleteExpired(ctx context.Context) (int64, error)

	// Close releases the underlying resources.
	Close() error
}
