package store_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/quibblegames/twentyq/backend/internal/store"
)

func newSQLite(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite err: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	docs := newSQLite(t)
	ctx := context.Background()

	doc := json.RawMessage(`{"kind":"ai","data":{"q":1,"mq":20}}`)
	if err := docs.Set(ctx, "gameSessions", "a", doc, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Set err: %v", err)
	}

	got, ok, err := docs.Get(ctx, "gameSessions", "a")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if !ok {
		t.Fatal("expected document")
	}
	if string(got) != string(doc) {
		t.Fatalf("round trip mismatch: %s", got)
	}
}

func TestSQLiteOverwriteAndExpiry(t *testing.T) {
	docs := newSQLite(t)
	ctx := context.Background()

	if err := docs.Set(ctx, "gameSessions", "a", json.RawMessage(`{"q":1}`), time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	if err := docs.Set(ctx, "gameSessions", "a", json.RawMessage(`{"q":2}`), time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Set overwrite err: %v", err)
	}

	// The overwrite moved the expiry into the past.
	if _, ok, _ := docs.Get(ctx, "gameSessions", "a"); ok {
		t.Fatal("expired document must not be returned")
	}

	removed, err := docs.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired err: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
}

func TestSQLiteAbsent(t *testing.T) {
	docs := newSQLite(t)

	_, ok, err := docs.Get(context.Background(), "gameSessions", "missing")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if ok {
		t.Fatal("expected absent document")
	}
}
