package session_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/quibblegames/twentyq/backend/internal/model/game"
	"github.com/quibblegames/twentyq/backend/internal/session"
	"github.com/quibblegames/twentyq/backend/internal/store"
)

func newBridge() (*session.Bridge, *store.MemoryStore) {
	docs := store.NewMemory()
	return session.NewBridge(session.NewCache(0), docs), docs
}

func TestRehydrateCompactedDocument(t *testing.T) {
	bridge, docs := newBridge()
	ctx := context.Background()

	history := []game.ChatMessage{
		{Role: game.RoleModel, Content: json.RawMessage(`{"type":"answer","content":"Yes."}`)},
	}
	data, err := json.Marshal(map[string]any{"s": "Zelda", "h": history, "q": 1, "uh": true})
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	raw, err := json.Marshal(session.Document{
		Kind:      game.KindPlayer,
		Data:      data,
		UpdatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	if err := docs.Set(ctx, store.CollectionSessions, "test-session-id", raw, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	loaded, ok, err := bridge.GetOrLoad(ctx, "test-session-id")
	if err != nil {
		t.Fatalf("GetOrLoad err: %v", err)
	}
	if !ok {
		t.Fatal("expected session to load from durable store")
	}

	ps, ok := loaded.(*game.PlayerSession)
	if !ok {
		t.Fatalf("expected player session, got %T", loaded)
	}
	if ps.Secret != "Zelda" || !ps.UsedHint || ps.QuestionCount != 1 {
		t.Fatalf("rehydrated session mismatch: %+v", ps)
	}
	if len(ps.History) != 2 {
		t.Fatalf("expected synthesized turn plus stored turn, got %d", len(ps.History))
	}
	if !strings.Contains(ps.History[0].Text(), "The secret game is Zelda") {
		t.Fatalf("first turn should disclose the secret: %q", ps.History[0].Text())
	}

	// The load must have filled the cache.
	if _, ok := bridge.Cached("test-session-id"); !ok {
		t.Fatal("loaded session should be cached")
	}
}

func TestGetOrLoadAbsent(t *testing.T) {
	bridge, _ := newBridge()

	_, ok, err := bridge.GetOrLoad(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetOrLoad err: %v", err)
	}
	if ok {
		t.Fatal("expected absent session")
	}
}

func TestGetOrLoadPrefersCache(t *testing.T) {
	bridge, _ := newBridge()
	ctx := context.Background()

	ps := game.NewPlayerSession("Hades")
	if err := bridge.Persist(ctx, "id-1", ps); err != nil {
		t.Fatalf("Persist err: %v", err)
	}

	loaded, ok, err := bridge.GetOrLoad(ctx, "id-1")
	if err != nil {
		t.Fatalf("GetOrLoad err: %v", err)
	}
	if !ok {
		t.Fatal("expected cached session")
	}
	if loaded.(*game.PlayerSession) != ps {
		t.Fatal("cache hit should return the live object, not a decoded copy")
	}
}

func TestPersistSurvivesCacheReset(t *testing.T) {
	bridge, _ := newBridge()
	ctx := context.Background()

	ps := game.NewPlayerSession("Factorio")
	ps.QuestionCount = 5
	ps.UsedHint = true
	if err := bridge.Persist(ctx, "id-2", ps); err != nil {
		t.Fatalf("Persist err: %v", err)
	}

	bridge.Reset()
	if _, ok := bridge.Cached("id-2"); ok {
		t.Fatal("cache should be empty after reset")
	}

	loaded, ok, err := bridge.GetOrLoad(ctx, "id-2")
	if err != nil {
		t.Fatalf("GetOrLoad err: %v", err)
	}
	if !ok {
		t.Fatal("expected session to reload from durable store")
	}
	got := loaded.(*game.PlayerSession)
	if got.Secret != "Factorio" || got.QuestionCount != 5 || !got.UsedHint {
		t.Fatalf("reloaded session mismatch: %+v", got)
	}
}
