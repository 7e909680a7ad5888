package game_test

import (
	"context"
	"errors"
	"testing"

	model "github.com/quibblegames/twentyq/backend/internal/model/game"
	gamesvc "github.com/quibblegames/twentyq/backend/internal/service/game"
)

func TestGetHintRevealsMetadata(t *testing.T) {
	f := newFixture("Portal 2")
	ctx := context.Background()
	started, _ := f.svc.StartPlayerGame(ctx)

	f.meta.md = model.Metadata{Developer: "Valve", Publisher: "Valve", ReleaseYear: "2011"}

	hint, err := f.svc.GetHint(ctx, started.SessionID, model.HintReleaseYear)
	if err != nil {
		t.Fatalf("GetHint err: %v", err)
	}
	if hint.HintType != model.HintReleaseYear || hint.Hint != "2011" {
		t.Fatalf("unexpected hint: %+v", hint)
	}

	sess, _ := f.svc.GetSession(started.SessionID)
	if !sess.(*model.PlayerSession).UsedHint {
		t.Fatal("hint request must mark the session hint-assisted")
	}
}

func TestGetHintNoDataStillMarksUsage(t *testing.T) {
	f := newFixture("Portal 2")
	ctx := context.Background()
	started, _ := f.svc.StartPlayerGame(ctx)

	// Empty metadata and no special hint either.
	f.gen.specialHint = func(context.Context, string) (string, error) { return "", nil }

	_, err := f.svc.GetHint(ctx, started.SessionID, model.HintDeveloper)
	if !errors.Is(err, gamesvc.ErrNoHintData) {
		t.Fatalf("expected ErrNoHintData, got %v", err)
	}

	// The flag sticks even though nothing was revealed, and it is already
	// durable: a reload from the store sees it.
	f.svc.ClearSessions()
	sess, ok, loadErr := f.bridge.GetOrLoad(ctx, started.SessionID)
	if loadErr != nil || !ok {
		t.Fatalf("reload failed: %v ok=%v", loadErr, ok)
	}
	if !sess.(*model.PlayerSession).UsedHint {
		t.Fatal("hint usage must be persisted before the NoHintData error")
	}
}

func TestGetHintSpecialGeneratedOnce(t *testing.T) {
	f := newFixture("Portal 2")
	ctx := context.Background()
	started, _ := f.svc.StartPlayerGame(ctx)

	calls := 0
	f.gen.specialHint = func(_ context.Context, title string) (string, error) {
		calls++
		if title != "Portal 2" {
			t.Fatalf("special hint should target the secret, got %q", title)
		}
		return "Cake may be involved.", nil
	}

	hint, err := f.svc.GetHint(ctx, started.SessionID, model.HintSpecial)
	if err != nil {
		t.Fatalf("GetHint err: %v", err)
	}
	if hint.Hint != "Cake may be involved." {
		t.Fatalf("unexpected hint %q", hint.Hint)
	}
	if len(f.meta.saved) != 1 {
		t.Fatalf("generated hint should be saved to the metadata cache, saves=%d", len(f.meta.saved))
	}

	// The cached special hint is reused without another generation call.
	if _, err := f.svc.GetHint(ctx, started.SessionID, model.HintSpecial); err != nil {
		t.Fatalf("second GetHint err: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single generation call, got %d", calls)
	}
}

func TestGetHintSpecialGenerationFailureIsSoft(t *testing.T) {
	f := newFixture("Portal 2")
	ctx := context.Background()
	started, _ := f.svc.StartPlayerGame(ctx)

	f.meta.md = model.Metadata{Developer: "Valve"}
	f.gen.specialHint = func(context.Context, string) (string, error) {
		return "", errors.New("model unreachable")
	}

	// The special hint could not be generated, so the filtered list is
	// empty; the request fails with NoHintData rather than the model error.
	_, err := f.svc.GetHint(ctx, started.SessionID, model.HintSpecial)
	if !errors.Is(err, gamesvc.ErrNoHintData) {
		t.Fatalf("expected ErrNoHintData, got %v", err)
	}

	// Other hint types are unaffected.
	hint, err := f.svc.GetHint(ctx, started.SessionID, model.HintDeveloper)
	if err != nil {
		t.Fatalf("GetHint developer err: %v", err)
	}
	if hint.Hint != "Valve" {
		t.Fatalf("unexpected hint %q", hint.Hint)
	}
}

func TestGetHintWrongVariantReportsNotFound(t *testing.T) {
	f := newFixture("Portal 2")
	ctx := context.Background()

	as := &model.AISession{QuestionCount: 1, MaxQuestions: 20}
	if err := f.bridge.Persist(ctx, "ai-session", as); err != nil {
		t.Fatalf("Persist err: %v", err)
	}

	_, err := f.svc.GetHint(ctx, "ai-session", model.HintDeveloper)
	if !errors.Is(err, gamesvc.ErrSessionNotFound) {
		t.Fatalf("hint routes treat wrong-variant sessions as not found, got %v", err)
	}
}

func TestGetHintMissingArguments(t *testing.T) {
	f := newFixture("Portal 2")

	if _, err := f.svc.GetHint(context.Background(), "", model.HintDeveloper); !errors.Is(err, gamesvc.ErrMissingArguments) {
		t.Fatalf("expected ErrMissingArguments, got %v", err)
	}
	if _, err := f.svc.GetHint(context.Background(), "sid", ""); !errors.Is(err, gamesvc.ErrMissingArguments) {
		t.Fatalf("expected ErrMissingArguments for empty hint type, got %v", err)
	}
}
