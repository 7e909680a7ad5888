package game_test

import (
	"context"
	"errors"

	model "github.com/quibblegames/twentyq/backend/internal/model/game"
	gamesvc "github.com/quibblegames/twentyq/backend/internal/service/game"
	"github.com/quibblegames/twentyq/backend/internal/session"
	"github.com/quibblegames/twentyq/backend/internal/store"
)

var errStubUnset = errors.New("stub not configured")

// stubGenerator implements gamesvc.Generator with per-call hooks so each
// test controls exactly what the model returns.
type stubGenerator struct {
	classify      func(ctx context.Context, secret string, history []model.ChatMessage, input string) (*model.PlayerVerdict, error)
	firstQuestion func(ctx context.Context) (*model.AIMove, error)
	nextMove      func(ctx context.Context, history []model.ChatMessage, answer string, questionsLeft int) (*model.AIMove, error)
	specialHint   func(ctx context.Context, title string) (string, error)
}

func (s *stubGenerator) ClassifyPlayerInput(ctx context.Context, secret string, history []model.ChatMessage, input string) (*model.PlayerVerdict, error) {
	if s.classify == nil {
		return nil, errStubUnset
	}
	return s.classify(ctx, secret, history, input)
}

func (s *stubGenerator) FirstQuestion(ctx context.Context) (*model.AIMove, error) {
	if s.firstQuestion == nil {
		return nil, errStubUnset
	}
	return s.firstQuestion(ctx)
}

func (s *stubGenerator) NextMove(ctx context.Context, history []model.ChatMessage, answer string, questionsLeft int) (*model.AIMove, error) {
	if s.nextMove == nil {
		return nil, errStubUnset
	}
	return s.nextMove(ctx, history, answer, questionsLeft)
}

func (s *stubGenerator) SpecialHint(ctx context.Context, title string) (string, error) {
	if s.specialHint == nil {
		return "", errStubUnset
	}
	return s.specialHint(ctx, title)
}

// stubMetadata returns fixed metadata and records saves.
type stubMetadata struct {
	md    model.Metadata
	saved []model.Metadata
}

func (s *stubMetadata) Fetch(_ context.Context, _ string) model.Metadata { return s.md }

func (s *stubMetadata) Save(_ context.Context, _ string, md model.Metadata) {
	s.saved = append(s.saved, md)
	s.md = md
}

// stubPicker always hands out the same secret.
type stubPicker struct {
	secret string
}

func (s *stubPicker) SecretOfTheDay(_ context.Context) (string, error) { return s.secret, nil }

type fixture struct {
	svc    *gamesvc.Service
	bridge *session.Bridge
	gen    *stubGenerator
	meta   *stubMetadata
}

func newFixture(secret string) *fixture {
	bridge := session.NewBridge(session.NewCache(0), store.NewMemory())
	gen := &stubGenerator{}
	meta := &stubMetadata{}
	return &fixture{
		svc:    gamesvc.NewService(bridge, gen, meta, &stubPicker{secret: secret}),
		bridge: bridge,
		gen:    gen,
		meta:   meta,
	}
}
