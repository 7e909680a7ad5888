// Package game implements the two game-mode state machines on top of the
// session bridge.
package game

import (
	"context"
	"errors"

	"github.com/quibblegames/twentyq/backend/internal/model/game"
	"github.com/quibblegames/twentyq/backend/internal/session"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidSessionType = errors.New("session is the wrong variant for this operation")
	ErrMissingArguments   = errors.New("missing required arguments")
	ErrNoHintData         = errors.New("no hint data available")
)

// Generator is the structured-generation collaborator. A failed call must
// leave the caller free to act as if nothing happened; implementations
// never partially succeed.
type Generator interface {
	ClassifyPlayerInput(ctx context.Context, secret string, history []game.ChatMessage, input string) (*game.PlayerVerdict, error)
	FirstQuestion(ctx context.Context) (*game.AIMove, error)
	NextMove(ctx context.Context, history []game.ChatMessage, answer string, questionsLeft int) (*game.AIMove, error)
	SpecialHint(ctx context.Context, title string) (string, error)
}

// MetadataSource supplies best-effort title metadata for hints.
type MetadataSource interface {
	Fetch(ctx context.Context, title string) game.Metadata
	Save(ctx context.Context, title string, md game.Metadata)
}

// SecretPicker supplies the secret for a new player-guesses session.
type SecretPicker interface {
	SecretOfTheDay(ctx context.Context) (string, error)
}

// Service orchestrates both game modes.
type Service struct {
	bridge  *session.Bridge
	gen     Generator
	meta    MetadataSource
	secrets SecretPicker
}

// NewService wires the game service with its collaborators.
func NewService(bridge *session.Bridge, gen Generator, meta MetadataSource, secrets SecretPicker) *Service {
	return &Service{bridge: bridge, gen: gen, meta: meta, secrets: secrets}
}

// GetSession is a cache-only lookup for ops and test inspection; it never
// touches the durable store.
func (s *Service) GetSession(id string) (game.Session, bool) {
	return s.bridge.Cached(id)
}

// ClearSessions wipes the in-memory cache. Durable documents survive their
// own TTL.
func (s *Service) ClearSessions() {
	s.bridge.Reset()
}
