package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/quibblegames/twentyq/backend/internal/model/game"
)

// StartPlayerResult identifies a freshly created player-guesses session.
// The secret itself is never returned.
type StartPlayerResult struct {
	SessionID string `json:"sessionId"`
}

// PlayerReply is the response to one judged player turn.
type PlayerReply struct {
	Type          string          `json:"type"`
	QuestionCount int             `json:"questionCount"`
	Content       json.RawMessage `json:"content"`
}

// HintResult carries one revealed hint.
type HintResult struct {
	HintType game.HintType `json:"hintType"`
	Hint     string        `json:"hint"`
}

// StartPlayerGame creates a player-guesses session around the secret of
// the day and persists it.
func (s *Service) StartPlayerGame(ctx context.Context) (*StartPlayerResult, error) {
	secret, err := s.secrets.SecretOfTheDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("pick secret: %w", err)
	}

	id := uuid.NewString()
	ps := game.NewPlayerSession(secret)
	if err := s.bridge.Persist(ctx, id, ps); err != nil {
		return nil, err
	}

	log.Printf("[game] started player session %s", id)
	return &StartPlayerResult{SessionID: id}, nil
}

// HandleQuestion judges one player turn. The question counter moves only
// after the model reply arrives intact; a generation failure leaves the
// session byte-for-byte as it was.
func (s *Service) HandleQuestion(ctx context.Context, sessionID, input string) (*PlayerReply, error) {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(input) == "" {
		return nil, ErrMissingArguments
	}

	ps, err := s.resolvePlayer(ctx, sessionID, ErrInvalidSessionType)
	if err != nil {
		return nil, err
	}

	// Out of questions: synthesize the loss without consulting the model.
	if ps.QuestionCount >= game.MaxQuestions {
		content, err := json.Marshal(game.GuessOutcome{
			Correct:  false,
			Response: fmt.Sprintf("You're out of questions! The secret game was %s.", ps.Secret),
			Score:    0,
			UsedHint: ps.UsedHint,
		})
		if err != nil {
			return nil, err
		}
		return &PlayerReply{
			Type:          game.ReplyGuessResult,
			QuestionCount: ps.QuestionCount,
			Content:       content,
		}, nil
	}

	verdict, err := s.gen.ClassifyPlayerInput(ctx, ps.Secret, ps.History, input)
	if err != nil {
		return nil, err
	}

	ps.QuestionCount++

	content := verdict.Content
	if verdict.Type == game.ReplyGuessResult {
		content, err = s.scoreGuess(ps, verdict.Content)
		if err != nil {
			return nil, err
		}
	}

	turn, err := json.Marshal(game.PlayerVerdict{Type: verdict.Type, Content: content})
	if err != nil {
		return nil, err
	}
	ps.History = append(ps.History, game.ChatMessage{Role: game.RoleModel, Content: turn})

	if err := s.bridge.Persist(ctx, sessionID, ps); err != nil {
		return nil, err
	}

	return &PlayerReply{
		Type:          verdict.Type,
		QuestionCount: ps.QuestionCount,
		Content:       content,
	}, nil
}

// scoreGuess enriches a judged guess with its score and the session's
// sticky hint flag.
func (s *Service) scoreGuess(ps *game.PlayerSession, content json.RawMessage) (json.RawMessage, error) {
	var judged struct {
		Correct  bool   `json:"correct"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal(content, &judged); err != nil {
		return nil, fmt.Errorf("decode guess content: %w", err)
	}

	return json.Marshal(game.GuessOutcome{
		Correct:  judged.Correct,
		Response: judged.Response,
		Score:    Score(judged.Correct, ps.UsedHint),
		UsedHint: ps.UsedHint,
	})
}

// GetHint reveals one metadata field for the secret. Requesting any hint
// permanently marks the session as hint-assisted, even when the request
// ends in ErrNoHintData; the flag is persisted before candidates are
// filtered so the penalty survives a crash mid-request.
func (s *Service) GetHint(ctx context.Context, sessionID string, hintType game.HintType) (*HintResult, error) {
	if strings.TrimSpace(sessionID) == "" || hintType == "" {
		return nil, ErrMissingArguments
	}

	// Wrong-variant sessions are reported as not found here: hint routes
	// only exist for player games.
	ps, err := s.resolvePlayer(ctx, sessionID, ErrSessionNotFound)
	if err != nil {
		return nil, err
	}

	md := s.meta.Fetch(ctx, ps.Secret)

	if hintType == game.HintSpecial && md.Special == "" {
		hint, err := s.gen.SpecialHint(ctx, ps.Secret)
		if err != nil {
			// Best-effort: a failed hint generation is not a failed request.
			log.Printf("[game] special hint generation failed for session %s: %v", sessionID, err)
		} else if hint != "" {
			md.Special = hint
			s.meta.Save(ctx, ps.Secret, md)
		}
	}

	ps.UsedHint = true
	if err := s.bridge.Persist(ctx, sessionID, ps); err != nil {
		return nil, err
	}

	candidates := hintCandidates(md, hintType)
	if len(candidates) == 0 {
		return nil, ErrNoHintData
	}

	return &candidates[rand.IntN(len(candidates))], nil
}

// hintCandidates lists the populated metadata fields matching the request.
// Kept as a list so a hint type can fan out to several candidates later.
func hintCandidates(md game.Metadata, hintType game.HintType) []HintResult {
	all := []HintResult{
		{HintType: game.HintDeveloper, Hint: md.Developer},
		{HintType: game.HintPublisher, Hint: md.Publisher},
		{HintType: game.HintReleaseYear, Hint: md.ReleaseYear},
		{HintType: game.HintSpecial, Hint: md.Special},
	}

	candidates := make([]HintResult, 0, len(all))
	for _, c := range all {
		if c.Hint != "" && c.HintType == hintType {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// resolvePlayer loads the session and asserts the player variant,
// returning wrongVariant when it is an AI session.
func (s *Service) resolvePlayer(ctx context.Context, sessionID string, wrongVariant error) (*game.PlayerSession, error) {
	sess, ok, err := s.bridge.GetOrLoad(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionNotFound
	}

	ps, ok := sess.(*game.PlayerSession)
	if !ok {
		return nil, wrongVariant
	}
	return ps, nil
}
