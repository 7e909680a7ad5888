package game

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/quibblegames/twentyq/backend/internal/model/game"
)

// StartAIResult carries the opening question of an AI-guesses session.
type StartAIResult struct {
	SessionID     string       `json:"sessionId"`
	Response      *game.AIMove `json:"response"`
	QuestionCount int          `json:"questionCount"`
}

// AIReply carries the model's next move after a user answer.
type AIReply struct {
	Response      *game.AIMove `json:"response"`
	QuestionCount int          `json:"questionCount"`
}

// StartAIGame opens an AI-guesses session: the model asks its first
// question and the session starts with one question spent.
func (s *Service) StartAIGame(ctx context.Context) (*StartAIResult, error) {
	move, err := s.gen.FirstQuestion(ctx)
	if err != nil {
		return nil, err
	}

	turn, err := json.Marshal(move)
	if err != nil {
		return nil, err
	}

	as := &game.AISession{
		History: []game.ChatMessage{
			game.TextMessage(game.RoleUser, "Start the game."),
			{Role: game.RoleModel, Content: turn},
		},
		QuestionCount: 1,
		MaxQuestions:  game.MaxQuestions,
	}

	id := uuid.NewString()
	if err := s.bridge.Persist(ctx, id, as); err != nil {
		return nil, err
	}

	log.Printf("[game] started ai session %s", id)
	return &StartAIResult{SessionID: id, Response: move, QuestionCount: as.QuestionCount}, nil
}

// HandleAnswer relays the user's answer and returns the model's next move.
// Only question-type moves consume a slot from the budget; a final guess
// ends the game without spending one.
func (s *Service) HandleAnswer(ctx context.Context, sessionID, answer string) (*AIReply, error) {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(answer) == "" {
		return nil, ErrMissingArguments
	}

	sess, ok, err := s.bridge.GetOrLoad(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionNotFound
	}
	as, ok := sess.(*game.AISession)
	if !ok {
		return nil, ErrInvalidSessionType
	}

	questionsLeft := as.MaxQuestions - as.QuestionCount
	move, err := s.gen.NextMove(ctx, as.History, answer, questionsLeft)
	if err != nil {
		return nil, err
	}

	turn, err := json.Marshal(move)
	if err != nil {
		return nil, err
	}
	as.History = append(as.History,
		game.TextMessage(game.RoleUser, answer),
		game.ChatMessage{Role: game.RoleModel, Content: turn},
	)

	if move.Type == game.MoveQuestion {
		as.QuestionCount++
	}

	if err := s.bridge.Persist(ctx, sessionID, as); err != nil {
		return nil, err
	}

	return &AIReply{Response: move, QuestionCount: as.QuestionCount}, nil
}
