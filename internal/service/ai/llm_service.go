// Package ai wraps the chat model behind typed, schema-checked operations.
// Every method either returns a fully parsed structure or an error wrapping
// ErrGeneration; callers must treat a failed call as if it never happened.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/quibblegames/twentyq/backend/internal/config"
	"github.com/quibblegames/twentyq/backend/internal/model/game"
)

// ErrGeneration marks any failure to obtain a valid structured reply from
// the model, whether transport, generation, or parsing.
var ErrGeneration = errors.New("structured generation failed")

// Service runs structured-generation prompts against the configured model.
type Service struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the prompt chain for the configured chat model.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile generation chain: %w", err)
	}

	return &Service{chain: runnable}, nil
}

// ClassifyPlayerInput judges one player turn against the secret: either a
// yes/no question to answer, or a title guess to verify.
func (s *Service) ClassifyPlayerInput(ctx context.Context, secret string, history []game.ChatMessage, input string) (*game.PlayerVerdict, error) {
	raw, err := s.invoke(ctx, classifySystemPrompt(secret), history, input)
	if err != nil {
		return nil, err
	}

	verdict := &game.PlayerVerdict{}
	if err := json.Unmarshal(raw, verdict); err != nil {
		return nil, fmt.Errorf("%w: parse verdict: %v", ErrGeneration, err)
	}
	if verdict.Type != game.ReplyAnswer && verdict.Type != game.ReplyGuessResult {
		return nil, fmt.Errorf("%w: unexpected verdict type %q", ErrGeneration, verdict.Type)
	}
	if verdict.Type == game.ReplyGuessResult {
		var outcome struct {
			Correct  *bool  `json:"correct"`
			Response string `json:"response"`
		}
		if err := json.Unmarshal(verdict.Content, &outcome); err != nil || outcome.Correct == nil {
			return nil, fmt.Errorf("%w: malformed guess result content", ErrGeneration)
		}
	}

	log.Printf("[ai] classified player input as %s", verdict.Type)
	return verdict, nil
}

// FirstQuestion asks the model to open an AI-guesses game with its first
// question.
func (s *Service) FirstQuestion(ctx context.Context) (*game.AIMove, error) {
	raw, err := s.invoke(ctx, aiGuessSystemPrompt, nil, firstQuestionPrompt)
	if err != nil {
		return nil, err
	}
	return parseMove(raw)
}

// NextMove feeds the user's answer back to the model along with the
// remaining question budget and returns the next question or a final guess.
func (s *Service) NextMove(ctx context.Context, history []game.ChatMessage, answer string, questionsLeft int) (*game.AIMove, error) {
	raw, err := s.invoke(ctx, aiGuessSystemPrompt, history, nextMovePrompt(answer, questionsLeft))
	if err != nil {
		return nil, err
	}
	return parseMove(raw)
}

// SpecialHint generates a freeform clue for the secret title that avoids
// naming it. The empty string means no hint could be produced.
func (s *Service) SpecialHint(ctx context.Context, title string) (string, error) {
	raw, err := s.invoke(ctx, specialHintSystemPrompt, nil, specialHintPrompt(title))
	if err != nil {
		return "", err
	}

	var payload struct {
		Hint string `json:"hint"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("%w: parse hint: %v", ErrGeneration, err)
	}
	return strings.TrimSpace(payload.Hint), nil
}

func parseMove(raw json.RawMessage) (*game.AIMove, error) {
	move := &game.AIMove{}
	if err := json.Unmarshal(raw, move); err != nil {
		return nil, fmt.Errorf("%w: parse move: %v", ErrGeneration, err)
	}
	if move.Type != game.MoveQuestion && move.Type != game.MoveGuess {
		return nil, fmt.Errorf("%w: unexpected move type %q", ErrGeneration, move.Type)
	}
	return move, nil
}

// invoke runs one chain call and extracts the outermost JSON object from
// the model's reply.
func (s *Service) invoke(ctx context.Context, system string, history []game.ChatMessage, query string) (json.RawMessage, error) {
	input := map[string]any{
		"system":  system,
		"history": buildHistoryMessages(history),
		"query":   query,
	}

	msg, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return nil, fmt.Errorf("%w: empty model reply", ErrGeneration)
	}

	raw, err := extractJSON(msg.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return raw, nil
}

// extractJSON slices the outermost JSON object out of a model reply,
// tolerating prose or code fences around it.
func extractJSON(content string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object in model reply")
	}

	candidate := trimmed[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, fmt.Errorf("invalid json object in model reply")
	}
	return json.RawMessage(candidate), nil
}

// buildHistoryMessages converts stored turns into model context. System
// turns are skipped: the secret is injected through the system template
// instead, so the stored preamble would only duplicate it.
func buildHistoryMessages(messages []game.ChatMessage) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case game.RoleUser:
			history = append(history, schema.UserMessage(msg.Text()))
		case game.RoleModel:
			history = append(history, schema.AssistantMessage(msg.Text(), nil))
		}
	}
	return history
}
