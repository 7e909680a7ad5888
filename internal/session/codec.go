package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/quibblegames/twentyq/backend/internal/model/game"
)

// TTL is how long a persisted session stays loadable after its last write.
const TTL = 24 * time.Hour

// Document is the compact durable representation of a session.
type Document struct {
	Kind      game.Kind       `json:"kind"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// Short field keys keep the stored documents small; chat history dominates
// the payload so every other byte saved is marginal but free.
type playerData struct {
	Secret        string             `json:"s"`
	History       []game.ChatMessage `json:"h"`
	QuestionCount int                `json:"q"`
	UsedHint      bool               `json:"uh"`
}

type aiData struct {
	History       []game.ChatMessage `json:"h"`
	QuestionCount int                `json:"q"`
	MaxQuestions  int                `json:"mq"`
}

// Encode converts a live session into its compact durable document. For
// player sessions the synthesized secret-disclosure turn is omitted from
// the stored history; Decode resynthesizes it.
func Encode(s game.Session, now time.Time) (Document, error) {
	var data any

	switch v := s.(type) {
	case *game.PlayerSession:
		history := v.History
		if len(history) > 0 && history[0].Role == game.RoleSystem &&
			history[0].Text() == game.SecretPreamble(v.Secret) {
			history = history[1:]
		}
		data = playerData{
			Secret:        v.Secret,
			History:       history,
			QuestionCount: v.QuestionCount,
			UsedHint:      v.UsedHint,
		}
	case *game.AISession:
		data = aiData{
			History:       v.History,
			QuestionCount: v.QuestionCount,
			MaxQuestions:  v.MaxQuestions,
		}
	default:
		return Document{}, fmt.Errorf("encode session: unknown kind %q", s.Kind())
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return Document{}, fmt.Errorf("marshal session data: %w", err)
	}

	return Document{
		Kind:      s.Kind(),
		Data:      raw,
		UpdatedAt: now,
		ExpiresAt: now.Add(TTL),
	}, nil
}

// Decode converts a durable document back into a live session. It is
// tolerant of legacy documents whose player history still carries the
// secret-disclosure turn: the turn is only synthesized when the stored
// history does not already begin with it.
func Decode(doc Document) (game.Session, error) {
	switch doc.Kind {
	case game.KindPlayer:
		var data playerData
		if err := json.Unmarshal(doc.Data, &data); err != nil {
			return nil, fmt.Errorf("unmarshal player session data: %w", err)
		}

		history := data.History
		if len(history) == 0 || !strings.HasPrefix(history[0].Text(), game.SecretPrefix) {
			restored := make([]game.ChatMessage, 0, len(history)+1)
			restored = append(restored, game.TextMessage(game.RoleSystem, game.SecretPreamble(data.Secret)))
			restored = append(restored, history...)
			history = restored
		}

		return &game.PlayerSession{
			Secret:        data.Secret,
			History:       history,
			QuestionCount: data.QuestionCount,
			UsedHint:      data.UsedHint,
		}, nil

	case game.KindAI:
		var data aiData
		if err := json.Unmarshal(doc.Data, &data); err != nil {
			return nil, fmt.Errorf("unmarshal ai session data: %w", err)
		}
		if data.MaxQuestions == 0 {
			data.MaxQuestions = game.MaxQuestions
		}
		return &game.AISession{
			History:       data.History,
			QuestionCount: data.QuestionCount,
			MaxQuestions:  data.MaxQuestions,
		}, nil

	default:
		return nil, fmt.Errorf("decode session: unknown kind %q", doc.Kind)
	}
}
