package game

import "encoding/json"

// Role identifies who produced a chat turn.
type Role string

const (
	RoleUser   Role = "user"
	RoleModel  Role = "model"
	RoleSystem Role = "system"
)

// ChatMessage is a single conversational turn. Content is either a plain
// JSON string or a structured value returned by the model; it is kept raw
// so persisted turns survive round trips byte-for-byte.
type ChatMessage struct {
	Role    Role            `json:"role"`
	Content json.RawMessage `json:"content"`
}

// TextMessage builds a ChatMessage whose content is a plain string.
func TextMessage(role Role, text string) ChatMessage {
	content, _ := json.Marshal(text)
	return ChatMessage{Role: role, Content: content}
}

// Text returns the message content as a string. Structured content is
// returned as its raw JSON text.
func (m ChatMessage) Text() string {
	var s string
	if err := json.Unmarshal(m.Content, &s); err == nil {
		return s
	}
	return string(m.Content)
}
