package game

// Kind discriminates the two session variants. It is fixed at creation
// and never changes for the lifetime of a session.
type Kind string

const (
	KindPlayer Kind = "player"
	KindAI     Kind = "ai"
)

// MaxQuestions is the shared question budget for both game modes.
const MaxQuestions = 20

// Session is one in-progress or completed game, either variant.
type Session interface {
	Kind() Kind
}

// PlayerSession tracks a game where the user asks questions to discover
// the secret title.
type PlayerSession struct {
	Secret        string
	History       []ChatMessage
	QuestionCount int
	UsedHint      bool
}

func (*PlayerSession) Kind() Kind { return KindPlayer }

// AISession tracks a game where the model asks questions to discover the
// title the user is thinking of.
type AISession struct {
	History       []ChatMessage
	QuestionCount int
	MaxQuestions  int
}

func (*AISession) Kind() Kind { return KindAI }

// SecretPrefix is the opening of the synthesized system turn that discloses
// the secret to the model context. Decoding relies on this prefix to detect
// already-present system turns, so changing it requires keeping the old
// prefix check for previously stored sessions.
const SecretPrefix = "The secret game is "

// SecretPreamble is the full synthesized system turn for a given secret.
func SecretPreamble(secret string) string {
	return SecretPrefix + secret + ". The user will now ask questions."
}

// NewPlayerSession creates a fresh player-guesses session seeded with the
// synthesized system turn as its sole history entry.
func NewPlayerSession(secret string) *PlayerSession {
	return &PlayerSession{
		Secret:  secret,
		History: []ChatMessage{TextMessage(RoleSystem, SecretPreamble(secret))},
	}
}
