package game

import "encoding/json"

// Reply type tags emitted by the model for the player-guesses mode.
const (
	ReplyAnswer      = "answer"
	ReplyGuessResult = "guessResult"
)

// Move type tags emitted by the model for the AI-guesses mode.
const (
	MoveQuestion = "question"
	MoveGuess    = "guess"
)

// PlayerVerdict is the structured model reply to a player turn: either a
// yes/no answer to a question, or a judged title guess.
type PlayerVerdict struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

// GuessOutcome is the content of a guessResult verdict after scoring.
type GuessOutcome struct {
	Correct  bool    `json:"correct"`
	Response string  `json:"response"`
	Score    float64 `json:"score"`
	UsedHint bool    `json:"usedHint"`
}

// AIMove is the structured model reply in the AI-guesses mode: the next
// question, or a final guess.
type AIMove struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}
