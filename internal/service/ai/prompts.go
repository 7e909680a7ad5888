package ai

import "fmt"

// Prompt templates. Every prompt demands a bare JSON object so extractJSON
// can slice the reply deterministically.

func classifySystemPrompt(secret string) string {
	return fmt.Sprintf(`You are the referee of a 20 Questions game about video games. The secret game is %q. The user will either ask a yes/no question about the secret game or guess its title.

Classify the user's input and reply with exactly one JSON object, no other text:
- For a yes/no question: {"type": "answer", "content": "<Yes/No plus at most one short clarifying sentence that never names the secret game>"}
- For a title guess: {"type": "guessResult", "content": {"correct": <true if the guess names the secret game, allowing minor spelling differences>, "response": "<one sentence; reveal the secret title only when the guess is correct>"}}

Never reveal the secret title in an answer or an incorrect guess response.`, secret)
}

const aiGuessSystemPrompt = `You are playing 20 Questions: the user is thinking of a video game and you must identify it. Ask strategic yes/no questions that halve the remaining possibilities. When you are confident, guess the title instead of asking another question.

Reply with exactly one JSON object, no other text:
- To ask a question: {"type": "question", "content": "<your yes/no question>"}
- To guess the title: {"type": "guess", "content": "<the title you believe it is>"}`

const firstQuestionPrompt = `The game starts now. Ask your first question.`

func nextMovePrompt(answer string, questionsLeft int) string {
	return fmt.Sprintf(`The user answered: %q. You have %d questions left. Ask your next question, or guess the title if you are confident.`, answer, questionsLeft)
}

const specialHintSystemPrompt = `You write cryptic hints for a video-game guessing game. Reply with exactly one JSON object, no other text: {"hint": "<one evocative sentence about the game that never names it or quotes its title>"}`

func specialHintPrompt(title string) string {
	return fmt.Sprintf(`Write a hint for the game %q.`, title)
}
