// Package daily selects the secret title for player-guesses games.
package daily

import (
	"context"
	"math/rand/v2"
	"time"
)

// Picker supplies the secret for a new player-guesses session. Injected
// into the game service so tests can substitute a deterministic source.
type Picker interface {
	SecretOfTheDay(ctx context.Context) (string, error)
}

// Pool is the curated set of titles the pickers draw from.
func Pool() []string {
	return []string{
		"The Legend of Zelda: Breath of the Wild",
		"Super Mario 64",
		"Portal 2",
		"Hollow Knight",
		"Stardew Valley",
		"Half-Life 2",
		"Minecraft",
		"Dark Souls",
		"Celeste",
		"Tetris",
		"Red Dead Redemption 2",
		"Hades",
		"Undertale",
		"Doom",
		"Chrono Trigger",
		"Metroid Prime",
		"Final Fantasy VII",
		"Outer Wilds",
		"Disco Elysium",
		"Super Metroid",
		"The Witcher 3: Wild Hunt",
		"Shadow of the Colossus",
		"Baldur's Gate 3",
		"Slay the Spire",
		"Animal Crossing: New Horizons",
		"Elden Ring",
		"Factorio",
		"Silent Hill 2",
		"Street Fighter II",
		"Katamari Damacy",
	}
}

// DatePicker returns the same title for every call on a given UTC date,
// rotating through the pool day by day.
type DatePicker struct {
	pool []string
	now  func() time.Time
}

// NewDatePicker builds the production picker over the default pool.
func NewDatePicker() *DatePicker {
	return &DatePicker{pool: Pool(), now: time.Now}
}

// SecretOfTheDay returns the pool entry for the current UTC date.
func (p *DatePicker) SecretOfTheDay(_ context.Context) (string, error) {
	days := p.now().UTC().Unix() / 86400
	return p.pool[int(days)%len(p.pool)], nil
}

// RandomPicker returns an independently random title per call. Used in
// tests and local development where a fixed daily secret would make runs
// interfere with each other.
type RandomPicker struct {
	pool []string
}

// NewRandomPicker builds a picker over the default pool.
func NewRandomPicker() *RandomPicker {
	return &RandomPicker{pool: Pool()}
}

// SecretOfTheDay returns a uniformly random pool entry.
func (p *RandomPicker) SecretOfTheDay(_ context.Context) (string, error) {
	return p.pool[rand.IntN(len(p.pool))], nil
}
