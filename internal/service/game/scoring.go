package game

// Score derives the fractional score for a judged guess: a clean win is
// worth 1, a win after any hint request is worth 0.5, a miss is worth 0.
func Score(correct, usedHint bool) float64 {
	switch {
	case !correct:
		return 0
	case usedHint:
		return 0.5
	default:
		return 1
	}
}
