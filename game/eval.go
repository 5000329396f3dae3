package game

// Scorer is implemented by states that keep a running game score.
type Scorer interface {
	Score() float64
}

// EvaluateScore simply returns the game score of the state. It is the default
// evaluation function of the searcher.
func EvaluateScore(s State) float64 {
	scorer, ok := s.(Scorer)
	if !ok {
		panic("state does not keep a score")
	}
	return scorer.Score()
}
