package agent

import (
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/searcher"

	"github.com/pkg/errors"
)

type searchAgent struct {
	searcher *searcher.Searcher
}

// NewSearchAgent returns an agent that plays agent 0 by searching the game tree.
func NewSearchAgent(s *searcher.Searcher) Agent {
	return searchAgent{searcher: s}
}

func (a searchAgent) FindAction(state game.State, index int) (game.Action, metrics.SearchMetric, error) {
	if index != 0 {
		return nil, metrics.SearchMetric{}, errors.Wrapf(ErrNotMaximizer, "asked to play agent %d", index)
	}
	result, err := a.searcher.Search(state)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	return result.Action, result.Metric, nil
}
