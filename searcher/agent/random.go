package agent

import (
	"multiagent/experiments/metrics"
	"multiagent/game"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent picking uniformly among its legal actions,
// which is how expectimax models the adversaries. It is not safe for
// concurrent use.
func NewRandomAgent(seed uint64) Agent {
	return randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a randomAgent) FindAction(state game.State, index int) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions(index)
	if len(actions) == 0 {
		return nil, metrics.SearchMetric{}, errors.Wrapf(ErrNoLegalActions, "agent %d", index)
	}
	return actions[a.rng.Intn(len(actions))], metrics.SearchMetric{}, nil
}
