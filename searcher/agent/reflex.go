package agent

import (
	"multiagent/experiments/metrics"
	"multiagent/game"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// Reflex names the one-step agent in metrics and configs.
const Reflex = "reflex"

// ActionEvaluate scores taking action from state, higher is better.
type ActionEvaluate func(state game.State, action game.Action) float64

type reflexAgent struct {
	evaluate ActionEvaluate
	rng      *rand.Rand
}

// NewReflexAgent returns an agent that looks a single action ahead and picks
// at random among the best scoring ones. It is not safe for concurrent use.
func NewReflexAgent(evaluate ActionEvaluate, seed uint64) Agent {
	return reflexAgent{evaluate: evaluate, rng: rand.New(rand.NewSource(seed))}
}

func (a reflexAgent) FindAction(state game.State, index int) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions(index)
	if len(actions) == 0 {
		return nil, metrics.SearchMetric{}, errors.Wrapf(ErrNoLegalActions, "agent %d", index)
	}

	scores := lo.Map(actions, func(action game.Action, _ int) float64 {
		return a.evaluate(state, action)
	})
	best := lo.Max(scores)
	candidates := lo.Filter(actions, func(_ game.Action, i int) bool {
		return scores[i] == best
	})
	if len(candidates) == 0 { // Every score is NaN
		candidates = actions
	}
	return candidates[a.rng.Intn(len(candidates))], metrics.SearchMetric{Strategy: Reflex, Depth: 1, Nodes: len(actions), Evaluations: len(actions)}, nil
}
