package agent

import (
	"multiagent/experiments/metrics"
	"multiagent/game"

	"github.com/pkg/errors"
)

var (
	ErrNotMaximizer   = errors.New("search agent only plays agent 0")
	ErrNoLegalActions = errors.New("agent has no legal actions")
)

type Agent interface {
	// FindAction returns the action of agent index in state, along with search
	// metrics when the agent searches.
	FindAction(state game.State, index int) (game.Action, metrics.SearchMetric, error)
}
