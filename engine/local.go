package engine

import (
	"fmt"
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/searcher/agent"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var ErrIllegalAction = errors.New("illegal action")

// Local plays every agent in-process, in turn order 0, 1, ..., n-1, 0, ...
type Local struct {
	State    game.State
	Agents   []agent.Agent
	maxMoves int
}

var _ Engine = (*Local)(nil)

func LocalEngine(state game.State, agents []agent.Agent, maxMoves int) (*Local, error) {
	if len(agents) != state.NumAgents() {
		return nil, errors.Errorf("game has %d agents but %d were given", state.NumAgents(), len(agents))
	}
	if maxMoves <= 0 {
		maxMoves = MaxMoves
	}
	return &Local{
		State:    state,
		Agents:   agents,
		maxMoves: maxMoves,
	}, nil
}

// Run executes the game loop until the game is over or the move limit is hit.
// Actions must be comparable so they can be checked against the legal ones.
func (e *Local) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	numAgents := len(e.Agents)
	step := 0
	for !game.IsTerminal(e.State) && step < e.maxMoves {
		index := step % numAgents

		action, searchMetric, err := e.Agents[index].FindAction(e.State, index)
		if err != nil {
			return gameMetric, moveMetrics, errors.Wrapf(err, "agent %d at step %d", index, step)
		}
		if !lo.Contains(e.State.LegalActions(index), action) {
			return gameMetric, moveMetrics, errors.Wrapf(ErrIllegalAction, "agent %d played %v at step %d", index, action, step)
		}

		log.Debug().Int("step", step).Int("agent", index).Interface("action", action).Msg("move")
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Agent:        index,
			Action:       fmt.Sprint(action),
			SearchMetric: searchMetric,
		})

		e.State = e.State.Successor(index, action)
		step++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	gameMetric.Outcome = outcome(e.State)
	if scorer, ok := e.State.(game.Scorer); ok {
		gameMetric.Score = scorer.Score()
	}

	log.Info().Msgf("game over after %d moves: %s with score %.0f", step, gameMetric.Outcome, gameMetric.Score)
	return gameMetric, moveMetrics, nil
}

func outcome(state game.State) metrics.Outcome {
	switch {
	case state.IsWin():
		return metrics.Win
	case state.IsLose():
		return metrics.Lose
	default:
		return metrics.Unfinished
	}
}
