package engine

import (
	"testing"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/game/maze"
	"multiagent/searcher"
	"multiagent/searcher/agent"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// fixedAgent always plays the same action.
type fixedAgent struct {
	action game.Action
}

func (a fixedAgent) FindAction(game.State, int) (game.Action, metrics.SearchMetric, error) {
	return a.action, metrics.SearchMetric{}, nil
}

func layout(t *testing.T, text string) *maze.Layout {
	t.Helper()
	l, err := maze.ParseLayout("test", text)
	require.NoError(t, err)
	return l
}

func TestLocalEngine(t *testing.T) {
	t.Run("playing a searcher to a win", func(t *testing.T) {
		s, err := searcher.New(searcher.WithStrategy(searcher.Expectimax), searcher.WithDepth(2),
			searcher.WithEvaluationFn(maze.EvaluateBetter), searcher.WithMetrics())
		require.NoError(t, err)
		state := maze.NewState(layout(t, `
%%%%%%%
%P  . %
% %%% %
%.   .%
%%%%%%%`))

		e, err := LocalEngine(state, []agent.Agent{agent.NewSearchAgent(s)}, 100)
		require.NoError(t, err)
		gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, metrics.Win, gameMetric.Outcome)
		require.Equal(t, gameMetric.TotalMoves, len(moveMetrics))
		require.Equal(t, e.State.(*maze.State).Score(), gameMetric.Score)
		for _, mm := range moveMetrics {
			require.Equal(t, 0, mm.Agent)
			require.Equal(t, "expectimax", mm.Strategy)
		}
	})

	t.Run("alternating agents until the ghost catches the runner", func(t *testing.T) {
		state := maze.NewState(layout(t, `
%%%%%
%P G%
%.%%%
%%%%%`))
		agents := []agent.Agent{fixedAgent{maze.East}, agent.NewRandomAgent(1)}

		e, err := LocalEngine(state, agents, 0)
		require.NoError(t, err)
		gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, metrics.Lose, gameMetric.Outcome)
		require.Equal(t, 2, gameMetric.TotalMoves)
		require.Equal(t, []int{0, 1}, []int{moveMetrics[0].Agent, moveMetrics[1].Agent})
		require.Equal(t, "East", moveMetrics[0].Action)
		require.Equal(t, "West", moveMetrics[1].Action)
	})

	t.Run("stopping at the move limit", func(t *testing.T) {
		state := maze.NewState(layout(t, `
%%%%%
%P .%
%%%%%`))

		e, err := LocalEngine(state, []agent.Agent{fixedAgent{maze.Stop}}, 5)
		require.NoError(t, err)
		gameMetric, _, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, metrics.Unfinished, gameMetric.Outcome)
		require.Equal(t, 5, gameMetric.TotalMoves)
		require.Equal(t, -5.0, gameMetric.Score)
	})

	t.Run("rejecting illegal actions", func(t *testing.T) {
		state := maze.NewState(layout(t, `
%%%%%
%P .%
%%%%%`))

		e, err := LocalEngine(state, []agent.Agent{fixedAgent{maze.North}}, 5)
		require.NoError(t, err)
		_, _, err = e.Run()

		require.True(t, errors.Is(err, ErrIllegalAction), "got %v", err)
	})

	t.Run("rejecting a wrong number of agents", func(t *testing.T) {
		state := maze.NewState(layout(t, `
%%%%%
%P G%
%.%%%
%%%%%`))

		_, err := LocalEngine(state, []agent.Agent{fixedAgent{maze.East}}, 5)
		require.Error(t, err)
	})
}
