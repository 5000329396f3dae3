package searcher

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestScheduler(t *testing.T) {
	t.Run("mapping plies onto agents", func(t *testing.T) {
		s, err := NewScheduler(3, 2)
		require.NoError(t, err)

		require.Equal(t, 6, s.Budget(), "Budget should be depth times the number of agents")
		require.Equal(t, Turn{Ply: 0, Agent: 0, Maximizer: true, Next: 1}, s.Turn(0))
		require.Equal(t, Turn{Ply: 2, Agent: 2, Maximizer: false, Next: 3}, s.Turn(2))
		require.Equal(t, Turn{Ply: 3, Agent: 0, Maximizer: true, Next: 4}, s.Turn(3), "A new round should start with the maximizer")
		require.Equal(t, Turn{Ply: 4, Agent: 1, Maximizer: false, Next: 5}, s.Turn(4))
	})

	t.Run("cutting off at the ply budget", func(t *testing.T) {
		s, err := NewScheduler(2, 2)
		require.NoError(t, err)
		state := &mockState{agents: 2}

		for ply := 0; ply < 4; ply++ {
			require.False(t, s.Cutoff(state, ply), "Ply %d should be expanded", ply)
		}
		require.True(t, s.Cutoff(state, 4), "Ply budget should trigger a cutoff")
	})

	t.Run("cutting off terminal states regardless of depth", func(t *testing.T) {
		s, err := NewScheduler(2, 5)
		require.NoError(t, err)

		require.True(t, s.Cutoff(&mockState{agents: 2, win: true}, 0), "Won state should be evaluated")
		require.True(t, s.Cutoff(&mockState{agents: 2, lose: true}, 1), "Lost state should be evaluated")
	})

	t.Run("zero depth cuts off the root", func(t *testing.T) {
		s, err := NewScheduler(4, 0)
		require.NoError(t, err)

		require.True(t, s.Cutoff(&mockState{agents: 4}, 0))
	})

	t.Run("single agent maximizes on every ply", func(t *testing.T) {
		s, err := NewScheduler(1, 3)
		require.NoError(t, err)

		for ply := 0; ply < 3; ply++ {
			turn := s.Turn(ply)
			require.Equal(t, 0, turn.Agent)
			require.True(t, turn.Maximizer)
		}
	})

	t.Run("rejecting invalid configurations", func(t *testing.T) {
		_, err := NewScheduler(0, 1)
		require.True(t, errors.Is(err, ErrInvalidAgents), "Zero agents should be rejected, got %v", err)

		_, err = NewScheduler(2, -1)
		require.True(t, errors.Is(err, ErrInvalidDepth), "Negative depth should be rejected, got %v", err)
	})
}
