package metrics

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting concurrently", func(t *testing.T) {
		c := NewCollector()
		c.Start("alphabeta", 3)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddNode()
					c.AddEvaluation()
				}
				c.AddPrune()
			}()
		}
		wg.Wait()

		m := c.Complete(1.5)
		require.Equal(t, "alphabeta", m.Strategy)
		require.Equal(t, 3, m.Depth)
		require.Equal(t, 800, m.Nodes)
		require.Equal(t, 800, m.Evaluations)
		require.Equal(t, 8, m.Prunes)
		require.Equal(t, 1.5, m.Value)
	})

	t.Run("restarting resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start("minimax", 1)
		c.AddNode()
		c.Start("minimax", 1)

		require.Zero(t, c.Complete(0).Nodes)
	})

	t.Run("dummy collector only keeps the value", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("minimax", 2)
		c.AddNode()

		require.Equal(t, SearchMetric{Value: 2}, c.Complete(2))
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "strategies")
	require.NoError(t, err)

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
		{ID: 1, Strategy: "minimax", Depth: 2, Evaluator: "score"},
		{ID: 2, Strategy: "expectimax", Depth: 3, Evaluator: "better"},
	}))
	rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, [][]string{
		{"id", "strategy", "depth", "evaluator"},
		{"1", "minimax", "2", "score"},
		{"2", "expectimax", "3", "better"},
	}, rows)

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		ID: 7, Agent: 2, Layout: "small", Seed: 42,
		GameMetric: GameMetric{Outcome: Win, Score: 1234, TotalMoves: 80, StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second},
	}}))
	rows = readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, []string{"7", "2", "small", "42", "win", "1234", "80", "2026-01-02T03:04:05Z", "2026-01-02T03:04:06Z", "1s"}, rows[1])

	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
		Game: 7,
		MoveMetric: MoveMetric{Step: 0, Agent: 0, Action: "West",
			SearchMetric: SearchMetric{Strategy: "alphabeta", Depth: 2, Duration: time.Millisecond, Nodes: 10, Evaluations: 6, Prunes: 1, Value: math.Inf(1)}},
	}}))
	rows = readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Equal(t, []string{"7", "0", "0", "West", "alphabeta", "2", "1ms", "10", "6", "1", "+Inf"}, rows[1])
}
