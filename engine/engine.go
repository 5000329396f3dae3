package engine

import "multiagent/experiments/metrics"

// MaxMoves bounds a game that neither side can finish.
const MaxMoves = 10000

type Engine interface {
	// Run plays a game till it is won, lost or a max number of moves is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
