package searcher

import (
	"math"
	"multiagent/game"

	"golang.org/x/exp/rand"
)

// mockState is a node of an explicit game tree. The action of a child is its
// index in children, so legal actions are enumerated in children order.
type mockState struct {
	agents   int
	score    float64
	win      bool
	lose     bool
	children []*mockState
}

func (m *mockState) NumAgents() int {
	return m.agents
}

func (m *mockState) LegalActions(agent int) []game.Action {
	actions := make([]game.Action, len(m.children))
	for i := range m.children {
		actions[i] = i
	}
	return actions
}

func (m *mockState) Successor(agent int, action game.Action) game.State {
	return m.children[action.(int)]
}

func (m *mockState) IsWin() bool {
	return m.win
}

func (m *mockState) IsLose() bool {
	return m.lose
}

func (m *mockState) Score() float64 {
	return m.score
}

// node builds an inner node with the given number of agents.
func node(agents int, children ...*mockState) *mockState {
	return &mockState{agents: agents, children: children}
}

// leaves builds childless nodes with the given scores.
func leaves(agents int, scores ...float64) []*mockState {
	nodes := make([]*mockState, len(scores))
	for i, score := range scores {
		nodes[i] = &mockState{agents: agents, score: score}
	}
	return nodes
}

// countingEvaluate wraps game.EvaluateScore and counts its calls.
func countingEvaluate(calls *int) game.Evaluate {
	return func(s game.State) float64 {
		*calls++
		return game.EvaluateScore(s)
	}
}

// randomTree builds a full tree of the given plies with 1 to maxBranching
// children per node, random integer scores (so ties are common) and some
// terminal nodes sprinkled in.
func randomTree(rng *rand.Rand, agents, plies, maxBranching int) *mockState {
	n := &mockState{agents: agents, score: float64(rng.Intn(11) - 5)}
	if plies == 0 {
		return n
	}
	if rng.Intn(10) == 0 {
		if rng.Intn(2) == 0 {
			n.win = true
		} else {
			n.lose = true
		}
		return n
	}
	branching := 1 + rng.Intn(maxBranching)
	for i := 0; i < branching; i++ {
		n.children = append(n.children, randomTree(rng, agents, plies-1, maxBranching))
	}
	return n
}

// bruteForce is a direct rendition of the value recursion without pruning,
// used as a reference.
func bruteForce(s *mockState, ply, depth int, expect bool) float64 {
	if s.win || s.lose || ply >= depth*s.agents {
		return s.score
	}
	agent := ply % s.agents
	values := make([]float64, len(s.children))
	for i, child := range s.children {
		values[i] = bruteForce(child, ply+1, depth, expect)
	}
	switch {
	case agent == 0:
		best := math.Inf(-1)
		for _, v := range values {
			best = math.Max(best, v)
		}
		return best
	case expect:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	default:
		best := math.Inf(1)
		for _, v := range values {
			best = math.Min(best, v)
		}
		return best
	}
}

// firstBest returns the index of the first root child whose reference value is the greatest.
func firstBest(root *mockState, depth int, expect bool) int {
	bestIndex, best := -1, math.Inf(-1)
	for i, child := range root.children {
		if v := bruteForce(child, 1, depth, expect); bestIndex < 0 || v > best {
			bestIndex, best = i, v
		}
	}
	return bestIndex
}
