package searcher

import (
	"multiagent/game"

	"github.com/pkg/errors"
)

// Turn locates a ply within a round of agents.
type Turn struct {
	Ply       int
	Agent     int
	Maximizer bool
	Next      int // Ply of the following agent
}

// Scheduler maps a flat ply counter, incremented once per agent move, onto
// agents and enforces the depth limit. A depth of d rounds is a budget of
// d*numAgents plies.
type Scheduler struct {
	numAgents int
	depth     int
}

func NewScheduler(numAgents, depth int) (Scheduler, error) {
	if numAgents < 1 {
		return Scheduler{}, errors.Wrapf(ErrInvalidAgents, "got %d", numAgents)
	}
	if depth < 0 {
		return Scheduler{}, errors.Wrapf(ErrInvalidDepth, "got %d", depth)
	}
	return Scheduler{numAgents: numAgents, depth: depth}, nil
}

// Budget is the ply at which nodes are evaluated instead of expanded.
func (s Scheduler) Budget() int {
	return s.depth * s.numAgents
}

func (s Scheduler) Turn(ply int) Turn {
	agent := ply % s.numAgents
	return Turn{
		Ply:       ply,
		Agent:     agent,
		Maximizer: agent == 0,
		Next:      ply + 1,
	}
}

// Cutoff reports whether state must be evaluated rather than expanded: either
// the game is over or the ply budget is spent.
func (s Scheduler) Cutoff(state game.State, ply int) bool {
	return game.IsTerminal(state) || ply >= s.Budget()
}
