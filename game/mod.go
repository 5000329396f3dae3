package game

// Action is an opaque move token. The searcher never inspects it, it only hands
// the chosen one back to the caller.
type Action interface{}

// State should be immutable - Successor always returns a new copy and never
// mutates the receiver, since siblings are expanded from the same parent.
type State interface {
	// NumAgents is the number of agents taking turns, always >= 1. Agent 0 is the maximizer.
	NumAgents() int
	// LegalActions returns the actions available to agent in a stable, deterministic order.
	LegalActions(agent int) []Action
	Successor(agent int, action Action) State
	IsWin() bool
	IsLose() bool
}

// Evaluate scores a state from the maximizing agent's perspective: higher is
// better. It must be pure and deterministic; +/-Inf may be used to force a preference.
type Evaluate func(State) float64

// IsTerminal reports whether the state is a win or a loss.
func IsTerminal(s State) bool {
	return s.IsWin() || s.IsLose()
}
