package searcher

import (
	"strings"

	"github.com/pkg/errors"
)

// Strategy selects how the layers of non-maximizing agents aggregate the values
// of their children. The maximizer layer and the cutoff test are shared.
type Strategy int

const (
	Minimax    Strategy = iota // Adversaries pick the minimum
	AlphaBeta                  // Minimax with alpha-beta pruning
	Expectimax                 // Adversaries pick uniformly at random
)

// DefaultDepth is the depth limit, in rounds of all agents, used when none is given.
const DefaultDepth = 2

var (
	ErrInvalidDepth    = errors.New("search depth must be non-negative")
	ErrInvalidAgents   = errors.New("state must have at least one agent")
	ErrNoLegalActions  = errors.New("non-terminal state has no legal actions")
	ErrTerminalState   = errors.New("cannot choose an action in a terminal state")
	ErrUnknownStrategy = errors.New("unknown search strategy")
)

var strategyNames = [...]string{
	Minimax:    "minimax",
	AlphaBeta:  "alphabeta",
	Expectimax: "expectimax",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return "unknown"
	}
	return strategyNames[s]
}

// ParseStrategy accepts the names returned by Strategy.String, case-insensitive
// and ignoring dashes and underscores ("alpha-beta" parses as AlphaBeta).
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	for s, n := range strategyNames {
		if n == normalized {
			return Strategy(s), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownStrategy, "%q", name)
}
