package maze

import (
	"math"
	"multiagent/game"
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrUnknownEvaluator = errors.New("unknown evaluation function")

// Evaluators maps names accepted in configuration to evaluation functions.
var Evaluators = map[string]game.Evaluate{
	"score":  game.EvaluateScore,
	"better": EvaluateBetter,
}

func ParseEvaluator(name string) (game.Evaluate, error) {
	evaluate, ok := Evaluators[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEvaluator, "%q", name)
	}
	return evaluate, nil
}

// EvaluatorNames lists the registered evaluators in alphabetical order.
func EvaluatorNames() []string {
	names := lo.Keys(Evaluators)
	slices.Sort(names)
	return names
}

// EvaluateBetter adds to the game score a pull towards the closest food and
// towards clearing the board, a detour for capsules while ghosts are far, and
// the chase of a scared ghost that is reachable before it recovers.
func EvaluateBetter(gs game.State) float64 {
	s := mustState(gs)
	if s.win {
		return math.Inf(1)
	}
	if s.lose {
		return math.Inf(-1)
	}

	score := s.score - float64(nearest(s.runner, s.Food()))
	if s.numFood > 0 {
		score += 10000 / float64(s.numFood)
	}
	if len(s.ghosts) == 0 {
		return score
	}

	closest := lo.MinBy(s.ghosts, func(a, b ghost) bool {
		return s.runner.Distance(a.pos) < s.runner.Distance(b.pos)
	})
	ghostDistance := s.runner.Distance(closest.pos)

	scared := lo.SomeBy(s.ghosts, func(g ghost) bool { return g.scared > 0 })
	if !scared {
		if len(s.capsules) > 0 {
			capsuleDistance := nearest(s.runner, s.capsules)
			if capsuleDistance+ghostDistance < 40 {
				score -= float64(capsuleDistance)
			}
		}
	} else if closest.scared > ghostDistance {
		score -= float64(ghostDistance)
	}

	if ghostDistance == 0 {
		if closest.scared == 0 {
			return math.Inf(-1)
		}
		score += 100
	}
	return score
}

// ReflexEvaluate scores the runner taking action from gs by looking only at
// the successor: score, closest food, food left and distance to the closest
// ghost. Stopping and stepping onto a ghost are never preferred.
func ReflexEvaluate(gs game.State, action game.Action) float64 {
	if action == Stop {
		return math.Inf(-1)
	}
	next := mustState(gs.Successor(RunnerIndex, action))
	if next.lose {
		return math.Inf(-1)
	}
	if next.numFood == 0 {
		return math.Inf(1)
	}

	score := next.score - float64(nearest(next.runner, next.Food()))
	score += 10000 / float64(next.numFood)
	if len(next.ghosts) > 0 {
		ghostDistance := nearest(next.runner, next.GhostPositions())
		if ghostDistance == 0 {
			return math.Inf(-1)
		}
		score += float64(ghostDistance)
	}
	return score
}

func mustState(gs game.State) *State {
	s, ok := gs.(*State)
	if !ok {
		panic("unexpected state type")
	}
	return s
}

// nearest returns the distance from p to the closest of targets, 0 if there are none.
func nearest(p Position, targets []Position) int {
	if len(targets) == 0 {
		return 0
	}
	return lo.Min(lo.Map(targets, func(t Position, _ int) int { return p.Distance(t) }))
}
