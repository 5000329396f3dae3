package searcher

import (
	"math"
	"multiagent/experiments/metrics"
	"multiagent/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Option func(s *Searcher)

// Searcher picks actions for agent 0 by depth-limited search over the game tree.
// A Searcher only holds configuration, so it can serve concurrent searches.
type Searcher struct {
	strategy   Strategy
	depth      int
	evaluate   game.Evaluate
	newMetrics func() metrics.Collector
}

// Result of a search from the root state.
type Result struct {
	Action game.Action
	Value  float64
	Metric metrics.SearchMetric
}

func WithStrategy(strategy Strategy) Option {
	return func(s *Searcher) {
		s.strategy = strategy
	}
}

// WithDepth sets the depth limit in rounds: each round every agent moves once.
func WithDepth(depth int) Option {
	return func(s *Searcher) {
		s.depth = depth
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.newMetrics = metrics.NewCollector
	}
}

func New(options ...Option) (*Searcher, error) {
	s := &Searcher{ // Default values
		strategy:   Minimax,
		depth:      DefaultDepth,
		evaluate:   game.EvaluateScore,
		newMetrics: metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(s)
	}
	if s.depth < 0 {
		return nil, errors.Wrapf(ErrInvalidDepth, "got %d", s.depth)
	}
	if s.strategy.String() == "unknown" {
		return nil, errors.Wrapf(ErrUnknownStrategy, "%d", s.strategy)
	}
	return s, nil
}

func (s *Searcher) Strategy() Strategy {
	return s.strategy
}

func (s *Searcher) Depth() int {
	return s.depth
}

// ChooseAction searches with the given configuration and returns the best action for agent 0.
func ChooseAction(state game.State, depth int, strategy Strategy, evaluate game.Evaluate) (game.Action, error) {
	s, err := New(WithDepth(depth), WithStrategy(strategy), WithEvaluationFn(evaluate))
	if err != nil {
		return nil, err
	}
	return s.ChooseAction(state)
}

// ChooseAction returns the action of agent 0 with the greatest value. Among
// equally valued actions the first in LegalActions order wins.
func (s *Searcher) ChooseAction(state game.State) (game.Action, error) {
	result, err := s.Search(state)
	if err != nil {
		return nil, err
	}
	return result.Action, nil
}

// Search runs the search from the root state and returns the chosen action with its value.
//
// With a depth of 0 no child is expanded, so the value is the root's own score
// and the action is the first legal one.
func (s *Searcher) Search(state game.State) (Result, error) {
	scheduler, err := NewScheduler(state.NumAgents(), s.depth)
	if err != nil {
		return Result{}, err
	}
	if game.IsTerminal(state) {
		return Result{}, ErrTerminalState
	}
	actions := state.LegalActions(0)
	if len(actions) == 0 {
		return Result{}, errors.Wrap(ErrNoLegalActions, "maximizer at root")
	}

	sr := s.newSearch(scheduler)
	var value float64
	var action game.Action
	if scheduler.Cutoff(state, 0) {
		value = sr.leaf(state)
		action = actions[0]
	} else {
		value, action = sr.maxValue(state, scheduler.Turn(0), math.Inf(-1), math.Inf(1))
	}
	metric := sr.metrics.Complete(value)

	log.Debug().
		Stringer("strategy", s.strategy).
		Int("depth", s.depth).
		Float64("value", value).
		Interface("action", action).
		Int("nodes", metric.Nodes).
		Int("prunes", metric.Prunes).
		Msg("search complete")

	return Result{Action: action, Value: value, Metric: metric}, nil
}

// Value returns the value of state as the root of a search: the score of the
// root itself when the depth is 0 or the state is terminal.
func (s *Searcher) Value(state game.State) (float64, error) {
	scheduler, err := NewScheduler(state.NumAgents(), s.depth)
	if err != nil {
		return 0, err
	}
	if !scheduler.Cutoff(state, 0) && len(state.LegalActions(0)) == 0 {
		return 0, errors.Wrap(ErrNoLegalActions, "maximizer at root")
	}
	sr := s.newSearch(scheduler)
	return sr.value(state, 0, math.Inf(-1), math.Inf(1)), nil
}

func (s *Searcher) newSearch(scheduler Scheduler) *search {
	sr := &search{
		strategy:  s.strategy,
		scheduler: scheduler,
		evaluate:  s.evaluate,
		metrics:   s.newMetrics(),
	}
	sr.metrics.Start(s.strategy.String(), s.depth)
	return sr
}

// search holds the state of one call: nothing in it outlives the call or is
// shared with another one.
type search struct {
	strategy  Strategy
	scheduler Scheduler
	evaluate  game.Evaluate
	metrics   metrics.Collector
}

func (sr *search) value(state game.State, ply int, alpha, beta float64) float64 {
	if sr.scheduler.Cutoff(state, ply) {
		return sr.leaf(state)
	}

	turn := sr.scheduler.Turn(ply)
	if turn.Maximizer {
		v, _ := sr.maxValue(state, turn, alpha, beta)
		return v
	}
	if sr.strategy == Expectimax {
		return sr.expValue(state, turn, alpha, beta)
	}
	return sr.minValue(state, turn, alpha, beta)
}

func (sr *search) leaf(state game.State) float64 {
	sr.metrics.AddEvaluation()
	return sr.evaluate(state)
}

func (sr *search) pruning() bool {
	return sr.strategy == AlphaBeta
}

func (sr *search) actions(state game.State, turn Turn) []game.Action {
	actions := state.LegalActions(turn.Agent)
	if len(actions) == 0 {
		panic(errors.Wrapf(ErrNoLegalActions, "agent %d at ply %d", turn.Agent, turn.Ply))
	}
	return actions
}

// maxValue keeps the first action with the strictly greatest value. Seeding
// from the first child rather than -Inf keeps an action even when every child
// is -Inf or NaN.
func (sr *search) maxValue(state game.State, turn Turn, alpha, beta float64) (float64, game.Action) {
	var best float64
	var bestAction game.Action
	for i, action := range sr.actions(state, turn) {
		child := state.Successor(turn.Agent, action)
		sr.metrics.AddNode()
		v := sr.value(child, turn.Next, alpha, beta)
		if i == 0 || v > best {
			best = v
			bestAction = action
		}
		if sr.pruning() {
			if best > beta { // The minimizer above already has something better
				sr.metrics.AddPrune()
				return best, bestAction
			}
			alpha = math.Max(alpha, best)
		}
	}
	return best, bestAction
}

func (sr *search) minValue(state game.State, turn Turn, alpha, beta float64) float64 {
	var best float64
	for i, action := range sr.actions(state, turn) {
		child := state.Successor(turn.Agent, action)
		sr.metrics.AddNode()
		v := sr.value(child, turn.Next, alpha, beta)
		if i == 0 || v < best {
			best = v
		}
		if sr.pruning() {
			if best < alpha { // The maximizer above already has something better
				sr.metrics.AddPrune()
				return best
			}
			beta = math.Min(beta, best)
		}
	}
	return best
}

func (sr *search) expValue(state game.State, turn Turn, alpha, beta float64) float64 {
	actions := sr.actions(state, turn)
	sum := 0.0
	for _, action := range actions {
		child := state.Successor(turn.Agent, action)
		sr.metrics.AddNode()
		sum += sr.value(child, turn.Next, alpha, beta)
	}
	return sum / float64(len(actions))
}
