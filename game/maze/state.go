package maze

import (
	"fmt"
	"multiagent/game"
	"strings"

	"github.com/samber/lo"
)

// Scoring rules
const (
	TimePenalty  = 1.0
	FoodScore    = 10.0
	GhostScore   = 200.0
	WinScore     = 500.0
	LoseScore    = 500.0
	ScaredMoves  = 40 // Ghost moves a capsule keeps ghosts scared
	RunnerIndex  = 0
	firstGhostID = 1
)

type ghost struct {
	pos    Position
	dir    Direction // Last move, for the no-reverse rule
	scared int
}

// State is an immutable snapshot of a maze game. Agent 0 is the runner, agents
// 1..n are the ghosts.
type State struct {
	layout   *Layout
	food     []bool // Indexed like the layout walls; copied on write
	numFood  int
	capsules []Position
	runner   Position
	ghosts   []ghost
	score    float64
	win      bool
	lose     bool
}

var _ game.State = (*State)(nil)
var _ game.Scorer = (*State)(nil)

// NewState returns the starting state of layout.
func NewState(layout *Layout) *State {
	s := &State{
		layout:   layout,
		food:     make([]bool, layout.Width*layout.Height),
		numFood:  len(layout.Food),
		capsules: append([]Position(nil), layout.Capsules...),
		runner:   layout.Runner,
		ghosts:   make([]ghost, len(layout.Ghosts)),
	}
	for _, p := range layout.Food {
		s.food[layout.index(p)] = true
	}
	for i, p := range layout.Ghosts {
		s.ghosts[i] = ghost{pos: p, dir: Stop}
	}
	return s
}

func (s *State) NumAgents() int {
	return 1 + len(s.ghosts)
}

func (s *State) IsWin() bool {
	return s.win
}

func (s *State) IsLose() bool {
	return s.lose
}

func (s *State) Score() float64 {
	return s.score
}

func (s *State) Layout() *Layout {
	return s.layout
}

func (s *State) Runner() Position {
	return s.runner
}

func (s *State) NumFood() int {
	return s.numFood
}

// Food lists the remaining food in row-major order.
func (s *State) Food() []Position {
	food := make([]Position, 0, s.numFood)
	for i, ok := range s.food {
		if ok {
			food = append(food, Position{i % s.layout.Width, i / s.layout.Width})
		}
	}
	return food
}

func (s *State) HasFood(p Position) bool {
	return !s.layout.IsWall(p) && s.food[s.layout.index(p)]
}

func (s *State) Capsules() []Position {
	return append([]Position(nil), s.capsules...)
}

func (s *State) GhostPositions() []Position {
	return lo.Map(s.ghosts, func(g ghost, _ int) Position { return g.pos })
}

// ScaredTimers returns, per ghost, how many more ghost moves it stays scared.
func (s *State) ScaredTimers() []int {
	return lo.Map(s.ghosts, func(g ghost, _ int) int { return g.scared })
}

// LegalActions returns the moves of agent: the runner may move to any open
// neighbour or stop, ghosts never stop and only turn back at dead ends.
// Terminal states have no legal actions.
func (s *State) LegalActions(agent int) []game.Action {
	if s.win || s.lose {
		return nil
	}
	if agent == RunnerIndex {
		actions := make([]game.Action, 0, len(directions)+1)
		for _, d := range directions {
			if !s.layout.IsWall(s.runner.Move(d)) {
				actions = append(actions, d)
			}
		}
		return append(actions, Stop)
	}

	g := s.ghost(agent)
	open := lo.Filter(directions, func(d Direction, _ int) bool {
		return !s.layout.IsWall(g.pos.Move(d))
	})
	if len(open) > 1 {
		open = lo.Without(open, g.dir.Reverse())
	}
	return lo.Map(open, func(d Direction, _ int) game.Action { return d })
}

func (s *State) ghost(agent int) ghost {
	if agent < firstGhostID || agent > len(s.ghosts) {
		panic(fmt.Sprintf("no agent %d in a maze with %d ghosts", agent, len(s.ghosts)))
	}
	return s.ghosts[agent-firstGhostID]
}

// Successor returns the state after agent plays action. The receiver is left untouched.
func (s *State) Successor(agent int, action game.Action) game.State {
	if s.win || s.lose {
		panic("cannot move in a finished game")
	}
	d, ok := action.(Direction)
	if !ok {
		panic(fmt.Sprintf("unexpected action type %T", action))
	}

	next := s.copy()
	if agent == RunnerIndex {
		next.moveRunner(d)
	} else {
		next.moveGhost(agent-firstGhostID, d)
	}
	return next
}

// copy shares the food grid and capsules, which are copied when changed.
func (s *State) copy() *State {
	next := *s
	next.ghosts = append([]ghost(nil), s.ghosts...)
	return &next
}

func (s *State) moveRunner(d Direction) {
	to := s.runner.Move(d)
	if s.layout.IsWall(to) {
		panic(fmt.Sprintf("runner cannot move %s from %v", d, s.runner))
	}
	s.runner = to
	s.score -= TimePenalty

	if i := s.layout.index(to); s.food[i] {
		s.food = append([]bool(nil), s.food...)
		s.food[i] = false
		s.numFood--
		s.score += FoodScore
		if s.numFood == 0 {
			s.score += WinScore
			s.win = true
			return
		}
	}

	if lo.Contains(s.capsules, to) {
		s.capsules = lo.Without(s.capsules, to)
		for i := range s.ghosts {
			s.ghosts[i].scared = ScaredMoves
		}
	}

	for i := range s.ghosts {
		s.collide(i)
	}
}

func (s *State) moveGhost(i int, d Direction) {
	g := &s.ghosts[i]
	to := g.pos.Move(d)
	if d == Stop || s.layout.IsWall(to) {
		panic(fmt.Sprintf("ghost %d cannot move %s from %v", i+firstGhostID, d, g.pos))
	}
	g.pos = to
	g.dir = d
	if g.scared > 0 {
		g.scared--
	}
	s.collide(i)
}

// collide resolves the runner and ghost i sharing a cell: a scared ghost is
// eaten and sent back to its start, otherwise the runner loses.
func (s *State) collide(i int) {
	g := &s.ghosts[i]
	if s.lose || g.pos != s.runner {
		return
	}
	if g.scared > 0 {
		s.score += GhostScore
		*g = ghost{pos: s.layout.Ghosts[i], dir: Stop}
		return
	}
	s.score -= LoseScore
	s.lose = true
}

// String draws the grid; scared ghosts are drawn in lower case.
func (s *State) String() string {
	var sb strings.Builder
	for y := 0; y < s.layout.Height; y++ {
		for x := 0; x < s.layout.Width; x++ {
			sb.WriteByte(s.cell(Position{x, y}))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "score=%.0f food=%d", s.score, s.numFood)
	return sb.String()
}

func (s *State) cell(p Position) byte {
	for _, g := range s.ghosts {
		if g.pos == p {
			if g.scared > 0 {
				return 'g'
			}
			return 'G'
		}
	}
	switch {
	case p == s.runner:
		return 'P'
	case s.layout.IsWall(p):
		return '%'
	case s.HasFood(p):
		return '.'
	case lo.Contains(s.capsules, p):
		return 'o'
	default:
		return ' '
	}
}
