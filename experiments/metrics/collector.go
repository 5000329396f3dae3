package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Strategy    string
	Depth       int
	Duration    time.Duration
	Nodes       int // Successor states generated
	Evaluations int // Evaluator calls at cutoff nodes
	Prunes      int // Sibling lists cut short by alpha-beta
	Value       float64
}

type MoveMetric struct {
	Step   int
	Agent  int
	Action string
	SearchMetric
}

type GameMetric struct {
	Outcome    Outcome
	Score      float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Outcome string

const (
	Win        Outcome = "win"
	Lose       Outcome = "lose"
	Unfinished Outcome = "unfinished"
)

// Collector gathers the statistics of a single search. Implementations are
// safe for concurrent use.
type Collector interface {
	Start(strategy string, depth int)
	AddNode()
	AddEvaluation()
	AddPrune()
	Complete(value float64) SearchMetric
}

type collector struct {
	strategy    string
	depth       int
	startTime   time.Time
	nodes       atomic.Int64
	evaluations atomic.Int64
	prunes      atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string, depth int) {
	m.startTime = time.Now()
	m.strategy = strategy
	m.depth = depth
	m.nodes.Store(0)
	m.evaluations.Store(0)
	m.prunes.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddPrune() {
	m.prunes.Add(1)
}

func (m *collector) Complete(value float64) SearchMetric {
	return SearchMetric{
		Strategy:    m.strategy,
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Evaluations: int(m.evaluations.Load()),
		Prunes:      int(m.prunes.Load()),
		Value:       value,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string, depth int)    {}
func (m *dummyCollector) AddNode()                            {}
func (m *dummyCollector) AddEvaluation()                      {}
func (m *dummyCollector) AddPrune()                           {}
func (m *dummyCollector) Complete(value float64) SearchMetric { return SearchMetric{Value: value} }
