package experiments

import (
	"context"
	"multiagent/engine"
	"multiagent/experiments/metrics"
	"multiagent/game/maze"
	"multiagent/searcher"
	"multiagent/searcher/agent"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

const (
	NumGames = 30 // Per agent config
	Name     = "strategies"
)

type Options struct {
	Layout     string
	Games      int
	Goroutines int    // Games played at once, defaults to GOMAXPROCS
	Seed       uint64 // Ghosts of game i are seeded from Seed+i for every config
	MaxMoves   int
	OutputDir  string // CSVs are skipped when empty
	Configs    []metrics.AgentConfig
}

// Summary aggregates the games of one agent config.
type Summary struct {
	Config       metrics.AgentConfig
	Games        int
	Wins         int
	WinRate      float64
	MeanScore    float64
	StdScore     float64
	MeanMoves    float64
	MeanNodes    float64 // Per searched move
	MeanDuration time.Duration
}

// StrategyConfigs returns one config per search strategy at the same depth, so
// the strategies can be compared on identical games.
func StrategyConfigs(depth int, evaluator string) []metrics.AgentConfig {
	strategies := []searcher.Strategy{searcher.Minimax, searcher.AlphaBeta, searcher.Expectimax}
	return lo.Map(strategies, func(s searcher.Strategy, i int) metrics.AgentConfig {
		return metrics.AgentConfig{ID: i + 1, Strategy: s.String(), Depth: depth, Evaluator: evaluator}
	})
}

// Run plays opts.Games games for every config against random ghosts, writes
// the records to opts.OutputDir and returns a summary per config.
func Run(ctx context.Context, opts Options) ([]Summary, error) {
	layout, err := maze.LoadLayout(opts.Layout)
	if err != nil {
		return nil, err
	}
	if len(opts.Configs) == 0 {
		return nil, errors.New("no agent configs")
	}
	for _, config := range opts.Configs {
		if _, err := NewAgents(layout, config, opts.Seed); err != nil {
			return nil, errors.Wrapf(err, "agent config %d", config.ID)
		}
	}
	if opts.Games <= 0 {
		opts.Games = NumGames
	}
	if opts.Goroutines <= 0 {
		opts.Goroutines = runtime.GOMAXPROCS(0)
	}

	total := len(opts.Configs) * opts.Games
	gameRecords := make([]metrics.GameRecord, total)
	moveRecords := make([][]metrics.MoveRecord, total)

	log.Info().Msgf("starting %s experiment on %s with %d games per config...", Name, opts.Layout, opts.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Goroutines)
	for ci, config := range opts.Configs {
		config := config // per-iteration copy (Go 1.22 loop semantics on a go1.21 toolchain)
		for i := 0; i < opts.Games; i++ {
			id := ci*opts.Games + i + 1
			seed := opts.Seed + uint64(i)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				gameMetric, moveMetrics, err := runGame(layout, config, seed, opts.MaxMoves)
				if err != nil {
					return errors.Wrapf(err, "game %d", id)
				}

				gameRecords[id-1] = metrics.GameRecord{
					ID:         id,
					Agent:      config.ID,
					Layout:     layout.Name,
					Seed:       seed,
					GameMetric: gameMetric,
				}
				moveRecords[id-1] = lo.Map(moveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
					return metrics.MoveRecord{Game: id, MoveMetric: mm}
				})

				log.Info().Msgf("completed game %d of %d (agent %d %s depth %d): %s with score %.0f",
					id, total, config.ID, config.Strategy, config.Depth, gameMetric.Outcome, gameMetric.Score)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s experiment", Name)

	moves := lo.Flatten(moveRecords)
	if opts.OutputDir != "" {
		if err := write(opts.OutputDir, opts.Configs, gameRecords, moves); err != nil {
			return nil, err
		}
	}
	return Summarize(opts.Configs, gameRecords, moves), nil
}

func newSearcher(config metrics.AgentConfig) (*searcher.Searcher, error) {
	strategy, err := searcher.ParseStrategy(config.Strategy)
	if err != nil {
		return nil, err
	}
	evaluate, err := maze.ParseEvaluator(config.Evaluator)
	if err != nil {
		return nil, err
	}
	return searcher.New(
		searcher.WithStrategy(strategy),
		searcher.WithDepth(config.Depth),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithMetrics(),
	)
}

// NewAgents seats the agent described by config as the runner and random
// ghosts seeded from seed in the other seats. A config whose strategy is
// agent.Reflex gets the one-step reflex agent instead of a searcher.
func NewAgents(layout *maze.Layout, config metrics.AgentConfig, seed uint64) ([]agent.Agent, error) {
	agents := make([]agent.Agent, layout.NumAgents())
	if config.Strategy == agent.Reflex {
		agents[maze.RunnerIndex] = agent.NewReflexAgent(maze.ReflexEvaluate, seed)
	} else {
		s, err := newSearcher(config)
		if err != nil {
			return nil, err
		}
		agents[maze.RunnerIndex] = agent.NewSearchAgent(s)
	}
	for i := 1; i < len(agents); i++ {
		agents[i] = agent.NewRandomAgent(seed*uint64(len(agents)) + uint64(i))
	}
	return agents, nil
}

func runGame(layout *maze.Layout, config metrics.AgentConfig, seed uint64, maxMoves int) (metrics.GameMetric, []metrics.MoveMetric, error) {
	agents, err := NewAgents(layout, config, seed)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	e, err := engine.LocalEngine(maze.NewState(layout), agents, maxMoves)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	return e.Run()
}

func write(dir string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(dir, Name)
	if err != nil {
		return errors.Wrap(err, "failed to create experiment writer")
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return err
	}
	log.Info().Msgf("wrote experiment records to %s", writer.Dir())
	return nil
}

// Summarize groups the records by agent config. Node counts only cover the
// moves of the searching agent.
func Summarize(configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) []Summary {
	gamesByConfig := lo.GroupBy(games, func(r metrics.GameRecord) int { return r.Agent })
	configByGame := lo.SliceToMap(games, func(r metrics.GameRecord) (int, int) { return r.ID, r.Agent })
	movesByConfig := lo.GroupBy(
		lo.Filter(moves, func(r metrics.MoveRecord, _ int) bool { return r.Agent == maze.RunnerIndex }),
		func(r metrics.MoveRecord) int { return configByGame[r.Game] },
	)

	summaries := make([]Summary, len(configs))
	for i, config := range configs {
		records := gamesByConfig[config.ID]
		summary := Summary{Config: config, Games: len(records)}
		if len(records) == 0 {
			summaries[i] = summary
			continue
		}

		summary.Wins = lo.CountBy(records, func(r metrics.GameRecord) bool { return r.Outcome == metrics.Win })
		summary.WinRate = float64(summary.Wins) / float64(len(records))
		scores := lo.Map(records, func(r metrics.GameRecord, _ int) float64 { return r.Score })
		summary.MeanScore, summary.StdScore = stat.MeanStdDev(scores, nil)
		summary.MeanMoves = stat.Mean(lo.Map(records, func(r metrics.GameRecord, _ int) float64 { return float64(r.TotalMoves) }), nil)

		if searched := movesByConfig[config.ID]; len(searched) > 0 {
			summary.MeanNodes = stat.Mean(lo.Map(searched, func(r metrics.MoveRecord, _ int) float64 { return float64(r.Nodes) }), nil)
			durations := lo.Map(searched, func(r metrics.MoveRecord, _ int) float64 { return float64(r.Duration) })
			summary.MeanDuration = time.Duration(stat.Mean(durations, nil))
		}
		summaries[i] = summary
	}
	return summaries
}
