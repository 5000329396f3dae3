package config

import (
	"strings"

	"multiagent/experiments"
	"multiagent/experiments/metrics"
	"multiagent/game/maze"
	"multiagent/searcher"
	"multiagent/searcher/agent"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables, e.g. MULTIAGENT_MAX_MOVES.
const EnvPrefix = "MULTIAGENT"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Strategy   string
	Depth      int
	Evaluator  string
	Layout     string
	Games      int
	Goroutines int
	Seed       uint64
	MaxMoves   int
	OutputDir  string
	Experiment bool
	Debug      bool
}

// Load reads the config from args, then the environment, then the YAML file
// named by --config, falling back to the flag defaults.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("multiagent", pflag.ContinueOnError)
	fs.String("config", "", "YAML config file")
	fs.String("strategy", searcher.Minimax.String(), "runner strategy: minimax, alphabeta, expectimax or reflex")
	fs.Int("depth", searcher.DefaultDepth, "search depth in rounds of moves")
	fs.String("evaluator", "better", "evaluation function: "+strings.Join(maze.EvaluatorNames(), ", "))
	fs.String("layout", "small", "layout: "+strings.Join(maze.LayoutNames(), ", "))
	fs.Int("games", experiments.NumGames, "games per strategy in the experiment")
	fs.Int("goroutines", 0, "games played at once, 0 uses every CPU")
	fs.Uint64("seed", 1, "seed of the ghosts")
	fs.Int("max-moves", 1000, "moves before a game is abandoned")
	fs.String("output-dir", "results", "directory for experiment CSVs, empty to skip them")
	fs.Bool("experiment", false, "compare every strategy instead of playing one game")
	fs.Bool("debug", false, "log every search and move")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "failed to parse flags")
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "failed to bind flags")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	c := &Config{
		Strategy:   strings.ToLower(v.GetString("strategy")),
		Depth:      v.GetInt("depth"),
		Evaluator:  v.GetString("evaluator"),
		Layout:     v.GetString("layout"),
		Games:      v.GetInt("games"),
		Goroutines: v.GetInt("goroutines"),
		Seed:       v.GetUint64("seed"),
		MaxMoves:   v.GetInt("max-moves"),
		OutputDir:  v.GetString("output-dir"),
		Experiment: v.GetBool("experiment"),
		Debug:      v.GetBool("debug"),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Strategy != agent.Reflex {
		strategy, err := searcher.ParseStrategy(c.Strategy)
		if err != nil {
			return err
		}
		c.Strategy = strategy.String()
	}
	if c.Depth < 0 {
		return errors.Wrapf(searcher.ErrInvalidDepth, "%d", c.Depth)
	}
	if !lo.Contains(maze.EvaluatorNames(), c.Evaluator) {
		return errors.Wrapf(maze.ErrUnknownEvaluator, "%q", c.Evaluator)
	}
	if !lo.Contains(maze.LayoutNames(), c.Layout) {
		return errors.Wrapf(maze.ErrUnknownLayout, "%q", c.Layout)
	}
	if c.Games < 1 {
		return errors.Wrapf(ErrInvalidConfig, "games must be positive, got %d", c.Games)
	}
	if c.Goroutines < 0 {
		return errors.Wrapf(ErrInvalidConfig, "goroutines must not be negative, got %d", c.Goroutines)
	}
	if c.MaxMoves < 1 {
		return errors.Wrapf(ErrInvalidConfig, "max-moves must be positive, got %d", c.MaxMoves)
	}
	return nil
}

// AgentConfig describes the configured runner.
func (c *Config) AgentConfig() metrics.AgentConfig {
	return metrics.AgentConfig{ID: 1, Strategy: c.Strategy, Depth: c.Depth, Evaluator: c.Evaluator}
}

// ExperimentOptions compares every search strategy at the configured depth.
func (c *Config) ExperimentOptions() experiments.Options {
	return experiments.Options{
		Layout:     c.Layout,
		Games:      c.Games,
		Goroutines: c.Goroutines,
		Seed:       c.Seed,
		MaxMoves:   c.MaxMoves,
		OutputDir:  c.OutputDir,
		Configs:    experiments.StrategyConfigs(c.Depth, c.Evaluator),
	}
}
