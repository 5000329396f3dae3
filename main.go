package main

import (
	"context"
	"os"
	"os/signal"

	"multiagent/config"
	"multiagent/engine"
	"multiagent/experiments"
	"multiagent/game/maze"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if cfg.Experiment {
		runExperiment(cfg)
		return
	}
	playGame(cfg)
}

func runExperiment(cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summaries, err := experiments.Run(ctx, cfg.ExperimentOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	for _, s := range summaries {
		log.Info().Msgf("%-10s depth %d: won %d of %d (%.0f%%), score %.1f ± %.1f, %.1f moves, %.0f nodes and %s per move",
			s.Config.Strategy, s.Config.Depth, s.Wins, s.Games, 100*s.WinRate, s.MeanScore, s.StdScore, s.MeanMoves, s.MeanNodes, s.MeanDuration)
	}
}

func playGame(cfg *config.Config) {
	layout, err := maze.LoadLayout(cfg.Layout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load layout")
	}
	agents, err := experiments.NewAgents(layout, cfg.AgentConfig(), cfg.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create agents")
	}

	state := maze.NewState(layout)
	log.Info().Msgf("playing %s with %s at depth %d:\n%s", layout.Name, cfg.Strategy, cfg.Depth, state)

	e, err := engine.LocalEngine(state, agents, cfg.MaxMoves)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create engine")
	}
	gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}

	nodes := 0
	for _, mm := range moveMetrics {
		nodes += mm.Nodes
	}
	log.Info().Msgf("%s after %d moves in %s, %d nodes searched:\n%s",
		gameMetric.Outcome, gameMetric.TotalMoves, gameMetric.Duration, nodes, e.State)
}
