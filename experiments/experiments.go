package experiments

import (
	"context"
	"fmt"
	"morris/engine"
	"morris/experiments/metrics"
	"morris/game"
	"morris/meta"
	"morris/searcher"
	"morris/searcher/agent"

	"github.com/rs/zerolog/log"
)

// RunDepthExperiment plays a search agent per configured depth against a
// random baseline and returns the directory holding the records.
func RunDepthExperiment(ctx context.Context, cfg meta.Config) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: 0, Goroutines: 1, Seed: cfg.Experiment.Seed}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, depth := range cfg.Experiment.Depths {
		config := metrics.AgentConfig{ID: i + 1, Depth: depth, Goroutines: cfg.Goroutines}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline})
	}

	return runExperiment(ctx, "depth", cfg, configs, matchUps)
}

func runExperiment(ctx context.Context, name string, cfg meta.Config, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	numGames := cfg.Experiment.Games

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < numGames; i++ {
			// Alternate the side each agent plays
			green, blue := matchup[0], matchup[1]
			if i%2 == 1 {
				green, blue = blue, green
			}

			winner, gameMetric, moveMetrics, err := runGame(ctx, cfg, green, blue, uint64(count))
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Green:      green.ID,
				Blue:       blue.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(cfg.Experiment.OutputDir, name)
	if err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	log.Info().Msgf("stored %d games and %d moves in %s", len(gameRecords), len(moveRecords), writer.Dir())
	return writer.Dir(), nil
}

// runGame plays a single game between two agent configs
func runGame(ctx context.Context, cfg meta.Config, green, blue metrics.AgentConfig, index uint64) (game.Color, metrics.GameMetric, []metrics.MoveMetric, error) {
	e := engine.LocalEngine(
		createAgent(green, cfg, index),
		createAgent(blue, cfg, index),
		engine.WithMaxMoves(cfg.MaxMoves),
	)
	return e.Run(ctx)
}

// createAgent builds a random agent for depth 0, a search agent otherwise.
func createAgent(config metrics.AgentConfig, cfg meta.Config, index uint64) agent.Agent {
	if config.Depth == 0 {
		return agent.NewRandomAgent(config.Seed + index)
	}

	options := []searcher.Option{
		searcher.WithWeights(cfg.Weights),
		searcher.WithMetrics(),
	}
	if config.Goroutines > 1 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	return agent.NewSearchAgent(config.Depth, options...)
}
