package experiments

import (
	"context"
	"morris/experiments/metrics"
	"morris/meta"
)

// RunParallelismExperiment measures search throughput per goroutine count.
// Each matchup uses the same config for both players. Parallel agents race on
// the shared cache, so their games vary from run to run.
func RunParallelismExperiment(ctx context.Context, cfg meta.Config) (string, error) {
	depth := cfg.Depth
	if depth == 0 {
		depth = meta.DefaultDepth
	}

	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for i, goroutines := range cfg.Experiment.Goroutines {
		config := metrics.AgentConfig{ID: i + 1, Depth: depth, Goroutines: goroutines}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	return runExperiment(ctx, "parallelism", cfg, configs, matchUps)
}
