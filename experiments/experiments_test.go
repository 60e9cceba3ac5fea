package experiments

import (
	"context"
	"encoding/csv"
	"morris/meta"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func testConfig(t *testing.T) meta.Config {
	cfg := meta.Default()
	cfg.MaxMoves = 12
	cfg.Experiment.Games = 2
	cfg.Experiment.Depths = []int{1}
	cfg.Experiment.Goroutines = []int{1, 2}
	cfg.Experiment.OutputDir = t.TempDir()
	return cfg
}

func TestRunDepthExperiment(t *testing.T) {
	dir, err := RunDepthExperiment(context.Background(), testConfig(t))
	require.NoError(t, err)

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Len(t, configs, 3, "header, baseline and one search agent")

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 3)
	require.Equal(t, []string{"1", "0"}, games[1][1:3], "search agent plays green first")
	require.Equal(t, []string{"0", "1"}, games[2][1:3], "sides alternate")

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.Len(t, moves, 1+2*12, "every game reaches the move limit during placement")
}

func TestRunParallelismExperiment(t *testing.T) {
	cfg := testConfig(t)
	cfg.Depth = 1
	dir, err := RunParallelismExperiment(context.Background(), cfg)
	require.NoError(t, err)

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Equal(t, []string{"2", "1", "2", "0"}, configs[2])

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 1+2*2)
}

func TestRunExperimentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunDepthExperiment(ctx, testConfig(t))
	require.ErrorIs(t, err, context.Canceled)
}
