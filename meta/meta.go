// Package meta holds the defaults and the YAML configuration of the engine.
package meta

import (
	"errors"
	"fmt"
	"io/fs"
	"morris/game"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultDepth is the search depth used for analysis and bots.
const DefaultDepth = 3

// DefaultGoroutines searches sequentially.
const DefaultGoroutines = 1

// MaxMoves ends a local game as a draw after this many plies.
const MaxMoves = 300

// DefaultAddress is where the online mode listens.
const DefaultAddress = ":8080"

type ExperimentConfig struct {
	Games      int    `yaml:"games"` // Per match up
	Depths     []int  `yaml:"depths"`
	Goroutines []int  `yaml:"goroutines"`
	OutputDir  string `yaml:"output_dir"`
	Seed       uint64 `yaml:"seed"`
}

type Config struct {
	Depth      int              `yaml:"depth"`
	Goroutines int              `yaml:"goroutines"`
	MaxMoves   int              `yaml:"max_moves"`
	LogLevel   string           `yaml:"log_level"`
	Address    string           `yaml:"address"`
	Weights    game.Weights     `yaml:"weights"`
	Experiment ExperimentConfig `yaml:"experiment"`
}

func Default() Config {
	return Config{
		Depth:      DefaultDepth,
		Goroutines: DefaultGoroutines,
		MaxMoves:   MaxMoves,
		LogLevel:   zerolog.LevelInfoValue,
		Address:    DefaultAddress,
		Weights:    game.DefaultWeights(),
		Experiment: ExperimentConfig{
			Games:      10,
			Depths:     []int{1, 2, 3},
			Goroutines: []int{1, 2, 4, 8},
			OutputDir:  "experiments",
			Seed:       1,
		},
	}
}

// Load reads a YAML file over the defaults. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults; keys left out keep their default.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", c.Depth)
	}
	if c.Goroutines < 1 {
		return fmt.Errorf("goroutines must be at least 1, got %d", c.Goroutines)
	}
	if c.MaxMoves < 1 {
		return fmt.Errorf("max_moves must be at least 1, got %d", c.MaxMoves)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
