package main

import (
	"context"
	"flag"
	"fmt"
	"morris/communication/client"
	"morris/communication/server"
	"morris/engine"
	"morris/experiments"
	"morris/meta"
	"morris/player"
	"morris/searcher"
	"morris/searcher/agent"
	"os"
	"os/signal"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "morris.yaml", "Path to the YAML configuration")
	mode := flag.String("mode", "selfplay", "One of selfplay, experiment, parallelism, serve, connect, agent")
	depth := flag.Int("depth", 0, "Search depth, overrides the configuration")
	goroutines := flag.Int("goroutines", 0, "Goroutines searching the root moves, overrides the configuration")
	addr := flag.String("addr", "", "Address to listen on or to connect to")
	gameID := flag.String("game", "default", "Online game id")
	flag.Parse()

	cfg, err := meta.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *depth > 0 {
		cfg.Depth = *depth
	}
	if *goroutines > 0 {
		cfg.Goroutines = *goroutines
	}
	if *addr != "" {
		cfg.Address = *addr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *mode, *gameID, cfg); err != nil {
		log.Error().Msgf("%s failed: %v", *mode, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, mode, gameID string, cfg meta.Config) error {
	switch mode {
	case "selfplay":
		return runSelfPlay(ctx, cfg)
	case "experiment":
		dir, err := experiments.RunDepthExperiment(ctx, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("Results written to %s\n", dir)
		return nil
	case "parallelism":
		dir, err := experiments.RunParallelismExperiment(ctx, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("Results written to %s\n", dir)
		return nil
	case "serve":
		return server.NewServer(server.WithMaxMoves(cfg.MaxMoves)).ListenAndServe(cfg.Address)
	case "connect":
		return connect(ctx, gameID, cfg)
	case "agent":
		return agent.StartAgentServer(cfg.Address, newSearchAgent(cfg))
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func newSearchAgent(cfg meta.Config) agent.Agent {
	return agent.NewSearchAgent(cfg.Depth,
		searcher.WithGoroutines(cfg.Goroutines),
		searcher.WithWeights(cfg.Weights),
	)
}

// runSelfPlay plays the configured search agent against itself.
func runSelfPlay(ctx context.Context, cfg meta.Config) error {
	e := engine.LocalEngine(newSearchAgent(cfg), newSearchAgent(cfg), engine.WithMaxMoves(cfg.MaxMoves))
	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(e.Game.Current().Render(termenv.EnvColorProfile()))
	fmt.Printf("Game over after %d moves in %s! Winner: %s\n", gameMetric.TotalMoves, gameMetric.Duration, winner)
	return nil
}

// connect joins an online game and plays it with the search agent.
func connect(ctx context.Context, gameID string, cfg meta.Config) error {
	peer, hello, err := client.Join(ctx, client.PlayURL(cfg.Address, gameID))
	if err != nil {
		return err
	}
	defer peer.Close()

	p, err := player.NewPlayer(peer, newSearchAgent(cfg), hello)
	if err != nil {
		return err
	}
	log.Info().Msgf("joined game %s as %s", hello.GameID, p.Color())

	end, err := p.Play(ctx)
	if err != nil {
		return err
	}
	fmt.Println(p.Current().Render(termenv.EnvColorProfile()))
	fmt.Printf("Game over (%s)! Winner: %s\n", end.Reason, end.Winner)
	return nil
}
