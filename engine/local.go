package engine

import (
	"context"
	"fmt"
	"morris/experiments/metrics"
	"morris/game"
	"morris/gamemaster"
	"morris/meta"
	"morris/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

func WithMaxMoves(maxMoves int) Option {
	return func(e *Local) {
		if maxMoves > 0 {
			e.maxMoves = maxMoves
		}
	}
}

// WithPosition starts the game from p.
func WithPosition(p game.Position) Option {
	return func(e *Local) {
		e.start = p
	}
}

// Local plays two agents against each other in process.
type Local struct {
	Game     *gamemaster.Game
	agents   map[game.Color]agent.Agent
	start    game.Position
	maxMoves int
}

func LocalEngine(green, blue agent.Agent, options ...Option) *Local {
	if green == nil || blue == nil {
		panic("need an agent for each side")
	}
	e := &Local{
		agents:   map[game.Color]agent.Agent{game.Green: green, game.Blue: blue},
		start:    game.StartPosition(),
		maxMoves: meta.MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	e.Game = gamemaster.NewGame(gamemaster.WithPosition(e.start), gamemaster.WithDepth(0))
	return e
}

// Run executes the game loop until a side loses or the move limit is hit.
// A draw has winner game.Empty.
func (e *Local) Run(ctx context.Context) (game.Color, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Game.Current().ToMove.String(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", gameMetric.StartingPlayer)

	step := 0
	for !e.Game.Over() && step < e.maxMoves {
		p := e.Game.Current()

		move, searchMetric, err := e.agents[p.ToMove].FindMove(ctx, p)
		if err != nil {
			return game.Empty, gameMetric, moveMetrics, fmt.Errorf("%s failed to find a move: %w", p.ToMove, err)
		}
		if err := e.Game.Play(move); err != nil {
			log.Warn().Msgf("%s returned %s: %v, playing the first legal move", p.ToMove, move, err)
			move = p.LegalMoves()[0]
			if err := e.Game.Play(move); err != nil {
				return game.Empty, gameMetric, moveMetrics, err
			}
		}

		step++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       p.ToMove.String(),
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("move %d: %s played %s", step, p.ToMove, move)
	}

	winner := e.Game.Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	if winner != game.Empty {
		gameMetric.Winner = winner.String()
		log.Info().Msgf("game ended after %d moves, winner: %s", step, winner)
	} else {
		log.Info().Msgf("stopped after %d moves (no winner)", step)
	}
	return winner, gameMetric, moveMetrics, nil
}
