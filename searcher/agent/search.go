package agent

import (
	"context"
	"morris/experiments/metrics"
	"morris/game"
	"morris/searcher"

	"github.com/rs/zerolog/log"
)

type searchAgent struct {
	solver *searcher.Solver
	depth  int
}

// NewSearchAgent returns an agent that plays the first move of the best line
// found at the given depth.
func NewSearchAgent(depth int, options ...searcher.Option) Agent {
	return &searchAgent{
		solver: searcher.NewSolver(options...),
		depth:  depth,
	}
}

func (a *searchAgent) FindMove(ctx context.Context, p game.Position) (game.Move, metrics.SearchMetric, error) {
	// Every real move changes the root, so stored depths no longer apply
	a.solver.Cache().ResetDepths()

	result, err := a.solver.Solve(ctx, p, a.depth)
	if err != nil {
		return game.Move{}, result.Metrics, err
	}
	if move, ok := result.BestMove(); ok {
		return move, result.Metrics, nil
	}

	moves := p.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, result.Metrics, ErrNoMoves
	}
	log.Debug().Msgf("search at depth %d found no line for %s, playing %s", a.depth, p.ToMove, moves[0])
	return moves[0], result.Metrics, nil
}
