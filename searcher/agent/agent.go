package agent

import (
	"context"
	"errors"
	"morris/experiments/metrics"
	"morris/game"
)

var ErrNoMoves = errors.New("no legal move")

type Agent interface {
	// FindMove returns the move to play in p and the metrics of the search (if collected)
	FindMove(ctx context.Context, p game.Position) (game.Move, metrics.SearchMetric, error)
}
