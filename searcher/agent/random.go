package agent

import (
	"context"
	"morris/experiments/metrics"
	"morris/game"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays a uniformly random legal move.
// The same seed replays the same choices.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(ctx context.Context, p game.Position) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	moves := p.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, ErrNoMoves
	}

	a.mu.Lock()
	move := moves[a.rng.Intn(len(moves))]
	a.mu.Unlock()
	return move, metrics.SearchMetric{Goroutines: 1, Duration: time.Since(start)}, nil
}
