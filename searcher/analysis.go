package searcher

import (
	"context"
	"morris/game"
	"sync"

	"github.com/rs/zerolog/log"
)

// Outcome is delivered once per analysis run.
type Outcome struct {
	Result Result
	Err    error
}

// Analysis runs one background search at a time over a solver. Starting a
// new run cancels the previous one.
type Analysis struct {
	solver *Solver

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	dirty  bool // A search ran since the last reset
}

func NewAnalysis(solver *Solver) *Analysis {
	if solver == nil {
		solver = NewSolver()
	}
	return &Analysis{solver: solver}
}

func (a *Analysis) Solver() *Solver {
	return a.solver
}

// Start searches p in a goroutine. The returned channel yields exactly one
// Outcome and is then closed.
func (a *Analysis) Start(ctx context.Context, p game.Position, depth int) <-chan Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	out := make(chan Outcome, 1)
	a.cancel = cancel
	a.done = done
	a.dirty = true

	go func() {
		defer close(done)
		defer cancel()

		result, err := a.solver.Solve(ctx, p, depth)
		if err != nil {
			log.Debug().Msgf("analysis at depth %d stopped: %v", depth, err)
		}
		out <- Outcome{Result: result, Err: err}
		close(out)
	}()
	return out
}

// Stop cancels the running search, if any, and waits for it to return.
func (a *Analysis) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()
}

// Reset stops the running search and zeroes the depths in the cache, so the
// next run explores from scratch. Move lists are kept.
func (a *Analysis) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()
	if a.dirty {
		a.solver.Cache().ResetDepths()
		a.dirty = false
	}
}

// BestContinuation runs a search and waits for its outcome.
func (a *Analysis) BestContinuation(ctx context.Context, p game.Position, depth int) (Result, error) {
	outcome := <-a.Start(ctx, p, depth)
	return outcome.Result, outcome.Err
}

func (a *Analysis) stopLocked() {
	if a.cancel == nil {
		return
	}
	a.cancel()
	<-a.done
	a.cancel = nil
	a.done = nil
}
