package searcher

import (
	"context"
	"fmt"
	"morris/experiments/metrics"
	"morris/game"
	"slices"

	"golang.org/x/sync/errgroup"
)

type Option func(s *Solver)

// Result is the outcome of a search. Line is in play order: Line[0] is the
// move to play now.
type Result struct {
	Score   game.Score
	Line    []game.Move
	Metrics metrics.SearchMetric
}

// BestMove returns the first move of the line, if any.
func (r Result) BestMove() (game.Move, bool) {
	if len(r.Line) == 0 {
		return game.Move{From: game.NoPoint, To: game.NoPoint}, false
	}
	return r.Line[0], true
}

// Solver runs depth-bounded searches where each side picks the continuation
// that maximises its own score. A Solver runs one search at a time; several
// solvers may share a Cache.
type Solver struct {
	cache      *Cache
	weights    game.Weights
	goroutines int
	metrics    metrics.Collector
}

func WithCache(cache *Cache) Option {
	return func(s *Solver) {
		if cache != nil {
			s.cache = cache
		}
	}
}

func WithWeights(weights game.Weights) Option {
	return func(s *Solver) {
		s.weights = weights
	}
}

// WithGoroutines explores the root candidates concurrently. Results are not
// reproducible with more than one goroutine, see solveRoot.
func WithGoroutines(goroutines int) Option {
	return func(s *Solver) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

func WithMetrics() Option {
	return func(s *Solver) {
		s.metrics = metrics.NewCollector()
	}
}

func NewSolver(options ...Option) *Solver {
	s := &Solver{ // Default values
		weights:    game.DefaultWeights(),
		goroutines: 1,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.cache == nil {
		s.cache = NewCache()
	}
	return s
}

func (s *Solver) Cache() *Cache {
	return s.cache
}

type candidate struct {
	move  game.Move
	score game.Score
	line  []game.Move // Deepest move first
}

// Solve searches p to the given depth. It returns ctx.Err() when cancelled;
// cache writes made before cancellation are kept.
func (s *Solver) Solve(ctx context.Context, p game.Position, depth int) (Result, error) {
	if depth < 0 {
		return Result{}, fmt.Errorf("search depth must not be negative, got %d", depth)
	}

	s.metrics.Start(s.goroutines, depth)
	var (
		score game.Score
		line  []game.Move
		err   error
	)
	if s.goroutines > 1 {
		score, line, err = s.solveRoot(ctx, p, depth)
	} else {
		score, line, err = s.solve(ctx, p, depth)
	}
	metric := s.metrics.Complete()
	if err != nil {
		return Result{Metrics: metric}, err
	}

	slices.Reverse(line)
	return Result{Score: score, Line: line, Metrics: metric}, nil
}

func (s *Solver) solve(ctx context.Context, p game.Position, depth int) (game.Score, []game.Move, error) {
	if depth == 0 || p.GameEnded() {
		s.metrics.AddLeaf()
		return p.EvaluateWith(s.weights, depth), nil, nil
	}

	moves := s.generateMoves(p, depth)
	candidates := make([]candidate, 0, len(moves))
	for _, move := range moves {
		if err := ctx.Err(); err != nil {
			return game.Score{}, nil, err
		}
		score, line, err := s.solve(ctx, p.Apply(move), depth-1)
		if err != nil {
			return game.Score{}, nil, err
		}
		candidates = append(candidates, candidate{move: move, score: score, line: line})
	}
	score, line := s.choose(p.ToMove, depth, candidates)
	return score, line, nil
}

// solveRoot is solve with the root candidates spread over goroutines. The
// branches race on the shared cache: whichever reaches a transposition first
// searches it and the other sees it as covered. From depth 3 on the chosen
// line can therefore differ from the sequential search and between runs.
func (s *Solver) solveRoot(ctx context.Context, p game.Position, depth int) (game.Score, []game.Move, error) {
	if depth == 0 || p.GameEnded() {
		s.metrics.AddLeaf()
		return p.EvaluateWith(s.weights, depth), nil, nil
	}

	moves := s.generateMoves(p, depth)
	candidates := make([]candidate, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.goroutines)
	for i, move := range moves {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			score, line, err := s.solve(gctx, p.Apply(move), depth-1)
			if err != nil {
				return err
			}
			candidates[i] = candidate{move: move, score: score, line: line}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return game.Score{}, nil, err
	}

	score, line := s.choose(p.ToMove, depth, candidates)
	return score, line, nil
}

func (s *Solver) generateMoves(p game.Position, depth int) []game.Move {
	moves, lookup := s.cache.GenerateMoves(p, depth, false)
	s.metrics.AddNode()
	switch lookup {
	case Revisit:
		s.metrics.AddRevisit()
	case Covered:
		s.metrics.AddCovered()
	}
	return moves
}

// choose drops candidates whose continuation was cut short by the cache and
// returns the first one with the highest score for the mover. Without any
// candidate the mover has lost.
func (s *Solver) choose(mover game.Color, depth int, candidates []candidate) (game.Score, []game.Move) {
	var (
		best  game.Score
		line  []game.Move
		found bool
	)
	for _, c := range candidates {
		if len(c.line) == 0 && depth != 1 {
			s.metrics.AddSkipped()
			continue
		}
		if !found || c.score.Of(mover) > best.Of(mover) {
			best = c.score
			line = append(c.line, c.move)
			found = true
		}
	}
	if !found {
		return game.LossFor(mover), nil
	}
	return best, line
}
