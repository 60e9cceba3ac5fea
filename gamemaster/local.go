package gamemaster

import (
	"context"
	"fmt"
	"morris/game"
	"morris/meta"
	"morris/searcher"
	"sync"

	"github.com/rs/zerolog/log"
)

type Option func(g *Game)

// WithPosition starts the game from p instead of the empty board.
func WithPosition(p game.Position) Option {
	return func(g *Game) {
		g.position = p
	}
}

func WithDepth(depth int) Option {
	return func(g *Game) {
		if depth >= 0 {
			g.depth = depth
		}
	}
}

func WithAnalysis(analysis *searcher.Analysis) Option {
	return func(g *Game) {
		if analysis != nil {
			g.analysis = analysis
		}
	}
}

type redoStep struct {
	position game.Position
	move     game.Move
}

// Game is a live game. Moves are validated before they replace the current
// position, and every board change resets the analysis.
type Game struct {
	mu       sync.Mutex
	position game.Position
	previous []game.Position
	moves    []game.Move
	undone   []redoStep // Most recently undone last
	depth    int
	analysis *searcher.Analysis
	updates  updateQueue
}

func NewGame(options ...Option) *Game {
	g := &Game{ // Default values
		position: game.StartPosition(),
		depth:    meta.DefaultDepth,
	}
	for _, option := range options {
		option(g)
	}
	if g.analysis == nil {
		g.analysis = searcher.NewAnalysis(searcher.NewSolver())
	}
	g.position = g.position.Settle()
	return g
}

func (g *Game) Current() game.Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.position
}

// SetPosition replaces the live position and forgets the history.
func (g *Game) SetPosition(p game.Position) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.analysis.Reset()
	g.position = p.Settle()
	g.previous = nil
	g.moves = nil
	g.undone = nil
	g.updates.clear()
}

func (g *Game) LegalMoves() []game.Move {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.position.LegalMoves()
}

// Play validates m and applies it. On error the game is unchanged.
func (g *Game) Play(m game.Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if over(g.position) && !g.position.GameEnded() {
		return fmt.Errorf("%w: %s has no legal moves", game.ErrGameOver, g.position.ToMove)
	}
	next, err := g.position.Play(m)
	if err != nil {
		return err
	}

	g.undone = nil
	g.advance(m, next)
	return nil
}

// advance makes next the live position, reached by playing m.
func (g *Game) advance(m game.Move, next game.Position) {
	g.analysis.Reset()
	g.previous = append(g.previous, g.position)
	g.moves = append(g.moves, m)
	g.position = next

	ended := over(next)
	g.updates.push(Update{Step: len(g.moves), Move: m, Position: next}, ended)
	if ended {
		log.Info().Msgf("game over after %d moves, winner: %s", len(g.moves), winner(next))
	}
}

// Undo restores the position before the last move.
func (g *Game) Undo() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.moves) == 0 {
		return ErrNoHistory
	}
	g.analysis.Reset()
	last := len(g.previous) - 1
	g.undone = append(g.undone, redoStep{position: g.position, move: g.moves[last]})
	g.position = g.previous[last]
	g.previous = g.previous[:last]
	g.moves = g.moves[:last]
	g.updates.reopen()
	return nil
}

// Redo replays the last undone move. Playing a new move or setting a position
// forgets the undone moves.
func (g *Game) Redo() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.undone) == 0 {
		return ErrNoHistory
	}
	last := g.undone[len(g.undone)-1]
	g.undone = g.undone[:len(g.undone)-1]
	g.advance(last.move, last.position)
	return nil
}

// History returns the moves played so far.
func (g *Game) History() []game.Move {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]game.Move(nil), g.moves...)
}

// Over reports whether the side to move lost, either by dropping below three
// pieces or by having no legal move.
func (g *Game) Over() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return over(g.position)
}

// Winner returns Empty while the game is running.
func (g *Game) Winner() game.Color {
	g.mu.Lock()
	defer g.mu.Unlock()

	return winner(g.position)
}

func (g *Game) Depth() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.depth
}

// SetDepth changes the analysis depth; stored depths no longer apply.
func (g *Game) SetDepth(depth int) error {
	if depth < 0 {
		return fmt.Errorf("search depth must not be negative, got %d", depth)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.analysis.Reset()
	g.depth = depth
	return nil
}

// Analyze searches the current position in the background.
func (g *Game) Analyze(ctx context.Context) <-chan searcher.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.analysis.Reset()
	return g.analysis.Start(ctx, g.position, g.depth)
}

// BestContinuation analyses the current position and waits for the result.
func (g *Game) BestContinuation(ctx context.Context) (searcher.Result, error) {
	outcome := <-g.Analyze(ctx)
	return outcome.Result, outcome.Err
}

// StopAnalysis cancels a running analysis.
func (g *Game) StopAnalysis() {
	g.analysis.Stop()
}

// Updates returns a getter over the moves played from now on.
func (g *Game) Updates() UpdateGetter {
	return g.updates.next
}

func over(p game.Position) bool {
	return p.GameEnded() || len(p.LegalMoves()) == 0
}

// winner attributes a position without legal moves to the opponent of the
// side to move. Live positions are settled, so this never blames a side that
// is only left without pieces to remove.
func winner(p game.Position) game.Color {
	if w := p.Winner(); w != game.Empty {
		return w
	}
	if len(p.LegalMoves()) == 0 {
		return p.ToMove.Opponent()
	}
	return game.Empty
}
