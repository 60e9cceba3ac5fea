package game

import (
	"errors"
	"fmt"
)

const (
	PiecesPerSide      = 9 // pieces each side starts with, all unplaced
	PiecesToFly        = 3 // exact count that unlocks flying; fewer loses the game
	MaxPendingRemovals = 2
)

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrGameOver    = errors.New("game is over")
)

// Color is the state of a cell, or the side a piece belongs to.
type Color int8

const (
	Empty Color = iota
	Green
	Blue
)

func (c Color) Opponent() Color {
	switch c {
	case Green:
		return Blue
	case Blue:
		return Green
	default:
		return Empty
	}
}

func (c Color) String() string {
	switch c {
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "empty"
	}
}

// Pair holds one value per side.
type Pair struct {
	Green int `json:"green"`
	Blue  int `json:"blue"`
}

func (p Pair) Of(c Color) int {
	if c == Green {
		return p.Green
	}
	return p.Blue
}

func (p *Pair) add(c Color, delta int) {
	if c == Green {
		p.Green += delta
	} else {
		p.Blue += delta
	}
}

// Position is the state of the game at any point. It is a value: Apply and
// Play return a new Position and never touch the receiver.
type Position struct {
	Cells           [NumPoints]Color // Cell states indexed by point
	Unplaced        Pair             // Pieces each side has not placed yet
	GreenCount      int              // Green pieces on board plus unplaced
	BlueCount       int              // Blue pieces on board plus unplaced
	ToMove          Color            // Side to move next
	PendingRemovals int              // Enemy pieces the side to move must still remove
}

// NewPosition validates the given state and derives the piece counts.
func NewPosition(cells [NumPoints]Color, unplaced Pair, toMove Color, pendingRemovals int) (Position, error) {
	for i, c := range cells {
		if c != Empty && c != Green && c != Blue {
			return Position{}, fmt.Errorf("cell %d has unknown state %d", i, c)
		}
	}
	if unplaced.Green < 0 || unplaced.Green > PiecesPerSide || unplaced.Blue < 0 || unplaced.Blue > PiecesPerSide {
		return Position{}, fmt.Errorf("unplaced pieces %+v out of range [0,%d]", unplaced, PiecesPerSide)
	}
	if toMove != Green && toMove != Blue {
		return Position{}, fmt.Errorf("side to move must be green or blue, got %s", toMove)
	}
	if pendingRemovals < 0 || pendingRemovals > MaxPendingRemovals {
		return Position{}, fmt.Errorf("pending removals %d out of range [0,%d]", pendingRemovals, MaxPendingRemovals)
	}
	p := Position{
		Cells:           cells,
		Unplaced:        unplaced,
		ToMove:          toMove,
		PendingRemovals: pendingRemovals,
	}
	p.recount()
	return p, nil
}

// MustPosition is NewPosition for fixed, known-good inputs.
func MustPosition(cells [NumPoints]Color, unplaced Pair, toMove Color, pendingRemovals int) Position {
	p, err := NewPosition(cells, unplaced, toMove, pendingRemovals)
	if err != nil {
		panic(err)
	}
	return p
}

// StartPosition is an empty board with every piece unplaced and green to move.
func StartPosition() Position {
	return MustPosition([NumPoints]Color{}, Pair{Green: PiecesPerSide, Blue: PiecesPerSide}, Green, 0)
}

func (p *Position) recount() {
	p.GreenCount = p.Unplaced.Green
	p.BlueCount = p.Unplaced.Blue
	for _, c := range p.Cells {
		switch c {
		case Green:
			p.GreenCount++
		case Blue:
			p.BlueCount++
		}
	}
}

// CountOf returns the cached piece count of side c.
func (p Position) CountOf(c Color) int {
	if c == Green {
		return p.GreenCount
	}
	return p.BlueCount
}

// OnBoard counts the cells occupied by side c.
func (p Position) OnBoard(c Color) int {
	n := 0
	for _, cell := range p.Cells {
		if cell == c {
			n++
		}
	}
	return n
}

// LegalMoves returns all legal moves for the side to move.
func (p Position) LegalMoves() []Move {
	switch p.Phase() {
	case PlacementPhase:
		return p.placementMoves()
	case NormalPhase:
		return p.normalMoves()
	case FlyingPhase:
		return p.flyingMoves()
	case RemovingPhase:
		return p.removalMoves()
	default:
		return nil
	}
}

func (p Position) placementMoves() []Move {
	var moves []Move
	for to, c := range p.Cells {
		if c == Empty {
			moves = append(moves, Place(Point(to)))
		}
	}
	return moves
}

func (p Position) normalMoves() []Move {
	var moves []Move
	for from, c := range p.Cells {
		if c != p.ToMove {
			continue
		}
		for _, to := range Adjacency(Point(from)) {
			if p.Cells[to] == Empty {
				moves = append(moves, Slide(Point(from), to))
			}
		}
	}
	return moves
}

func (p Position) flyingMoves() []Move {
	var moves []Move
	for from, c := range p.Cells {
		if c != p.ToMove {
			continue
		}
		for to, target := range p.Cells {
			if target == Empty {
				moves = append(moves, Slide(Point(from), Point(to)))
			}
		}
	}
	return moves
}

// removalMoves allows removing any enemy piece, including pieces that sit in
// a closed mill.
func (p Position) removalMoves() []Move {
	var moves []Move
	enemy := p.ToMove.Opponent()
	for from, c := range p.Cells {
		if c == enemy {
			moves = append(moves, Remove(Point(from)))
		}
	}
	return moves
}

// Apply plays m without validating it. m must come from LegalMoves; use Play
// for moves from outside the engine.
func (p Position) Apply(m Move) Position {
	next := p
	mover := p.ToMove
	landed := false

	switch m.Kind() {
	case PlaceMove:
		next.Cells[m.To] = mover
		next.Unplaced.add(mover, -1)
		landed = true
	case SlideMove:
		next.Cells[m.From] = Empty
		next.Cells[m.To] = mover
		landed = true
	case RemoveMove:
		next.Cells[m.From] = Empty
		next.PendingRemovals--
	default:
		panic(fmt.Sprintf("cannot apply %s", m))
	}
	next.recount()

	if landed {
		next.PendingRemovals = next.millsFormedAt(m.To, mover)
	}
	// The mover keeps the turn while it still has enemy pieces to remove
	if next.Phase() != RemovingPhase {
		next.ToMove = mover.Opponent()
	}
	return next
}

// millsFormedAt counts the mills through p fully occupied by c.
func (p Position) millsFormedAt(at Point, c Color) int {
	n := 0
	for _, mill := range MillsContaining(at) {
		if p.Cells[mill[0]] == c && p.Cells[mill[1]] == c && p.Cells[mill[2]] == c {
			n++
		}
	}
	return n
}

// Play validates m against the current phase and board, then applies it.
// On error the receiver is returned unchanged.
func (p Position) Play(m Move) (Position, error) {
	if err := p.Validate(m); err != nil {
		return p, err
	}
	return p.Apply(m).Settle(), nil
}

// Settle drops the pending removals when the opponent has no piece on the
// board left to remove, and passes the turn. Apply keeps such positions as
// they are, where the mover has no legal move.
func (p Position) Settle() Position {
	if p.Phase() != RemovingPhase || p.OnBoard(p.ToMove.Opponent()) > 0 {
		return p
	}
	p.PendingRemovals = 0
	p.ToMove = p.ToMove.Opponent()
	return p
}

// Validate checks that m is legal in p.
func (p Position) Validate(m Move) error {
	phase := p.Phase()
	if phase == EndPhase {
		return fmt.Errorf("%w: no moves allowed", ErrGameOver)
	}
	kind := m.Kind()
	if kind == InvalidMove {
		return fmt.Errorf("%w: malformed move (%d,%d)", ErrInvalidMove, m.From, m.To)
	}

	switch phase {
	case PlacementPhase:
		if kind != PlaceMove {
			return fmt.Errorf("%w: %s during %s phase, expected a placement", ErrInvalidMove, m, phase)
		}
		if p.Cells[m.To] != Empty {
			return fmt.Errorf("%w: point %d is occupied", ErrInvalidMove, m.To)
		}
	case NormalPhase, FlyingPhase:
		if kind != SlideMove {
			return fmt.Errorf("%w: %s during %s phase, expected a slide", ErrInvalidMove, m, phase)
		}
		if p.Cells[m.From] != p.ToMove {
			return fmt.Errorf("%w: point %d does not hold a %s piece", ErrInvalidMove, m.From, p.ToMove)
		}
		if p.Cells[m.To] != Empty {
			return fmt.Errorf("%w: point %d is occupied", ErrInvalidMove, m.To)
		}
		if phase == NormalPhase && !AreAdjacent(m.From, m.To) {
			return fmt.Errorf("%w: points %d and %d are not adjacent", ErrInvalidMove, m.From, m.To)
		}
	case RemovingPhase:
		if kind != RemoveMove {
			return fmt.Errorf("%w: %s during %s phase, expected a removal", ErrInvalidMove, m, phase)
		}
		if enemy := p.ToMove.Opponent(); p.Cells[m.From] != enemy {
			return fmt.Errorf("%w: point %d does not hold a %s piece", ErrInvalidMove, m.From, enemy)
		}
	}
	return nil
}

// Winner returns the side that won, or Empty while the game is running.
func (p Position) Winner() Color {
	switch {
	case p.GreenCount < PiecesToFly:
		return Blue
	case p.BlueCount < PiecesToFly:
		return Green
	default:
		return Empty
	}
}
