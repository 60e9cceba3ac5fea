package game

import (
	"encoding/json"
	"fmt"
)

// MoveKind is the shape of a move.
type MoveKind int

const (
	InvalidMove MoveKind = iota
	PlaceMove            // (none, to)
	SlideMove            // (from, to), covers flying
	RemoveMove           // (from, none)
)

// Move is the minimal move representation: either end may be NoPoint.
type Move struct {
	From Point
	To   Point
}

func Place(to Point) Move {
	return Move{From: NoPoint, To: to}
}

func Slide(from, to Point) Move {
	return Move{From: from, To: to}
}

func Remove(from Point) Move {
	return Move{From: from, To: NoPoint}
}

// Kind classifies the move by which of its ends are set. Ends outside the
// board make the move invalid.
func (m Move) Kind() MoveKind {
	switch {
	case m.From == NoPoint && m.To.Valid():
		return PlaceMove
	case m.From.Valid() && m.To.Valid() && m.From != m.To:
		return SlideMove
	case m.From.Valid() && m.To == NoPoint:
		return RemoveMove
	default:
		return InvalidMove
	}
}

func (m Move) String() string {
	switch m.Kind() {
	case PlaceMove:
		return fmt.Sprintf("@%d", m.To)
	case SlideMove:
		return fmt.Sprintf("%d-%d", m.From, m.To)
	case RemoveMove:
		return fmt.Sprintf("x%d", m.From)
	default:
		return fmt.Sprintf("invalid(%d,%d)", m.From, m.To)
	}
}

type wireMove struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

func pointRef(p Point) *int {
	if p == NoPoint {
		return nil
	}
	v := int(p)
	return &v
}

func pointOf(v *int) (Point, error) {
	if v == nil {
		return NoPoint, nil
	}
	if *v < 0 || *v >= NumPoints {
		return NoPoint, fmt.Errorf("point %d out of range", *v)
	}
	return Point(*v), nil
}

// MarshalJSON encodes the move as {"from": int|null, "to": int|null}.
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireMove{From: pointRef(m.From), To: pointRef(m.To)})
}

func (m *Move) UnmarshalJSON(data []byte) error {
	var w wireMove
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	from, err := pointOf(w.From)
	if err != nil {
		return fmt.Errorf("decoding move: %w", err)
	}
	to, err := pointOf(w.To)
	if err != nil {
		return fmt.Errorf("decoding move: %w", err)
	}
	m.From, m.To = from, to
	return nil
}
