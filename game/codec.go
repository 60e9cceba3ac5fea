package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cells travel as a 24 character string, one character per point:
// '.' empty, 'G' green, 'B' blue.
const (
	emptyChar = '.'
	greenChar = 'G'
	blueChar  = 'B'
)

type wirePosition struct {
	Cells           string `json:"cells"`
	Unplaced        Pair   `json:"unplaced"`
	ToMove          string `json:"toMove"`
	PendingRemovals int    `json:"pendingRemovals"`
}

// CellsString renders the cells in their wire form.
func (p Position) CellsString() string {
	var sb strings.Builder
	for _, c := range p.Cells {
		switch c {
		case Green:
			sb.WriteByte(greenChar)
		case Blue:
			sb.WriteByte(blueChar)
		default:
			sb.WriteByte(emptyChar)
		}
	}
	return sb.String()
}

// ParseCells reads the wire form written by CellsString.
func ParseCells(s string) ([NumPoints]Color, error) {
	var cells [NumPoints]Color
	if len(s) != NumPoints {
		return cells, fmt.Errorf("expected %d cells, got %d", NumPoints, len(s))
	}
	for i := 0; i < NumPoints; i++ {
		switch s[i] {
		case emptyChar:
			cells[i] = Empty
		case greenChar:
			cells[i] = Green
		case blueChar:
			cells[i] = Blue
		default:
			return cells, fmt.Errorf("unknown cell %q at point %d", s[i], i)
		}
	}
	return cells, nil
}

// ParseColor reads "green" or "blue".
func ParseColor(s string) (Color, error) {
	switch s {
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	default:
		return Empty, fmt.Errorf("unknown side %q", s)
	}
}

// MarshalJSON sends only the stored fields; piece counts are derived on the
// receiving end.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(wirePosition{
		Cells:           p.CellsString(),
		Unplaced:        p.Unplaced,
		ToMove:          p.ToMove.String(),
		PendingRemovals: p.PendingRemovals,
	})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var w wirePosition
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	cells, err := ParseCells(w.Cells)
	if err != nil {
		return fmt.Errorf("decoding position: %w", err)
	}
	toMove, err := ParseColor(w.ToMove)
	if err != nil {
		return fmt.Errorf("decoding position: %w", err)
	}
	decoded, err := NewPosition(cells, w.Unplaced, toMove, w.PendingRemovals)
	if err != nil {
		return fmt.Errorf("decoding position: %w", err)
	}
	*p = decoded
	return nil
}

// FromString builds a position from its cells string, for tests and fixtures.
func FromString(cells string, unplaced Pair, toMove Color, pendingRemovals int) (Position, error) {
	parsed, err := ParseCells(cells)
	if err != nil {
		return Position{}, err
	}
	return NewPosition(parsed, unplaced, toMove, pendingRemovals)
}
