package game

import (
	"fmt"

	"github.com/muesli/termenv"
)

const boardTemplate = `%s-----------%s-----------%s
|   %s-------%s-------%s   |
|   |   %s---%s---%s   |   |
%s---%s---%s       %s---%s---%s
|   |   %s---%s---%s   |   |
|   %s-------%s-------%s   |
%s-----------%s-----------%s`

// Render draws the board. Colors follow the given terminal profile;
// termenv.Ascii yields plain text.
func (p Position) Render(profile termenv.Profile) string {
	cells := make([]any, NumPoints)
	for i, c := range p.Cells {
		switch c {
		case Green:
			cells[i] = profile.String("G").Foreground(profile.Color("2")).Bold().String()
		case Blue:
			cells[i] = profile.String("B").Foreground(profile.Color("4")).Bold().String()
		default:
			cells[i] = "o"
		}
	}
	return fmt.Sprintf(boardTemplate, cells...) + fmt.Sprintf(
		"\nto move: %s  phase: %s  unplaced: %d/%d  removals: %d",
		p.ToMove, p.Phase(), p.Unplaced.Green, p.Unplaced.Blue, p.PendingRemovals,
	)
}

func (p Position) String() string {
	return p.Render(termenv.Ascii)
}
