package game

import "math"

const (
	LostGameCost = math.MinInt32 // score of the side that lost
	MaxScore     = math.MaxInt32 // score of the side that won
)

// Weights are the coefficients of the heuristic evaluation.
type Weights struct {
	PieceCost                  int `yaml:"piece_cost"`
	UnfinishedTriplesCost      int `yaml:"unfinished_triples_cost"`
	EnemyUnfinishedTriplesCost int `yaml:"enemy_unfinished_triples_cost"`
	PossibleTripleCost         int `yaml:"possible_triple_cost"`
	DepthCost                  int `yaml:"depth_cost"`
}

func DefaultWeights() Weights {
	return Weights{
		PieceCost:                  50,
		UnfinishedTriplesCost:      10,
		EnemyUnfinishedTriplesCost: 2,
		PossibleTripleCost:         4,
		DepthCost:                  1,
	}
}

// Score is an evaluation per side. The two halves are computed independently
// and do not sum to zero.
type Score struct {
	Green int `json:"green"`
	Blue  int `json:"blue"`
}

func (s Score) Of(c Color) int {
	if c == Green {
		return s.Green
	}
	return s.Blue
}

// LossFor returns the score of a finished game that side c lost.
func LossFor(c Color) Score {
	if c == Green {
		return Score{Green: LostGameCost, Blue: MaxScore}
	}
	return Score{Green: MaxScore, Blue: LostGameCost}
}

// Evaluate scores the position with the default weights.
func (p Position) Evaluate(depth int) Score {
	return p.EvaluateWith(DefaultWeights(), depth)
}

// EvaluateWith scores the position for both sides. depth is the remaining
// search depth and only affects decided games.
func (p Position) EvaluateWith(w Weights, depth int) Score {
	if p.GreenCount < PiecesToFly {
		depthCost := depth * w.DepthCost
		return Score{Green: LostGameCost + depthCost, Blue: MaxScore - depthCost}
	}
	if p.BlueCount < PiecesToFly {
		depthCost := depth * w.DepthCost
		return Score{Green: MaxScore - depthCost, Blue: LostGameCost + depthCost}
	}

	// Pending removals are already credited to the mover
	greenPieces := p.GreenCount
	bluePieces := p.BlueCount
	if p.ToMove == Green {
		greenPieces += p.PendingRemovals
	} else {
		bluePieces += p.PendingRemovals
	}

	var s Score
	s.Green += (greenPieces - bluePieces) * w.PieceCost
	s.Blue += (bluePieces - greenPieces) * w.PieceCost

	unfinished, blocked := p.TriplesEvaluation()

	s.Green += (unfinished.Green - unfinished.Blue*w.EnemyUnfinishedTriplesCost) * w.UnfinishedTriplesCost
	s.Blue += (unfinished.Blue - unfinished.Green*w.EnemyUnfinishedTriplesCost) * w.UnfinishedTriplesCost

	s.Green += (blocked.Green - blocked.Blue) * w.PossibleTripleCost
	s.Blue += (blocked.Blue - blocked.Green) * w.PossibleTripleCost

	return s
}

// TriplesEvaluation classifies every mill line once. A line with two own
// pieces and an empty point is unfinished; with two own pieces and one enemy
// piece it is blocked.
func (p Position) TriplesEvaluation() (unfinished, blocked Pair) {
	for _, mill := range Mills() {
		greenPieces, bluePieces := 0, 0
		for _, pt := range mill {
			switch p.Cells[pt] {
			case Green:
				greenPieces++
			case Blue:
				bluePieces++
			}
		}
		switch {
		case greenPieces == 2 && bluePieces == 0:
			unfinished.Green++
		case greenPieces == 0 && bluePieces == 2:
			unfinished.Blue++
		case greenPieces == 2 && bluePieces == 1:
			blocked.Green++
		case greenPieces == 1 && bluePieces == 2:
			blocked.Blue++
		}
	}
	return unfinished, blocked
}
