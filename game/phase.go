package game

type Phase int

const (
	PlacementPhase Phase = iota
	NormalPhase
	FlyingPhase
	RemovingPhase
	EndPhase
)

func (ph Phase) String() string {
	switch ph {
	case PlacementPhase:
		return "placement"
	case NormalPhase:
		return "normal"
	case FlyingPhase:
		return "flying"
	case RemovingPhase:
		return "removing"
	case EndPhase:
		return "end"
	default:
		return "unknown"
	}
}

// Phase derives the current sub-state of the turn. It is never stored.
func (p Position) Phase() Phase {
	switch {
	case p.GameEnded():
		return EndPhase
	case p.PendingRemovals > 0:
		return RemovingPhase
	case p.Unplaced.Of(p.ToMove) > 0:
		return PlacementPhase
	case p.CountOf(p.ToMove) == PiecesToFly:
		return FlyingPhase
	default:
		return NormalPhase
	}
}

// GameEnded reports whether a side has dropped below the minimum piece floor.
func (p Position) GameEnded() bool {
	return p.GreenCount < PiecesToFly || p.BlueCount < PiecesToFly
}
