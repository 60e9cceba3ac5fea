package searcher

import (
	"morris/game"
	"sync"

	"github.com/rs/zerolog/log"
)

// Lookup reports how GenerateMoves answered a request.
type Lookup int

const (
	Miss      Lookup = iota // Moves generated and stored
	Revisit                 // Stored moves returned, depth raised
	Covered                 // Already explored at least as deep, no moves returned
	Collision               // Key held a different position, overwritten
)

func (l Lookup) String() string {
	switch l {
	case Miss:
		return "miss"
	case Revisit:
		return "revisit"
	case Covered:
		return "covered"
	case Collision:
		return "collision"
	default:
		return "unknown"
	}
}

type entry struct {
	position game.Position
	moves    []game.Move
	depth    int
}

// Cache is a transposition table of legal move lists and the deepest
// search depth each position was explored at. One mutex guards the whole
// table so concurrent searches may share a cache.
type Cache struct {
	mu      sync.Mutex
	entries map[game.Key]*entry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[game.Key]*entry)}
}

// GenerateMoves returns the moves to explore from p at requestedDepth. An
// empty list means p was already explored at least that deep. The returned
// slice is shared with the cache and must not be modified.
func (c *Cache) GenerateMoves(p game.Position, requestedDepth int, ignoreCache bool) ([]game.Move, Lookup) {
	key := p.Key()

	c.mu.Lock()
	defer c.mu.Unlock()

	lookup := Miss
	if e, ok := c.entries[key]; ok && !ignoreCache {
		if e.position == p {
			if e.depth >= requestedDepth {
				return nil, Covered
			}
			e.depth = requestedDepth
			return e.moves, Revisit
		}
		log.Debug().Msgf("cache key %d shared by distinct positions, overwriting", key)
		lookup = Collision
	}

	moves := p.LegalMoves()
	c.entries[key] = &entry{position: p, moves: moves, depth: requestedDepth}
	return moves, lookup
}

// ResetDepths zeroes every stored depth and keeps the move lists.
func (c *Cache) ResetDepths() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		e.depth = 0
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Entry returns a copy of the stored moves and depth for key.
func (c *Cache) Entry(key game.Key) (moves []game.Move, depth int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, 0, false
	}
	return append([]game.Move(nil), e.moves...), e.depth, true
}
