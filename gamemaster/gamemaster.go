// Package gamemaster owns a live game: the current position, its history and
// the analysis attached to it.
package gamemaster

import (
	"errors"
	"morris/game"
	"sync"
)

var ErrNoHistory = errors.New("no move to undo or redo")

// Update is queued for every move played on a Game.
type Update struct {
	Step     int
	Move     game.Move
	Position game.Position
}

type UpdateState int

const (
	NoUpdate UpdateState = iota // Nothing queued yet
	Updated                     // An update was returned
	Closed                      // Game over and every update delivered
)

// UpdateGetter returns the next queued update without blocking.
type UpdateGetter func() (Update, UpdateState)

// updateQueue is unbounded so playing never waits on a reader.
type updateQueue struct {
	mu      sync.Mutex
	pending []Update
	closed  bool
}

func (q *updateQueue) push(u Update, last bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = append(q.pending, u)
	q.closed = last
}

func (q *updateQueue) reopen() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = false
}

func (q *updateQueue) clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = nil
	q.closed = false
}

func (q *updateQueue) next() (Update, UpdateState) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) > 0 {
		u := q.pending[0]
		q.pending = q.pending[1:]
		return u, Updated
	}
	if q.closed {
		return Update{}, Closed
	}
	return Update{}, NoUpdate
}
