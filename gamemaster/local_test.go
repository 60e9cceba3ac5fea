package gamemaster

import (
	"context"
	"morris/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustPosition(t *testing.T, cells string, unplaced game.Pair, toMove game.Color, removals int) game.Position {
	t.Helper()
	p, err := game.FromString(cells, unplaced, toMove, removals)
	require.NoError(t, err)
	return p
}

func TestNewGame(t *testing.T) {
	g := NewGame()
	require.Equal(t, game.StartPosition(), g.Current())
	require.Len(t, g.LegalMoves(), game.NumPoints)
	require.False(t, g.Over())
	require.Equal(t, game.Empty, g.Winner())

	_, state := g.Updates()()
	require.Equal(t, NoUpdate, state, "no update before the first move")
}

func TestPlay(t *testing.T) {
	t.Run("valid move replaces the position and queues an update", func(t *testing.T) {
		g := NewGame()
		getUpdate := g.Updates()

		require.NoError(t, g.Play(game.Place(4)))
		require.Equal(t, game.Green, g.Current().Cells[4])
		require.Equal(t, game.Blue, g.Current().ToMove)

		u, state := getUpdate()
		require.Equal(t, Updated, state)
		require.Equal(t, 1, u.Step)
		require.Equal(t, game.Place(4), u.Move)
		require.Equal(t, g.Current(), u.Position)

		_, state = getUpdate()
		require.Equal(t, NoUpdate, state)
	})

	t.Run("illegal move leaves the game unchanged", func(t *testing.T) {
		g := NewGame()
		err := g.Play(game.Slide(0, 1))
		require.ErrorIs(t, err, game.ErrInvalidMove)
		require.Equal(t, game.StartPosition(), g.Current())
		require.Empty(t, g.History())

		_, state := g.Updates()()
		require.Equal(t, NoUpdate, state)
	})

	t.Run("final update is delivered once, then the queue is closed", func(t *testing.T) {
		p := mustPosition(t, "GGG.....BBB.............", game.Pair{}, game.Green, 1)
		g := NewGame(WithPosition(p))
		getUpdate := g.Updates()

		require.NoError(t, g.Play(game.Remove(9)))
		require.True(t, g.Over())
		require.Equal(t, game.Green, g.Winner())

		u, state := getUpdate()
		require.Equal(t, Updated, state)
		require.Equal(t, game.Remove(9), u.Move)

		_, state = getUpdate()
		require.Equal(t, Closed, state)

		err := g.Play(game.Slide(0, 3))
		require.ErrorIs(t, err, game.ErrGameOver)
	})

	t.Run("side without moves has lost", func(t *testing.T) {
		p := mustPosition(t, "GBG......B....B......GBG", game.Pair{}, game.Green, 0)
		g := NewGame(WithPosition(p))
		require.True(t, g.Over())
		require.Equal(t, game.Blue, g.Winner())
		require.ErrorIs(t, g.Play(game.Slide(0, 3)), game.ErrGameOver)
	})
}

func TestUndo(t *testing.T) {
	g := NewGame()
	require.ErrorIs(t, g.Undo(), ErrNoHistory)

	require.NoError(t, g.Play(game.Place(0)))
	require.NoError(t, g.Play(game.Place(5)))
	require.Equal(t, []game.Move{game.Place(0), game.Place(5)}, g.History())

	require.NoError(t, g.Undo())
	require.Equal(t, game.StartPosition().Apply(game.Place(0)), g.Current())
	require.NoError(t, g.Undo())
	require.Equal(t, game.StartPosition(), g.Current())
	require.ErrorIs(t, g.Undo(), ErrNoHistory)
}

func TestRedo(t *testing.T) {
	drain := func(updates UpdateGetter) {
		for {
			if _, state := updates(); state != Updated {
				return
			}
		}
	}

	t.Run("undo and redo round trip", func(t *testing.T) {
		g := NewGame()
		updates := g.Updates()
		require.ErrorIs(t, g.Redo(), ErrNoHistory)

		require.NoError(t, g.Play(game.Place(0)))
		require.NoError(t, g.Play(game.Place(5)))
		both := g.Current()
		drain(updates)

		require.NoError(t, g.Undo())
		require.NoError(t, g.Undo())
		require.Equal(t, game.StartPosition(), g.Current())

		require.NoError(t, g.Redo())
		require.Equal(t, game.StartPosition().Apply(game.Place(0)), g.Current())
		require.Equal(t, []game.Move{game.Place(0)}, g.History())
		u, state := updates()
		require.Equal(t, Updated, state)
		require.Equal(t, Update{Step: 1, Move: game.Place(0), Position: g.Current()}, u)

		require.NoError(t, g.Redo())
		require.Equal(t, both, g.Current())
		require.Equal(t, []game.Move{game.Place(0), game.Place(5)}, g.History())
		require.ErrorIs(t, g.Redo(), ErrNoHistory)
	})

	t.Run("playing after undo forgets the undone moves", func(t *testing.T) {
		g := NewGame()
		require.NoError(t, g.Play(game.Place(0)))
		require.NoError(t, g.Play(game.Place(5)))
		require.NoError(t, g.Undo())

		require.NoError(t, g.Play(game.Place(7)))
		require.ErrorIs(t, g.Redo(), ErrNoHistory)
		require.Equal(t, []game.Move{game.Place(0), game.Place(7)}, g.History())
	})

	t.Run("setting a position forgets the undone moves", func(t *testing.T) {
		g := NewGame()
		require.NoError(t, g.Play(game.Place(0)))
		require.NoError(t, g.Undo())

		g.SetPosition(game.StartPosition())
		require.ErrorIs(t, g.Redo(), ErrNoHistory)
	})
}

func TestSetPosition(t *testing.T) {
	g := NewGame()
	require.NoError(t, g.Play(game.Place(0)))

	p := mustPosition(t, "GG.......BB.............", game.Pair{Green: 7, Blue: 7}, game.Green, 0)
	g.SetPosition(p)
	require.Equal(t, p, g.Current())
	require.Empty(t, g.History())

	_, state := g.Updates()()
	require.Equal(t, NoUpdate, state, "pending updates belong to the replaced game")

	t.Run("removal without targets passes the turn", func(t *testing.T) {
		stuck := mustPosition(t, "GGG.....................", game.Pair{Green: 4, Blue: 5}, game.Green, 1)
		g := NewGame(WithPosition(stuck))
		require.Equal(t, game.Blue, g.Current().ToMove)
		require.Zero(t, g.Current().PendingRemovals)
		require.False(t, g.Over())
		require.Equal(t, game.Empty, g.Winner())

		g.SetPosition(stuck)
		require.Equal(t, game.Blue, g.Current().ToMove)
		require.NoError(t, g.Play(game.Place(9)))
	})
}

func TestAnalysis(t *testing.T) {
	t.Run("best continuation of the live position", func(t *testing.T) {
		p := mustPosition(t, "GG.......BB.............", game.Pair{Green: 7, Blue: 7}, game.Green, 0)
		g := NewGame(WithPosition(p), WithDepth(1))

		result, err := g.BestContinuation(context.Background())
		require.NoError(t, err)
		require.Equal(t, []game.Move{game.Place(2)}, result.Line)

		again, err := g.BestContinuation(context.Background())
		require.NoError(t, err)
		require.Equal(t, result.Line, again.Line, "repeated analysis starts from reset depths")
	})

	t.Run("analysis follows the played moves", func(t *testing.T) {
		p := mustPosition(t, "GG.......BB.............", game.Pair{Green: 7, Blue: 7}, game.Green, 0)
		g := NewGame(WithPosition(p), WithDepth(1))
		_, err := g.BestContinuation(context.Background())
		require.NoError(t, err)

		require.NoError(t, g.Play(game.Place(2)))
		result, err := g.BestContinuation(context.Background())
		require.NoError(t, err)
		require.Len(t, result.Line, 1)
		require.Equal(t, game.RemoveMove, result.Line[0].Kind())
	})

	t.Run("depth changes are validated", func(t *testing.T) {
		g := NewGame()
		require.Error(t, g.SetDepth(-1))
		require.NoError(t, g.SetDepth(2))
		require.Equal(t, 2, g.Depth())
	})

	t.Run("stopping a deep analysis cancels it", func(t *testing.T) {
		g := NewGame(WithDepth(9))
		out := g.Analyze(context.Background())
		g.StopAnalysis()
		require.ErrorIs(t, (<-out).Err, context.Canceled)
	})
}
