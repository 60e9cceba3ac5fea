package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Run("start position packs to the expected value", func(t *testing.T) {
		// 24 empty digits: 2*(3^29+...+3^6) = 3^30 - 3^6, unplaced 9 -> "100" -> 100*9 + 100
		expected := -(pow330 - 729 + 900 + 100)
		require.Equal(t, Key(expected), StartPosition().Key())
	})

	t.Run("sign carries the side to move", func(t *testing.T) {
		green := mustFromString(t, "GB.G.B..G...B...........", Pair{Green: 6, Blue: 6}, Green, 0)
		blue := green
		blue.ToMove = Blue
		require.Less(t, int64(green.Key()), int64(0))
		require.Equal(t, -green.Key(), blue.Key())
	})

	t.Run("pending removals occupy the top digit", func(t *testing.T) {
		p := mustFromString(t, "GGG.BBB.................", Pair{Green: 3, Blue: 3}, Blue, 0)
		withRemoval := p
		withRemoval.PendingRemovals = 1
		require.Equal(t, Key(pow330), withRemoval.Key()-p.Key())
	})

	t.Run("unplaced counts are written in base 3", func(t *testing.T) {
		require.Equal(t, int64(22), base3Literal(8))
		require.Equal(t, int64(100), base3Literal(9))
		require.Equal(t, int64(0), base3Literal(0))

		p := mustFromString(t, "GB......................", Pair{Green: 8, Blue: 5}, Blue, 0)
		q := p
		q.Unplaced = Pair{Green: 7, Blue: 5}
		require.Equal(t, Key((22-21)*9), p.Key()-q.Key())
	})

	t.Run("distinct reachable positions never collide", func(t *testing.T) {
		seen := map[Key]Position{}
		record := func(p Position) {
			k := p.Key()
			if other, ok := seen[k]; ok {
				require.Equal(t, other, p, "key %d shared by distinct positions", k)
				return
			}
			seen[k] = p
		}

		// Walk several deterministic games, starting after both sides placed
		// once so unplaced counts stay within 0..8.
		for seed := 1; seed <= 40; seed++ {
			p := mustFromString(t, "G...........B...........", Pair{Green: 8, Blue: 8}, Green, 0)
			for ply := 0; ply < 120 && p.Phase() != EndPhase; ply++ {
				record(p)
				flipped := p
				flipped.ToMove = p.ToMove.Opponent()
				record(flipped)
				for r := 0; r <= MaxPendingRemovals; r++ {
					variant := p
					variant.PendingRemovals = r
					record(variant)
				}
				moves := p.LegalMoves()
				if len(moves) == 0 {
					break
				}
				p = p.Apply(moves[(ply*seed+seed)%len(moves)])
			}
		}
		require.Greater(t, len(seen), 1000)
	})

	// Placements alternate, so a real game only sees unplaced pairs (k,k) and
	// (k-1,k). Other pairs can share a key; the cache checks the stored
	// position on every hit.
	t.Run("unreachable unplaced pairs can collide", func(t *testing.T) {
		a := mustFromString(t, "GGG.BBB.................", Pair{Green: 0, Blue: 3}, Blue, 0)
		b := mustFromString(t, "GGG.BBB.................", Pair{Green: 1, Blue: 1}, Blue, 0)
		require.NotEqual(t, a, b)
		require.Equal(t, a.Key(), b.Key(), "0*9 + \"10\" == \"1\"*9 + \"1\"")

		// With 9 unplaced the literal reaches into the digit of cell 23
		c := mustFromString(t, "G......................B", Pair{Green: 9, Blue: 7}, Blue, 0)
		d := mustFromString(t, "G......................G", Pair{Green: 6, Blue: 5}, Blue, 0)
		require.NotEqual(t, c, d)
		require.Equal(t, c.Key(), d.Key())
	})
}
