package game

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("lost game depends on remaining depth", func(t *testing.T) {
		p := mustFromString(t, "GG..BBB.................", Pair{}, Blue, 0)
		require.Equal(t, Score{Green: LostGameCost + 3, Blue: MaxScore - 3}, p.Evaluate(3))
		require.Equal(t, Score{Green: LostGameCost, Blue: MaxScore}, p.Evaluate(0))

		q := mustFromString(t, "GGGG.BB.................", Pair{}, Green, 0)
		require.Equal(t, Score{Green: MaxScore - 2, Blue: LostGameCost + 2}, q.Evaluate(2))
	})

	t.Run("empty board is balanced", func(t *testing.T) {
		require.Equal(t, Score{}, StartPosition().Evaluate(0))
	})

	t.Run("pending removals count for the mover", func(t *testing.T) {
		// green 0,1,2 and blue 9,10: after closing the mill green is credited one piece
		p := mustFromString(t, "GGG......BB.............", Pair{Green: 6, Blue: 7}, Green, 1)
		unfinished, blocked := p.TriplesEvaluation()
		require.Equal(t, Pair{Green: 0, Blue: 1}, unfinished)
		require.Equal(t, Pair{}, blocked)

		w := DefaultWeights()
		s := p.Evaluate(0)
		require.Equal(t, 1*w.PieceCost+(0-1*w.EnemyUnfinishedTriplesCost)*w.UnfinishedTriplesCost, s.Green)
		require.Equal(t, -1*w.PieceCost+(1-0)*w.UnfinishedTriplesCost, s.Blue)
	})

	t.Run("blocked lines", func(t *testing.T) {
		// 9-10-11 holds two blue and one green piece
		p := mustFromString(t, "GG.......BBG............", Pair{Green: 6, Blue: 7}, Blue, 0)
		unfinished, blocked := p.TriplesEvaluation()
		require.Equal(t, Pair{Green: 1, Blue: 0}, unfinished)
		require.Equal(t, Pair{Green: 0, Blue: 1}, blocked)

		w := DefaultWeights()
		s := p.Evaluate(0)
		require.Equal(t, w.UnfinishedTriplesCost-w.PossibleTripleCost, s.Green)
		require.Equal(t, -w.EnemyUnfinishedTriplesCost*w.UnfinishedTriplesCost+w.PossibleTripleCost, s.Blue)
	})

	t.Run("custom weights", func(t *testing.T) {
		p := mustFromString(t, "GGG......BB.............", Pair{Green: 6, Blue: 7}, Green, 1)
		s := p.EvaluateWith(Weights{PieceCost: 1}, 0)
		require.Equal(t, Score{Green: 1, Blue: -1}, s)
	})

	t.Run("loss helper mirrors the sides", func(t *testing.T) {
		require.Equal(t, LostGameCost, LossFor(Green).Of(Green))
		require.Equal(t, MaxScore, LossFor(Green).Of(Blue))
		require.Equal(t, LostGameCost, LossFor(Blue).Of(Blue))
	})
}

func TestCodec(t *testing.T) {
	t.Run("moves encode missing ends as null", func(t *testing.T) {
		data, err := json.Marshal(Place(3))
		require.NoError(t, err)
		require.JSONEq(t, `{"from":null,"to":3}`, string(data))

		var m Move
		require.NoError(t, json.Unmarshal([]byte(`{"from":12,"to":null}`), &m))
		require.Equal(t, Remove(12), m)

		require.Error(t, json.Unmarshal([]byte(`{"from":30,"to":null}`), &m))
	})

	t.Run("positions carry only stored fields", func(t *testing.T) {
		p := mustFromString(t, "GGG......BB.............", Pair{Green: 6, Blue: 7}, Green, 1)
		data, err := json.Marshal(p)
		require.NoError(t, err)
		require.JSONEq(t, `{"cells":"GGG......BB.............","unplaced":{"green":6,"blue":7},"toMove":"green","pendingRemovals":1}`, string(data))

		var decoded Position
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Equal(t, p, decoded, "counts are derived on decode")
	})

	t.Run("rejects malformed positions", func(t *testing.T) {
		var p Position
		require.Error(t, json.Unmarshal([]byte(`{"cells":"GGG","unplaced":{"green":0,"blue":0},"toMove":"green"}`), &p))
		require.Error(t, json.Unmarshal([]byte(`{"cells":"GGG......BB.............","unplaced":{"green":0,"blue":0},"toMove":"red"}`), &p))
		require.Error(t, json.Unmarshal([]byte(`{"cells":"GGG......BB.............","unplaced":{"green":0,"blue":0},"toMove":"green","pendingRemovals":5}`), &p))
	})
}

func TestRender(t *testing.T) {
	p := StartPosition().Apply(Place(0)).Apply(Place(23))
	out := p.Render(termenv.Ascii)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	require.True(t, strings.HasPrefix(lines[0], "G"))
	require.True(t, strings.HasSuffix(lines[6], "B"))
	require.Contains(t, lines[7], "to move: green")
	require.Equal(t, out, p.String())
}
