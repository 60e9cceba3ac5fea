package player

import (
	"context"
	"morris/communication"
	"morris/communication/client"
	"morris/communication/server"
	"morris/game"
	"morris/searcher/agent"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type outcome struct {
	color    game.Color
	end      communication.End
	position game.Position
	err      error
}

func TestPlayOnline(t *testing.T) {
	s := server.NewServer(server.WithMaxMoves(40))
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	url := client.PlayURL(strings.TrimPrefix(srv.URL, "http://"), "online")

	agents := []agent.Agent{agent.NewSearchAgent(1), agent.NewRandomAgent(5)}
	results := make(chan outcome, len(agents))
	for _, a := range agents {
		go func() {
			peer, hello, err := client.Join(ctx, url)
			if err != nil {
				results <- outcome{err: err}
				return
			}
			defer peer.Close()

			p, err := NewPlayer(peer, a, hello)
			if err != nil {
				results <- outcome{err: err}
				return
			}
			end, err := p.Play(ctx)
			results <- outcome{color: p.Color(), end: end, position: p.Current(), err: err}
		}()
	}

	first, second := <-results, <-results
	require.NoError(t, first.err)
	require.NoError(t, second.err)
	require.NotEqual(t, first.color, second.color)
	require.Equal(t, first.end, second.end, "both players see the same result")
	require.Equal(t, first.position, second.position, "local games stay in sync")
}

func TestNewPlayer(t *testing.T) {
	_, err := NewPlayer(nil, agent.NewRandomAgent(1), communication.Hello{Color: "red"})
	require.Error(t, err)

	p, err := NewPlayer(nil, agent.NewRandomAgent(1), communication.Hello{Color: "blue", Position: game.StartPosition()})
	require.NoError(t, err)
	require.Equal(t, game.Blue, p.Color())
	require.Equal(t, game.StartPosition(), p.Current())
}
