package server

import (
	"context"
	"fmt"
	"morris/communication"
	"morris/game"
	"morris/gamemaster"
	"morris/meta"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const defaultGameID = "default"

type Option func(s *Server)

func WithMaxMoves(maxMoves int) Option {
	return func(s *Server) {
		if maxMoves > 0 {
			s.maxMoves = maxMoves
		}
	}
}

// WithStart makes every game start from p.
func WithStart(p game.Position) Option {
	return func(s *Server) {
		s.start = p
	}
}

// Server pairs the first two connections of every game id. The first one
// plays green. Moves are checked on a server side game before they are
// relayed to the opponent.
type Server struct {
	mu       sync.Mutex
	waiting  map[string]*communication.Peer
	upgrader websocket.Upgrader
	start    game.Position
	maxMoves int

	ctx    context.Context
	cancel context.CancelFunc
	games  sync.WaitGroup
}

func NewServer(options ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		waiting:  make(map[string]*communication.Peer),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		start:    game.StartPosition(),
		maxMoves: meta.MaxMoves,
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/play", s.handlePlay)
	return mux
}

// ListenAndServe serves games on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	log.Info().Msgf("serving games on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Close aborts the running games and waits for them to stop.
func (s *Server) Close() {
	s.cancel()
	s.mu.Lock()
	for id, peer := range s.waiting {
		peer.Close()
		delete(s.waiting, id)
	}
	s.mu.Unlock()
	s.games.Wait()
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("game")
	if id == "" {
		id = defaultGameID
	}

	// Holding the lock over the handshake seats players in connection order
	s.mu.Lock()
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.mu.Unlock()
		log.Warn().Msgf("failed to upgrade connection for game %s: %v", id, err)
		return
	}
	peer := communication.NewPeer(conn)

	green, ok := s.waiting[id]
	if !ok {
		s.waiting[id] = peer
		s.mu.Unlock()
		log.Info().Msgf("game %s: waiting for an opponent", id)
		go s.dropOnDisconnect(id, peer)
		return
	}
	delete(s.waiting, id)
	s.games.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.games.Done()
		defer green.Close()
		defer peer.Close()
		s.run(s.ctx, id, green, peer)
	}()
}

// dropOnDisconnect frees the seat of a waiting peer that goes away before an
// opponent joins.
func (s *Server) dropOnDisconnect(id string, peer *communication.Peer) {
	select {
	case <-peer.Done():
	case <-s.ctx.Done():
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.waiting[id] == peer {
		delete(s.waiting, id)
		peer.Close()
		log.Info().Msgf("game %s: waiting player disconnected", id)
	}
}

// run relays moves between the two peers until the game ends.
func (s *Server) run(ctx context.Context, id string, green, blue *communication.Peer) {
	peers := map[game.Color]*communication.Peer{game.Green: green, game.Blue: blue}
	g := gamemaster.NewGame(gamemaster.WithPosition(s.start), gamemaster.WithDepth(0))

	for color, peer := range peers {
		hello := communication.Hello{GameID: id, Color: color.String(), Position: g.Current(), MaxMoves: s.maxMoves}
		if err := peer.Send(communication.HelloMessage, hello); err != nil {
			log.Warn().Msgf("game %s: %v", id, err)
			s.finish(id, peers, communication.End{Reason: "opponent disconnected"})
			return
		}
	}
	log.Info().Msgf("game %s: started", id)

	for step := 0; !g.Over(); {
		if step >= s.maxMoves {
			s.finish(id, peers, communication.End{Reason: fmt.Sprintf("no winner after %d moves", step)})
			return
		}

		mover := g.Current().ToMove
		var move game.Move
		if err := peers[mover].Expect(ctx, communication.MoveMessage, &move); err != nil {
			log.Warn().Msgf("game %s: %s: %v", id, mover, err)
			s.finish(id, peers, communication.End{Winner: mover.Opponent().String(), Reason: mover.String() + " disconnected"})
			return
		}
		if communication.IsResign(move) {
			s.finish(id, peers, communication.End{Winner: mover.Opponent().String(), Reason: mover.String() + " resigned"})
			return
		}

		if err := g.Play(move); err != nil {
			log.Debug().Msgf("game %s: rejected %s from %s: %v", id, move, mover, err)
			if err := peers[mover].Send(communication.ErrorMessage, communication.Error{Error: err.Error()}); err != nil {
				s.finish(id, peers, communication.End{Winner: mover.Opponent().String(), Reason: mover.String() + " disconnected"})
				return
			}
			continue
		}
		step++

		if err := peers[mover.Opponent()].SendMove(move); err != nil {
			s.finish(id, peers, communication.End{Winner: mover.String(), Reason: mover.Opponent().String() + " disconnected"})
			return
		}
	}

	s.finish(id, peers, communication.End{Winner: g.Winner().String(), Reason: "game over"})
}

func (s *Server) finish(id string, peers map[game.Color]*communication.Peer, end communication.End) {
	log.Info().Msgf("game %s: %s, winner: %q", id, end.Reason, end.Winner)
	for _, peer := range peers {
		_ = peer.Send(communication.EndMessage, end)
	}
}
