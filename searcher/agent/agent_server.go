package agent

import (
	"encoding/json"
	"errors"
	"morris/game"
	"net/http"

	"github.com/rs/zerolog/log"
)

type findMoveResponse struct {
	Move  game.Move `json:"move"`
	Nodes int       `json:"nodes"`
}

// NewHandler serves POST /findmove: the body is a position, the answer the
// move the agent plays in it.
func NewHandler(a Agent) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /findmove", func(w http.ResponseWriter, r *http.Request) {
		var p game.Position
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}

		move, metric, err := a.FindMove(r.Context(), p)
		if errors.Is(err, ErrNoMoves) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if err != nil {
			http.Error(w, "search failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(findMoveResponse{Move: move, Nodes: metric.Nodes}); err != nil {
			log.Error().Msgf("failed to encode move: %v", err)
		}
	})
	return mux
}

// StartAgentServer serves the agent on addr until the server fails.
func StartAgentServer(addr string, a Agent) error {
	log.Info().Msgf("starting agent server on %s", addr)
	return http.ListenAndServe(addr, NewHandler(a))
}
