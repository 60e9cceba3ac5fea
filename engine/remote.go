package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"morris/experiments/metrics"
	"morris/game"
	"morris/searcher/agent"
	"net/http"
	"strings"
	"time"
)

// httpAgent asks an agent server for its moves.
type httpAgent struct {
	url    string
	client *http.Client
}

// NewHTTPAgent returns an agent backed by the /findmove endpoint at baseURL.
func NewHTTPAgent(baseURL string, client *http.Client) agent.Agent {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpAgent{url: strings.TrimSuffix(baseURL, "/") + "/findmove", client: client}
}

func (a *httpAgent) FindMove(ctx context.Context, p game.Position) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	body, err := json.Marshal(p)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("failed to request move: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity {
		return game.Move{}, metrics.SearchMetric{}, agent.ErrNoMoves
	}
	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(out)))
	}

	var reply struct {
		Move  game.Move `json:"move"`
		Nodes int       `json:"nodes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("failed to decode move: %w", err)
	}
	return reply.Move, metrics.SearchMetric{Duration: time.Since(start), Nodes: reply.Nodes}, nil
}
