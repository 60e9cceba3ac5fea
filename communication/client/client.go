package client

import (
	"context"
	"fmt"
	"morris/communication"
	"net/url"

	"github.com/gorilla/websocket"
)

// PlayURL builds the websocket address of a game on a server at addr
// (host:port).
func PlayURL(addr, gameID string) string {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/play"}
	if gameID != "" {
		u.RawQuery = url.Values{"game": {gameID}}.Encode()
	}
	return u.String()
}

// Dial connects to a game server.
func Dial(ctx context.Context, rawURL string) (*communication.Peer, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, rawURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to connect to %s (status %d): %w", rawURL, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", rawURL, err)
	}
	return communication.NewPeer(conn), nil
}

// Join connects and waits until the server pairs this player with an
// opponent.
func Join(ctx context.Context, rawURL string) (*communication.Peer, communication.Hello, error) {
	peer, err := Dial(ctx, rawURL)
	if err != nil {
		return nil, communication.Hello{}, err
	}

	var hello communication.Hello
	if err := peer.Expect(ctx, communication.HelloMessage, &hello); err != nil {
		peer.Close()
		return nil, communication.Hello{}, fmt.Errorf("failed to join game: %w", err)
	}
	return peer, hello, nil
}
