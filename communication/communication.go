// Package communication carries moves between two remote players over
// websocket frames holding JSON messages.
package communication

import (
	"encoding/json"
	"fmt"
	"morris/game"
)

type MessageType string

const (
	HelloMessage MessageType = "hello" // Server assigns a side and the start position
	MoveMessage  MessageType = "move"  // A move, relayed to the opponent
	EndMessage   MessageType = "end"   // Game finished or a side resigned
	ErrorMessage MessageType = "error" // The last move was rejected
)

type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Hello struct {
	GameID   string        `json:"gameId"`
	Color    string        `json:"color"`
	Position game.Position `json:"position"`
	MaxMoves int           `json:"maxMoves"` // The game is drawn after this many moves
}

type End struct {
	Winner string `json:"winner"` // Empty on a draw or an aborted game
	Reason string `json:"reason"`
}

type Error struct {
	Error string `json:"error"`
}

// Resign is sent as a move to give up the game.
var Resign = game.Move{From: game.NoPoint, To: game.NoPoint}

func IsResign(m game.Move) bool {
	return m == Resign
}

func NewMessage(t MessageType, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: t}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to encode %s payload: %w", t, err)
	}
	return Message{Type: t, Payload: data}, nil
}

// Decode reads the payload into v.
func (m Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("%s message has no payload", m.Type)
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", m.Type, err)
	}
	return nil
}
