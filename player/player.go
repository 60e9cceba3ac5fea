package player

import (
	"context"
	"errors"
	"fmt"
	"morris/communication"
	"morris/game"
	"morris/gamemaster"
	"morris/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Player plays one side of an online game with a local agent.
type Player struct {
	peer     *communication.Peer
	agent    agent.Agent
	color    game.Color
	game     *gamemaster.Game
	maxMoves int
}

// NewPlayer prepares the game announced by hello.
func NewPlayer(peer *communication.Peer, a agent.Agent, hello communication.Hello) (*Player, error) {
	color, err := game.ParseColor(hello.Color)
	if err != nil {
		return nil, fmt.Errorf("invalid hello: %w", err)
	}
	return &Player{
		peer:     peer,
		agent:    a,
		color:    color,
		game:     gamemaster.NewGame(gamemaster.WithPosition(hello.Position), gamemaster.WithDepth(0)),
		maxMoves: hello.MaxMoves,
	}, nil
}

func (p *Player) Color() game.Color {
	return p.color
}

// Current returns the local copy of the game position.
func (p *Player) Current() game.Position {
	return p.game.Current()
}

// Play takes turns until the server ends the game.
func (p *Player) Play(ctx context.Context) (communication.End, error) {
	for {
		if p.myTurn() {
			if err := p.TakeTurn(ctx); err != nil {
				return communication.End{}, err
			}
			continue
		}

		msg, err := p.peer.Receive(ctx)
		if err != nil {
			return communication.End{}, err
		}
		switch msg.Type {
		case communication.MoveMessage:
			var move game.Move
			if err := msg.Decode(&move); err != nil {
				return communication.End{}, err
			}
			if err := p.game.Play(move); err != nil {
				return communication.End{}, fmt.Errorf("opponent move %s out of sync: %w", move, err)
			}
		case communication.EndMessage:
			var end communication.End
			if err := msg.Decode(&end); err != nil {
				return communication.End{}, err
			}
			log.Info().Msgf("%s: game ended (%s), winner: %q", p.color, end.Reason, end.Winner)
			return end, nil
		case communication.ErrorMessage:
			var e communication.Error
			if err := msg.Decode(&e); err != nil {
				return communication.End{}, err
			}
			return communication.End{}, fmt.Errorf("server rejected move: %s", e.Error)
		default:
			return communication.End{}, fmt.Errorf("unexpected %s message", msg.Type)
		}
	}
}

// myTurn is false once the game is over or the move limit is reached, when
// only the end message is left to read.
func (p *Player) myTurn() bool {
	if p.game.Over() || p.game.Current().ToMove != p.color {
		return false
	}
	return p.maxMoves <= 0 || len(p.game.History()) < p.maxMoves
}

// TakeTurn asks the agent for a move, plays it locally and sends it.
func (p *Player) TakeTurn(ctx context.Context) error {
	move, _, err := p.agent.FindMove(ctx, p.game.Current())
	if errors.Is(err, agent.ErrNoMoves) {
		log.Info().Msgf("%s has no possible moves, resigning", p.color)
		return p.peer.SendMove(communication.Resign)
	}
	if err != nil {
		return err
	}
	if err := p.game.Play(move); err != nil {
		return fmt.Errorf("agent chose %s: %w", move, err)
	}
	log.Debug().Msgf("%s plays %s", p.color, move)
	return p.peer.SendMove(move)
}
