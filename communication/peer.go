package communication

import (
	"context"
	"errors"
	"fmt"
	"morris/game"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Peer is one end of a websocket connection. Writes are serialised. A
// single goroutine reads the connection and hands messages to Receive, so a
// disconnect is noticed even while nobody is receiving.
type Peer struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	incoming  chan Message
	done      chan struct{} // Closed once reading stopped
	readErr   error
	quit      chan struct{}
	closeOnce sync.Once
}

func NewPeer(conn *websocket.Conn) *Peer {
	p := &Peer{
		conn:     conn,
		incoming: make(chan Message),
		done:     make(chan struct{}),
		quit:     make(chan struct{}),
	}
	go p.read()
	return p
}

func (p *Peer) read() {
	defer close(p.done)
	for {
		var msg Message
		if err := p.conn.ReadJSON(&msg); err != nil {
			p.readErr = err
			return
		}
		select {
		case p.incoming <- msg:
		case <-p.quit:
			p.readErr = websocket.ErrCloseSent
			return
		}
	}
}

// Done is closed when the connection can no longer be read, because the
// remote side went away or Close was called.
func (p *Peer) Done() <-chan struct{} {
	return p.done
}

func (p *Peer) Send(t MessageType, payload any) error {
	msg, err := NewMessage(t, payload)
	if err != nil {
		return err
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	if err := p.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	if err := p.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to send %s message: %w", t, err)
	}
	return nil
}

func (p *Peer) SendMove(m game.Move) error {
	return p.Send(MoveMessage, m)
}

// Receive blocks for the next message or until ctx is done.
func (p *Peer) Receive(ctx context.Context) (Message, error) {
	select {
	case msg := <-p.incoming:
		return msg, nil
	case <-p.done:
		return Message{}, p.readErr
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

// Expect receives the next message and fails unless it has type t.
func (p *Peer) Expect(ctx context.Context, t MessageType, payload any) error {
	msg, err := p.Receive(ctx)
	if err != nil {
		return err
	}
	if msg.Type == ErrorMessage {
		var e Error
		if err := msg.Decode(&e); err != nil {
			return err
		}
		return errors.New(e.Error)
	}
	if msg.Type != t {
		return fmt.Errorf("expected %s message, got %s", t, msg.Type)
	}
	if payload == nil {
		return nil
	}
	return msg.Decode(payload)
}

// Close sends a close frame and closes the connection.
func (p *Peer) Close() error {
	p.closeOnce.Do(func() { close(p.quit) })

	p.writeMu.Lock()
	_ = p.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	p.writeMu.Unlock()
	return p.conn.Close()
}

// IsClosed reports whether err comes from a closed connection.
func IsClosed(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
		errors.Is(err, websocket.ErrCloseSent)
}
