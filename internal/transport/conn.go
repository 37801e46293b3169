// Package transport owns the single websocket connection to the game
// server: dial, JSON frame send, and an ordered inbound frame stream.
// The transport guarantees per-connection ordering only; a reconnect
// is a fresh logical session.
package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"quizclient/internal/protocol"
)

const writeTimeout = 3 * time.Second

// Conn is one open connection. Frames are delivered in send order
// until the connection closes; Err reports why, nil on a clean close.
type Conn struct {
	ws     *websocket.Conn
	frames chan []byte
	err    error
	ctx    context.Context
	log    *zap.Logger
}

// Dial opens a connection to endpoint. ctx bounds both the dial and
// the connection's lifetime.
func Dial(ctx context.Context, endpoint string, log *zap.Logger) (*Conn, error) {
	ws, _, err := websocket.Dial(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}

	c := &Conn{
		ws:     ws,
		frames: make(chan []byte, 16),
		ctx:    ctx,
		log:    log.With(zap.String("conn", uuid.NewString()[:8])),
	}
	c.log.Info("connected", zap.String("endpoint", endpoint))

	go c.readLoop()
	return c, nil
}

func (c *Conn) readLoop() {
	defer close(c.frames)
	for {
		_, data, err := c.ws.Read(c.ctx)
		if err != nil {
			// A normal close is not an error to surface.
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				c.err = err
			}
			return
		}
		select {
		case c.frames <- data:
		case <-c.ctx.Done():
			c.err = c.ctx.Err()
			return
		}
	}
}

// Frames yields inbound frames until the connection closes.
func (c *Conn) Frames() <-chan []byte { return c.frames }

// Err is valid once Frames has been drained.
func (c *Conn) Err() error { return c.err }

func (c *Conn) Send(m protocol.ClientMessage) error {
	payload, err := protocol.Encode(m)
	if err != nil {
		return fmt.Errorf("encode %s: %w", m.Type, err)
	}

	ctx, cancel := context.WithTimeout(c.ctx, writeTimeout)
	defer cancel()

	c.log.Debug("send", zap.String("type", string(m.Type)))
	return c.ws.Write(ctx, websocket.MessageText, payload)
}

func (c *Conn) Close() error {
	return c.ws.Close(websocket.StatusNormalClosure, "bye")
}
