// Package client is the core of the quiz client: a single-goroutine
// actor owning the session state, the message router, and the screen
// state machine. All mutation happens on inbox dispatch; there is no
// shared-memory concurrency.
package client

import (
	"context"
	"time"

	"go.uber.org/zap"

	"quizclient/internal/clock"
	"quizclient/internal/game"
	"quizclient/internal/protocol"
	"quizclient/internal/screen"
)

// Conn is an open connection to the game server.
type Conn interface {
	// Frames yields inbound frames in send order until the connection
	// closes.
	Frames() <-chan []byte
	Send(m protocol.ClientMessage) error
	Close() error
	// Err reports why the connection closed, nil on a clean close.
	Err() error
}

// Dialer opens connections. The real one lives in internal/transport.
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Conn, error)
}

// State is the race-free view handed out to GetState (test-only).
type State struct {
	Screen       screen.Screen
	Session      game.Session
	PendingPacks bool
	QueuedOut    int
	Connected    bool
}

type Config struct {
	Endpoint string
	Dialer   Dialer
	Renderer screen.Renderer
	Logger   *zap.Logger
	Clock    clock.Clock
}

type Client struct {
	inbox    chan Msg
	endpoint string
	dialer   Dialer
	renderer screen.Renderer
	log      *zap.Logger
	clock    clock.Clock

	sess   game.Session
	active screen.Screen

	handlers map[protocol.Kind]func(protocol.ServerMessage)

	conn        Conn
	connecting  bool
	expectClose bool
	outQueue    []protocol.ClientMessage

	// packSummary marks the blocking pack-complete sub-state: entered
	// when a pack's summary goes on screen, left by end_turn or its
	// server echo. While set, a packs-available message is buffered in
	// pendingPacks (at most one) instead of applied.
	packSummary  bool
	pendingPacks *protocol.ServerMessage

	timerGen  int
	remaining int
	timer     *time.Timer

	// askedAt is the client-side start-of-question timestamp used to
	// compute speed/tiebreak response times.
	askedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, cfg Config) *Client {
	ctx, cancel := context.WithCancel(parent)

	c := &Client{
		inbox:    make(chan Msg, 64),
		endpoint: cfg.Endpoint,
		dialer:   cfg.Dialer,
		renderer: cfg.Renderer,
		log:      cfg.Logger,
		clock:    cfg.Clock,
		sess:     game.NewSession(),
		active:   screen.Landing,
		ctx:      ctx,
		cancel:   cancel,
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.clock == nil {
		c.clock = clock.New()
	}
	c.handlers = c.routes()

	go c.loop()
	return c
}

// Inbox is where user actions are posted.
func (c *Client) Inbox() chan<- Msg { return c.inbox }

func (c *Client) loop() {
	c.render()
	for {
		select {
		case <-c.ctx.Done():
			c.shutdown()
			return

		case m := <-c.inbox:
			switch msg := m.(type) {
			case Shutdown:
				c.shutdown()
				return

			case GetState:
				msg.Reply <- State{
					Screen:       c.active,
					Session:      c.sess.Snapshot(),
					PendingPacks: c.pendingPacks != nil,
					QueuedOut:    len(c.outQueue),
					Connected:    c.conn != nil,
				}

			case connOpened:
				c.onConnOpened(msg.conn)
			case connFailed:
				c.onConnFailed(msg.err)
			case connClosed:
				c.onConnClosed(msg.err)
			case inboundFrame:
				c.route(msg.data)
			case timerTick:
				c.tick(msg.gen)

			case HostGame:
				c.hostGame()
			case OpenJoinForm:
				c.setScreen(screen.JoinForm)
			case JoinGame:
				c.joinGame(msg)
			case StartGame:
				c.startGame()
			case SubmitAnswer:
				c.submitAnswer(msg)
			case SubmitSpeedAnswer:
				c.submitSpeedAnswer(msg)
			case SubmitTiebreakAnswer:
				c.submitTiebreakAnswer(msg)
			case NextQuestion:
				c.sendHostOnly("next question", protocol.ClientMessage{Type: protocol.KindNextQuestion})
			case NextRound:
				c.sendHostOnly("next round", protocol.ClientMessage{Type: protocol.KindNextRound})
			case EndGame:
				c.sendHostOnly("end game", protocol.ClientMessage{Type: protocol.KindEndGame})
			case ContinueFromSpeedOrder:
				c.sendHostOnly("continue from speed order", protocol.ClientMessage{Type: protocol.KindContinueFromSpeedOrder})
			case SelectPack:
				c.selectPack(msg)
			case StartPackQuestions:
				c.sendHostOnly("start pack questions", protocol.ClientMessage{Type: protocol.KindStartPackQuestions})
			case SubmitPackAnswer:
				c.submitPackAnswer(msg)
			case VerifyPackAnswer:
				c.verifyPackAnswer(msg)
			case EndPackEarly:
				c.endPackEarly()
			case EndTurn:
				c.endTurn()
			case LeaveGame:
				c.leaveGame()
			case ReturnToLanding:
				c.returnToLanding()
			}
		}
	}
}

func (c *Client) shutdown() {
	c.cancelCountdown()
	c.closeConn()
	c.cancel()
}

// post delivers an event to the actor without blocking shutdown.
func (c *Client) post(m Msg) {
	select {
	case c.inbox <- m:
	case <-c.ctx.Done():
	}
}

// setScreen makes s the one active screen. Every transition away from
// a timed screen cancels that screen's timer; the renderer is handed a
// session snapshot it can keep.
func (c *Client) setScreen(s screen.Screen) {
	c.cancelCountdown()
	c.active = s
	c.render()
}

func (c *Client) render() {
	c.renderer.Render(c.active, c.sess.Snapshot())
}

// ensureConnection dials lazily. Outbound messages sent while the dial
// is in flight are queued and flushed in order once the connection
// opens; there is no delay-and-retry.
func (c *Client) ensureConnection() {
	if c.conn != nil || c.connecting {
		return
	}
	c.connecting = true
	c.expectClose = false

	go func() {
		conn, err := c.dialer.Dial(c.ctx, c.endpoint)
		if err != nil {
			c.post(connFailed{err: err})
			return
		}
		c.post(connOpened{conn: conn})
		for data := range conn.Frames() {
			c.post(inboundFrame{data: data})
		}
		c.post(connClosed{err: conn.Err()})
	}()
}

func (c *Client) onConnOpened(conn Conn) {
	c.conn = conn
	c.connecting = false

	queued := c.outQueue
	c.outQueue = nil
	for _, m := range queued {
		if err := conn.Send(m); err != nil {
			c.log.Warn("flush failed", zap.String("type", string(m.Type)), zap.Error(err))
		}
	}
}

func (c *Client) onConnFailed(err error) {
	c.connecting = false
	c.outQueue = nil
	c.log.Warn("connect failed", zap.Error(err))
	c.renderer.Notify("Connection error. Please try again.")
}

func (c *Client) onConnClosed(err error) {
	c.conn = nil
	switch {
	case c.expectClose:
		c.expectClose = false
		c.log.Debug("connection closed", zap.Error(err))
	case c.sess.Ended:
		// Normal end of game; not an unexpected disconnect.
		c.log.Info("connection closed after game end", zap.Error(err))
	default:
		c.log.Warn("disconnected", zap.Error(err))
		c.renderer.Notify("Disconnected from server")
	}
}

func (c *Client) closeConn() {
	if c.conn == nil {
		return
	}
	c.expectClose = true
	_ = c.conn.Close()
	c.conn = nil
}

// send delivers m now if the connection is open, queues it while a
// dial is in flight, and otherwise drops it with a warning.
func (c *Client) send(m protocol.ClientMessage) {
	switch {
	case c.conn != nil:
		if err := c.conn.Send(m); err != nil {
			c.log.Warn("send failed", zap.String("type", string(m.Type)), zap.Error(err))
		}
	case c.connecting:
		c.outQueue = append(c.outQueue, m)
	default:
		c.log.Warn("no connection, dropping message", zap.String("type", string(m.Type)))
	}
}

func (c *Client) sendHostOnly(action string, m protocol.ClientMessage) {
	if !c.hostOnly(action) {
		return
	}
	c.send(m)
}

func (c *Client) hostOnly(action string) bool {
	if c.sess.Role == game.RoleHost {
		return true
	}
	c.log.Warn("host-only action ignored", zap.String("action", action))
	return false
}

// armCountdown starts a one-second tick chain under a fresh timer
// generation.
func (c *Client) armCountdown(seconds int) {
	c.cancelCountdown()
	if seconds <= 0 {
		return
	}
	c.remaining = seconds
	gen := c.timerGen
	c.timer = time.AfterFunc(time.Second, func() { c.post(timerTick{gen: gen}) })
}

func (c *Client) cancelCountdown() {
	c.timerGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Client) tick(gen int) {
	if gen != c.timerGen {
		return // stale fire from an exited screen
	}
	c.remaining--
	c.renderer.Countdown(c.active, c.remaining)
	if c.remaining > 0 {
		c.timer = time.AfterFunc(time.Second, func() { c.post(timerTick{gen: gen}) })
	}
}
