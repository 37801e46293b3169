package client

// Msg is anything the client actor processes on its single goroutine:
// user actions, transport events, timer ticks, and test hooks.
type Msg interface{ isClientMsg() }

// User actions.

// HostGame connects (if needed) and asks the server to create a game.
type HostGame struct{}

// OpenJoinForm shows the join form.
type OpenJoinForm struct{}

// JoinGame submits the join form. Pin is upper-cased before sending.
type JoinGame struct {
	Pin  string
	Name string
}

// StartGame is the host action that begins round one.
type StartGame struct{}

// SubmitAnswer locks in a multiple-choice option for the current
// question. Repeated submissions for the same question are suppressed
// client-side.
type SubmitAnswer struct{ Option int }

// SubmitSpeedAnswer sends a free-text speed answer together with the
// elapsed response time.
type SubmitSpeedAnswer struct{ Answer string }

// SubmitTiebreakAnswer sends a free-text tiebreak answer.
type SubmitTiebreakAnswer struct{ Answer string }

// NextQuestion advances round one (host only).
type NextQuestion struct{}

// NextRound advances to the next round (host only).
type NextRound struct{}

// EndGame ends the game for everyone (host only).
type EndGame struct{}

// ContinueFromSpeedOrder moves on from the speed-order announcement
// (host only).
type ContinueFromSpeedOrder struct{}

// SelectPack picks a question pack. A no-op unless it is the local
// player's turn and the pack is still available.
type SelectPack struct{ PackID string }

// StartPackQuestions begins the selected pack (host only).
type StartPackQuestions struct{}

// SubmitPackAnswer sends the pack player's free-text answer for the
// current pack question; the host then verifies it.
type SubmitPackAnswer struct{ Answer string }

// VerifyPackAnswer is the host's correct/incorrect verdict for the
// current pack question. The score is not touched locally; the server
// broadcast is the sole authority.
type VerifyPackAnswer struct{ Correct bool }

// EndPackEarly finalizes the current pack before its questions run out
// (host only).
type EndPackEarly struct{}

// EndTurn acknowledges the pack-complete summary, hands the turn to
// the next player, and drains any buffered packs-available message
// (host only).
type EndTurn struct{}

// LeaveGame sends a leave notice and shows the left-game screen.
type LeaveGame struct{}

// ReturnToLanding resets the session to its initial value, closes the
// connection, and shows the landing screen.
type ReturnToLanding struct{}

// Shutdown stops the client actor.
type Shutdown struct{}

// GetState is a test-only hook mirroring the actor state without data
// races.
type GetState struct{ Reply chan State }

func (HostGame) isClientMsg()               {}
func (OpenJoinForm) isClientMsg()           {}
func (JoinGame) isClientMsg()               {}
func (StartGame) isClientMsg()              {}
func (SubmitAnswer) isClientMsg()           {}
func (SubmitSpeedAnswer) isClientMsg()      {}
func (SubmitTiebreakAnswer) isClientMsg()   {}
func (NextQuestion) isClientMsg()           {}
func (NextRound) isClientMsg()              {}
func (EndGame) isClientMsg()                {}
func (ContinueFromSpeedOrder) isClientMsg() {}
func (SelectPack) isClientMsg()             {}
func (StartPackQuestions) isClientMsg()     {}
func (SubmitPackAnswer) isClientMsg()       {}
func (VerifyPackAnswer) isClientMsg()       {}
func (EndPackEarly) isClientMsg()           {}
func (EndTurn) isClientMsg()                {}
func (LeaveGame) isClientMsg()              {}
func (ReturnToLanding) isClientMsg()        {}
func (Shutdown) isClientMsg()               {}
func (GetState) isClientMsg()               {}

// Transport events, posted by the connection goroutine.

type connOpened struct{ conn Conn }
type connFailed struct{ err error }
type connClosed struct{ err error }
type inboundFrame struct{ data []byte }

func (connOpened) isClientMsg()   {}
func (connFailed) isClientMsg()   {}
func (connClosed) isClientMsg()   {}
func (inboundFrame) isClientMsg() {}

// timerTick carries the generation it was armed under; ticks from an
// exited screen are stale and dropped.
type timerTick struct{ gen int }

func (timerTick) isClientMsg() {}
