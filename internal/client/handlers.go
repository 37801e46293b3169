package client

import (
	"go.uber.org/zap"

	"quizclient/internal/game"
	"quizclient/internal/protocol"
	"quizclient/internal/screen"
)

const defaultPackTimeLimit = 45

// routes is the static kind→handler table. Exactly one handler per
// inbound kind; anything else falls through to the unknown-kind log.
func (c *Client) routes() map[protocol.Kind]func(protocol.ServerMessage) {
	return map[protocol.Kind]func(protocol.ServerMessage){
		protocol.KindGameCreated:            c.onGameCreated,
		protocol.KindJoinSuccess:            c.onJoinSuccess,
		protocol.KindPlayerJoined:           c.onPlayerJoined,
		protocol.KindGameStarted:            c.onGameStarted,
		protocol.KindNewQuestion:            c.onNewQuestion,
		protocol.KindAnswerReceived:         c.onAnswerReceived,
		protocol.KindQuestionResults:        c.onQuestionResults,
		protocol.KindRoundComplete:          c.onRoundComplete,
		protocol.KindPlayerEliminated:       c.onPlayerEliminated,
		protocol.KindRound2Start:            c.onRound2Start,
		protocol.KindSpeedQuestion:          c.onSpeedQuestion,
		protocol.KindSpeedAnswerReceived:    c.onAnswerAcknowledged,
		protocol.KindSpeedResults:           c.onSpeedResults,
		protocol.KindTiebreakStart:          c.onTiebreakStart,
		protocol.KindTiebreakQuestion:       c.onTiebreakQuestion,
		protocol.KindTiebreakAnswerReceived: c.onAnswerAcknowledged,
		protocol.KindTiebreakResults:        c.onTiebreakResults,
		protocol.KindPlayerOrder:            c.onPlayerOrder,
		protocol.KindRound2PlayerOrder:      c.onRound2PlayerOrder,
		protocol.KindRound2PacksAvailable:   c.onPacksAvailable,
		protocol.KindPackSelected:           c.onInformational,
		protocol.KindPackWaitingHost:        c.onPackWaitingHost,
		protocol.KindPackQuestions:          c.onPackQuestions,
		protocol.KindPlayerAnswerSubmitted:  c.onInformational,
		protocol.KindPackAnswerVerified:     c.onPackAnswerVerified,
		protocol.KindPackComplete:           c.onPackComplete,
		protocol.KindTurnEnded:              c.onTurnEnded,
		protocol.KindRound2Complete:         c.onRound2Complete,
		protocol.KindGameOver:               c.onGameOver,
		protocol.KindGameEnded:              c.onGameEnded,
		protocol.KindError:                  c.onServerError,
	}
}

// route decodes one frame and dispatches it. Malformed payloads and
// unknown kinds are logged and dropped, never fatal: the latter is
// deliberate tolerance of protocol skew between client and server
// versions.
func (c *Client) route(data []byte) {
	m, err := protocol.Decode(data)
	if err != nil {
		c.log.Warn("dropping malformed frame", zap.Error(err))
		return
	}
	h, ok := c.handlers[m.Type]
	if !ok {
		c.log.Warn("unknown message type", zap.String("type", string(m.Type)))
		return
	}
	h(m)
}

func (c *Client) onGameCreated(m protocol.ServerMessage) {
	c.sess.GamePin = m.GamePin
	c.setScreen(screen.HostLobby)
}

func (c *Client) onJoinSuccess(m protocol.ServerMessage) {
	c.sess.PlayerID = m.PlayerID
	c.sess.GamePin = m.GamePin
	c.sess.PlayerName = m.PlayerName
	c.setScreen(screen.PlayerLobby)
}

func (c *Client) onPlayerJoined(m protocol.ServerMessage) {
	// Wholesale replacement; the server-declared order is the truth.
	c.sess.ReplaceRoster(m.Players)
	c.render()
}

func (c *Client) onGameStarted(m protocol.ServerMessage) {
	if m.Round != 0 {
		c.sess.Round = m.Round
	}
	c.setScreen(screen.Question)
}

func (c *Client) onNewQuestion(m protocol.ServerMessage) {
	if m.Question == nil {
		c.log.Warn("new_question without question payload")
		return
	}
	c.sess.CurrentQuestion = m.Question
	if m.Round != 0 {
		c.sess.Round = m.Round
	}
	c.sess.QuestionNumber = m.QuestionNumber
	c.sess.TotalQuestions = m.TotalQuestions
	c.sess.Answered = false
	c.setScreen(screen.Question)
	c.armCountdown(m.Question.TimeLimit)
}

func (c *Client) onAnswerReceived(m protocol.ServerMessage) {
	c.sess.LastCorrect = m.Correct != nil && *m.Correct
	c.setScreen(screen.AnswerFeedback)
}

func (c *Client) onQuestionResults(m protocol.ServerMessage) {
	if m.CorrectAnswer != nil {
		c.sess.CorrectAnswer = *m.CorrectAnswer
	}
	c.sess.Scores = m.Scores
	c.setScreen(screen.Results)
}

func (c *Client) onRoundComplete(m protocol.ServerMessage) {
	c.setScreen(screen.RoundComplete)
}

func (c *Client) onPlayerEliminated(m protocol.ServerMessage) {
	if m.PlayerID != "" && m.PlayerID == c.sess.PlayerID {
		c.sess.Eliminated = true
		c.setScreen(screen.Eliminated)
		return
	}
	c.renderer.Notify(m.PlayerName + " has been eliminated!")
}

func (c *Client) onRound2Start(m protocol.ServerMessage) {
	// Informational only; active players wait for speed_question.
	if c.sess.Eliminated {
		c.log.Debug("eliminated, ignoring round2_start")
		return
	}
	c.log.Info("round two starting", zap.String("phase", m.Phase))
}

func (c *Client) onSpeedQuestion(m protocol.ServerMessage) {
	if c.sess.Eliminated {
		c.log.Debug("eliminated, ignoring speed question")
		return
	}
	if m.Question == nil {
		c.log.Warn("speed_question without question payload")
		return
	}
	c.sess.CurrentQuestion = m.Question
	c.sess.Answered = false
	c.sess.AwaitingVerdict = false
	c.askedAt = c.clock.Now()
	c.setScreen(screen.SpeedQuestion)
}

// onAnswerAcknowledged covers speed_answer_received and
// tiebreak_answer_received: the answer is in, show the waiting state
// without leaving the screen.
func (c *Client) onAnswerAcknowledged(m protocol.ServerMessage) {
	c.sess.AwaitingVerdict = true
	c.render()
}

func (c *Client) onSpeedResults(m protocol.ServerMessage) {
	c.sess.SpeedResults = game.OrderSpeedResults(m.Results)
	c.sess.EliminatedNotice = m.Eliminated
	c.setScreen(screen.SpeedResults)
}

func (c *Client) onTiebreakStart(m protocol.ServerMessage) {
	if c.sess.Eliminated {
		c.log.Debug("eliminated, ignoring tiebreak start")
		return
	}
	c.sess.TiedPlayerCount = m.TiedPlayerCount
	c.setScreen(screen.TiebreakNotice)
}

func (c *Client) onTiebreakQuestion(m protocol.ServerMessage) {
	if c.sess.Eliminated {
		c.log.Debug("eliminated, ignoring tiebreak question")
		return
	}
	if m.Question == nil {
		c.log.Warn("tiebreak_question without question payload")
		return
	}
	c.sess.CurrentQuestion = m.Question
	c.sess.Answered = false
	c.sess.AwaitingVerdict = false
	c.askedAt = c.clock.Now()
	c.setScreen(screen.TiebreakQuestion)
}

func (c *Client) onTiebreakResults(m protocol.ServerMessage) {
	c.sess.SpeedResults = game.OrderSpeedResults(m.Results)
	c.sess.EliminatedNotice = m.Eliminated
	if m.Eliminated != nil && m.Eliminated.PlayerID == c.sess.PlayerID && c.sess.PlayerID != "" {
		c.sess.Eliminated = true
	}
	c.setScreen(screen.TiebreakResults)
}

func (c *Client) onPlayerOrder(m protocol.ServerMessage) {
	c.sess.OrderAnnounce = m.Order
	c.setScreen(screen.PlayerOrder)
}

func (c *Client) onRound2PlayerOrder(m protocol.ServerMessage) {
	c.sess.TurnOrder = m.PlayerOrder
	c.sess.TurnIndex = 0
}

func (c *Client) onPacksAvailable(m protocol.ServerMessage) {
	if c.sess.Eliminated {
		c.log.Debug("eliminated, ignoring packs available")
		return
	}
	if c.packSummary {
		// The user is still reading the completion summary; applying
		// now would silently move the turn indicator. Held until the
		// turn actually ends.
		c.pendingPacks = &m
		return
	}
	c.applyPacksAvailable(m)
}

func (c *Client) applyPacksAvailable(m protocol.ServerMessage) {
	c.sess.MergeSelectedPacks(m.Packs)
	c.sess.Packs = m.Packs
	c.sess.AdoptTurnIndex(m.CurrentTurnIndex)
	c.setScreen(screen.PackSelection)
}

func (c *Client) drainPendingPacks() {
	if c.pendingPacks == nil {
		return
	}
	m := *c.pendingPacks
	c.pendingPacks = nil
	c.applyPacksAvailable(m)
}

func (c *Client) onPackWaitingHost(m protocol.ServerMessage) {
	if c.sess.Eliminated {
		c.log.Debug("eliminated, ignoring pack waiting")
		return
	}
	c.sess.PackTitle = m.PackTitle
	c.sess.PackSelectedBy = m.PlayerName
	c.setScreen(screen.PackWaiting)
}

func (c *Client) onPackQuestions(m protocol.ServerMessage) {
	if c.sess.Eliminated {
		c.log.Debug("eliminated, ignoring pack questions")
		return
	}
	c.sess.PackQuestions = m.Questions
	c.sess.PackCursor = 0
	c.sess.PackScore = 0
	c.sess.PackPlayer = m.CurrentPlayer
	c.sess.Round2Score = m.PlayerRound2Score

	limit := m.TimeLimit
	if limit == 0 {
		limit = defaultPackTimeLimit
	}
	c.setScreen(screen.PackQuestions)
	c.armCountdown(limit)
}

// onPackAnswerVerified advances the pack cursor on the server's
// verdict broadcast. This is the sole place the pack score moves:
// the host's verify button does not touch it, so the score cannot be
// double counted.
func (c *Client) onPackAnswerVerified(m protocol.ServerMessage) {
	if m.IsCorrect != nil && *m.IsCorrect {
		c.sess.PackScore++
	}
	c.sess.PackCursor++
	if c.sess.PackCursor >= len(c.sess.PackQuestions) {
		c.packSummary = true
		c.setScreen(screen.PackComplete)
		return
	}
	c.render()
}

func (c *Client) onPackComplete(m protocol.ServerMessage) {
	if m.PlayerName != "" {
		c.sess.PackPlayer = m.PlayerName
	}
	if m.TotalRound2Score != nil {
		c.sess.Round2Score = *m.TotalRound2Score
		c.sess.PackScore = 0
	}
	c.packSummary = true
	c.setScreen(screen.PackComplete)
}

// onTurnEnded is the server echo of end_turn. Non-host clients cannot
// press the host-only acknowledge button, so the echo also leaves the
// blocking pack-complete sub-state. The sub-state must end here even
// with nothing buffered yet: the server sends the next packs-available
// after turn_ended, and that one must apply directly.
func (c *Client) onTurnEnded(m protocol.ServerMessage) {
	c.packSummary = false
	c.drainPendingPacks()
}

func (c *Client) onRound2Complete(m protocol.ServerMessage) {
	c.setScreen(screen.Round2Complete)
}

func (c *Client) onGameOver(m protocol.ServerMessage) {
	c.sess.Winners = m.Winners
	c.sess.FinalScores = game.RankFinalScores(m.FinalScores)
	c.sess.Ended = true
	c.setScreen(screen.GameOver)
}

func (c *Client) onGameEnded(m protocol.ServerMessage) {
	c.sess.Ended = true
	c.setScreen(screen.GameOver)
}

// onServerError surfaces the notice and keeps the current screen.
func (c *Client) onServerError(m protocol.ServerMessage) {
	c.renderer.Notify(m.Message)
}

func (c *Client) onInformational(m protocol.ServerMessage) {
	c.log.Debug("informational message", zap.String("type", string(m.Type)))
}
