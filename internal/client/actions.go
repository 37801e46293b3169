package client

import (
	"strings"

	"go.uber.org/zap"

	"quizclient/internal/game"
	"quizclient/internal/protocol"
	"quizclient/internal/screen"
)

func (c *Client) hostGame() {
	c.sess.Role = game.RoleHost
	c.ensureConnection()
	// Stays on landing until game_created arrives.
	c.send(protocol.ClientMessage{Type: protocol.KindCreateGame})
}

func (c *Client) joinGame(msg JoinGame) {
	pin := strings.ToUpper(strings.TrimSpace(msg.Pin))
	name := strings.TrimSpace(msg.Name)
	if pin == "" || name == "" {
		c.renderer.Notify("Please enter both PIN and name")
		return
	}

	c.sess.Role = game.RolePlayer
	c.sess.GamePin = pin
	c.sess.PlayerName = name

	c.ensureConnection()
	// Stays on join-form until join_success (or an error) arrives.
	c.send(protocol.ClientMessage{
		Type:       protocol.KindJoinGame,
		GamePin:    pin,
		PlayerName: name,
	})
}

func (c *Client) startGame() {
	c.sendHostOnly("start game", protocol.ClientMessage{Type: protocol.KindStartGame})
}

func (c *Client) submitAnswer(msg SubmitAnswer) {
	q := c.sess.CurrentQuestion
	if q == nil {
		c.log.Warn("submit with no active question")
		return
	}
	if c.sess.Answered {
		// Idempotent: exactly one submission per question.
		c.log.Debug("duplicate answer suppressed", zap.String("question", string(q.ID)))
		return
	}
	c.sess.Answered = true
	c.send(protocol.ClientMessage{
		Type:       protocol.KindSubmitAnswer,
		QuestionID: q.ID,
		Answer:     msg.Option,
	})
	c.render()
}

func (c *Client) submitSpeedAnswer(msg SubmitSpeedAnswer) {
	if c.sess.Eliminated {
		c.renderer.Notify("You have been eliminated and cannot answer")
		return
	}
	answer := strings.TrimSpace(msg.Answer)
	if answer == "" {
		c.renderer.Notify("Please enter an answer")
		return
	}
	q := c.sess.CurrentQuestion
	if q == nil || c.sess.Answered {
		return
	}
	c.sess.Answered = true
	c.send(protocol.ClientMessage{
		Type:         protocol.KindSubmitSpeedAnswer,
		QuestionID:   q.ID,
		Answer:       answer,
		ResponseTime: c.clock.Now().Sub(c.askedAt).Seconds(),
	})
}

func (c *Client) submitTiebreakAnswer(msg SubmitTiebreakAnswer) {
	if c.sess.Eliminated {
		c.renderer.Notify("You have been eliminated and cannot answer")
		return
	}
	answer := strings.TrimSpace(msg.Answer)
	if answer == "" {
		c.renderer.Notify("Please enter an answer")
		return
	}
	if c.sess.Answered {
		return
	}
	c.sess.Answered = true
	c.send(protocol.ClientMessage{
		Type:         protocol.KindSubmitTiebreakAnswer,
		Answer:       answer,
		ResponseTime: c.clock.Now().Sub(c.askedAt).Seconds(),
	})
}

func (c *Client) selectPack(msg SelectPack) {
	// The button simply isn't offered off-turn; a stray action is a
	// no-op, not an error.
	if !c.sess.PackSelectable(msg.PackID) {
		c.log.Debug("pack selection ignored", zap.String("pack", msg.PackID))
		return
	}
	c.send(protocol.ClientMessage{
		Type:   protocol.KindSelectQuestionPack,
		PackID: msg.PackID,
	})
}

func (c *Client) submitPackAnswer(msg SubmitPackAnswer) {
	answer := strings.TrimSpace(msg.Answer)
	if answer == "" {
		c.renderer.Notify("Please enter an answer")
		return
	}
	if c.sess.PackCursor >= len(c.sess.PackQuestions) {
		c.log.Warn("pack answer with no active question")
		return
	}
	idx := c.sess.PackCursor
	c.send(protocol.ClientMessage{
		Type:          protocol.KindSubmitPackAnswer,
		Answer:        answer,
		QuestionIndex: &idx,
	})
}

func (c *Client) verifyPackAnswer(msg VerifyPackAnswer) {
	if !c.hostOnly("verify pack answer") {
		return
	}
	if c.sess.PackCursor >= len(c.sess.PackQuestions) {
		c.log.Warn("verify past end of pack")
		return
	}
	idx := c.sess.PackCursor
	correct := msg.Correct
	// No local cursor/score mutation here: the server's broadcast is
	// the single authority, applied in onPackAnswerVerified.
	c.send(protocol.ClientMessage{
		Type:          protocol.KindVerifyPackAnswer,
		IsCorrect:     &correct,
		QuestionIndex: &idx,
	})
}

func (c *Client) endPackEarly() {
	if !c.hostOnly("end pack early") {
		return
	}
	c.cancelCountdown()
	c.send(protocol.ClientMessage{Type: protocol.KindEndPackEarly})
}

func (c *Client) endTurn() {
	if !c.hostOnly("end turn") {
		return
	}
	c.cancelCountdown()
	c.send(protocol.ClientMessage{Type: protocol.KindEndTurn})
	// Acknowledging the completion summary leaves the blocking
	// sub-state and releases the buffered packs-available message,
	// if any.
	c.packSummary = false
	c.drainPendingPacks()
}

func (c *Client) leaveGame() {
	c.send(protocol.ClientMessage{Type: protocol.KindLeaveGame})
	c.sess.Ended = true
	c.setScreen(screen.LeftGame)
}

func (c *Client) returnToLanding() {
	c.closeConn()
	c.connecting = false
	c.outQueue = nil
	c.packSummary = false
	c.pendingPacks = nil
	c.sess.Reset()
	c.setScreen(screen.Landing)
}
