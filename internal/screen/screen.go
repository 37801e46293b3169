// Package screen names the client's UI states and the contract the
// rendering layer fulfils. Exactly one screen is active at any time.
package screen

import "quizclient/internal/game"

type Screen string

const (
	Landing          Screen = "landing"
	JoinForm         Screen = "join-form"
	HostLobby        Screen = "host-lobby"
	PlayerLobby      Screen = "player-lobby"
	Question         Screen = "question"
	AnswerFeedback   Screen = "answer-feedback"
	Results          Screen = "results"
	RoundComplete    Screen = "round-complete"
	Eliminated       Screen = "eliminated"
	SpeedQuestion    Screen = "speed-question"
	SpeedResults     Screen = "speed-results"
	TiebreakNotice   Screen = "tiebreak-notice"
	TiebreakQuestion Screen = "tiebreak-question"
	TiebreakResults  Screen = "tiebreak-results"
	PlayerOrder      Screen = "player-order"
	PackSelection    Screen = "pack-selection"
	PackWaiting      Screen = "pack-waiting"
	PackQuestions    Screen = "pack-questions"
	PackComplete     Screen = "pack-complete"
	Round2Complete   Screen = "round-complete-2"
	GameOver         Screen = "game-over"
	LeftGame         Screen = "left-game"
)

// Renderer draws screens. The client assumes nothing about how beyond
// "the named screen becomes exclusively visible". Implementations run
// on the client's event goroutine and must not block.
type Renderer interface {
	// Render makes s the visible screen, drawn from the given session
	// snapshot.
	Render(s Screen, sess game.Session)

	// Countdown updates the remaining-seconds decoration of the active
	// timed screen.
	Countdown(s Screen, remaining int)

	// Notify surfaces a user-visible notice without changing the
	// active screen.
	Notify(text string)
}
