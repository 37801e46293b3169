// Package protocol defines the JSON wire messages exchanged with the
// quiz server. Field names are fixed by the existing server and must
// not change.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"quizclient/internal/game"
)

// ErrMalformedFrame wraps any frame that fails to parse; the router
// logs and drops these.
var ErrMalformedFrame = errors.New("malformed frame")

// Kind is the message discriminator carried in the "type" field.
type Kind string

// Server -> client.
const (
	KindGameCreated            Kind = "game_created"
	KindJoinSuccess            Kind = "join_success"
	KindPlayerJoined           Kind = "player_joined"
	KindGameStarted            Kind = "game_started"
	KindNewQuestion            Kind = "new_question"
	KindAnswerReceived         Kind = "answer_received"
	KindQuestionResults        Kind = "question_results"
	KindRoundComplete          Kind = "round_complete"
	KindPlayerEliminated       Kind = "player_eliminated"
	KindRound2Start            Kind = "round2_start"
	KindSpeedQuestion          Kind = "speed_question"
	KindSpeedAnswerReceived    Kind = "speed_answer_received"
	KindSpeedResults           Kind = "speed_results"
	KindTiebreakStart          Kind = "tiebreak_start"
	KindTiebreakQuestion       Kind = "tiebreak_question"
	KindTiebreakAnswerReceived Kind = "tiebreak_answer_received"
	KindTiebreakResults        Kind = "tiebreak_results"
	KindPlayerOrder            Kind = "player_order"
	KindRound2PlayerOrder      Kind = "round2_player_order"
	KindRound2PacksAvailable   Kind = "round2_packs_available"
	KindPackSelected           Kind = "pack_selected"
	KindPackWaitingHost        Kind = "pack_waiting_host"
	KindPackQuestions          Kind = "pack_questions"
	KindPlayerAnswerSubmitted  Kind = "player_answer_submitted"
	KindPackAnswerVerified     Kind = "pack_answer_verified"
	KindPackComplete           Kind = "pack_complete"
	KindTurnEnded              Kind = "turn_ended"
	KindRound2Complete         Kind = "round2_complete"
	KindGameOver               Kind = "game_over"
	KindGameEnded              Kind = "game_ended"
	KindError                  Kind = "error"
)

// Client -> server.
const (
	KindCreateGame             Kind = "create_game"
	KindJoinGame               Kind = "join_game"
	KindStartGame              Kind = "start_game"
	KindSubmitAnswer           Kind = "submit_answer"
	KindSubmitSpeedAnswer      Kind = "submit_speed_answer"
	KindSubmitTiebreakAnswer   Kind = "submit_tiebreak_answer"
	KindNextQuestion           Kind = "next_question"
	KindNextRound              Kind = "next_round"
	KindEndGame                Kind = "end_game"
	KindContinueFromSpeedOrder Kind = "continue_from_speed_order"
	KindSelectQuestionPack     Kind = "select_question_pack"
	KindStartPackQuestions     Kind = "start_pack_questions"
	KindSubmitPackAnswer       Kind = "submit_pack_answer"
	KindVerifyPackAnswer       Kind = "pack_answer_verified"
	KindEndPackEarly           Kind = "end_pack_early"
	KindEndTurn                Kind = "end_turn"
	KindLeaveGame              Kind = "leave_game"
)

// ClientMessage is the outbound frame. Answer is an option index
// (number) for multiple-choice questions and free text (string) for
// speed/tiebreak ones, so it stays loosely typed.
type ClientMessage struct {
	Type          Kind            `json:"type"`
	GamePin       string          `json:"gamePin,omitempty"`
	PlayerName    string          `json:"playerName,omitempty"`
	QuestionID    game.QuestionID `json:"questionId,omitempty"`
	Answer        any             `json:"answer,omitempty"`
	ResponseTime  float64         `json:"responseTime,omitempty"`
	PackID        string          `json:"packId,omitempty"`
	IsCorrect     *bool           `json:"isCorrect,omitempty"`
	QuestionIndex *int            `json:"questionIndex,omitempty"`
}

// ServerMessage is the inbound frame. Which fields are populated
// depends on Type; pointers distinguish absent from zero where the
// handlers care.
type ServerMessage struct {
	Type    Kind   `json:"type"`
	Message string `json:"message,omitempty"`
	Phase   string `json:"phase,omitempty"`

	GamePin    string        `json:"gamePin,omitempty"`
	PlayerID   string        `json:"playerId,omitempty"`
	PlayerName string        `json:"playerName,omitempty"`
	Players    []game.Player `json:"players,omitempty"`

	Round          int            `json:"round,omitempty"`
	TotalRounds    int            `json:"totalRounds,omitempty"`
	QuestionNumber int            `json:"questionNumber,omitempty"`
	TotalQuestions int            `json:"totalQuestions,omitempty"`
	Question       *game.Question `json:"question,omitempty"`
	Correct        *bool          `json:"correct,omitempty"`
	CorrectAnswer  *int           `json:"correctAnswer,omitempty"`
	Scores         map[string]int `json:"scores,omitempty"`

	Results         []game.SpeedResult     `json:"results,omitempty"`
	Eliminated      *game.EliminatedPlayer `json:"eliminated,omitempty"`
	TiedPlayerCount int                    `json:"tiedPlayerCount,omitempty"`
	Order           []game.OrderEntry      `json:"order,omitempty"`

	PlayerOrder       []game.TurnPlayer `json:"playerOrder,omitempty"`
	CurrentTurnIndex  *int              `json:"currentTurnIndex,omitempty"`
	Packs             []game.Pack       `json:"packs,omitempty"`
	PackTitle         string            `json:"packTitle,omitempty"`
	Questions         []game.Question   `json:"questions,omitempty"`
	TimeLimit         int               `json:"timeLimit,omitempty"`
	CurrentPlayer     string            `json:"currentPlayer,omitempty"`
	PlayerRound2Score int               `json:"playerRound2Score,omitempty"`
	IsCorrect         *bool             `json:"isCorrect,omitempty"`
	QuestionIndex     int               `json:"questionIndex,omitempty"`
	Score             int               `json:"score,omitempty"`
	TotalRound2Score  *int              `json:"totalRound2Score,omitempty"`

	Winners     []string          `json:"winners,omitempty"`
	FinalScores []game.FinalScore `json:"finalScores,omitempty"`
}

// Decode parses one inbound frame. Unknown kinds decode fine (the
// router drops them); malformed JSON is the caller's cue to log and
// ignore the frame.
func Decode(data []byte) (ServerMessage, error) {
	var m ServerMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return ServerMessage{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return m, nil
}

// Encode marshals one outbound frame.
func Encode(m ClientMessage) ([]byte, error) {
	return json.Marshal(m)
}
