package game

import (
	"encoding/json"
	"strconv"
)

// Role distinguishes the two client modes.
type Role string

const (
	RoleNone   Role = ""
	RoleHost   Role = "host"
	RolePlayer Role = "player"
)

// QuestionID preserves the wire representation of a question id: the
// server uses numbers for round-one questions and strings for speed
// questions, and submissions must echo the id in the same shape.
type QuestionID string

func (id *QuestionID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = QuestionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = QuestionID(n.String())
	return nil
}

func (id QuestionID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.Atoi(string(id)); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Player is one roster entry. Roster order is server-declared and
// significant: turn order derives from it.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
}

// Question is the question currently on screen. Replaced wholesale on
// every new-question message, discarded on phase exit.
type Question struct {
	ID        QuestionID `json:"id"`
	Text      string     `json:"text"`
	Options   []string   `json:"options,omitempty"` // empty for free-text questions
	TimeLimit int        `json:"timeLimit,omitempty"`
	Answer    string     `json:"answer,omitempty"` // host-side reveal during pack play
}

// SpeedResult is one entry of a speed or tiebreak result list.
type SpeedResult struct {
	PlayerName   string  `json:"playerName"`
	Answer       string  `json:"answer"`
	Correct      bool    `json:"correct"`
	ResponseTime float64 `json:"responseTime"`
}

// OrderEntry is one line of a player-order announcement.
type OrderEntry struct {
	Position     int     `json:"position"`
	PlayerName   string  `json:"playerName"`
	ResponseTime float64 `json:"responseTime"`
}

// TurnPlayer identifies a player in the round-two turn order.
type TurnPlayer struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// Pack is a selectable question pack.
type Pack struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"questionCount"`
	Selected      bool   `json:"selected"`
}

// EliminatedPlayer names whoever a result message eliminated.
type EliminatedPlayer struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// FinalScore is one row of the game-over score table.
type FinalScore struct {
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
}
