package game

// Session is the client's in-memory model of the current game. It is
// owned by the client actor goroutine and mutated only by router
// handlers and user-action senders; nothing else writes to it.
type Session struct {
	Role       Role
	PlayerID   string
	PlayerName string
	GamePin    string
	Players    []Player
	Eliminated bool

	// Ended is set by a normal game-over or leave flow so a later
	// connection-close event is not misreported as a failure.
	Ended bool

	// Round one.
	Round           int
	QuestionNumber  int
	TotalQuestions  int
	CurrentQuestion *Question
	Answered        bool
	LastCorrect     bool
	CorrectAnswer   int
	Scores          map[string]int

	// Speed and tiebreak phases.
	SpeedResults     []SpeedResult
	AwaitingVerdict  bool
	TiedPlayerCount  int
	OrderAnnounce    []OrderEntry
	EliminatedNotice *EliminatedPlayer

	// Round two turn-based pack phase.
	TurnOrder      []TurnPlayer
	TurnIndex      int
	Packs          []Pack
	SelectedPacks  map[string]bool
	PackTitle      string
	PackSelectedBy string
	PackQuestions  []Question
	PackCursor     int
	PackScore      int
	PackPlayer     string
	Round2Score    int

	// Game over.
	Winners     []string
	FinalScores []FinalScore
}

func NewSession() Session {
	return Session{
		Scores:        map[string]int{},
		SelectedPacks: map[string]bool{},
	}
}

// Reset returns every field to its initial value. It is the only way
// to leave a completed or abandoned game cleanly.
func (s *Session) Reset() {
	*s = NewSession()
}

// ReplaceRoster swaps the roster wholesale. Entries are never patched
// incrementally; the server-declared order is kept as-is.
func (s *Session) ReplaceRoster(players []Player) {
	s.Players = append([]Player(nil), players...)
}

// PlayerName looks a display name up by id, falling back to the id
// itself when the roster has no entry.
func (s *Session) NameOf(playerID string) string {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p.Name
		}
	}
	return playerID
}

// CurrentTurnPlayer reports whose turn is active in the pack phase.
func (s *Session) CurrentTurnPlayer() (TurnPlayer, bool) {
	if s.TurnIndex < 0 || s.TurnIndex >= len(s.TurnOrder) {
		return TurnPlayer{}, false
	}
	return s.TurnOrder[s.TurnIndex], true
}

// LocalTurn reports whether the local identity is the player at the
// current turn index. Selecting a pack is only permitted when true.
func (s *Session) LocalTurn() bool {
	tp, ok := s.CurrentTurnPlayer()
	return ok && tp.PlayerID == s.PlayerID
}

// AdoptTurnIndex takes the server-provided index verbatim when present.
// The local increment is a legacy fallback for servers that omit the
// field; it must never run when the server supplies one.
func (s *Session) AdoptTurnIndex(serverIndex *int) {
	if serverIndex != nil {
		s.TurnIndex = *serverIndex
		return
	}
	s.advanceTurnLocally()
}

func (s *Session) advanceTurnLocally() {
	if len(s.TurnOrder) == 0 {
		return
	}
	s.TurnIndex = (s.TurnIndex + 1) % len(s.TurnOrder)
}

// MergeSelectedPacks records which packs the server reports as taken.
func (s *Session) MergeSelectedPacks(packs []Pack) {
	for _, p := range packs {
		if p.Selected {
			s.SelectedPacks[p.ID] = true
		}
	}
}

// PackSelectable reports whether the local player may pick the given
// pack right now.
func (s *Session) PackSelectable(packID string) bool {
	return s.LocalTurn() && !s.SelectedPacks[packID]
}

// CorrectAnswerText resolves the correct-answer index of a question
// result against the current question's options.
func (s *Session) CorrectAnswerText() string {
	if s.CurrentQuestion == nil {
		return ""
	}
	if s.CorrectAnswer < 0 || s.CorrectAnswer >= len(s.CurrentQuestion.Options) {
		return ""
	}
	return s.CurrentQuestion.Options[s.CorrectAnswer]
}

// Snapshot returns a copy safe to hand to the renderer: slices and maps
// are cloned so a handler mutating the session cannot race a consumer
// holding an older view.
func (s *Session) Snapshot() Session {
	out := *s
	out.Players = append([]Player(nil), s.Players...)
	out.SpeedResults = append([]SpeedResult(nil), s.SpeedResults...)
	out.OrderAnnounce = append([]OrderEntry(nil), s.OrderAnnounce...)
	out.TurnOrder = append([]TurnPlayer(nil), s.TurnOrder...)
	out.Packs = append([]Pack(nil), s.Packs...)
	out.PackQuestions = append([]Question(nil), s.PackQuestions...)
	out.Winners = append([]string(nil), s.Winners...)
	out.FinalScores = append([]FinalScore(nil), s.FinalScores...)
	out.Scores = make(map[string]int, len(s.Scores))
	for k, v := range s.Scores {
		out.Scores[k] = v
	}
	out.SelectedPacks = make(map[string]bool, len(s.SelectedPacks))
	for k, v := range s.SelectedPacks {
		out.SelectedPacks[k] = v
	}
	if s.CurrentQuestion != nil {
		q := *s.CurrentQuestion
		q.Options = append([]string(nil), s.CurrentQuestion.Options...)
		out.CurrentQuestion = &q
	}
	if s.EliminatedNotice != nil {
		n := *s.EliminatedNotice
		out.EliminatedNotice = &n
	}
	return out
}
