package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"quizclient/internal/game"
	"quizclient/internal/protocol"
	"quizclient/internal/screen"
)

type fakeConn struct {
	frames chan []byte
	once   sync.Once

	mu     sync.Mutex
	sent   []protocol.ClientMessage
	closed bool
	err    error
}

func newFakeConn() *fakeConn {
	return &fakeConn{frames: make(chan []byte)}
}

func (f *fakeConn) Frames() <-chan []byte { return f.frames }

func (f *fakeConn) Send(m protocol.ClientMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.once.Do(func() { close(f.frames) })
	return nil
}

func (f *fakeConn) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// drop simulates the server side going away uncleanly.
func (f *fakeConn) drop(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
	f.once.Do(func() { close(f.frames) })
}

func (f *fakeConn) sentMessages() []protocol.ClientMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]protocol.ClientMessage(nil), f.sent...)
}

func (f *fakeConn) wasClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type fakeDialer struct {
	conn *fakeConn
	err  error
}

func (d *fakeDialer) Dial(ctx context.Context, endpoint string) (Conn, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}

type fakeRenderer struct {
	mu         sync.Mutex
	screens    []screen.Screen
	notices    []string
	countdowns []int
}

func (r *fakeRenderer) Render(s screen.Screen, _ game.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens = append(r.screens, s)
}

func (r *fakeRenderer) Countdown(_ screen.Screen, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countdowns = append(r.countdowns, remaining)
}

func (r *fakeRenderer) Notify(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, text)
}

func (r *fakeRenderer) allNotices() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notices...)
}

func (r *fakeRenderer) countdownCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.countdowns)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type fixture struct {
	c    *Client
	conn *fakeConn
	r    *fakeRenderer
	clk  *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := newFakeConn()
	r := &fakeRenderer{}
	clk := &fakeClock{now: time.Unix(1700000000, 0)}
	c := New(context.Background(), Config{
		Endpoint: "ws://example.test/ws",
		Dialer:   &fakeDialer{conn: conn},
		Renderer: r,
		Logger:   zaptest.NewLogger(t),
		Clock:    clk,
	})
	t.Cleanup(func() { c.Inbox() <- Shutdown{} })
	return &fixture{c: c, conn: conn, r: r, clk: clk}
}

// state round-trips through the actor, so by the time it returns every
// message posted to the inbox before it has been processed.
func (f *fixture) state(t *testing.T) State {
	t.Helper()
	ch := make(chan State, 1)
	f.c.Inbox() <- GetState{Reply: ch}
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("client actor did not answer GetState")
		return State{}
	}
}

func (f *fixture) waitConnected(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool {
		s := f.state(t)
		return s.Connected && s.QueuedOut == 0
	}, 2*time.Second, 5*time.Millisecond)
}

func (f *fixture) waitDisconnected(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool {
		return !f.state(t).Connected
	}, 2*time.Second, 5*time.Millisecond)
}

// serverSends injects an inbound frame, bypassing the fake connection's
// channel so ordering against later state() calls is deterministic.
func (f *fixture) serverSends(t *testing.T, raw string) {
	t.Helper()
	f.c.Inbox() <- inboundFrame{data: []byte(raw)}
}

func (f *fixture) join(t *testing.T) {
	t.Helper()
	f.c.Inbox() <- JoinGame{Pin: "ab12", Name: "Ann"}
	f.waitConnected(t)
	f.serverSends(t, `{"type":"join_success","playerId":"p1","gamePin":"AB12","playerName":"Ann"}`)
}

func (f *fixture) host(t *testing.T) {
	t.Helper()
	f.c.Inbox() <- HostGame{}
	f.waitConnected(t)
	f.serverSends(t, `{"type":"game_created","gamePin":"AB12"}`)
}

func TestJoinFlow(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	s := f.state(t)
	require.Equal(t, screen.PlayerLobby, s.Screen)
	require.Equal(t, "p1", s.Session.PlayerID)
	require.Equal(t, "AB12", s.Session.GamePin)
	require.Equal(t, "Ann", s.Session.PlayerName)
	require.Equal(t, game.RolePlayer, s.Session.Role)

	sent := f.conn.sentMessages()
	require.Len(t, sent, 1)
	require.Equal(t, protocol.KindJoinGame, sent[0].Type)
	require.Equal(t, "AB12", sent[0].GamePin, "pin is upper-cased before sending")
	require.Equal(t, "Ann", sent[0].PlayerName)
}

func TestJoinRequiresPinAndName(t *testing.T) {
	f := newFixture(t)
	f.c.Inbox() <- JoinGame{Pin: "  ", Name: ""}

	s := f.state(t)
	require.Equal(t, screen.Landing, s.Screen)
	require.False(t, s.Connected, "no dial for an empty form")
	require.Contains(t, f.r.allNotices(), "Please enter both PIN and name")
}

func TestHostFlowFlushesQueuedCreate(t *testing.T) {
	f := newFixture(t)
	f.host(t)

	// create_game was posted before the dial finished; it must arrive
	// once, in order, after the connection opens.
	sent := f.conn.sentMessages()
	require.Len(t, sent, 1)
	require.Equal(t, protocol.KindCreateGame, sent[0].Type)

	s := f.state(t)
	require.Equal(t, screen.HostLobby, s.Screen)
	require.Equal(t, "AB12", s.Session.GamePin)
	require.Equal(t, game.RoleHost, s.Session.Role)
}

func TestConnectFailureNotifies(t *testing.T) {
	conn := newFakeConn()
	r := &fakeRenderer{}
	c := New(context.Background(), Config{
		Endpoint: "ws://example.test/ws",
		Dialer:   &fakeDialer{conn: conn, err: errors.New("refused")},
		Renderer: r,
		Logger:   zaptest.NewLogger(t),
	})
	t.Cleanup(func() { c.Inbox() <- Shutdown{} })

	c.Inbox() <- HostGame{}
	require.Eventually(t, func() bool {
		for _, n := range r.allNotices() {
			if n == "Connection error. Please try again." {
				return true
			}
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRosterReplacedWholesale(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"player_joined","players":[
		{"id":"p1","name":"Ann","connected":true},
		{"id":"p2","name":"Bo","connected":true}]}`)
	f.serverSends(t, `{"type":"player_joined","players":[
		{"id":"p2","name":"Bo","connected":false},
		{"id":"p1","name":"Ann","connected":true}]}`)

	s := f.state(t)
	require.Equal(t, []game.Player{
		{ID: "p2", Name: "Bo", Connected: false},
		{ID: "p1", Name: "Ann", Connected: true},
	}, s.Session.Players, "server-declared order and flags win")
}

func TestDuplicateAnswerSuppressed(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"new_question","round":1,"questionNumber":1,"totalQuestions":5,
		"question":{"id":3,"text":"2+2?","options":["3","4"],"timeLimit":20}}`)
	f.c.Inbox() <- SubmitAnswer{Option: 1}
	f.c.Inbox() <- SubmitAnswer{Option: 0}

	s := f.state(t)
	require.True(t, s.Session.Answered)

	var answers []protocol.ClientMessage
	for _, m := range f.conn.sentMessages() {
		if m.Type == protocol.KindSubmitAnswer {
			answers = append(answers, m)
		}
	}
	require.Len(t, answers, 1, "exactly one submission per question")
	require.Equal(t, game.QuestionID("3"), answers[0].QuestionID)
	require.Equal(t, 1, answers[0].Answer)
}

func TestSpeedAnswerCarriesResponseTime(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"speed_question","question":{"id":"speed_1","text":"Capital of France?"}}`)
	s := f.state(t)
	require.Equal(t, screen.SpeedQuestion, s.Screen)

	f.clk.advance(2500 * time.Millisecond)
	f.c.Inbox() <- SubmitSpeedAnswer{Answer: " Paris "}
	f.state(t)

	sent := f.conn.sentMessages()
	last := sent[len(sent)-1]
	require.Equal(t, protocol.KindSubmitSpeedAnswer, last.Type)
	require.Equal(t, game.QuestionID("speed_1"), last.QuestionID)
	require.Equal(t, "Paris", last.Answer)
	require.InDelta(t, 2.5, last.ResponseTime, 1e-9)
}

func TestSpeedResultsOrderedCorrectFirstThenFastest(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"speed_results","results":[
		{"playerName":"A","answer":"x","correct":true,"responseTime":3.0},
		{"playerName":"B","answer":"y","correct":false,"responseTime":1.0},
		{"playerName":"C","answer":"z","correct":true,"responseTime":1.5}]}`)

	s := f.state(t)
	require.Equal(t, screen.SpeedResults, s.Screen)
	names := make([]string, len(s.Session.SpeedResults))
	for i, r := range s.Session.SpeedResults {
		names[i] = r.PlayerName
	}
	require.Equal(t, []string{"C", "A", "B"}, names)
}

func TestEliminationIsSticky(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"player_eliminated","playerId":"p1","playerName":"Ann"}`)
	s := f.state(t)
	require.Equal(t, screen.Eliminated, s.Screen)
	require.True(t, s.Session.Eliminated)

	// Phase entries must not pull an eliminated player back in.
	f.serverSends(t, `{"type":"speed_question","question":{"id":"speed_2","text":"?"}}`)
	f.serverSends(t, `{"type":"tiebreak_start","tiedPlayerCount":2}`)
	f.serverSends(t, `{"type":"round2_packs_available","packs":[{"id":"k1","title":"T","description":"","questionCount":4,"selected":false}]}`)
	require.Equal(t, screen.Eliminated, f.state(t).Screen)

	before := len(f.conn.sentMessages())
	f.c.Inbox() <- SubmitSpeedAnswer{Answer: "late"}
	f.c.Inbox() <- SubmitTiebreakAnswer{Answer: "late"}
	f.state(t)
	require.Len(t, f.conn.sentMessages(), before, "eliminated players cannot answer")
	require.Contains(t, f.r.allNotices(), "You have been eliminated and cannot answer")

	// Results screens remain visible to everyone.
	f.serverSends(t, `{"type":"speed_results","results":[]}`)
	require.Equal(t, screen.SpeedResults, f.state(t).Screen)
}

func TestOtherPlayerEliminationIsANotice(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"player_eliminated","playerId":"p2","playerName":"Bo"}`)
	s := f.state(t)
	require.Equal(t, screen.PlayerLobby, s.Screen)
	require.False(t, s.Session.Eliminated)
	require.Contains(t, f.r.allNotices(), "Bo has been eliminated!")
}

func TestTiebreakResultsEliminateNamedPlayer(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"tiebreak_results","results":[
		{"playerName":"Ann","answer":"a","correct":false,"responseTime":4.0}],
		"eliminated":{"playerId":"p1","playerName":"Ann"}}`)

	s := f.state(t)
	require.Equal(t, screen.TiebreakResults, s.Screen)
	require.True(t, s.Session.Eliminated)
	require.Equal(t, "Ann", s.Session.EliminatedNotice.PlayerName)
}

func TestServerTurnIndexAdoptedVerbatim(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"round2_player_order","playerOrder":[
		{"playerId":"p1","playerName":"Ann"},
		{"playerId":"p2","playerName":"Bo"},
		{"playerId":"p3","playerName":"Cy"}]}`)
	f.serverSends(t, `{"type":"round2_packs_available","currentTurnIndex":2,
		"packs":[{"id":"k1","title":"T","description":"d","questionCount":4,"selected":false}]}`)

	s := f.state(t)
	require.Equal(t, screen.PackSelection, s.Screen)
	require.Equal(t, 2, s.Session.TurnIndex, "server index wins, no local increment")
}

func TestPacksAvailableBufferedDuringPackCompleteAndDrainedOnce(t *testing.T) {
	f := newFixture(t)
	f.host(t)

	f.serverSends(t, `{"type":"round2_player_order","playerOrder":[
		{"playerId":"p1","playerName":"Ann"},
		{"playerId":"p2","playerName":"Bo"}]}`)
	f.serverSends(t, `{"type":"pack_questions","currentPlayer":"Ann","playerRound2Score":0,"timeLimit":45,
		"questions":[{"id":"q1","text":"one"},{"id":"q2","text":"two"}]}`)
	require.Equal(t, screen.PackQuestions, f.state(t).Screen)

	f.serverSends(t, `{"type":"pack_answer_verified","isCorrect":true,"questionIndex":0}`)
	f.serverSends(t, `{"type":"pack_answer_verified","isCorrect":false,"questionIndex":1}`)

	s := f.state(t)
	require.Equal(t, screen.PackComplete, s.Screen)
	require.Equal(t, 1, s.Session.PackScore, "score moves only on the server verdict")

	// The next selection round arrives while the summary is on screen:
	// it must be held, not applied.
	f.serverSends(t, `{"type":"round2_packs_available","currentTurnIndex":1,
		"packs":[{"id":"k1","title":"T","description":"d","questionCount":4,"selected":true},
		         {"id":"k2","title":"U","description":"e","questionCount":4,"selected":false}]}`)
	s = f.state(t)
	require.Equal(t, screen.PackComplete, s.Screen)
	require.True(t, s.PendingPacks)

	f.c.Inbox() <- EndTurn{}
	s = f.state(t)
	require.Equal(t, screen.PackSelection, s.Screen)
	require.Equal(t, 1, s.Session.TurnIndex)
	require.False(t, s.PendingPacks)
	require.True(t, s.Session.SelectedPacks["k1"])

	sent := f.conn.sentMessages()
	require.Equal(t, protocol.KindEndTurn, sent[len(sent)-1].Type)

	// The server echo of end_turn must not re-apply anything.
	f.serverSends(t, `{"type":"turn_ended"}`)
	s = f.state(t)
	require.Equal(t, screen.PackSelection, s.Screen)
	require.Equal(t, 1, s.Session.TurnIndex)
}

func TestPacksAvailableAfterTurnEndedAppliesDirectly(t *testing.T) {
	f := newFixture(t)
	f.host(t)

	f.serverSends(t, `{"type":"round2_player_order","playerOrder":[
		{"playerId":"p1","playerName":"Ann"},
		{"playerId":"p2","playerName":"Bo"}]}`)
	f.serverSends(t, `{"type":"pack_questions","currentPlayer":"Ann","playerRound2Score":0,
		"questions":[{"id":"q1","text":"one"}]}`)
	f.serverSends(t, `{"type":"pack_answer_verified","isCorrect":true,"questionIndex":0}`)
	require.Equal(t, screen.PackComplete, f.state(t).Screen)

	// The server's order after the host acknowledges: turn_ended first,
	// then the next selection round. Nothing may stay buffered.
	f.c.Inbox() <- EndTurn{}
	f.serverSends(t, `{"type":"turn_ended"}`)
	f.serverSends(t, `{"type":"round2_packs_available","currentTurnIndex":1,
		"packs":[{"id":"k2","title":"U","description":"e","questionCount":4,"selected":false}]}`)

	s := f.state(t)
	require.Equal(t, screen.PackSelection, s.Screen)
	require.Equal(t, 1, s.Session.TurnIndex)
	require.False(t, s.PendingPacks)
}

func TestNonHostLeavesPackCompleteOnTurnEndedAlone(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"pack_complete","playerName":"Bo","totalRound2Score":2}`)
	require.Equal(t, screen.PackComplete, f.state(t).Screen)

	// turn_ended arrives with nothing buffered; the packs message that
	// follows it must apply immediately.
	f.serverSends(t, `{"type":"turn_ended"}`)
	f.serverSends(t, `{"type":"round2_packs_available","currentTurnIndex":0,
		"packs":[{"id":"k1","title":"T","description":"d","questionCount":4,"selected":false}]}`)

	s := f.state(t)
	require.Equal(t, screen.PackSelection, s.Screen)
	require.False(t, s.PendingPacks)
}

func TestTurnEndedDrainsBufferForNonHost(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"round2_player_order","playerOrder":[
		{"playerId":"p1","playerName":"Ann"},
		{"playerId":"p2","playerName":"Bo"}]}`)
	f.serverSends(t, `{"type":"pack_complete","playerName":"Bo","totalRound2Score":3}`)
	require.Equal(t, screen.PackComplete, f.state(t).Screen)

	f.serverSends(t, `{"type":"round2_packs_available","currentTurnIndex":0,
		"packs":[{"id":"k2","title":"U","description":"e","questionCount":4,"selected":false}]}`)
	require.True(t, f.state(t).PendingPacks)

	// A non-host has no end-turn button; the broadcast releases them.
	f.serverSends(t, `{"type":"turn_ended"}`)
	s := f.state(t)
	require.Equal(t, screen.PackSelection, s.Screen)
	require.False(t, s.PendingPacks)
	require.Equal(t, 0, s.Session.TurnIndex)
}

func TestPackCompleteAdoptsServerTotal(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"pack_questions","currentPlayer":"Ann","playerRound2Score":2,
		"questions":[{"id":"q1","text":"one"}]}`)
	f.serverSends(t, `{"type":"pack_complete","playerName":"Ann","totalRound2Score":3}`)

	s := f.state(t)
	require.Equal(t, screen.PackComplete, s.Screen)
	require.Equal(t, 3, s.Session.Round2Score)
	require.Equal(t, 0, s.Session.PackScore)
}

func TestHostVerifyDoesNotTouchLocalScore(t *testing.T) {
	f := newFixture(t)
	f.host(t)

	f.serverSends(t, `{"type":"pack_questions","currentPlayer":"Ann","playerRound2Score":0,
		"questions":[{"id":"q1","text":"one"},{"id":"q2","text":"two"}]}`)
	f.c.Inbox() <- VerifyPackAnswer{Correct: true}

	s := f.state(t)
	require.Equal(t, 0, s.Session.PackScore, "only the broadcast mutates the score")
	require.Equal(t, 0, s.Session.PackCursor)

	sent := f.conn.sentMessages()
	last := sent[len(sent)-1]
	require.Equal(t, protocol.KindVerifyPackAnswer, last.Type)
	require.NotNil(t, last.IsCorrect)
	require.True(t, *last.IsCorrect)
	require.NotNil(t, last.QuestionIndex)
	require.Equal(t, 0, *last.QuestionIndex)
}

func TestPackAnswerCarriesCursorIndex(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"pack_questions","currentPlayer":"Ann","playerRound2Score":0,
		"questions":[{"id":"q1","text":"one"},{"id":"q2","text":"two"}]}`)
	f.c.Inbox() <- SubmitPackAnswer{Answer: "  Neptune "}
	f.state(t)

	sent := f.conn.sentMessages()
	last := sent[len(sent)-1]
	require.Equal(t, protocol.KindSubmitPackAnswer, last.Type)
	require.Equal(t, "Neptune", last.Answer)
	require.NotNil(t, last.QuestionIndex)
	require.Equal(t, 0, *last.QuestionIndex)
}

func TestPackSelectionGuards(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"round2_player_order","playerOrder":[
		{"playerId":"p2","playerName":"Bo"},
		{"playerId":"p1","playerName":"Ann"}]}`)
	f.serverSends(t, `{"type":"round2_packs_available","currentTurnIndex":0,
		"packs":[{"id":"k1","title":"T","description":"d","questionCount":4,"selected":false}]}`)

	before := len(f.conn.sentMessages())
	f.c.Inbox() <- SelectPack{PackID: "k1"} // Bo's turn, not Ann's
	f.state(t)
	require.Len(t, f.conn.sentMessages(), before, "off-turn selection is a no-op")
}

func TestHostOnlyActionsIgnoredForPlayers(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	before := len(f.conn.sentMessages())
	f.c.Inbox() <- StartGame{}
	f.c.Inbox() <- NextQuestion{}
	f.c.Inbox() <- EndTurn{}
	f.state(t)
	require.Len(t, f.conn.sentMessages(), before)
}

func TestUnknownAndMalformedFramesAreDropped(t *testing.T) {
	f := newFixture(t)
	f.host(t)

	f.serverSends(t, `{"type":"totally_new_thing","payload":42}`)
	f.serverSends(t, `{not json`)

	require.Equal(t, screen.HostLobby, f.state(t).Screen)
}

func TestServerErrorKeepsCurrentScreen(t *testing.T) {
	f := newFixture(t)
	f.host(t)

	f.serverSends(t, `{"type":"error","message":"Game is full"}`)
	require.Equal(t, screen.HostLobby, f.state(t).Screen)
	require.Contains(t, f.r.allNotices(), "Game is full")
}

func TestGameOverRanksScoresAndEndsSession(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"game_over","winners":["Bo"],"finalScores":[
		{"playerName":"Ann","score":4},
		{"playerName":"Bo","score":9}]}`)

	s := f.state(t)
	require.Equal(t, screen.GameOver, s.Screen)
	require.True(t, s.Session.Ended)
	require.Equal(t, []string{"Bo"}, s.Session.Winners)
	require.Equal(t, "Bo", s.Session.FinalScores[0].PlayerName)
	require.Equal(t, "Ann", s.Session.FinalScores[1].PlayerName)
}

func TestCleanEndSuppressesDisconnectNotice(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"game_over","winners":["Ann"]}`)
	f.conn.drop(nil)
	f.waitDisconnected(t)

	require.NotContains(t, f.r.allNotices(), "Disconnected from server")
}

func TestUnexpectedDisconnectNotifies(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.conn.drop(errors.New("connection reset"))
	f.waitDisconnected(t)

	require.Eventually(t, func() bool {
		for _, n := range f.r.allNotices() {
			if n == "Disconnected from server" {
				return true
			}
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)
}

func TestReturnToLandingResetsEverything(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.serverSends(t, `{"type":"game_over","winners":["Ann"]}`)
	f.c.Inbox() <- ReturnToLanding{}

	s := f.state(t)
	require.Equal(t, screen.Landing, s.Screen)
	require.Equal(t, game.Session{}, func() game.Session {
		sess := s.Session
		sess.Scores = nil
		sess.SelectedPacks = nil
		return sess
	}(), "session back to zero values")
	require.Empty(t, s.Session.Scores)
	require.Empty(t, s.Session.SelectedPacks)
	require.True(t, f.conn.wasClosed())
	require.NotContains(t, f.r.allNotices(), "Disconnected from server")
}

func TestLeaveGameShowsLeftScreen(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	f.c.Inbox() <- LeaveGame{}
	s := f.state(t)
	require.Equal(t, screen.LeftGame, s.Screen)
	require.True(t, s.Session.Ended)

	sent := f.conn.sentMessages()
	require.Equal(t, protocol.KindLeaveGame, sent[len(sent)-1].Type)
}

func TestStaleTimerTickIsDropped(t *testing.T) {
	f := newFixture(t)
	f.join(t)

	// new_question arms the countdown under generation 1 (the initial
	// cancel bumps 0 -> 1); question_results cancels it (-> 2).
	f.serverSends(t, `{"type":"new_question","round":1,"questionNumber":1,"totalQuestions":5,
		"question":{"id":1,"text":"?","options":["a","b"],"timeLimit":30}}`)
	f.serverSends(t, `{"type":"question_results","correctAnswer":0,"scores":{"p1":1}}`)
	require.Equal(t, screen.Results, f.state(t).Screen)

	f.c.Inbox() <- timerTick{gen: 1}
	f.state(t)
	require.Zero(t, f.r.countdownCount(), "ticks from an exited screen never render")
}
