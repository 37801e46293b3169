package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_JoinSuccess(t *testing.T) {
	m, err := Decode([]byte(`{"type":"join_success","playerId":"p1","gamePin":"AB12","playerName":"Ann"}`))
	require.NoError(t, err)
	require.Equal(t, KindJoinSuccess, m.Type)
	require.Equal(t, "p1", m.PlayerID)
	require.Equal(t, "AB12", m.GamePin)
	require.Equal(t, "Ann", m.PlayerName)
}

func TestDecode_SpeedResults(t *testing.T) {
	raw := `{"type":"speed_results","results":[
		{"playerName":"A","answer":"x","correct":true,"responseTime":1.2},
		{"playerName":"B","answer":"y","correct":false,"responseTime":0.5}
	],"eliminated":{"playerId":"p9","playerName":"B"}}`

	m, err := Decode([]byte(raw))
	require.NoError(t, err)
	require.Len(t, m.Results, 2)
	require.True(t, m.Results[0].Correct)
	require.InDelta(t, 0.5, m.Results[1].ResponseTime, 1e-9)
	require.NotNil(t, m.Eliminated)
	require.Equal(t, "p9", m.Eliminated.PlayerID)
}

func TestDecode_PacksAvailable_DistinguishesAbsentTurnIndex(t *testing.T) {
	withIndex, err := Decode([]byte(`{"type":"round2_packs_available","currentTurnIndex":0,"packs":[]}`))
	require.NoError(t, err)
	require.NotNil(t, withIndex.CurrentTurnIndex)
	require.Equal(t, 0, *withIndex.CurrentTurnIndex)

	without, err := Decode([]byte(`{"type":"round2_packs_available","packs":[]}`))
	require.NoError(t, err)
	require.Nil(t, without.CurrentTurnIndex)
}

func TestDecode_NumericQuestionID(t *testing.T) {
	m, err := Decode([]byte(`{"type":"new_question","question":{"id":5,"text":"q","options":["a","b"],"timeLimit":20}}`))
	require.NoError(t, err)
	require.NotNil(t, m.Question)
	require.Equal(t, "5", string(m.Question.ID))
}

func TestDecode_UnknownKindIsNotAnError(t *testing.T) {
	m, err := Decode([]byte(`{"type":"player_disconnected","playerId":"p1"}`))
	require.NoError(t, err)
	require.Equal(t, Kind("player_disconnected"), m.Type)
}

func TestDecode_MalformedPayload(t *testing.T) {
	_, err := Decode([]byte(`{"type":`))
	require.ErrorIs(t, err, ErrMalformedFrame)
}

func TestEncode_SubmitAnswerKeepsNumericShapes(t *testing.T) {
	b, err := Encode(ClientMessage{Type: KindSubmitAnswer, QuestionID: "5", Answer: 2})
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"submit_answer","questionId":5,"answer":2}`, string(b))
}

func TestEncode_SpeedAnswerCarriesResponseTime(t *testing.T) {
	b, err := Encode(ClientMessage{
		Type:         KindSubmitSpeedAnswer,
		QuestionID:   "sq1",
		Answer:       "neptune",
		ResponseTime: 1.25,
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"submit_speed_answer","questionId":"sq1","answer":"neptune","responseTime":1.25}`, string(b))
}
