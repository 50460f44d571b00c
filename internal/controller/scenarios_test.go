package controller

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndkhanh/quizroom/internal/model"
	"github.com/ndkhanh/quizroom/internal/wire"
)

// S1: create/join round trip.
func TestScenario_CreateJoinRoundTrip(t *testing.T) {
	_, mt := newTestController(t)
	connA := &fakeConn{id: "conn-a"}
	connB := &fakeConn{id: "conn-b"}

	createAck := dispatch(t, mt, wire.EventCreateSession, connA, nil)
	require.NotNil(t, createAck)
	assert.Equal(t, wire.StatusOK, createAck.Status)
	assert.Equal(t, wire.AckCreateSession, createAck.Event)
	sessionID, ok := createAck.Data.(string)
	require.True(t, ok)
	require.Len(t, sessionID, 8)
	require.Equal(t, sessionID, *createAck.Session)

	joinAck := dispatch(t, mt, wire.EventJoinSession, connB, wire.JoinSessionArgs{ID: sessionID, Name: "b"})
	require.NotNil(t, joinAck)
	assert.Equal(t, wire.StatusOK, joinAck.Status)
	assert.Equal(t, sessionID, *joinAck.Session)
	assert.Nil(t, joinAck.Data)

	calls := recordedArgs(mt, "EmitToRoomExcept")
	require.Len(t, calls, 1)
	assert.Equal(t, sessionID, calls[0][0])
	assert.Equal(t, "conn-b", calls[0][1])
	env, ok := calls[0][2].(wire.Envelope)
	require.True(t, ok)
	assert.Equal(t, wire.BroadcastUserJoined, env.Event)
	data, ok := env.Data.(wire.NameData)
	require.True(t, ok)
	assert.Equal(t, "b", data.Name)
}

// S2: authorization failure for a non-owner.
func TestScenario_AuthorizationFailure(t *testing.T) {
	_, mt := newTestController(t)
	connA := &fakeConn{id: "conn-a"}
	connB := &fakeConn{id: "conn-b"}

	createAck := dispatch(t, mt, wire.EventCreateSession, connA, nil)
	sessionID := createAck.Data.(string)
	dispatch(t, mt, wire.EventJoinSession, connB, wire.JoinSessionArgs{ID: sessionID, Name: "b"})
	// The join above already broadcast user-joined; only calls after it count.
	broadcastsBefore := len(recordedArgs(mt, "EmitToRoomExcept"))

	ack := dispatch(t, mt, wire.EventAddQuestion, connB, wire.AddQuestionArgs{
		Session:  sessionID,
		Question: questionSubmissionFixture(),
	})
	require.NotNil(t, ack)
	assert.Equal(t, wire.StatusError, ack.Status)
	assert.Equal(t, wire.EventAddQuestion, ack.Event)
	assert.Nil(t, ack.Session)
	require.Len(t, ack.Errors, 1)
	assert.Equal(t, "session", ack.Errors[0].Field)
	assert.Nil(t, ack.Errors[0].Value)

	assert.Empty(t, recordedArgs(mt, "EmitToRoom"))
	assert.Len(t, recordedArgs(mt, "EmitToRoomExcept"), broadcastsBefore)
}

// S3: grading and per-question statistics.
func TestScenario_GradingAndStatistics(t *testing.T) {
	_, mt := newTestController(t)
	connA := &fakeConn{id: "conn-a"}
	connB := &fakeConn{id: "conn-b"}

	createAck := dispatch(t, mt, wire.EventCreateSession, connA, nil)
	sessionID := createAck.Data.(string)
	dispatch(t, mt, wire.EventJoinSession, connB, wire.JoinSessionArgs{ID: sessionID, Name: "b"})

	addAck := dispatch(t, mt, wire.EventAddQuestion, connA, wire.AddQuestionArgs{
		Session:  sessionID,
		Question: questionSubmissionFixture(),
	})
	require.NotNil(t, addAck)
	assert.Equal(t, wire.StatusOK, addAck.Status)

	startAck := dispatch(t, mt, wire.EventStartSession, connA, wire.SessionOnlyArgs{Session: sessionID})
	require.NotNil(t, startAck)
	assert.Equal(t, wire.StatusOK, startAck.Status)

	nextAck := dispatch(t, mt, wire.EventNextQuestion, connA, wire.SessionOnlyArgs{Session: sessionID})
	require.NotNil(t, nextAck)
	assert.Equal(t, wire.StatusOK, nextAck.Status)

	answer, err := json.Marshal(1)
	require.NoError(t, err)
	respAck := dispatch(t, mt, wire.EventQuestionResp, connB, wire.QuestionResponseArgs{
		Session: sessionID,
		Name:    "b",
		Index:   0,
		Response: wire.ResponseSubmission{
			Kind:   wire.KindMultipleChoice,
			Answer: answer,
		},
	})
	require.NotNil(t, respAck)
	assert.Equal(t, wire.StatusOK, respAck.Status)

	var ackData wire.QuestionResponseAckData
	decodeInto(t, respAck.Data, &ackData)
	assert.Equal(t, 0, ackData.Index)
	assert.True(t, ackData.FirstCorrect)
	assert.Equal(t, 200, ackData.Points)

	calls := recordedArgs(mt, "EmitToOne")
	require.Len(t, calls, 1)
	assert.Equal(t, "conn-a", calls[0][0])
	env, ok := calls[0][1].(wire.Envelope)
	require.True(t, ok)
	assert.Equal(t, wire.BroadcastQuestionRespAdded, env.Event)

	privateData, ok := env.Data.(wire.QuestionResponseAddedData)
	require.True(t, ok)
	assert.Equal(t, 0, privateData.Index)
	assert.Equal(t, "b", privateData.User)
	assert.Equal(t, "1", privateData.Response)
	assert.Equal(t, 200, privateData.Points)
	assert.Equal(t, "b", privateData.FirstCorrect)
	assert.Equal(t, 1, privateData.Frequency)
	assert.Equal(t, 1.0, privateData.RelativeFrequency)
}

// S4: timer-driven end, and a second manual end failing afterwards.
func TestScenario_TimerDrivenEnd(t *testing.T) {
	c, mt := newTestController(t)
	connA := &fakeConn{id: "conn-a"}

	createAck := dispatch(t, mt, wire.EventCreateSession, connA, nil)
	sessionID := createAck.Data.(string)

	dispatch(t, mt, wire.EventAddQuestion, connA, wire.AddQuestionArgs{
		Session:  sessionID,
		Question: questionSubmissionFixture(),
	})
	dispatch(t, mt, wire.EventStartSession, connA, wire.SessionOnlyArgs{Session: sessionID})

	actor, ok := c.registry.Get(sessionID)
	require.True(t, ok)

	nextAck := dispatch(t, mt, wire.EventNextQuestion, connA, wire.SessionOnlyArgs{Session: sessionID})
	require.NotNil(t, nextAck)
	assert.Equal(t, wire.StatusOK, nextAck.Status)

	// Advance virtual time by firing the armed timer's callback directly:
	// the same onFire closure a real time.AfterFunc would invoke once
	// timeLimit seconds elapse, re-entering the session's actor. The start and
	// next-question broadcasts were recorded before it, so only later calls count.
	broadcastsBefore := len(recordedArgs(mt, "EmitToRoomExcept"))
	c.onQuestionTimeout(actor, sessionID, 0)

	calls := recordedArgs(mt, "EmitToRoomExcept")[broadcastsBefore:]
	require.Len(t, calls, 1)
	assert.Equal(t, sessionID, calls[0][0])
	assert.Equal(t, "conn-a", calls[0][1])
	env, ok := calls[0][2].(wire.Envelope)
	require.True(t, ok)
	assert.Equal(t, wire.BroadcastQuestionEnded, env.Event)
	data, ok := env.Data.(wire.QuestionEndedData)
	require.True(t, ok)
	assert.Equal(t, 0, data.Question)

	endAck := dispatch(t, mt, wire.EventEndQuestion, connA, wire.EndQuestionArgs{Session: sessionID, Question: 0})
	require.NotNil(t, endAck)
	assert.Equal(t, wire.StatusError, endAck.Status, "ending an already-ended question must fail")
}

// S5: disconnect cascade tears down the owned session.
func TestScenario_DisconnectCascade(t *testing.T) {
	c, mt := newTestController(t)
	connA := &fakeConn{id: "conn-a"}
	connB := &fakeConn{id: "conn-b"}

	createAck := dispatch(t, mt, wire.EventCreateSession, connA, nil)
	sessionID := createAck.Data.(string)
	dispatch(t, mt, wire.EventJoinSession, connB, wire.JoinSessionArgs{ID: sessionID, Name: "b"})

	require.NotNil(t, mt.onDisconnect)
	mt.onDisconnect("conn-a")

	calls := recordedArgs(mt, "EmitToRoom")
	require.Len(t, calls, 1)
	assert.Equal(t, sessionID, calls[0][0])
	env, ok := calls[0][1].(wire.Envelope)
	require.True(t, ok)
	assert.Equal(t, wire.BroadcastSessionEnded, env.Event)
	assert.Nil(t, env.Data)

	_, stillExists := c.registry.Get(sessionID)
	assert.False(t, stillExists)

	joinAck := dispatch(t, mt, wire.EventJoinSession, &fakeConn{id: "conn-c"}, wire.JoinSessionArgs{ID: sessionID, Name: "c"})
	require.NotNil(t, joinAck)
	assert.Equal(t, wire.StatusError, joinAck.Status)
}

// S6: fill-in responses are graded case-insensitively and tracked under
// their own frequency keys.
func TestScenario_FillInCaseInsensitivity(t *testing.T) {
	c, mt := newTestController(t)
	connA := &fakeConn{id: "conn-a"}
	connB := &fakeConn{id: "conn-b"}
	connC := &fakeConn{id: "conn-c"}

	createAck := dispatch(t, mt, wire.EventCreateSession, connA, nil)
	sessionID := createAck.Data.(string)
	dispatch(t, mt, wire.EventJoinSession, connB, wire.JoinSessionArgs{ID: sessionID, Name: "b"})
	dispatch(t, mt, wire.EventJoinSession, connC, wire.JoinSessionArgs{ID: sessionID, Name: "c"})

	points := intPtr(100)
	dispatch(t, mt, wire.EventAddQuestion, connA, wire.AddQuestionArgs{
		Session: sessionID,
		Question: wire.QuestionSubmission{
			Text:      "capital of France?",
			TimeLimit: intPtr(60),
			Body: &wire.BodySubmission{
				Kind: wire.KindFillIn,
				Answers: []wire.AnswerSubmission{
					{Text: "Paris", Points: points},
				},
			},
		},
	})
	dispatch(t, mt, wire.EventStartSession, connA, wire.SessionOnlyArgs{Session: sessionID})
	dispatch(t, mt, wire.EventNextQuestion, connA, wire.SessionOnlyArgs{Session: sessionID})

	answerB, err := json.Marshal("pArIs")
	require.NoError(t, err)
	ackB := dispatch(t, mt, wire.EventQuestionResp, connB, wire.QuestionResponseArgs{
		Session:  sessionID,
		Name:     "b",
		Index:    0,
		Response: wire.ResponseSubmission{Kind: wire.KindFillIn, Answer: answerB},
	})
	require.NotNil(t, ackB)
	var dataB wire.QuestionResponseAckData
	decodeInto(t, ackB.Data, &dataB)
	assert.Equal(t, 100, dataB.Points)

	answerC, err := json.Marshal("London")
	require.NoError(t, err)
	ackC := dispatch(t, mt, wire.EventQuestionResp, connC, wire.QuestionResponseArgs{
		Session:  sessionID,
		Name:     "c",
		Index:    0,
		Response: wire.ResponseSubmission{Kind: wire.KindFillIn, Answer: answerC},
	})
	require.NotNil(t, ackC)
	var dataC wire.QuestionResponseAckData
	decodeInto(t, ackC.Data, &dataC)
	assert.Equal(t, 0, dataC.Points)

	actor, ok := c.registry.Get(sessionID)
	require.True(t, ok)
	var freq map[string]int
	actor.Do(func(s *model.Session) {
		freq = s.Quiz().CurrentQuestion().Frequency()
	})
	assert.Equal(t, 1, freq["paris"])
	assert.Equal(t, 1, freq["london"])
}

// Ending a session that was created but never started must fail outright,
// not silently no-op while still broadcasting session-ended and evicting
// participants (a session stuck live in the registry that already told
// everyone it had ended).
func TestScenario_EndSession_RejectsBeforeStart(t *testing.T) {
	_, mt := newTestController(t)
	connA := &fakeConn{id: "conn-a"}

	createAck := dispatch(t, mt, wire.EventCreateSession, connA, nil)
	sessionID := createAck.Data.(string)

	ack := dispatch(t, mt, wire.EventEndSession, connA, wire.SessionOnlyArgs{Session: sessionID})
	require.NotNil(t, ack)
	assert.Equal(t, wire.StatusError, ack.Status)

	assert.Empty(t, recordedArgs(mt, "EmitToRoomExcept"))
	assert.Empty(t, recordedArgs(mt, "ForceAllInRoomToLeaveExcept"))

	// The session must still be live and endable once actually started.
	startAck := dispatch(t, mt, wire.EventStartSession, connA, wire.SessionOnlyArgs{Session: sessionID})
	require.NotNil(t, startAck)
	assert.Equal(t, wire.StatusOK, startAck.Status)

	endAck := dispatch(t, mt, wire.EventEndSession, connA, wire.SessionOnlyArgs{Session: sessionID})
	require.NotNil(t, endAck)
	assert.Equal(t, wire.StatusOK, endAck.Status)
}

func questionSubmissionFixture() wire.QuestionSubmission {
	return wire.QuestionSubmission{
		Text:      "Q",
		TimeLimit: intPtr(60),
		Body: &wire.BodySubmission{
			Kind: wire.KindMultipleChoice,
			Choices: []wire.ChoiceSubmission{
				{Text: "c1", Points: intPtr(200)},
				{Text: "c2", Points: intPtr(200)},
			},
			Answer: intPtr(1),
		},
	}
}
