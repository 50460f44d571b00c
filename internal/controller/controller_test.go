package controller

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ndkhanh/quizroom/internal/config"
	"github.com/ndkhanh/quizroom/internal/parser"
	"github.com/ndkhanh/quizroom/internal/wire"
	"github.com/ndkhanh/quizroom/pkg/realtime"
)

// mockTransport records every room/emit primitive the Controller invokes
// while letting OnEvent/OnDisconnect registration behave for real, so a test
// can dispatch a wire event the same way pkg/realtime would.
type mockTransport struct {
	mock.Mock
	handlers     map[string]realtime.Handler
	onDisconnect func(connID string)
}

func newMockTransport(t *testing.T) *mockTransport {
	m := &mockTransport{handlers: make(map[string]realtime.Handler)}
	m.Test(t)
	return m
}

func (m *mockTransport) OnEvent(event string, fn realtime.Handler) { m.handlers[event] = fn }
func (m *mockTransport) OnDisconnect(fn func(connID string))       { m.onDisconnect = fn }

func (m *mockTransport) JoinRoom(room, connID string)  { m.Called(room, connID) }
func (m *mockTransport) LeaveRoom(room, connID string) { m.Called(room, connID) }
func (m *mockTransport) ForceAllInRoomToLeave(room string) {
	m.Called(room)
}
func (m *mockTransport) ForceAllInRoomToLeaveExcept(room, exceptID string) {
	m.Called(room, exceptID)
}
func (m *mockTransport) ForceIDToLeave(connID string) { m.Called(connID) }
func (m *mockTransport) EmitToOne(connID string, payload interface{}) {
	m.Called(connID, payload)
}
func (m *mockTransport) EmitToRoom(room string, payload interface{}) {
	m.Called(room, payload)
}
func (m *mockTransport) EmitToRoomExcept(room, exceptID string, payload interface{}) {
	m.Called(room, exceptID, payload)
}

// allowEverything makes every recorded call succeed with no return value, so
// tests that only care about a subset of calls don't have to stub each one
// individually.
func (m *mockTransport) allowEverything() {
	m.On("JoinRoom", mock.Anything, mock.Anything).Return()
	m.On("LeaveRoom", mock.Anything, mock.Anything).Return()
	m.On("ForceAllInRoomToLeave", mock.Anything).Return()
	m.On("ForceAllInRoomToLeaveExcept", mock.Anything, mock.Anything).Return()
	m.On("ForceIDToLeave", mock.Anything).Return()
	m.On("EmitToOne", mock.Anything, mock.Anything).Return()
	m.On("EmitToRoom", mock.Anything, mock.Anything).Return()
	m.On("EmitToRoomExcept", mock.Anything, mock.Anything, mock.Anything).Return()
}

type fakeConn struct {
	id string
}

func (f *fakeConn) ID() string             { return f.id }
func (f *fakeConn) Send(frame []byte) error { return nil }
func (f *fakeConn) Close() error           { return nil }

func defaultSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		MinTimeLimit:   60,
		MaxTimeLimit:   300,
		MinTotalPoints: 100,
		MaxTotalPoints: 1000,
		MinChoices:     2,
		MaxChoices:     4,
		MinAnswers:     1,
		MaxAnswers:     3,
	}
}

func newTestController(t *testing.T) (*Controller, *mockTransport) {
	mt := newMockTransport(t)
	mt.allowEverything()
	c := New(mt, parser.New(defaultSessionConfig()))
	return c, mt
}

// dispatch invokes the handler registered for event directly, bypassing the
// wire transport's JSON framing. data is marshaled from v (or passed through
// raw nil for no-argument events). Returns the decoded ack envelope, or nil
// if ack was never called.
func dispatch(t *testing.T, mt *mockTransport, event string, conn realtime.Conn, v interface{}) *wire.Envelope {
	t.Helper()
	handler, ok := mt.handlers[event]
	require.True(t, ok, "no handler registered for %q", event)

	var raw json.RawMessage
	if v != nil {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		raw = b
	}

	var acked *wire.Envelope
	handler(conn, raw, func(payload json.RawMessage) {
		var env wire.Envelope
		require.NoError(t, json.Unmarshal(payload, &env))
		acked = &env
	})
	return acked
}

func intPtr(i int) *int { return &i }

// decodeInto re-marshals an ack's generic Data (unmarshaled into
// interface{}, so JSON objects land as map[string]interface{}) into a
// concrete target type. Acks travel through real JSON, unlike the direct
// in-process broadcast payloads recordedArgs reads back.
func decodeInto(t *testing.T, raw interface{}, target interface{}) {
	t.Helper()
	b, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, target))
}

// recordedArgs returns the argument list of every recorded call to method,
// in call order. Unlike asserting through a stubbed expectation, this reads
// back what the Controller actually passed regardless of which On()
// expectation happened to answer the call — the right tool when a test
// needs to both allow a call (via allowEverything) and inspect its payload.
func recordedArgs(mt *mockTransport, method string) []mock.Arguments {
	var out []mock.Arguments
	for _, call := range mt.Calls {
		if call.Method == method {
			out = append(out, call.Arguments)
		}
	}
	return out
}
