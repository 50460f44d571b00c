// Package realtime is the transport adapter: a room-aware, ack-capable hub
// of client connections. It is the concrete implementation of the transport
// collaborator the spec treats as external to the Session Controller — the
// Controller only ever talks to the narrow Transport interface in
// internal/controller, never to this package's concrete types.
//
// Grounded on the teacher's pkg/websocket Hub/Client (register/unregister
// channels, per-client send buffer, ReadPump/WritePump), generalized from a
// single flat quiz-id keyspace into arbitrary named rooms and from a fixed
// EventType enum into an open event-name + ack-callback dispatch table.
package realtime

import "encoding/json"

// Conn is the minimal capability a connection must offer the Hub: a stable
// identity and a non-blocking way to hand it an outbound frame. The
// production implementation is a *wsConn wrapping a gorilla websocket.Conn;
// tests substitute an in-memory fake.
type Conn interface {
	ID() string
	Send(frame []byte) error
	Close() error
}

// AckFunc, when non-nil, sends a single reply frame back to the connection
// that emitted the inbound event being handled.
type AckFunc func(payload json.RawMessage)

// Handler processes one inbound event. conn identifies the sender; ack, if
// the client attached an ackId to the frame, sends the correlated reply.
type Handler func(conn Conn, data json.RawMessage, ack AckFunc)
