package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub is the single, process-wide transport: every connection registers
// with it, joins zero or more rooms, and every outbound frame — ack or
// broadcast — is marshaled and written through it. Mirrors the teacher's
// Hub in spirit (a mutex-guarded membership map plus per-connection send),
// generalized to named rooms instead of a single quiz-id keyspace.
type Hub struct {
	mu    sync.Mutex
	conns map[string]Conn
	rooms map[string]map[string]struct{} // room -> set of connection ids

	handlers     map[string]Handler
	onDisconnect func(connID string)
}

// NewHub builds an empty Hub. Register handlers with OnEvent and a
// disconnect hook with OnDisconnect before accepting connections.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[string]Conn),
		rooms:    make(map[string]map[string]struct{}),
		handlers: make(map[string]Handler),
	}
}

// OnEvent registers the handler invoked for inbound frames whose event name
// matches. Re-registering the same name replaces the handler.
func (h *Hub) OnEvent(event string, fn Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[event] = fn
}

// OnDisconnect registers the hook run once a connection is fully
// unregistered, after it has been removed from every room it belonged to.
func (h *Hub) OnDisconnect(fn func(connID string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDisconnect = fn
}

// Register adds a newly-accepted connection.
func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn.ID()] = conn
}

// Unregister removes conn from the hub and every room it was in, then runs
// the disconnect hook. Safe to call more than once for the same id.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	_, existed := h.conns[connID]
	delete(h.conns, connID)
	for room, members := range h.rooms {
		if _, ok := members[connID]; ok {
			delete(members, connID)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	hook := h.onDisconnect
	h.mu.Unlock()

	if existed && hook != nil {
		hook(connID)
	}
}

// JoinRoom adds connID to room's membership.
func (h *Hub) JoinRoom(room, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]struct{})
		h.rooms[room] = members
	}
	members[connID] = struct{}{}
}

// LeaveRoom removes connID from room's membership, pruning the room entry
// if it becomes empty.
func (h *Hub) LeaveRoom(room, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// ForceIDToLeave closes and unregisters a single connection, e.g. a kicked
// participant.
func (h *Hub) ForceIDToLeave(connID string) {
	h.mu.Lock()
	conn, ok := h.conns[connID]
	h.mu.Unlock()
	if !ok {
		return
	}
	conn.Close()
	h.Unregister(connID)
}

// ForceAllInRoomToLeave closes and unregisters every connection currently in
// room, e.g. when a Session ends and no member needs to keep observing it.
func (h *Hub) ForceAllInRoomToLeave(room string) {
	h.ForceAllInRoomToLeaveExcept(room, "")
}

// ForceAllInRoomToLeaveExcept closes and unregisters every connection in room
// other than exceptID — used when a Session ends normally and its owner
// stays behind to read terminal state.
func (h *Hub) ForceAllInRoomToLeaveExcept(room, exceptID string) {
	h.mu.Lock()
	members := h.rooms[room]
	ids := make([]string, 0, len(members))
	for id := range members {
		if id == exceptID {
			continue
		}
		ids = append(ids, id)
	}
	h.mu.Unlock()

	for _, id := range ids {
		h.ForceIDToLeave(id)
	}
}

// EmitToOne sends payload to a single connection, marshaled with no ackId —
// use Dispatch's ack callback for correlated replies.
func (h *Hub) EmitToOne(connID string, payload interface{}) {
	h.mu.Lock()
	conn, ok := h.conns[connID]
	h.mu.Unlock()
	if !ok {
		return
	}
	h.write(conn, payload)
}

// EmitToRoom sends payload to every connection currently in room.
func (h *Hub) EmitToRoom(room string, payload interface{}) {
	h.EmitToRoomExcept(room, "", payload)
}

// EmitToRoomExcept sends payload to every connection in room other than
// exceptID. Passing an empty exceptID behaves like EmitToRoom.
func (h *Hub) EmitToRoomExcept(room, exceptID string, payload interface{}) {
	h.mu.Lock()
	members := h.rooms[room]
	targets := make([]Conn, 0, len(members))
	for id := range members {
		if id == exceptID {
			continue
		}
		if conn, ok := h.conns[id]; ok {
			targets = append(targets, conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range targets {
		h.write(conn, payload)
	}
}

func (h *Hub) write(conn Conn, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("realtime: marshal outbound payload: %v", err)
		return
	}
	frame, err := json.Marshal(outboundFrame{Data: data})
	if err != nil {
		log.Printf("realtime: marshal outbound frame: %v", err)
		return
	}
	if err := conn.Send(frame); err != nil {
		log.Printf("realtime: send to %s: %v", conn.ID(), err)
	}
}

// Dispatch parses an inbound frame and routes it to the handler registered
// for its event name. Unknown event names are logged and dropped.
func (h *Hub) Dispatch(conn Conn, raw []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		log.Printf("realtime: malformed inbound frame from %s: %v", conn.ID(), err)
		return
	}

	h.mu.Lock()
	fn, ok := h.handlers[frame.Event]
	h.mu.Unlock()
	if !ok {
		log.Printf("realtime: no handler for event %q", frame.Event)
		return
	}

	var ack AckFunc
	if frame.AckID != "" {
		ackID := frame.AckID
		ack = func(payload json.RawMessage) {
			out, err := json.Marshal(outboundFrame{AckID: ackID, Data: payload})
			if err != nil {
				log.Printf("realtime: marshal ack frame: %v", err)
				return
			}
			if err := conn.Send(out); err != nil {
				log.Printf("realtime: send ack to %s: %v", conn.ID(), err)
			}
		}
	}

	fn(conn, frame.Data, ack)
}
