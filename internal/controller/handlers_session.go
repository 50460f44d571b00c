package controller

import (
	"encoding/json"

	"github.com/ndkhanh/quizroom/internal/model"
	"github.com/ndkhanh/quizroom/internal/wire"
	"github.com/ndkhanh/quizroom/pkg/realtime"
)

// handleCreateSession implements spec.md §4.4.1.
func (c *Controller) handleCreateSession(conn realtime.Conn, _ json.RawMessage, ack realtime.AckFunc) {
	actor := c.registry.Create(conn.ID())

	var id string
	actor.Do(func(s *model.Session) { id = s.ID })

	c.transport.JoinRoom(id, conn.ID())
	writeSuccess(ack, wire.AckCreateSession, &id, id)
}

// handleJoinSession implements spec.md §4.4.2.
func (c *Controller) handleJoinSession(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
	var args wire.JoinSessionArgs
	if !c.decode(data, &args, ack, wire.EventJoinSession) {
		return
	}

	actor, ok := c.registry.Get(args.ID)
	if !ok {
		writeFailure(ack, wire.EventJoinSession, nil, wire.FieldErrf("session", nil))
		return
	}
	if args.Name == "" {
		writeFailure(ack, wire.EventJoinSession, &args.ID, wire.FieldErrf("name", args.Name))
		return
	}

	var joinErr error
	actor.Do(func(s *model.Session) {
		joinErr = s.AddUser(model.NewUser(args.Name, conn.ID()))
	})
	if joinErr != nil {
		writeFailure(ack, wire.EventJoinSession, &args.ID, wire.FieldErrf("name", args.Name))
		return
	}

	c.transport.JoinRoom(args.ID, conn.ID())
	c.transport.EmitToRoomExcept(args.ID, conn.ID(),
		wire.Success(wire.BroadcastUserJoined, &args.ID, wire.NameData{Name: args.Name}))
	writeSuccess(ack, wire.EventJoinSession, &args.ID, nil)
}

// handleKick implements spec.md §4.4.5.
func (c *Controller) handleKick(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
	var args wire.KickArgs
	if !c.decode(data, &args, ack, wire.EventKick) {
		return
	}

	actor, ok := c.authorizeOwner(args.Session, conn.ID())
	if !ok {
		writeFailure(ack, wire.EventKick, nil, wire.FieldErrf("session", nil))
		return
	}

	var (
		removed model.User
		found   bool
	)
	actor.Do(func(s *model.Session) {
		removed, found = s.RemoveUser(args.Name)
	})
	if !found {
		writeFailure(ack, wire.EventKick, &args.Session, wire.FieldErrf("name", args.Name))
		return
	}

	writeSuccess(ack, wire.EventKick, &args.Session, wire.NameData{Name: args.Name})
	c.transport.EmitToRoomExcept(args.Session, conn.ID(),
		wire.Success(wire.BroadcastUserKicked, &args.Session, wire.NameData{Name: args.Name}))
	c.transport.ForceIDToLeave(removed.ConnID())
}

// handleStartSession implements spec.md §4.4.6.
func (c *Controller) handleStartSession(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
	var args wire.SessionOnlyArgs
	if !c.decode(data, &args, ack, wire.EventStartSession) {
		return
	}

	actor, ok := c.authorizeOwner(args.Session, conn.ID())
	if !ok {
		writeFailure(ack, wire.EventStartSession, nil, wire.FieldErrf("session", nil))
		return
	}

	var alreadyStarted bool
	actor.Do(func(s *model.Session) {
		if s.IsStarted() {
			alreadyStarted = true
			return
		}
		s.Start()
	})
	if alreadyStarted {
		writeFailure(ack, wire.EventStartSession, &args.Session, nil)
		return
	}

	writeSuccess(ack, wire.EventStartSession, &args.Session, nil)
	c.transport.EmitToRoomExcept(args.Session, conn.ID(),
		wire.Success(wire.BroadcastSessionStarted, &args.Session, nil))
}

// handleEndSession implements spec.md §4.4.7.
func (c *Controller) handleEndSession(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
	var args wire.SessionOnlyArgs
	if !c.decode(data, &args, ack, wire.EventEndSession) {
		return
	}

	actor, ok := c.authorizeOwner(args.Session, conn.ID())
	if !ok {
		writeFailure(ack, wire.EventEndSession, nil, wire.FieldErrf("session", nil))
		return
	}

	var invalid bool
	actor.Do(func(s *model.Session) {
		if !s.IsStarted() || s.HasEnded() {
			invalid = true
			return
		}
		s.End()
	})
	if invalid {
		writeFailure(ack, wire.EventEndSession, &args.Session, nil)
		return
	}

	writeSuccess(ack, wire.EventEndSession, &args.Session, nil)
	c.transport.EmitToRoomExcept(args.Session, conn.ID(),
		wire.Success(wire.BroadcastSessionEnded, &args.Session, nil))
	// The owner stays in the room to read terminal state; everyone else is
	// forced out.
	c.transport.ForceAllInRoomToLeaveExcept(args.Session, conn.ID())
	c.registry.Remove(args.Session)
}
