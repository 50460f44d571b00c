// Package controller implements the Session Controller (spec.md §4.4): the
// event-dispatching façade that holds the live Session registry, routes
// each wire event to a handler, enforces authorization, orchestrates
// Session/Quiz/Question mutations, and formats acknowledgements and
// broadcasts. It depends on the transport only through the narrow Transport
// interface below — never on a concrete websocket type — matching the
// spec's framing of the transport as an external collaborator.
package controller

import (
	"encoding/json"
	"log"

	"github.com/ndkhanh/quizroom/internal/model"
	"github.com/ndkhanh/quizroom/internal/parser"
	"github.com/ndkhanh/quizroom/internal/wire"
	"github.com/ndkhanh/quizroom/pkg/realtime"
)

// Transport is everything the Controller needs from the bidirectional,
// room-aware message transport (spec.md §5's broadcast primitives list).
type Transport interface {
	JoinRoom(room, connID string)
	LeaveRoom(room, connID string)
	ForceAllInRoomToLeave(room string)
	ForceAllInRoomToLeaveExcept(room, exceptID string)
	ForceIDToLeave(connID string)
	EmitToOne(connID string, payload interface{})
	EmitToRoom(room string, payload interface{})
	EmitToRoomExcept(room, exceptID string, payload interface{})
	OnEvent(event string, fn realtime.Handler)
	OnDisconnect(fn func(connID string))
}

// Controller wires every wire.Event* name to its handler and owns the
// Session registry.
type Controller struct {
	transport Transport
	registry  *Registry
	parser    *parser.Parser
}

// New builds a Controller and immediately registers its handlers with
// transport.
func New(transport Transport, p *parser.Parser) *Controller {
	c := &Controller{transport: transport, registry: NewRegistry(), parser: p}
	c.wireEvents()
	return c
}

func (c *Controller) wireEvents() {
	c.transport.OnEvent(wire.EventCreateSession, c.guard(wire.EventCreateSession, c.handleCreateSession))
	c.transport.OnEvent(wire.EventJoinSession, c.guard(wire.EventJoinSession, c.handleJoinSession))
	c.transport.OnEvent(wire.EventAddQuestion, c.guard(wire.EventAddQuestion, c.handleAddQuestion))
	c.transport.OnEvent(wire.EventEditQuestion, c.guard(wire.EventEditQuestion, c.handleEditQuestion))
	c.transport.OnEvent(wire.EventRemoveQuestion, c.guard(wire.EventRemoveQuestion, c.handleRemoveQuestion))
	c.transport.OnEvent(wire.EventKick, c.guard(wire.EventKick, c.handleKick))
	c.transport.OnEvent(wire.EventStartSession, c.guard(wire.EventStartSession, c.handleStartSession))
	c.transport.OnEvent(wire.EventEndSession, c.guard(wire.EventEndSession, c.handleEndSession))
	c.transport.OnEvent(wire.EventNextQuestion, c.guard(wire.EventNextQuestion, c.handleNextQuestion))
	c.transport.OnEvent(wire.EventQuestionResp, c.guard(wire.EventQuestionResp, c.handleQuestionResponse))
	c.transport.OnEvent(wire.EventEndQuestion, c.guard(wire.EventEndQuestion, c.handleEndQuestion))
	c.transport.OnEvent(wire.EventSubmitFeedback, c.guard(wire.EventSubmitFeedback, c.handleSubmitFeedback))
	c.transport.OnEvent(wire.EventSendHint, c.guard(wire.EventSendHint, c.handleSendHint))
	c.transport.OnDisconnect(c.handleDisconnect)
}

// guard isolates a handler's panics to that single request: the spec
// requires that a fatal condition in one handler never tears down other
// Sessions, and that every wire request still yields exactly one ack.
func (c *Controller) guard(event string, fn realtime.Handler) realtime.Handler {
	return func(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("controller: recovered panic handling %q: %v", event, r)
				if ack != nil {
					writeFailure(ack, event, nil, nil)
				}
			}
		}()
		fn(conn, data, ack)
	}
}

// authorizeOwner implements the authorization pattern shared by every
// owner-only operation (spec.md §4.4): look up the Session, and require the
// caller's connection id to match its owner.
func (c *Controller) authorizeOwner(sessionID, callerConnID string) (*sessionActor, bool) {
	actor, ok := c.registry.Get(sessionID)
	if !ok {
		return nil, false
	}
	isOwner := false
	actor.Do(func(s *model.Session) {
		isOwner = s.IsOwner(callerConnID)
	})
	if !isOwner {
		return nil, false
	}
	return actor, true
}
