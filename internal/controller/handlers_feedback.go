package controller

import (
	"encoding/json"

	"github.com/ndkhanh/quizroom/internal/model"
	"github.com/ndkhanh/quizroom/internal/wire"
	"github.com/ndkhanh/quizroom/pkg/realtime"
)

// handleSubmitFeedback implements spec.md §4.4.11.
func (c *Controller) handleSubmitFeedback(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
	var args wire.SubmitFeedbackArgs
	if !c.decode(data, &args, ack, wire.EventSubmitFeedback) {
		return
	}

	actor, ok := c.registry.Get(args.Session)
	if !ok {
		writeFailure(ack, wire.EventSubmitFeedback, nil, wire.FieldErrf("session", nil))
		return
	}

	if args.Feedback.Rating == nil || !model.ValidRating(*args.Feedback.Rating) {
		writeFailure(ack, wire.EventSubmitFeedback, &args.Session, wire.FieldErrf("rating", args.Feedback.Rating))
		return
	}
	if len(args.Feedback.Message) > model.MaxFeedbackMessageLen {
		writeFailure(ack, wire.EventSubmitFeedback, &args.Session, wire.FieldErrf("message", args.Feedback.Message))
		return
	}

	var (
		authErr     bool
		rangeErr    bool
		dupErr      bool
		ownerConnID string
	)
	feedback := model.Feedback{Rating: *args.Feedback.Rating, Message: args.Feedback.Message}
	actor.Do(func(s *model.Session) {
		ownerConnID = s.Owner
		u, found := s.FindUserByName(args.Name)
		if !found || u.ConnID() != conn.ID() {
			authErr = true
			return
		}
		if args.Question < 0 || args.Question > s.Quiz().CurrentIndex() {
			rangeErr = true
			return
		}
		q := s.Quiz().QuestionAt(args.Question)
		if q == nil {
			rangeErr = true
			return
		}
		if !q.AddFeedback(args.Name, feedback) {
			dupErr = true
		}
	})

	switch {
	case authErr:
		writeFailure(ack, wire.EventSubmitFeedback, &args.Session, wire.FieldErrf("name", args.Name))
		return
	case rangeErr:
		writeFailure(ack, wire.EventSubmitFeedback, &args.Session, wire.FieldErrf("question", args.Question))
		return
	case dupErr:
		writeFailure(ack, wire.EventSubmitFeedback, &args.Session, wire.FieldErrf("feedback", "duplicate"))
		return
	}

	writeSuccess(ack, wire.EventSubmitFeedback, &args.Session, nil)
	c.transport.EmitToOne(ownerConnID, wire.Success(wire.BroadcastFeedbackSubmitted, &args.Session, wire.FeedbackSubmittedData{
		User:     args.Name,
		Question: args.Question,
		Feedback: wire.FeedbackView{Rating: feedback.Rating, Message: feedback.Message},
	}))
}

// handleSendHint implements spec.md §4.4.12.
func (c *Controller) handleSendHint(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
	var args wire.SendHintArgs
	if !c.decode(data, &args, ack, wire.EventSendHint) {
		return
	}

	if args.Hint == "" {
		writeFailure(ack, wire.EventSendHint, &args.Session, wire.FieldErrf("hint", args.Hint))
		return
	}

	actor, ok := c.authorizeOwner(args.Session, conn.ID())
	if !ok {
		writeFailure(ack, wire.EventSendHint, nil, wire.FieldErrf("session", nil))
		return
	}

	var failed bool
	actor.Do(func(s *model.Session) {
		if !s.IsStarted() || s.HasEnded() || s.Quiz().CurrentIndex() != args.Question {
			failed = true
		}
	})
	if failed {
		writeFailure(ack, wire.EventSendHint, &args.Session, wire.FieldErrf("question", args.Question))
		return
	}

	writeSuccess(ack, wire.EventSendHint, &args.Session, nil)
	c.transport.EmitToRoomExcept(args.Session, conn.ID(),
		wire.Success(wire.BroadcastHintReceived, &args.Session, wire.HintReceivedData{Question: args.Question, Hint: args.Hint}))
}
