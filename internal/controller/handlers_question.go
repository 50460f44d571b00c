package controller

import (
	"encoding/json"

	"github.com/ndkhanh/quizroom/internal/model"
	"github.com/ndkhanh/quizroom/internal/wire"
	"github.com/ndkhanh/quizroom/pkg/realtime"
)

// handleAddQuestion implements spec.md §4.4.3.
func (c *Controller) handleAddQuestion(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
	var args wire.AddQuestionArgs
	if !c.decode(data, &args, ack, wire.EventAddQuestion) {
		return
	}

	actor, ok := c.authorizeOwner(args.Session, conn.ID())
	if !ok {
		writeFailure(ack, wire.EventAddQuestion, nil, wire.FieldErrf("session", nil))
		return
	}

	q, errs := c.parser.Parse(args.Question)
	if errs != nil {
		writeFailure(ack, wire.EventAddQuestion, &args.Session, errs)
		return
	}

	actor.Do(func(s *model.Session) {
		s.Quiz().AddQuestion(q)
	})
	writeSuccess(ack, wire.EventAddQuestion, &args.Session, nil)
}

// handleEditQuestion implements spec.md §4.4.4 (edit). Rejected if the
// target index is the currently active one while the Session has started;
// not observed by any broadcast.
func (c *Controller) handleEditQuestion(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
	var args wire.EditQuestionArgs
	if !c.decode(data, &args, ack, wire.EventEditQuestion) {
		return
	}

	actor, ok := c.authorizeOwner(args.Session, conn.ID())
	if !ok {
		writeFailure(ack, wire.EventEditQuestion, nil, wire.FieldErrf("session", nil))
		return
	}

	q, errs := c.parser.Parse(args.Question)
	if errs != nil {
		writeFailure(ack, wire.EventEditQuestion, &args.Session, errs)
		return
	}

	var failed bool
	actor.Do(func(s *model.Session) {
		if s.IsStarted() && args.Index == s.Quiz().CurrentIndex() {
			failed = true
			return
		}
		if !s.Quiz().ReplaceQuestion(args.Index, q) {
			failed = true
		}
	})
	if failed {
		writeFailure(ack, wire.EventEditQuestion, &args.Session, wire.FieldErrf("index", args.Index))
		return
	}
	writeSuccess(ack, wire.EventEditQuestion, &args.Session, nil)
}

// handleRemoveQuestion implements spec.md §4.4.4 (remove). Same active-index
// restriction as edit; surviving questions are not re-indexed (spec.md §9
// Open Questions).
func (c *Controller) handleRemoveQuestion(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
	var args wire.RemoveQuestionArgs
	if !c.decode(data, &args, ack, wire.EventRemoveQuestion) {
		return
	}

	actor, ok := c.authorizeOwner(args.Session, conn.ID())
	if !ok {
		writeFailure(ack, wire.EventRemoveQuestion, nil, wire.FieldErrf("session", nil))
		return
	}

	var failed bool
	actor.Do(func(s *model.Session) {
		if s.IsStarted() && args.Index == s.Quiz().CurrentIndex() {
			failed = true
			return
		}
		if !s.Quiz().RemoveQuestion(args.Index) {
			failed = true
		}
	})
	if failed {
		writeFailure(ack, wire.EventRemoveQuestion, &args.Session, wire.FieldErrf("index", args.Index))
		return
	}
	writeSuccess(ack, wire.EventRemoveQuestion, &args.Session, nil)
}

// handleNextQuestion implements spec.md §4.4.8. The timer armed here feeds
// the question's expiry back into this same Session's actor, so a timer
// firing never races a concurrent handler (spec.md §9 "timer-vs-manual-end
// race").
func (c *Controller) handleNextQuestion(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
	var args wire.SessionOnlyArgs
	if !c.decode(data, &args, ack, wire.EventNextQuestion) {
		return
	}

	actor, ok := c.authorizeOwner(args.Session, conn.ID())
	if !ok {
		writeFailure(ack, wire.EventNextQuestion, nil, wire.FieldErrf("session", nil))
		return
	}

	var (
		started      bool
		numQuestions int
		currentIndex int
		next         *model.Question
	)
	sessionID := args.Session
	actor.Do(func(s *model.Session) {
		started = s.IsStarted()
		if !started {
			return
		}
		next = s.Quiz().AdvanceToNextQuestion(func() {
			c.onQuestionTimeout(actor, sessionID, next.Index())
		})
		numQuestions = s.Quiz().Len()
		currentIndex = s.Quiz().CurrentIndex()
	})

	if !started {
		writeFailure(ack, wire.EventNextQuestion, &args.Session, nil)
		return
	}
	if next == nil {
		writeFailure(ack, wire.EventNextQuestion, &args.Session, []wire.FieldError{{
			Field: "question",
			Value: wire.NextQuestionFailContext{NumQuestions: numQuestions, CurrentIndex: currentIndex},
		}})
		return
	}

	payload := wire.NextQuestionData{Index: next.Index(), Question: questionView(next)}
	writeSuccess(ack, wire.EventNextQuestion, &args.Session, payload)
	c.transport.EmitToRoomExcept(args.Session, conn.ID(),
		wire.Success(wire.BroadcastNextQuestion, &args.Session, payload))
}

// onQuestionTimeout is the Question's onTimeout callback (spec.md §3, §9):
// fired by the per-question timer, on its own goroutine, exactly once
// unless the question is ended first. It re-enters the owning Session's
// actor so the end transition and broadcast are serialized with every other
// operation on that Session.
func (c *Controller) onQuestionTimeout(actor *sessionActor, sessionID string, index int) {
	actor.Do(func(s *model.Session) {
		q := s.Quiz().QuestionAt(index)
		if q == nil || !q.End() {
			return
		}
		c.transport.EmitToRoomExcept(sessionID, s.Owner,
			wire.Success(wire.BroadcastQuestionEnded, &sessionID, wire.QuestionEndedData{Question: index}))
	})
}
