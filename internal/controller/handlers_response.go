package controller

import (
	"encoding/json"

	"github.com/ndkhanh/quizroom/internal/model"
	"github.com/ndkhanh/quizroom/internal/wire"
	"github.com/ndkhanh/quizroom/pkg/realtime"
)

// parseResponseSubmission converts a raw ResponseSubmission into a
// model.Response. Unlike Question submissions, this is not routed through
// the Submission Parser (C6 only covers Question authoring, spec.md §2);
// it's controller-local validation per §4.4.9 ("response payload
// malformed").
func parseResponseSubmission(sub wire.ResponseSubmission, submitter string) (model.Response, bool) {
	switch sub.Kind {
	case wire.KindMultipleChoice:
		var answer int
		if err := json.Unmarshal(sub.Answer, &answer); err != nil {
			return model.Response{}, false
		}
		return model.Response{Submitter: submitter, Kind: model.ResponseMultipleChoice, Answer: answer}, true
	case wire.KindFillIn:
		var text string
		if err := json.Unmarshal(sub.Answer, &text); err != nil {
			return model.Response{}, false
		}
		return model.Response{Submitter: submitter, Kind: model.ResponseFillIn, Text: text}, true
	default:
		return model.Response{}, false
	}
}

// handleQuestionResponse implements spec.md §4.4.9.
func (c *Controller) handleQuestionResponse(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
	var args wire.QuestionResponseArgs
	if !c.decode(data, &args, ack, wire.EventQuestionResp) {
		return
	}

	actor, ok := c.registry.Get(args.Session)
	if !ok {
		writeFailure(ack, wire.EventQuestionResp, nil, wire.FieldErrf("session", nil))
		return
	}

	resp, wellFormed := parseResponseSubmission(args.Response, args.Name)

	var (
		authErr     bool
		notCurrent  bool
		addErr      error
		points      int
		firstIsSelf bool
		frequency   int
		relFreq     float64
		ownerConnID string
		firstName   string
	)
	actor.Do(func(s *model.Session) {
		ownerConnID = s.Owner
		u, found := s.FindUserByName(args.Name)
		if !found || u.ConnID() != conn.ID() {
			authErr = true
			return
		}
		cur := s.Quiz().CurrentQuestion()
		if cur == nil || args.Index != s.Quiz().CurrentIndex() {
			notCurrent = true
			return
		}
		if !wellFormed {
			return
		}
		points, addErr = cur.AddResponse(resp)
		if addErr == nil {
			firstName = cur.FirstCorrect()
			firstIsSelf = firstName == args.Name
			frequency = cur.FrequencyOf(resp)
			relFreq = cur.RelativeFrequencyOf(resp)
		}
	})

	switch {
	case authErr:
		writeFailure(ack, wire.EventQuestionResp, &args.Session, wire.FieldErrf("name", args.Name))
		return
	case notCurrent:
		writeFailure(ack, wire.EventQuestionResp, &args.Session, wire.FieldErrf("index", args.Index))
		return
	case !wellFormed:
		writeFailure(ack, wire.EventQuestionResp, &args.Session, wire.FieldErrf("response", nil))
		return
	case addErr == model.ErrDuplicateResponse:
		writeFailure(ack, wire.EventQuestionResp, &args.Session, wire.FieldErrf("response", "duplicate"))
		return
	case addErr != nil:
		writeFailure(ack, wire.EventQuestionResp, &args.Session, wire.FieldErrf("response", nil))
		return
	}

	writeSuccess(ack, wire.EventQuestionResp, &args.Session, wire.QuestionResponseAckData{
		Index:        args.Index,
		FirstCorrect: firstIsSelf,
		Points:       points,
	})
	c.transport.EmitToOne(ownerConnID, wire.Success(wire.BroadcastQuestionRespAdded, &args.Session, wire.QuestionResponseAddedData{
		Index:             args.Index,
		User:              args.Name,
		Response:          resp.String(),
		Points:            points,
		FirstCorrect:      firstName,
		Frequency:         frequency,
		RelativeFrequency: relFreq,
	}))
}

// handleEndQuestion implements spec.md §4.4.10.
func (c *Controller) handleEndQuestion(conn realtime.Conn, data json.RawMessage, ack realtime.AckFunc) {
	var args wire.EndQuestionArgs
	if !c.decode(data, &args, ack, wire.EventEndQuestion) {
		return
	}

	actor, ok := c.authorizeOwner(args.Session, conn.ID())
	if !ok {
		writeFailure(ack, wire.EventEndQuestion, nil, wire.FieldErrf("session", nil))
		return
	}

	var failed bool
	actor.Do(func(s *model.Session) {
		if !s.IsStarted() || s.HasEnded() {
			failed = true
			return
		}
		cur := s.Quiz().CurrentQuestion()
		if cur == nil || args.Question != s.Quiz().CurrentIndex() || cur.HasEnded() {
			failed = true
			return
		}
		cur.End()
	})
	if failed {
		writeFailure(ack, wire.EventEndQuestion, &args.Session, nil)
		return
	}

	writeSuccess(ack, wire.EventEndQuestion, &args.Session, nil)
	c.transport.EmitToRoomExcept(args.Session, conn.ID(),
		wire.Success(wire.BroadcastQuestionEnded, &args.Session, wire.QuestionEndedData{Question: args.Question}))
}
