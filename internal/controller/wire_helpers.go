package controller

import (
	"encoding/json"

	"github.com/ndkhanh/quizroom/internal/model"
	"github.com/ndkhanh/quizroom/internal/wire"
	"github.com/ndkhanh/quizroom/pkg/realtime"
)

// decode unmarshals data into v, treating an absent/null payload as the
// "missing arguments" error kind (spec.md §7): status=400, session=null,
// errors=null. Returns false (and has already acked) when args could not be
// used at all.
func (c *Controller) decode(data json.RawMessage, v interface{}, ack realtime.AckFunc, event string) bool {
	if len(data) == 0 || string(data) == "null" {
		writeFailure(ack, event, nil, nil)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		writeFailure(ack, event, nil, nil)
		return false
	}
	return true
}

func writeSuccess(ack realtime.AckFunc, event string, session *string, data interface{}) {
	if ack == nil {
		return
	}
	raw, err := json.Marshal(wire.Success(event, session, data))
	if err != nil {
		return
	}
	ack(raw)
}

func writeFailure(ack realtime.AckFunc, event string, session *string, errs []wire.FieldError) {
	if ack == nil {
		return
	}
	raw, err := json.Marshal(wire.Failure(event, session, errs))
	if err != nil {
		return
	}
	ack(raw)
}

// questionView projects a model.Question onto its wire shape (spec.md §6).
// Sent verbatim to both the owner and the room — see wire.QuestionView.
func questionView(q *model.Question) wire.QuestionView {
	body := q.Body()
	bv := wire.BodyView{Kind: bodyKindWire(body.Kind)}
	switch body.Kind {
	case model.BodyMultipleChoice:
		bv.Choices = make([]wire.ChoiceView, len(body.Choices))
		for i, ch := range body.Choices {
			bv.Choices[i] = wire.ChoiceView{Text: ch.Text, Points: ch.Points}
		}
		answer := body.AnswerIndex
		bv.Answer = &answer
	case model.BodyFillIn:
		bv.Answers = make([]wire.AnswerView, len(body.Answers))
		for i, a := range body.Answers {
			bv.Answers[i] = wire.AnswerView{Text: a.Text, Points: a.Points}
		}
	}
	return wire.QuestionView{
		Index:     q.Index(),
		Text:      q.Text(),
		TimeLimit: q.TimeLimit(),
		Body:      bv,
	}
}

func bodyKindWire(k model.BodyKind) string {
	switch k {
	case model.BodyMultipleChoice:
		return wire.KindMultipleChoice
	case model.BodyFillIn:
		return wire.KindFillIn
	default:
		return string(k)
	}
}
