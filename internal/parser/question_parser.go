// Package parser converts raw, client-submitted question data into a valid
// model.Question or a structured list of wire.FieldError (spec.md §4.1,
// component C6).
package parser

import (
	"strings"

	"github.com/ndkhanh/quizroom/internal/config"
	"github.com/ndkhanh/quizroom/internal/model"
	"github.com/ndkhanh/quizroom/internal/wire"
)

// Parser validates raw question submissions against a configured set of
// bounds (config.SessionConfig), defaulting to spec.md's own numbers but
// overridable per deployment.
type Parser struct {
	bounds config.SessionConfig
}

// New builds a Parser enforcing bounds.
func New(bounds config.SessionConfig) *Parser {
	return &Parser{bounds: bounds}
}

// Parse validates sub and returns the constructed Question, or the full list
// of validation failures. Rules are applied together and collected — nothing
// short-circuits except a missing body, which has no sub-fields to check.
func (p *Parser) Parse(sub wire.QuestionSubmission) (*model.Question, []wire.FieldError) {
	var errs []wire.FieldError

	if strings.TrimSpace(sub.Text) == "" {
		errs = append(errs, wire.FieldError{Field: "text", Value: sub.Text})
	}

	if sub.TimeLimit == nil {
		errs = append(errs, wire.FieldError{Field: "timeLimit", Value: nil})
	} else if *sub.TimeLimit < p.bounds.MinTimeLimit || *sub.TimeLimit > p.bounds.MaxTimeLimit {
		errs = append(errs, wire.FieldError{Field: "timeLimit", Value: *sub.TimeLimit})
	}

	if sub.Body == nil {
		errs = append(errs, wire.FieldError{Field: "body", Value: nil})
		return nil, errs
	}

	var body model.Body
	switch sub.Body.Kind {
	case wire.KindMultipleChoice:
		var bodyErrs []wire.FieldError
		body, bodyErrs = p.parseMultipleChoice(*sub.Body)
		errs = append(errs, bodyErrs...)
	case wire.KindFillIn:
		var bodyErrs []wire.FieldError
		body, bodyErrs = p.parseFillIn(*sub.Body)
		errs = append(errs, bodyErrs...)
	default:
		errs = append(errs, wire.FieldError{Field: "body", Value: sub.Body.Kind})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	timeLimit := p.bounds.MinTimeLimit
	if sub.TimeLimit != nil {
		timeLimit = *sub.TimeLimit
	}
	return model.NewQuestion(sub.Text, timeLimit, body), nil
}

func (p *Parser) parseMultipleChoice(b wire.BodySubmission) (model.Body, []wire.FieldError) {
	var errs []wire.FieldError

	if len(b.Choices) < p.bounds.MinChoices || len(b.Choices) > p.bounds.MaxChoices {
		errs = append(errs, wire.FieldError{Field: "choices", Value: len(b.Choices)})
	}

	choices := make([]model.Choice, len(b.Choices))
	total := 0
	for i, c := range b.Choices {
		if strings.TrimSpace(c.Text) == "" {
			errs = append(errs, wire.FieldError{
				Field: "choices",
				Value: map[string]interface{}{"index": i, "field": "text", "value": c.Text},
			})
		}
		points := 0
		if c.Points == nil || *c.Points < 0 {
			errs = append(errs, wire.FieldError{
				Field: "choices",
				Value: map[string]interface{}{"index": i, "field": "points", "value": c.Points},
			})
		} else {
			points = *c.Points
		}
		choices[i] = model.Choice{Text: c.Text, Points: points}
		total += points
	}

	if b.Answer == nil || *b.Answer < 0 || *b.Answer >= len(b.Choices) {
		errs = append(errs, wire.FieldError{Field: "answer", Value: b.Answer})
	}

	if total < p.bounds.MinTotalPoints || total > p.bounds.MaxTotalPoints {
		errs = append(errs, wire.FieldError{Field: "totalPoints", Value: total})
	}

	if len(errs) > 0 {
		return model.Body{}, errs
	}
	return model.NewMultipleChoiceBody(choices, *b.Answer), nil
}

func (p *Parser) parseFillIn(b wire.BodySubmission) (model.Body, []wire.FieldError) {
	var errs []wire.FieldError

	if len(b.Answers) < p.bounds.MinAnswers || len(b.Answers) > p.bounds.MaxAnswers {
		errs = append(errs, wire.FieldError{Field: "answers", Value: len(b.Answers)})
	}

	answers := make([]model.FillInAnswer, len(b.Answers))
	total := 0
	for i, a := range b.Answers {
		if strings.TrimSpace(a.Text) == "" {
			errs = append(errs, wire.FieldError{
				Field: "answers",
				Value: map[string]interface{}{"index": i, "field": "text", "value": a.Text},
			})
		}
		points := 0
		if a.Points == nil || *a.Points < 0 {
			errs = append(errs, wire.FieldError{
				Field: "answers",
				Value: map[string]interface{}{"index": i, "field": "points", "value": a.Points},
			})
		} else {
			points = *a.Points
		}
		answers[i] = model.FillInAnswer{Text: a.Text, Points: points}
		total += points
	}

	if total < p.bounds.MinTotalPoints || total > p.bounds.MaxTotalPoints {
		errs = append(errs, wire.FieldError{Field: "totalPoints", Value: total})
	}

	if len(errs) > 0 {
		return model.Body{}, errs
	}
	return model.NewFillInBody(answers), nil
}
