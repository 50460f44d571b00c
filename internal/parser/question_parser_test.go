package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndkhanh/quizroom/internal/config"
	"github.com/ndkhanh/quizroom/internal/wire"
)

func defaultBounds() config.SessionConfig {
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

func intPtr(i int) *int { return &i }

func mcSubmission(timeLimit int, choicePoints []int, answer int) wire.QuestionSubmission {
	choices := make([]wire.ChoiceSubmission, len(choicePoints))
	for i, p := range choicePoints {
		choices[i] = wire.ChoiceSubmission{Text: "choice", Points: intPtr(p)}
	}
	return wire.QuestionSubmission{
		Text:      "question text",
		TimeLimit: intPtr(timeLimit),
		Body: &wire.BodySubmission{
			Kind:    wire.KindMultipleChoice,
			Choices: choices,
			Answer:  intPtr(answer),
		},
	}
}

func fillInSubmission(timeLimit int, answerPoints []int) wire.QuestionSubmission {
	answers := make([]wire.AnswerSubmission, len(answerPoints))
	for i, p := range answerPoints {
		answers[i] = wire.AnswerSubmission{Text: "answer", Points: intPtr(p)}
	}
	return wire.QuestionSubmission{
		Text:      "question text",
		TimeLimit: intPtr(timeLimit),
		Body: &wire.BodySubmission{
			Kind:    wire.KindFillIn,
			Answers: answers,
		},
	}
}

func TestParser_TimeLimit_Boundaries(t *testing.T) {
	p := New(defaultBounds())

	_, errs := p.Parse(mcSubmission(59, []int{200, 200}, 0))
	assert.NotEmpty(t, errs)

	_, errs = p.Parse(mcSubmission(60, []int{200, 200}, 0))
	assert.Empty(t, errs)

	_, errs = p.Parse(mcSubmission(300, []int{200, 200}, 0))
	assert.Empty(t, errs)

	_, errs = p.Parse(mcSubmission(301, []int{200, 200}, 0))
	assert.NotEmpty(t, errs)
}

func TestParser_MultipleChoice_ChoiceCountBoundaries(t *testing.T) {
	p := New(defaultBounds())

	_, errs := p.Parse(mcSubmission(60, []int{500}, 0))
	assert.NotEmpty(t, errs, "1 choice is below the minimum of 2")

	_, errs = p.Parse(mcSubmission(60, []int{250, 250}, 0))
	assert.Empty(t, errs, "2 choices is the minimum")

	_, errs = p.Parse(mcSubmission(60, []int{250, 250, 250, 250}, 0))
	assert.Empty(t, errs, "4 choices is the maximum")

	_, errs = p.Parse(mcSubmission(60, []int{200, 200, 200, 200, 200}, 0))
	assert.NotEmpty(t, errs, "5 choices exceeds the maximum of 4")
}

func TestParser_FillIn_AnswerCountBoundaries(t *testing.T) {
	p := New(defaultBounds())

	_, errs := p.Parse(fillInSubmission(60, []int{}))
	assert.NotEmpty(t, errs, "0 answers is below the minimum of 1")

	_, errs = p.Parse(fillInSubmission(60, []int{100}))
	assert.Empty(t, errs, "1 answer is the minimum")

	_, errs = p.Parse(fillInSubmission(60, []int{100, 100, 100}))
	assert.Empty(t, errs, "3 answers is the maximum")

	_, errs = p.Parse(fillInSubmission(60, []int{100, 100, 100, 100}))
	assert.NotEmpty(t, errs, "4 answers exceeds the maximum of 3")
}

func TestParser_TotalPoints_Boundaries(t *testing.T) {
	p := New(defaultBounds())

	_, errs := p.Parse(mcSubmission(60, []int{49, 49}, 0))
	assert.NotEmpty(t, errs, "98 total points is below the minimum of 100")

	_, errs = p.Parse(mcSubmission(60, []int{50, 50}, 0))
	assert.Empty(t, errs, "100 total points is the minimum")

	_, errs = p.Parse(mcSubmission(60, []int{500, 500}, 0))
	assert.Empty(t, errs, "1000 total points is the maximum")

	_, errs = p.Parse(mcSubmission(60, []int{501, 500}, 0))
	assert.NotEmpty(t, errs, "1001 total points exceeds the maximum")
}

func TestParser_MultipleChoice_AnswerIndexOutOfRangeFails(t *testing.T) {
	p := New(defaultBounds())

	_, errs := p.Parse(mcSubmission(60, []int{250, 250, 250, 250}, 4))
	assert.NotEmpty(t, errs)
}

func TestParser_MissingBody_FailsImmediately(t *testing.T) {
	p := New(defaultBounds())

	sub := wire.QuestionSubmission{Text: "question", TimeLimit: intPtr(60)}
	q, errs := p.Parse(sub)
	assert.Nil(t, q)
	require.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Field)
}

func TestParser_EmptyText_Fails(t *testing.T) {
	p := New(defaultBounds())

	sub := mcSubmission(60, []int{250, 250}, 0)
	sub.Text = "   "
	_, errs := p.Parse(sub)
	assert.NotEmpty(t, errs)
}

func TestParser_Success_BuildsQuestion(t *testing.T) {
	p := New(defaultBounds())

	q, errs := p.Parse(mcSubmission(120, []int{300, 300}, 1))
	require.Empty(t, errs)
	require.NotNil(t, q)
	assert.Equal(t, 120, q.TimeLimit())
	assert.Equal(t, "question text", q.Text())
}

func TestParser_CollectsMultipleErrorsTogether(t *testing.T) {
	p := New(defaultBounds())

	sub := wire.QuestionSubmission{
		Text:      "",
		TimeLimit: intPtr(1000),
		Body: &wire.BodySubmission{
			Kind:    wire.KindMultipleChoice,
			Choices: []wire.ChoiceSubmission{{Text: "only one"}},
			Answer:  intPtr(0),
		},
	}
	_, errs := p.Parse(sub)
	assert.GreaterOrEqual(t, len(errs), 3, "text, timeLimit, and choices bounds should all be reported")
}
