package model

// Quiz is the ordered, 0-indexed sequence of Questions owned by one Session.
type Quiz struct {
	questions    []*Question
	currentIndex int
}

// NewQuiz returns an empty Quiz with no current question.
func NewQuiz() *Quiz {
	return &Quiz{currentIndex: -1}
}

// CurrentIndex returns the index of the active question, or -1 before the
// first advance.
func (q *Quiz) CurrentIndex() int { return q.currentIndex }

// Len returns the number of questions appended so far.
func (q *Quiz) Len() int { return len(q.questions) }

// AddQuestion appends newQ, assigning its index to len-1. Permitted
// regardless of Session state; the controller restricts by context.
func (q *Quiz) AddQuestion(newQ *Question) {
	newQ.SetIndex(len(q.questions))
	q.questions = append(q.questions, newQ)
}

// QuestionAt returns the question at i, or nil if i is out of bounds.
func (q *Quiz) QuestionAt(i int) *Question {
	if i < 0 || i >= len(q.questions) {
		return nil
	}
	return q.questions[i]
}

// CurrentQuestion returns questions[currentIndex] when currentIndex is in
// bounds, else nil.
func (q *Quiz) CurrentQuestion() *Question {
	return q.QuestionAt(q.currentIndex)
}

// AdvanceToNextQuestion increments currentIndex and starts the new current
// question, returning it. Returns nil without mutation if already at the
// last question.
func (q *Quiz) AdvanceToNextQuestion(onFire func()) *Question {
	if q.currentIndex+1 >= len(q.questions) {
		return nil
	}
	q.currentIndex++
	next := q.questions[q.currentIndex]
	next.Start(onFire)
	return next
}

// RemoveQuestion removes the question at i. Indices of surviving questions
// are not reassigned; Question.Index is stable only until a removal.
func (q *Quiz) RemoveQuestion(i int) bool {
	if i < 0 || i >= len(q.questions) {
		return false
	}
	q.questions = append(q.questions[:i], q.questions[i+1:]...)
	return true
}

// ReplaceQuestion swaps the question at i for newQ, only when their body
// kinds match.
func (q *Quiz) ReplaceQuestion(i int, newQ *Question) bool {
	old := q.QuestionAt(i)
	if old == nil {
		return false
	}
	if old.Body().Kind != newQ.Body().Kind {
		return false
	}
	newQ.SetIndex(i)
	q.questions[i] = newQ
	return true
}

// Clone produces a deep copy of the Quiz, used to hand out a read-only view
// after a Session ends.
func (q *Quiz) Clone() *Quiz {
	clone := &Quiz{currentIndex: q.currentIndex}
	clone.questions = make([]*Question, len(q.questions))
	for i, question := range q.questions {
		clone.questions[i] = question.Clone()
	}
	return clone
}
