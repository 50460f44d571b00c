package wire

import "encoding/json"

// JoinSessionArgs is the payload of "join session".
type JoinSessionArgs struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ChoiceSubmission is one raw multiple-choice option as submitted by the
// owner, before validation.
type ChoiceSubmission struct {
	Text   string `json:"text"`
	Points *int   `json:"points"`
}

// AnswerSubmission is one raw fill-in accepted answer, before validation.
type AnswerSubmission struct {
	Text   string `json:"text"`
	Points *int   `json:"points"`
}

// BodySubmission is the raw, not-yet-validated Question body.
type BodySubmission struct {
	Kind    string             `json:"kind"`
	Choices []ChoiceSubmission `json:"choices"`
	Answer  *int               `json:"answer"`
	Answers []AnswerSubmission `json:"answers"`
}

// QuestionSubmission is the raw, not-yet-validated Question payload a client
// sends to add or edit a question.
type QuestionSubmission struct {
	Text      string          `json:"text"`
	TimeLimit *int            `json:"timeLimit"`
	Body      *BodySubmission `json:"body"`
}

// AddQuestionArgs is the payload of "add question".
type AddQuestionArgs struct {
	Session  string             `json:"session"`
	Question QuestionSubmission `json:"question"`
}

// EditQuestionArgs is the payload of "edit question".
type EditQuestionArgs struct {
	Session  string             `json:"session"`
	Index    int                `json:"index"`
	Question QuestionSubmission `json:"question"`
}

// RemoveQuestionArgs is the payload of "remove question".
type RemoveQuestionArgs struct {
	Session string `json:"session"`
	Index   int    `json:"index"`
}

// KickArgs is the payload of "kick".
type KickArgs struct {
	Session string `json:"session"`
	Name    string `json:"name"`
}

// SessionOnlyArgs covers request shapes that carry only a session id:
// "start session", "end session" and "next question".
type SessionOnlyArgs struct {
	Session string `json:"session"`
}

// ResponseSubmission is the raw Response payload; Answer's concrete shape
// (number vs string) depends on Kind.
type ResponseSubmission struct {
	Kind   string          `json:"kind"`
	Answer json.RawMessage `json:"answer"`
}

// QuestionResponseArgs is the payload of "question response".
type QuestionResponseArgs struct {
	Session  string             `json:"session"`
	Name     string             `json:"name"`
	Index    int                `json:"index"`
	Response ResponseSubmission `json:"response"`
}

// EndQuestionArgs is the payload of "end question".
type EndQuestionArgs struct {
	Session  string `json:"session"`
	Question int    `json:"question"`
}

// FeedbackSubmission is the raw Feedback payload.
type FeedbackSubmission struct {
	Rating  *int   `json:"rating"`
	Message string `json:"message"`
}

// SubmitFeedbackArgs is the payload of "submit feedback".
type SubmitFeedbackArgs struct {
	Session  string             `json:"session"`
	Name     string             `json:"name"`
	Question int                `json:"question"`
	Feedback FeedbackSubmission `json:"feedback"`
}

// SendHintArgs is the payload of "send hint".
type SendHintArgs struct {
	Session  string `json:"session"`
	Question int    `json:"question"`
	Hint     string `json:"hint"`
}
