package wire

// ChoiceView and AnswerView are the wire projection of model.Choice /
// model.FillInAnswer.
type ChoiceView struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
}

type AnswerView struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
}

// BodyView is the wire projection of a Question's body.
type BodyView struct {
	Kind    string       `json:"kind"`
	Choices []ChoiceView `json:"choices,omitempty"`
	Answer  *int         `json:"answer,omitempty"`
	Answers []AnswerView `json:"answers,omitempty"`
}

// QuestionView is the wire projection of a Question, sent verbatim to both
// the owner and the room (spec.md §4.4.8: "the same payload").
type QuestionView struct {
	Index     int      `json:"index"`
	Text      string   `json:"text"`
	TimeLimit int      `json:"timeLimit"`
	Body      BodyView `json:"body"`
}

// UserJoinedData / UserKickedData / UserDisconnectedData all share this
// shape: the single field a participant-targeted broadcast needs.
type NameData struct {
	Name string `json:"name"`
}

// NextQuestionData is both the ack and the broadcast payload for "next
// question".
type NextQuestionData struct {
	Index    int          `json:"index"`
	Question QuestionView `json:"question"`
}

// NextQuestionFailContext is the state-context surfaced when advancing fails,
// so the client can decide whether to retry.
type NextQuestionFailContext struct {
	NumQuestions int `json:"numQuestions"`
	CurrentIndex int `json:"currentIndex"`
}

// QuestionResponseAckData acknowledges the submitter.
type QuestionResponseAckData struct {
	Index        int  `json:"index"`
	FirstCorrect bool `json:"firstCorrect"`
	Points       int  `json:"points"`
}

// QuestionResponseAddedData is the owner-private broadcast after a response
// is recorded.
type QuestionResponseAddedData struct {
	Index             int     `json:"index"`
	User              string  `json:"user"`
	Response          string  `json:"response"`
	Points            int     `json:"points"`
	FirstCorrect      string  `json:"firstCorrect"`
	Frequency         int     `json:"frequency"`
	RelativeFrequency float64 `json:"relativeFrequency"`
}

// QuestionEndedData carries the ended question's index under "question",
// matching spec.md's wire naming ({question:index}) though the field
// conceptually holds the Question.Index.
type QuestionEndedData struct {
	Question int `json:"question"`
}

// FeedbackView is the wire projection of model.Feedback.
type FeedbackView struct {
	Rating  int    `json:"rating"`
	Message string `json:"message"`
}

// FeedbackSubmittedData is the owner-private broadcast after feedback is
// recorded.
type FeedbackSubmittedData struct {
	User     string       `json:"user"`
	Question int          `json:"question"`
	Feedback FeedbackView `json:"feedback"`
}

// HintReceivedData is the room broadcast for "send hint".
type HintReceivedData struct {
	Question int    `json:"question"`
	Hint     string `json:"hint"`
}
