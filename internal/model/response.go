package model

import (
	"strconv"
	"strings"
)

// ResponseKind discriminates the two shapes a Response can take, mirroring the
// Question body kinds it answers.
type ResponseKind string

const (
	ResponseMultipleChoice ResponseKind = "multiple_choice"
	ResponseFillIn         ResponseKind = "fill_in"
)

// Response is a participant's submitted answer to a Question. Exactly one of
// Answer (multiple-choice index) or Text (fill-in) is meaningful, selected by Kind.
type Response struct {
	Submitter string
	Kind      ResponseKind
	Answer    int
	Text      string
}

// Key returns the frequency-map key for this response: the stringified index for
// multiple-choice, the lowercased text for fill-in.
func (r Response) Key() string {
	if r.Kind == ResponseMultipleChoice {
		return strconv.Itoa(r.Answer)
	}
	return strings.ToLower(r.Text)
}

// String renders the response the way the wire contract wants it echoed back
// (QuestionResponseAdded.response is a string regardless of kind).
func (r Response) String() string {
	if r.Kind == ResponseMultipleChoice {
		return strconv.Itoa(r.Answer)
	}
	return r.Text
}
