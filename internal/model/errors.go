package model

import "errors"

// Question state errors, surfaced by the controller as wire-level "response" errors.
var (
	ErrQuestionNotStarted = errors.New("question has not started")
	ErrQuestionEnded      = errors.New("question has already ended")
	ErrDuplicateResponse  = errors.New("participant already responded to this question")
	ErrDuplicateFeedback  = errors.New("participant already submitted feedback for this question")
)

// Session membership errors.
var (
	ErrSessionStarted  = errors.New("session has already started")
	ErrSessionEnded    = errors.New("session has already ended")
	ErrNameTaken       = errors.New("name is already in use in this session")
	ErrIsOwner         = errors.New("owner cannot join as a participant")
	ErrUserNotFound    = errors.New("user not found")
	ErrQuizOutOfBounds = errors.New("no next question available")
)
