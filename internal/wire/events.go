package wire

// Request event names: the wire name a client emits to invoke an operation.
const (
	EventCreateSession  = "create session"
	EventJoinSession    = "join session"
	EventAddQuestion    = "add question"
	EventEditQuestion   = "edit question"
	EventRemoveQuestion = "remove question"
	EventKick           = "kick"
	EventStartSession   = "start session"
	EventEndSession     = "end session"
	EventNextQuestion   = "next question"
	EventQuestionResp   = "question response"
	EventEndQuestion    = "end question"
	EventSubmitFeedback = "submit feedback"
	EventSendHint       = "send hint"
)

// AckCreateSession is the event name the create-session acknowledgement
// carries. Every other operation's ack echoes its own request event name
// (spec.md §6), but create session is the one exception: spec.md §8's S1
// scenario specifies a distinct past-tense ack event.
const AckCreateSession = "created session"

// Broadcast event names: the wire name a room-wide (or owner-private) fan-out
// carries, distinct from the request event name that triggered it.
const (
	BroadcastUserJoined         = "user joined"
	BroadcastUserKicked         = "user kicked"
	BroadcastSessionStarted     = "session started"
	BroadcastSessionEnded       = "session ended"
	BroadcastNextQuestion       = "next question"
	BroadcastQuestionRespAdded  = "question response added"
	BroadcastQuestionEnded      = "question ended"
	BroadcastFeedbackSubmitted  = "feedback submitted"
	BroadcastHintReceived       = "hint received"
	BroadcastUserDisconnected   = "user disconnected"
)

// Body/response submission kind discriminators as they appear on the wire.
const (
	KindMultipleChoice = "multiple-choice"
	KindFillIn         = "fill-in"
)
