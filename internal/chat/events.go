package chat

// EventType tags one consumer-visible event returned by Poll.
type EventType int

const (
	// EventIncremental carries one streamed text fragment of the
	// in-flight assistant turn.
	EventIncremental EventType = iota
	// EventFinal reports that the assembled assistant message was
	// committed to the conversation and history log.
	EventFinal
	// EventError reports that the turn failed; the error text was
	// committed as a visible message.
	EventError
	// EventNameReady reports that auto-naming renamed the session.
	// Text holds the new session id.
	EventNameReady
)

// Event is one item drained by Poll.
type Event struct {
	Type EventType
	Text string
}

// internal event kinds flowing from background tasks to Poll.
type streamEventKind int

const (
	kindFragment streamEventKind = iota
	kindFinal
	kindError
	kindName
)

// streamEvent is the single tagged envelope every background task
// uses; seq ties primary-fetch events to the turn that produced them,
// session ties naming results to the session they were computed for.
type streamEvent struct {
	seq     int
	kind    streamEventKind
	session string
	text    string
	err     error
}
