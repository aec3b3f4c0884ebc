package termkey

import "time"

// Status is the outcome of a decode operation.
type Status int

const (
	StatusNone  Status = iota // No bytes buffered
	StatusKey                 // An event was decoded
	StatusEOF                 // The source is closed and the buffer is empty
	StatusAgain               // Buffered bytes are a prefix of a longer sequence
	StatusError               // The operation failed; see the returned error
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "None"
	case StatusKey:
		return "Key"
	case StatusEOF:
		return "EOF"
	case StatusAgain:
		return "Again"
	case StatusError:
		return "Error"
	}
	return "Invalid"
}

// Result is returned by Poll, Force and AdviseReadable. Event is only set for
// StatusKey; Wait is only set for StatusAgain and tells the caller how long to
// wait for more input before calling Force.
type Result struct {
	Status Status
	Event  Event
	Wait   time.Duration
}
