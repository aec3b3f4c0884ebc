package termkey

import "errors"

var (
	// ErrBufferOverflow is returned by Write when the buffer could not take
	// all of the offered bytes.
	ErrBufferOverflow = errors.New("termkey: input buffer full")

	// ErrSessionStopped is returned by decode calls on a stopped session.
	ErrSessionStopped = errors.New("termkey: session stopped")

	// ErrNoSource is returned by AdviseReadable when the session has no reader.
	ErrNoSource = errors.New("termkey: session has no input source")

	// ErrBufferTooSmall is returned when a resize would drop buffered bytes.
	ErrBufferTooSmall = errors.New("termkey: buffer size smaller than buffered input")
)
