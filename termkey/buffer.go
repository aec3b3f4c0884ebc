package termkey

import (
	"fmt"
	"io"
)

// DefaultBufferSize is the capacity of a new session's input buffer.
const DefaultBufferSize = 256

// Buffer holds input bytes that have not yet been decoded. Its capacity is
// fixed between explicit SetCap calls; Push never grows it.
type Buffer struct {
	data  []byte
	start int // offset of the first unread byte
	count int // number of unread bytes
}

// NewBuffer returns an empty buffer of the given capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Len returns the number of unread bytes.
func (b *Buffer) Len() int { return b.count }

// Remaining returns the free space. Remaining()+Len() == Cap() always holds.
func (b *Buffer) Remaining() int { return len(b.data) - b.count }

// Push appends as much of p as fits and returns the number of bytes accepted.
func (b *Buffer) Push(p []byte) int {
	if len(p) == 0 {
		return 0
	}
	// Move the unread window to the front so all free space is contiguous.
	if b.start > 0 {
		copy(b.data, b.data[b.start:b.start+b.count])
		b.start = 0
	}
	n := copy(b.data[b.count:], p)
	b.count += n
	return n
}

// SetCap changes the capacity, keeping every unread byte.
func (b *Buffer) SetCap(n int) error {
	if n < b.count || n <= 0 {
		return fmt.Errorf("%w: %d bytes buffered, capacity %d requested", ErrBufferTooSmall, b.count, n)
	}
	data := make([]byte, n)
	copy(data, b.data[b.start:b.start+b.count])
	b.data = data
	b.start = 0
	return nil
}

// Bytes returns the unread bytes. The slice is only valid until the next
// Push, Consume or SetCap.
func (b *Buffer) Bytes() []byte {
	return b.data[b.start : b.start+b.count]
}

// Consume discards the first n unread bytes.
func (b *Buffer) Consume(n int) {
	if n > b.count {
		n = b.count
	}
	b.start += n
	b.count -= n
	if b.count == 0 {
		b.start = 0
	}
}

// readFrom fills free space with a single Read call on r.
func (b *Buffer) readFrom(r io.Reader) (int, error) {
	if b.start > 0 {
		copy(b.data, b.data[b.start:b.start+b.count])
		b.start = 0
	}
	n, err := r.Read(b.data[b.count:])
	if n > 0 {
		b.count += n
	}
	return n, err
}
