// Package termkey decodes the byte stream a terminal sends into keypresses,
// mouse reports and other input events.
//
// A Session never blocks and performs no I/O of its own unless given a
// source with WithSource. Callers push bytes with Push or Write and call Poll
// until it stops returning StatusKey. StatusAgain means the buffered bytes may
// be the start of a longer sequence; if nothing arrives within Result.Wait,
// Force decodes them as they stand.
package termkey

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"
	"time"
)

// DefaultWaitTime is how long a lone ESC or partial sequence is held before
// it should be forced.
const DefaultWaitTime = 50 * time.Millisecond

// Session holds the decoder state for one input stream. It is not safe for
// concurrent use.
type Session struct {
	buf        *Buffer
	flags      Flags
	canon      CanonFlags
	wait       time.Duration
	keyNames   *KeyNames
	logger     *slog.Logger
	source     io.Reader
	closed     bool
	started    bool
	mouseProto MouseProtocol
}

// Option configures a Session.
type Option func(*config)

type config struct {
	flags      Flags
	canon      CanonFlags
	wait       time.Duration
	bufferSize int
	source     io.Reader
	keyNames   *KeyNames
	logger     *slog.Logger
}

// WithFlags sets the input flags.
func WithFlags(f Flags) Option {
	return func(c *config) { c.flags = f }
}

// WithCanonFlags sets the canonicalization flags.
func WithCanonFlags(f CanonFlags) Option {
	return func(c *config) { c.canon = f }
}

// WithWaitTime sets the wait hint returned with StatusAgain.
func WithWaitTime(d time.Duration) Option {
	return func(c *config) { c.wait = d }
}

// WithBufferSize sets the input buffer capacity.
func WithBufferSize(n int) Option {
	return func(c *config) { c.bufferSize = n }
}

// WithSource gives the session a reader for AdviseReadable.
func WithSource(r io.Reader) Option {
	return func(c *config) { c.source = r }
}

// WithKeyNames replaces the built-in key name table.
func WithKeyNames(k *KeyNames) Option {
	return func(c *config) { c.keyNames = k }
}

// WithLogger sets the logger for debug records. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// New creates a started session.
func New(opts ...Option) *Session {
	c := config{
		wait:       DefaultWaitTime,
		bufferSize: DefaultBufferSize,
		keyNames:   DefaultKeyNames(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.keyNames == nil {
		c.keyNames = DefaultKeyNames()
	}

	s := &Session{
		buf:      NewBuffer(c.bufferSize),
		flags:    c.flags,
		canon:    c.canon,
		wait:     c.wait,
		keyNames: c.keyNames,
		logger:   c.logger,
		source:   c.source,
		started:  true,
	}
	if c.flags.Has(FlagSpaceSymbol) {
		s.canon |= CanonSpaceSymbol
	}
	return s
}

// Push appends input bytes and returns how many fit in the buffer.
func (s *Session) Push(p []byte) int {
	return s.buf.Push(p)
}

// Write implements io.Writer. A short write returns ErrBufferOverflow.
func (s *Session) Write(p []byte) (int, error) {
	n := s.buf.Push(p)
	if n < len(p) {
		s.logger.Debug("input buffer full", "accepted", n, "dropped", len(p)-n)
		return n, fmt.Errorf("%w: accepted %d of %d bytes", ErrBufferOverflow, n, len(p))
	}
	return n, nil
}

// Poll decodes the next event. It returns StatusAgain instead of guessing
// when the buffered bytes are ambiguous.
func (s *Session) Poll() (Result, error) {
	return s.getKey(false)
}

// Force decodes the next event, resolving ambiguous input as it stands. A lone
// ESC becomes the Escape key.
func (s *Session) Force() (Result, error) {
	return s.getKey(true)
}

func (s *Session) getKey(force bool) (Result, error) {
	if !s.started {
		return Result{Status: StatusError}, ErrSessionStopped
	}
	b := s.buf.Bytes()
	if len(b) == 0 {
		if s.closed {
			return Result{Status: StatusEOF}, nil
		}
		return Result{Status: StatusNone}, nil
	}

	ev, n, st := s.peek(b, force)
	if st == StatusAgain {
		if s.closed {
			// Nothing more is coming.
			return s.getKey(true)
		}
		s.logger.Debug("waiting for more input", "state", s.pendingState(b), "buffered", len(b))
		return Result{Status: StatusAgain, Wait: s.wait}, nil
	}
	if force {
		s.logger.Debug("forced key", "bytes", n)
	}
	s.buf.Consume(n)
	return Result{Status: StatusKey, Event: canonicalize(ev, s.canon)}, nil
}

// AdviseReadable tells the session its source has data. It performs one Read
// into the free buffer space; StatusAgain means bytes arrived and Poll should
// be called.
func (s *Session) AdviseReadable() (Result, error) {
	if !s.started {
		return Result{Status: StatusError}, ErrSessionStopped
	}
	if s.source == nil {
		return Result{Status: StatusError}, ErrNoSource
	}
	if s.buf.Remaining() == 0 {
		return Result{Status: StatusAgain, Wait: s.wait}, nil
	}

	n, err := s.buf.readFrom(s.source)
	if errors.Is(err, io.EOF) {
		s.closed = true
	}
	if n > 0 {
		return Result{Status: StatusAgain, Wait: s.wait}, nil
	}

	switch {
	case err == nil, errors.Is(err, io.EOF):
		return Result{Status: StatusNone}, nil
	case errors.Is(err, syscall.EAGAIN), errors.Is(err, os.ErrDeadlineExceeded):
		return Result{Status: StatusNone}, nil
	case errors.Is(err, syscall.EINTR) && !s.flags.Has(FlagEINTR):
		return Result{Status: StatusNone}, nil
	}
	return Result{Status: StatusError}, fmt.Errorf("failed to read input: %w", err)
}

// BufferSize returns the input buffer capacity.
func (s *Session) BufferSize() int { return s.buf.Cap() }

// SetBufferSize resizes the input buffer, keeping buffered bytes.
func (s *Session) SetBufferSize(n int) error { return s.buf.SetCap(n) }

// BufferRemaining returns the free space in the input buffer.
func (s *Session) BufferRemaining() int { return s.buf.Remaining() }

// Flags returns the session's input flags.
func (s *Session) Flags() Flags { return s.flags }

// SetFlags replaces the input flags. FlagSpaceSymbol also sets or clears
// CanonSpaceSymbol.
func (s *Session) SetFlags(f Flags) {
	s.flags = f
	if f.Has(FlagSpaceSymbol) {
		s.canon |= CanonSpaceSymbol
	} else {
		s.canon &^= CanonSpaceSymbol
	}
}

// CanonFlags returns the flags Canonicalize applies.
func (s *Session) CanonFlags() CanonFlags { return s.canon }

// SetCanonFlags replaces the flags Canonicalize applies.
func (s *Session) SetCanonFlags(f CanonFlags) { s.canon = f }

// WaitTime returns how long an incomplete sequence is held before Force.
func (s *Session) WaitTime() time.Duration { return s.wait }

// SetWaitTime sets how long an incomplete sequence is held.
func (s *Session) SetWaitTime(d time.Duration) { s.wait = d }

// KeyName returns the display name of sym.
func (s *Session) KeyName(sym Sym) string { return s.keyNames.Name(sym) }

// SymFor returns the symbol named exactly name, or SymUnknown.
func (s *Session) SymFor(name string) Sym { return s.keyNames.Sym(name) }

// LookupKeyName finds the longest key name at the front of str.
func (s *Session) LookupKeyName(str string) (Sym, int, bool) {
	return s.keyNames.Lookup(str)
}

// RegisterKeyName names sym, or a newly allocated symbol when sym is
// SymUnknown, and returns the symbol.
func (s *Session) RegisterKeyName(sym Sym, name string) Sym {
	s.keyNames, sym = s.keyNames.With(sym, name)
	return sym
}

// KeyNames returns the session's current key name table.
func (s *Session) KeyNames() *KeyNames { return s.keyNames }

// Canonicalize applies the session's canonicalization flags to ev.
func (s *Session) Canonicalize(ev Event) Event { return canonicalize(ev, s.canon) }

// Compare orders two events after canonicalizing both.
func (s *Session) Compare(a, b Event) int {
	if a != nil {
		a = s.Canonicalize(a)
	}
	if b != nil {
		b = s.Canonicalize(b)
	}
	return Compare(a, b)
}

// MouseProtocol returns the encoding of the last decoded mouse report.
func (s *Session) MouseProtocol() MouseProtocol { return s.mouseProto }

// Start resumes decoding after Stop.
func (s *Session) Start() { s.started = true }

// Stop makes Poll, Force and AdviseReadable fail with ErrSessionStopped.
// Buffered input and settings are kept.
func (s *Session) Stop() { s.started = false }

// IsStarted reports whether the session is between Start and Stop.
func (s *Session) IsStarted() bool { return s.started }
