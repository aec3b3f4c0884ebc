// Package keyboard reads raw terminal input and turns it into termkey events.
// It owns the goroutines, the raw-mode terminal and the ESC timeout that a
// termkey.Session leaves to its caller, and adds bracketed paste and line
// assembly on top.
package keyboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/muesli/cancelreader"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/phroun/termkey/termkey"
)

// Handler handles raw keyboard input, decoding it with a termkey.Session
// and providing both key events and line assembly.
type Handler struct {
	mu sync.Mutex

	// Input source
	inputReader io.Reader                 // Raw input source (any io.Reader)
	reader      cancelreader.CancelReader // Cancellable wrapper, live while running
	group       *errgroup.Group
	done        chan struct{} // Closed once the goroutines exit and cleanup is done
	cancel      context.CancelFunc

	// Decoder; sessMu serializes every call into it
	sessMu  sync.Mutex
	session *termkey.Session
	flags   termkey.Flags
	format  termkey.Format

	// Output channels (plain Go channels)
	Keys  chan termkey.Event // Decoded key events
	Lines chan []byte        // Assembled lines

	// Callbacks (optional, called in addition to channel sends)
	OnKey        func(ev termkey.Event) // Called on each key event
	OnLine       func(line []byte)      // Called on each completed line
	OnPaste      func(content []byte)   // Called on bracketed paste content (complete)
	OnPasteChunk func(chunk PasteChunk) // Called on incremental paste chunks

	// Terminal handling (only used if input is a terminal)
	terminalFd        int         // File descriptor if we're managing terminal mode
	originalTermState *term.State // Original state to restore
	managesTerminal   bool        // True if we put terminal in raw mode

	// State
	running        bool
	inLineReadMode bool // True when line assembly is active

	// Line assembly state - stores raw bytes for proper I/O semantics
	currentLine []byte
	// Track UTF-8 character boundaries for backspace (number of bytes per char)
	charByteLengths []int

	// Bracketed paste state, owned by the processing goroutine
	held             []byte // Tail that may be the start of a paste marker
	inPaste          bool
	pasteBuffer      []byte // Content not yet emitted as a chunk
	fullPasteContent []byte // Accumulator for full paste content (for OnPaste callback)
	pasteChunkSize   int

	// macOS Option key decoding
	decodeMacOSOption bool

	// Echo output (where to echo typed characters)
	echoWriter io.Writer

	debugFn func(string)
	logger  *slog.Logger
}

// Options configures the Handler
type Options struct {
	// InputReader is the source of raw bytes (required)
	InputReader io.Reader

	// EchoWriter is where to echo typed characters during line mode (optional)
	EchoWriter io.Writer

	// KeyBufferSize is the size of the Keys channel buffer (default: 64)
	KeyBufferSize int

	// LineBufferSize is the size of the Lines channel buffer (default: 16)
	LineBufferSize int

	// PasteChunkSize is the size of chunks emitted during bracketed paste (default: 1024)
	// Only used when OnPasteChunk callback is set
	PasteChunkSize int

	// DecodeMacOSOption enables decoding of macOS Option+key Unicode characters
	// to Alt+key (e.g., ∂ → M-d, Ø → M-O). Default: true on Darwin, false otherwise
	DecodeMacOSOption *bool

	// Flags are the decoder's input flags. FlagNoTermios leaves the terminal
	// mode alone, FlagCtrlC delivers Ctrl-C as a key instead of SIGINT and
	// FlagEINTR ends reading on an interrupted read.
	Flags termkey.Flags

	// CanonFlags are the decoder's canonicalization flags
	CanonFlags termkey.CanonFlags

	// WaitTime is how long to wait for the rest of an escape sequence
	// (default: termkey.DefaultWaitTime)
	WaitTime time.Duration

	// BufferSize is the decoder's input buffer size (default: termkey.DefaultBufferSize)
	BufferSize int

	// KeyNames is the decoder's key name table (default: termkey.DefaultKeyNames)
	KeyNames *termkey.KeyNames

	// Format is used for debug output and Handler.Format (default: termkey.FormatAltIsMeta)
	Format *termkey.Format

	// DebugFn is called with debug messages (optional)
	DebugFn func(string)

	// Logger receives the same debug messages as structured records (optional)
	Logger *slog.Logger

	// ManageTerminal controls whether to put the input in raw mode.
	// Only applies if InputReader is a terminal.
	// Default: true
	ManageTerminal *bool
}

// New creates a new keyboard Handler.
func New(opts Options) *Handler {
	keyBufSize := opts.KeyBufferSize
	if keyBufSize <= 0 {
		keyBufSize = 64
	}
	lineBufSize := opts.LineBufferSize
	if lineBufSize <= 0 {
		lineBufSize = 16
	}
	pasteChunkSize := opts.PasteChunkSize
	if pasteChunkSize <= 0 {
		pasteChunkSize = DefaultPasteChunkSize
	}

	manageTerminal := !opts.Flags.Has(termkey.FlagNoTermios)
	if opts.ManageTerminal != nil {
		manageTerminal = manageTerminal && *opts.ManageTerminal
	}

	// Default to true on Darwin (macOS), false otherwise
	decodeMacOSOption := runtime.GOOS == "darwin"
	if opts.DecodeMacOSOption != nil {
		decodeMacOSOption = *opts.DecodeMacOSOption
	}

	format := termkey.FormatAltIsMeta
	if opts.Format != nil {
		format = *opts.Format
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sessionOpts := []termkey.Option{
		termkey.WithFlags(opts.Flags),
		termkey.WithCanonFlags(opts.CanonFlags),
		termkey.WithLogger(logger),
	}
	if opts.WaitTime > 0 {
		sessionOpts = append(sessionOpts, termkey.WithWaitTime(opts.WaitTime))
	}
	if opts.BufferSize > 0 {
		sessionOpts = append(sessionOpts, termkey.WithBufferSize(opts.BufferSize))
	}
	if opts.KeyNames != nil {
		sessionOpts = append(sessionOpts, termkey.WithKeyNames(opts.KeyNames))
	}

	h := &Handler{
		inputReader:       opts.InputReader,
		session:           termkey.New(sessionOpts...),
		flags:             opts.Flags,
		format:            format,
		Keys:              make(chan termkey.Event, keyBufSize),
		Lines:             make(chan []byte, lineBufSize),
		echoWriter:        opts.EchoWriter,
		debugFn:           opts.DebugFn,
		logger:            logger,
		terminalFd:        -1,
		pasteChunkSize:    pasteChunkSize,
		decodeMacOSOption: decodeMacOSOption,
	}

	// Check if input is a terminal file descriptor
	if manageTerminal {
		if f, ok := opts.InputReader.(interface{ Fd() uintptr }); ok {
			fd := int(f.Fd())
			if term.IsTerminal(fd) {
				h.terminalFd = fd
				h.managesTerminal = true
			}
		}
	}

	return h
}

// Start begins reading from input and processing keys.
func (h *Handler) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return fmt.Errorf("handler already running")
	}
	if h.inputReader == nil {
		return fmt.Errorf("handler has no input reader")
	}

	// Put terminal in raw mode only if we're managing it
	if h.managesTerminal {
		state, err := term.MakeRaw(h.terminalFd)
		if err != nil {
			return fmt.Errorf("failed to enable raw mode: %w", err)
		}
		h.originalTermState = state
		if !h.flags.Has(termkey.FlagCtrlC) {
			if err := enableSignals(h.terminalFd); err != nil {
				h.debug(fmt.Sprintf("Failed to keep Ctrl-C as SIGINT: %v", err))
			}
		}
		h.debug("Terminal set to raw mode")
	}

	reader, err := cancelreader.NewReader(h.inputReader)
	if err != nil {
		h.restoreLocked()
		return fmt.Errorf("failed to create input reader: %w", err)
	}
	h.reader = reader
	rawBytes := make(chan []byte, 64)

	h.sessMu.Lock()
	h.session.Start()
	h.sessMu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	h.group, h.cancel = g, cancel
	h.running = true

	// Start the read and processing goroutines
	g.Go(func() error { return h.readLoop(ctx, reader, rawBytes) })
	g.Go(func() error { return h.processLoop(ctx, rawBytes) })

	done := make(chan struct{})
	h.done = done
	go h.supervise(g, done)

	h.debug("Handler started")
	return nil
}

// Stop stops reading and restores terminal state.
func (h *Handler) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		return nil
	}

	// Signal stop
	h.running = false
	h.reader.Cancel()
	h.cancel()

	h.sessMu.Lock()
	h.session.Stop()
	h.sessMu.Unlock()

	if err := h.restoreLocked(); err != nil {
		return err
	}

	h.debug("Handler stopped")
	return nil
}

// Wait blocks until the reading and processing goroutines have exited, either
// after Stop or when the input reaches EOF, and returns the first read error.
// A reader that is not a file cannot be interrupted, so Wait may not return
// until its pending Read does.
func (h *Handler) Wait() error {
	h.mu.Lock()
	g, done := h.group, h.done
	h.mu.Unlock()
	if g == nil {
		return nil
	}
	<-done
	return g.Wait()
}

// supervise waits for the goroutines of one run. When they exit on their own
// (EOF or a read error) it does what Stop would, so Start can be called again.
func (h *Handler) supervise(g *errgroup.Group, done chan struct{}) {
	defer close(done)
	g.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.group != g || !h.running {
		return
	}
	h.running = false
	h.cancel()

	h.sessMu.Lock()
	h.session.Stop()
	h.sessMu.Unlock()

	if err := h.restoreLocked(); err != nil {
		h.debug(err.Error())
	}
	h.debug("Handler stopped, input ended")
}

// restoreLocked puts the terminal back the way Start found it.
func (h *Handler) restoreLocked() error {
	if !h.managesTerminal || h.originalTermState == nil {
		return nil
	}
	if err := term.Restore(h.terminalFd, h.originalTermState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	h.originalTermState = nil
	h.debug("Terminal restored to original mode")
	return nil
}

// SetLineMode enables or disables line assembly mode.
// When enabled, keys go to line assembly and completed lines are sent to Lines channel.
// When disabled, all keys go directly to Keys channel.
func (h *Handler) SetLineMode(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inLineReadMode = enabled
	if enabled {
		h.currentLine = nil
		h.charByteLengths = nil
	}
}

// IsLineMode returns true if line assembly mode is active.
func (h *Handler) IsLineMode() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inLineReadMode
}

// SetEchoWriter sets the writer for echoing typed characters.
func (h *Handler) SetEchoWriter(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.echoWriter = w
}

// IsRunning returns true if the handler is currently running.
func (h *Handler) IsRunning() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// ManagesTerminal returns true if this handler is managing terminal raw mode.
func (h *Handler) ManagesTerminal() bool {
	return h.managesTerminal
}

// SetDecodeMacOSOption enables or disables decoding of macOS Option+key
// Unicode characters to Alt+key (e.g., ∂ → M-d).
func (h *Handler) SetDecodeMacOSOption(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.decodeMacOSOption = enabled
}

// DecodeMacOSOption returns true if macOS Option character decoding is enabled.
func (h *Handler) DecodeMacOSOption() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.decodeMacOSOption
}

// Format renders ev in the handler's key format.
func (h *Handler) Format(ev termkey.Event) string {
	h.sessMu.Lock()
	defer h.sessMu.Unlock()
	return h.session.Format(ev, h.format)
}

// RegisterKeyName names a key symbol for Format, allocating a new symbol when
// sym is termkey.SymUnknown.
func (h *Handler) RegisterKeyName(sym termkey.Sym, name string) termkey.Sym {
	h.sessMu.Lock()
	defer h.sessMu.Unlock()
	return h.session.RegisterKeyName(sym, name)
}

// readLoop continuously reads raw bytes from input
func (h *Handler) readLoop(ctx context.Context, reader cancelreader.CancelReader, out chan<- []byte) error {
	defer close(out)
	defer reader.Close()

	buf := make([]byte, 256)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			// Make a copy to send
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case out <- data:
			case <-ctx.Done():
				return nil
			}
		}
		if err == nil {
			continue
		}
		switch {
		case errors.Is(err, cancelreader.ErrCanceled), errors.Is(err, io.EOF):
			h.debug("Input closed")
			return nil
		case errors.Is(err, syscall.EINTR) && !h.flags.Has(termkey.FlagEINTR):
			continue
		}
		h.debug(fmt.Sprintf("Read error: %v", err))
		return fmt.Errorf("failed to read input: %w", err)
	}
}

// processLoop feeds raw bytes to the session and emits decoded keys. The
// timer runs while the session holds an ambiguous prefix; when it fires the
// prefix is forced.
func (h *Handler) processLoop(ctx context.Context, in <-chan []byte) error {
	escTimeout := time.NewTimer(time.Hour)
	escTimeout.Stop()
	defer escTimeout.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case data, ok := <-in:
			if !ok {
				// Input ended; nothing will complete a pending sequence.
				h.flushHeld()
				h.drain(true)
				return nil
			}
			escTimeout.Stop()
			h.feed(data)
			wait := h.drain(false)
			if wait == 0 && len(h.held) > 0 && !h.inPaste {
				wait = h.waitTime()
			}
			if wait > 0 {
				escTimeout.Reset(wait)
			}

		case <-escTimeout.C:
			h.debug("Escape timeout, forcing pending input")
			h.flushHeld()
			h.drain(true)
		}
	}
}

// push writes input to the session, decoding keys to make room when the
// buffer fills.
func (h *Handler) push(p []byte) {
	for len(p) > 0 {
		h.sessMu.Lock()
		n, err := h.session.Write(p)
		h.sessMu.Unlock()
		p = p[n:]
		if err == nil {
			return
		}
		h.drain(false)
		if h.bufferRemaining() == 0 {
			// One sequence fills the whole buffer.
			h.drain(true)
		}
		if h.bufferRemaining() == 0 {
			h.debug(fmt.Sprintf("Decoder stalled, dropping %d bytes", len(p)))
			return
		}
	}
}

// drain polls the session until it runs out of keys and emits them. With force
// set, pending prefixes are resolved as they stand. It returns the wait hint
// when the session is holding an incomplete sequence.
func (h *Handler) drain(force bool) time.Duration {
	var events []termkey.Event
	var wait time.Duration

	h.sessMu.Lock()
	for {
		var res termkey.Result
		var err error
		if force {
			res, err = h.session.Force()
		} else {
			res, err = h.session.Poll()
		}
		if err != nil {
			h.logger.Debug("decode stopped", "error", err)
			break
		}
		if res.Status == termkey.StatusKey {
			events = append(events, res.Event)
			continue
		}
		if res.Status == termkey.StatusAgain {
			wait = res.Wait
		}
		break
	}
	h.sessMu.Unlock()

	for _, ev := range events {
		h.emitKey(ev)
	}
	return wait
}

func (h *Handler) waitTime() time.Duration {
	h.sessMu.Lock()
	defer h.sessMu.Unlock()
	return h.session.WaitTime()
}

func (h *Handler) bufferRemaining() int {
	h.sessMu.Lock()
	defer h.sessMu.Unlock()
	return h.session.BufferRemaining()
}

// emitKey sends a key event to either the Keys channel or line assembly
func (h *Handler) emitKey(ev termkey.Event) {
	h.mu.Lock()
	decodeMacOS := h.decodeMacOSOption
	h.mu.Unlock()

	if decodeMacOS {
		ev = decodeMacOSOption(ev)
	}

	h.debug(fmt.Sprintf("Key: %s", h.Format(ev)))

	// Call callback if set
	if h.OnKey != nil {
		h.OnKey(ev)
	}

	// Check if we're in line read mode
	h.mu.Lock()
	inLineMode := h.inLineReadMode
	h.mu.Unlock()

	if inLineMode {
		// In line read mode: keys go to line assembly
		h.handleLineAssembly(ev)
		return
	}

	// Normal mode: keys go to Keys channel
	select {
	case h.Keys <- ev:
	default:
		// Buffer full - drop oldest key to make room
		select {
		case <-h.Keys:
		default:
		}
		select {
		case h.Keys <- ev:
		default:
			// Still can't send, just drop this key
		}
	}
}

func (h *Handler) debug(msg string) {
	if h.debugFn != nil {
		h.debugFn(msg)
	}
	h.logger.Debug(msg)
}
