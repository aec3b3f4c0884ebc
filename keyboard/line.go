package keyboard

import "github.com/phroun/termkey/termkey"

// handleLineAssembly processes a key for line assembly
func (h *Handler) handleLineAssembly(ev termkey.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.inLineReadMode {
		return
	}

	switch {
	case isKeySym(ev, termkey.SymEnter):
		h.submitLineLocked()

	case isKeySym(ev, termkey.SymBackspace), isKeySym(ev, termkey.SymDEL):
		if len(h.charByteLengths) > 0 {
			lastCharLen := h.charByteLengths[len(h.charByteLengths)-1]
			h.currentLine = h.currentLine[:len(h.currentLine)-lastCharLen]
			h.charByteLengths = h.charByteLengths[:len(h.charByteLengths)-1]
			h.echoLocked("\b \b")
		}

	case isCtrl(ev, 'u'):
		// Clear line
		for range h.charByteLengths {
			h.echoLocked("\b \b")
		}
		h.currentLine = nil
		h.charByteLengths = nil

	case isCtrl(ev, 'c'):
		// Interrupt - emit empty line
		h.echoLocked("^C\r\n")
		h.currentLine = nil
		h.charByteLengths = nil
		h.mu.Unlock()

		select {
		case h.Lines <- []byte{}:
		default:
		}

		if h.OnLine != nil {
			h.OnLine([]byte{})
		}

		h.mu.Lock() // Re-acquire for deferred unlock

	default:
		if text, ok := lineText(ev); ok {
			h.currentLine = append(h.currentLine, text...)
			h.charByteLengths = append(h.charByteLengths, len(text))
			h.echoLocked(text)
		}
	}
}

// submitLineLocked emits the completed line as raw bytes. It is called with
// h.mu held and releases it while delivering the line.
func (h *Handler) submitLineLocked() {
	lineBytes := make([]byte, len(h.currentLine))
	copy(lineBytes, h.currentLine)
	h.currentLine = nil
	h.charByteLengths = nil
	echoWriter := h.echoWriter
	h.mu.Unlock()

	// Send to Lines channel, dropping the oldest line when full
	select {
	case h.Lines <- lineBytes:
	default:
		select {
		case <-h.Lines:
		default:
		}
		select {
		case h.Lines <- lineBytes:
		default:
		}
	}

	if h.OnLine != nil {
		h.OnLine(lineBytes)
	}

	// Echo newline
	if echoWriter != nil {
		echoWriter.Write([]byte("\r\n"))
	}

	h.mu.Lock() // Re-acquire for the caller's deferred unlock
}

// echoLocked writes to echo output - call only while holding h.mu
func (h *Handler) echoLocked(s string) {
	if h.echoWriter != nil {
		h.echoWriter.Write([]byte(s))
	}
}

func isKeySym(ev termkey.Event, sym termkey.Sym) bool {
	k, ok := ev.(termkey.KeySym)
	return ok && k.Sym == sym && k.Mod == 0
}

func isCtrl(ev termkey.Event, r rune) bool {
	u, ok := ev.(termkey.Unicode)
	return ok && u.Rune == r && u.Mod == termkey.ModCtrl
}

// lineText returns the text a key adds to the line being assembled.
func lineText(ev termkey.Event) (string, bool) {
	switch e := ev.(type) {
	case termkey.Unicode:
		if e.Mod.Without(termkey.ModShift) != 0 || e.Rune < 32 || e.Rune == 0x7f {
			return "", false
		}
		return string(e.Rune), true
	case termkey.KeySym:
		if e.Sym == termkey.SymSpace && e.Mod.Without(termkey.ModShift) == 0 {
			return " ", true
		}
	}
	return "", false
}
