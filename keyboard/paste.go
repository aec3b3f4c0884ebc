package keyboard

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/phroun/termkey/termkey"
)

// PasteChunk represents an incremental chunk of bracketed paste content
type PasteChunk struct {
	Content []byte // The chunk content
	IsFinal bool   // True if this is the final chunk
}

// Bracketed paste sequences
var (
	bracketedPasteStart = []byte("\x1b[200~")
	bracketedPasteEnd   = []byte("\x1b[201~")
)

// DefaultPasteChunkSize is the default size for paste chunks (1KB)
const DefaultPasteChunkSize = 1024

// feed splits raw input into paste content and bytes for the decoder. A tail
// that could be the start of a paste marker is held until more input arrives
// or the escape timeout flushes it.
func (h *Handler) feed(data []byte) {
	if len(h.held) > 0 {
		data = append(h.held, data...)
		h.held = nil
	}

	for len(data) > 0 {
		if h.inPaste {
			i := bytes.Index(data, bracketedPasteEnd)
			if i < 0 {
				keep := partialSuffix(data, bracketedPasteEnd)
				h.appendPaste(data[:len(data)-keep])
				h.held = bytes.Clone(data[len(data)-keep:])
				return
			}
			h.appendPaste(data[:i])
			h.finishPaste()
			data = data[i+len(bracketedPasteEnd):]
			continue
		}

		i := bytes.Index(data, bracketedPasteStart)
		if i < 0 {
			keep := partialSuffix(data, bracketedPasteStart)
			h.push(data[:len(data)-keep])
			h.held = bytes.Clone(data[len(data)-keep:])
			return
		}
		// Keys typed before the paste are delivered first.
		h.push(data[:i])
		h.drain(false)
		h.debug("Bracketed paste start detected")
		h.inPaste = true
		h.pasteBuffer = nil
		h.fullPasteContent = nil
		data = data[i+len(bracketedPasteStart):]
	}
}

// flushHeld gives held-back bytes to the decoder once no paste marker can
// complete them.
func (h *Handler) flushHeld() {
	if len(h.held) == 0 || h.inPaste {
		return
	}
	held := h.held
	h.held = nil
	h.push(held)
}

// partialSuffix returns the length of the longest proper prefix of marker
// that data ends with.
func partialSuffix(data, marker []byte) int {
	n := len(marker) - 1
	if n > len(data) {
		n = len(data)
	}
	for ; n > 0; n-- {
		if bytes.HasSuffix(data, marker[:n]) {
			return n
		}
	}
	return 0
}

// appendPaste accumulates paste content, emitting full chunks as they fill.
func (h *Handler) appendPaste(p []byte) {
	if len(p) == 0 {
		return
	}
	h.pasteBuffer = append(h.pasteBuffer, p...)
	h.fullPasteContent = append(h.fullPasteContent, p...)

	for h.OnPasteChunk != nil && len(h.pasteBuffer) >= h.pasteChunkSize {
		chunk := make([]byte, h.pasteChunkSize)
		copy(chunk, h.pasteBuffer[:h.pasteChunkSize])
		h.pasteBuffer = h.pasteBuffer[h.pasteChunkSize:]
		h.OnPasteChunk(PasteChunk{Content: chunk, IsFinal: false})
	}
}

// finishPaste ends the paste and delivers its content.
func (h *Handler) finishPaste() {
	content := h.fullPasteContent
	h.debug(fmt.Sprintf("Paste end, %d bytes", len(content)))
	if h.OnPasteChunk != nil {
		h.OnPasteChunk(PasteChunk{Content: h.pasteBuffer, IsFinal: true})
	}
	h.inPaste = false
	h.pasteBuffer = nil
	h.fullPasteContent = nil
	h.emitPaste(content)
}

// emitPaste handles bracketed paste content
func (h *Handler) emitPaste(content []byte) {
	// Call callback if set
	if h.OnPaste != nil {
		h.OnPaste(content)
	}

	h.mu.Lock()
	inLineMode := h.inLineReadMode
	h.mu.Unlock()

	if inLineMode {
		// In line read mode: add pasted content directly to line buffer
		h.handlePasteLineAssembly(content)
		return
	}

	// Normal mode: decode the content on its own session so nothing in it is
	// taken as the start of an escape sequence from the live input.
	h.sessMu.Lock()
	opts := []termkey.Option{
		termkey.WithFlags(h.session.Flags()),
		termkey.WithCanonFlags(h.session.CanonFlags()),
		termkey.WithKeyNames(h.session.KeyNames()),
		termkey.WithBufferSize(max(len(content), 1)),
	}
	h.sessMu.Unlock()

	ps := termkey.New(opts...)
	ps.Push(content)
	for {
		res, err := ps.Force()
		if err != nil || res.Status != termkey.StatusKey {
			return
		}
		h.emitKey(res.Event)
	}
}

// handlePasteLineAssembly adds pasted content to the line buffer
func (h *Handler) handlePasteLineAssembly(content []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.inLineReadMode {
		return
	}

	// Process pasted content character by character, handling special characters
	for len(content) > 0 {
		r, size := utf8.DecodeRune(content)
		if r == utf8.RuneError && size == 1 {
			content = content[1:]
			continue
		}

		if r == '\r' || r == '\n' {
			// Newline in paste - submit the current line, skip the rest
			h.submitLineLocked()
			return
		}
		if r >= 32 || r == '\t' {
			h.currentLine = append(h.currentLine, content[:size]...)
			h.charByteLengths = append(h.charByteLengths, size)
			h.echoLocked(string(r))
		}
		content = content[size:]
	}
}
