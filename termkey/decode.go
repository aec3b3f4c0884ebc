package termkey

// recognizerState names where the recognizer stopped when it asks for more
// input.
type recognizerState int

const (
	stateIdle recognizerState = iota
	stateSawEscape
	stateInCSI
	stateInSS3
)

func (st recognizerState) String() string {
	switch st {
	case stateSawEscape:
		return "SawEscape"
	case stateInCSI:
		return "InCSI"
	case stateInSS3:
		return "InSS3"
	}
	return "Idle"
}

// pendingState reports which state an incomplete buffer leaves the
// recognizer in.
func (s *Session) pendingState(b []byte) recognizerState {
	if len(b) == 0 {
		return stateIdle
	}
	raw := s.flags.Has(FlagRaw)
	switch {
	case b[0] == 0x1b && len(b) == 1:
		return stateSawEscape
	case b[0] == 0x1b && b[1] == '[', raw && b[0] == 0x9b:
		return stateInCSI
	case b[0] == 0x1b && b[1] == 'O', raw && b[0] == 0x8f:
		return stateInSS3
	case b[0] == 0x1b:
		return stateSawEscape
	}
	return stateIdle
}

// peek decodes one event from the front of b without consuming it. It returns
// the event and its length in bytes, or StatusAgain when b is a strict prefix
// of a longer sequence. With force set, StatusAgain is never returned.
func (s *Session) peek(b []byte, force bool) (Event, int, Status) {
	if len(b) == 0 {
		return nil, 0, StatusNone
	}
	c := b[0]
	raw := s.flags.Has(FlagRaw)

	switch {
	case c == 0x1b:
		return s.peekEscape(b, force)
	case c < 0x80:
		return s.codepointEvent(rune(c), 0), 1, StatusKey
	case raw && c == 0x9b:
		return s.peekCSI(b, 1, force)
	case raw && c == 0x8f:
		return s.peekSS3(b, 1, force)
	case raw && c < 0xa0:
		return c1Event(c), 1, StatusKey
	case raw:
		return unicodeEvent(rune(c), 0), 1, StatusKey
	}

	r, n, again := decodeUTF8(b, force)
	if again {
		return nil, 0, StatusAgain
	}
	return s.codepointEvent(r, 0), n, StatusKey
}

// peekEscape handles a buffer starting with ESC.
func (s *Session) peekEscape(b []byte, force bool) (Event, int, Status) {
	if len(b) == 1 {
		if !force {
			return nil, 0, StatusAgain
		}
		return s.codepointEvent(0x1b, 0), 1, StatusKey
	}

	switch b[1] {
	case '[':
		return s.peekCSI(b, 2, force)
	case 'O':
		return s.peekSS3(b, 2, force)
	}

	// ESC prefixes any other key with Alt.
	ev, n, st := s.peek(b[1:], force)
	if st != StatusKey {
		return nil, 0, st
	}
	return addModifiers(ev, ModAlt), n + 1, StatusKey
}

// codepointEvent maps a decoded codepoint to an event, naming the C0 controls
// and DEL unless FlagNoInterpret is set.
func (s *Session) codepointEvent(cp rune, mod Modifiers) Event {
	interpret := !s.flags.Has(FlagNoInterpret)

	switch {
	case cp == 0:
		return KeySym{Sym: SymSpace, Mod: mod | ModCtrl}
	case cp < 0x20:
		if interpret {
			switch cp {
			case 0x08:
				return KeySym{Sym: SymBackspace, Mod: mod}
			case 0x09:
				return KeySym{Sym: SymTab, Mod: mod}
			case 0x0d:
				return KeySym{Sym: SymEnter, Mod: mod}
			case 0x1b:
				return KeySym{Sym: SymEscape, Mod: mod}
			}
		}
		r := cp + 0x40
		if r >= 'A' && r <= 'Z' {
			r += 0x20
		}
		return unicodeEvent(r, mod|ModCtrl)
	case cp == 0x7f && interpret:
		return KeySym{Sym: SymDEL, Mod: mod}
	case cp >= 0x80 && cp < 0xa0:
		return addModifiers(c1Event(byte(cp)), mod)
	}
	return unicodeEvent(cp, mod)
}

// c1Event decodes an 8-bit C1 control byte as the key its 7-bit ESC form
// would name.
func c1Event(c byte) Event {
	return unicodeEvent(rune(c-0x40), ModCtrl|ModAlt)
}

// addModifiers returns ev with mod added. Events without modifiers are
// returned unchanged.
func addModifiers(ev Event, mod Modifiers) Event {
	switch e := ev.(type) {
	case Unicode:
		e.Mod |= mod
		return e
	case Function:
		e.Mod |= mod
		return e
	case KeySym:
		e.Mod |= mod
		return e
	case Mouse:
		e.Mod |= mod
		return e
	}
	return ev
}
