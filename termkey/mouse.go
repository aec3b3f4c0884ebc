package termkey

// MouseProtocol is the encoding of the last mouse report a session decoded.
type MouseProtocol int

const (
	MouseNone MouseProtocol = iota
	MouseX10                // CSI M followed by three raw bytes
	MouseRXVT               // CSI cb;col;line M
	MouseSGR                // CSI < cb;col;line M or m
)

func (p MouseProtocol) String() string {
	switch p {
	case MouseX10:
		return "X10"
	case MouseRXVT:
		return "RXVT"
	case MouseSGR:
		return "SGR"
	}
	return "None"
}

// decodeMouse unpacks an xterm button byte. Bits 2-4 carry Shift, Alt and
// Ctrl, bit 5 marks motion, and bits 6-7 select the wheel or extra buttons.
func decodeMouse(cb, col, line int) Mouse {
	ev := Mouse{
		Mod:    Modifiers((cb & 0x1c) >> 2),
		Line:   line,
		Column: col,
	}
	drag := cb&0x20 != 0
	code := cb &^ 0x3c

	pressOrDrag := MousePress
	if drag {
		pressOrDrag = MouseDrag
	}

	switch {
	case code >= 0 && code <= 2:
		ev.Action = pressOrDrag
		ev.Button = code + 1
	case code == 3:
		// X10 and rxvt do not say which button went up.
		ev.Action = MouseRelease
	case code >= 64 && code <= 67:
		ev.Action = pressOrDrag
		ev.Button = code - 64 + 4
	case code >= 128 && code <= 131:
		ev.Action = pressOrDrag
		ev.Button = code - 128 + 8
	default:
		ev.Action = MouseUnknown
	}
	return ev
}

// peekX10Mouse decodes the three raw bytes following CSI M.
func (s *Session) peekX10Mouse(rest []byte, force bool) (Event, int, Status) {
	if len(rest) < 3 {
		if !force {
			return nil, 0, StatusAgain
		}
		return UnknownCSI{}, len(rest), StatusKey
	}
	s.mouseProto = MouseX10
	cb := int(rest[0]) - 0x20
	col := int(rest[1]) - 0x20
	line := int(rest[2]) - 0x20
	return decodeMouse(cb, col, line), 3, StatusKey
}
