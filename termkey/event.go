package termkey

import "cmp"

// Kind identifies which Event variant a value holds. Kinds are ordered; events
// of a lower Kind sort first.
type Kind int

const (
	KindUnknownCSI Kind = iota - 1
	KindUnicode
	KindFunction
	KindKeySym
	KindMouse
	KindPosition
	KindModeReport
)

func (k Kind) String() string {
	switch k {
	case KindUnknownCSI:
		return "UnknownCSI"
	case KindUnicode:
		return "Unicode"
	case KindFunction:
		return "Function"
	case KindKeySym:
		return "KeySym"
	case KindMouse:
		return "Mouse"
	case KindPosition:
		return "Position"
	case KindModeReport:
		return "ModeReport"
	}
	return "Invalid"
}

// Event is a single decoded input event. It is one of Unicode, Function,
// KeySym, Mouse, Position, ModeReport or UnknownCSI.
type Event interface {
	Kind() Kind
	Modifiers() Modifiers
	isEvent()
}

// Unicode is a character key. UTF8 holds the encoding of Rune as produced by
// the decoder.
type Unicode struct {
	Rune rune
	Mod  Modifiers
	UTF8 string
}

// Function is a numbered function key, F1 and up.
type Function struct {
	Number int
	Mod    Modifiers
}

// KeySym is a named key without a character, such as Up or PageDown.
type KeySym struct {
	Sym Sym
	Mod Modifiers
}

// MouseAction is what happened to a mouse button.
type MouseAction int

const (
	MouseUnknown MouseAction = iota
	MousePress
	MouseDrag
	MouseRelease
)

func (a MouseAction) String() string {
	switch a {
	case MousePress:
		return "Press"
	case MouseDrag:
		return "Drag"
	case MouseRelease:
		return "Release"
	}
	return "Unknown"
}

// Mouse is a mouse report. Button is 1-based (0 when the protocol does not say
// which button was released); Line and Column are 1-based.
type Mouse struct {
	Action MouseAction
	Mod    Modifiers
	Button int
	Line   int
	Column int
}

// Position is a cursor position report.
type Position struct {
	Line   int
	Column int
}

// ModeReport is a DECRPM answer. Initial is '?' for DEC private modes and 0
// for ANSI modes.
type ModeReport struct {
	Initial byte
	Mode    int
	Value   int
}

// UnknownCSI is a well-formed control sequence that no decoder recognized.
type UnknownCSI struct{}

func (Unicode) Kind() Kind    { return KindUnicode }
func (Function) Kind() Kind   { return KindFunction }
func (KeySym) Kind() Kind     { return KindKeySym }
func (Mouse) Kind() Kind      { return KindMouse }
func (Position) Kind() Kind   { return KindPosition }
func (ModeReport) Kind() Kind { return KindModeReport }
func (UnknownCSI) Kind() Kind { return KindUnknownCSI }

func (e Unicode) Modifiers() Modifiers  { return e.Mod }
func (e Function) Modifiers() Modifiers { return e.Mod }
func (e KeySym) Modifiers() Modifiers   { return e.Mod }
func (e Mouse) Modifiers() Modifiers    { return e.Mod }
func (Position) Modifiers() Modifiers   { return 0 }
func (ModeReport) Modifiers() Modifiers { return 0 }
func (UnknownCSI) Modifiers() Modifiers { return 0 }

func (Unicode) isEvent()    {}
func (Function) isEvent()   {}
func (KeySym) isEvent()     {}
func (Mouse) isEvent()      {}
func (Position) isEvent()   {}
func (ModeReport) isEvent() {}
func (UnknownCSI) isEvent() {}

// Compare orders two events: by Kind, then by the variant's payload, then by
// modifiers. It returns -1, 0 or +1. A nil event sorts before everything.
func Compare(a, b Event) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	var c int
	switch x := a.(type) {
	case Unicode:
		c = cmp.Compare(x.Rune, b.(Unicode).Rune)
	case Function:
		c = cmp.Compare(x.Number, b.(Function).Number)
	case KeySym:
		c = cmp.Compare(x.Sym, b.(KeySym).Sym)
	case Mouse:
		y := b.(Mouse)
		c = cmp.Or(
			cmp.Compare(x.Action, y.Action),
			cmp.Compare(x.Button, y.Button),
			cmp.Compare(x.Line, y.Line),
			cmp.Compare(x.Column, y.Column),
		)
	case Position:
		y := b.(Position)
		c = cmp.Or(cmp.Compare(x.Line, y.Line), cmp.Compare(x.Column, y.Column))
	case ModeReport:
		y := b.(ModeReport)
		c = cmp.Or(
			cmp.Compare(x.Initial, y.Initial),
			cmp.Compare(x.Mode, y.Mode),
			cmp.Compare(x.Value, y.Value),
		)
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.Modifiers(), b.Modifiers())
}

// unicodeEvent builds a Unicode event with its UTF8 field filled in.
func unicodeEvent(r rune, mod Modifiers) Unicode {
	return Unicode{Rune: r, Mod: mod, UTF8: string(r)}
}
