package termkey

import "strings"

// Modifiers is the set of modifier keys held with a key.
// The bit values match the xterm encoding of "modifier parameter - 1".
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

// Union returns the modifiers present in either set.
func (m Modifiers) Union(o Modifiers) Modifiers { return m | o }

// Intersect returns the modifiers present in both sets.
func (m Modifiers) Intersect(o Modifiers) Modifiers { return m & o }

// Without returns m with every modifier of o removed.
func (m Modifiers) Without(o Modifiers) Modifiers { return m &^ o }

// Has reports whether any modifier of o is held.
func (m Modifiers) Has(o Modifiers) bool { return m&o != 0 }

// Contains reports whether every modifier of o is held.
func (m Modifiers) Contains(o Modifiers) bool { return m&o == o }

// IsEmpty reports whether no modifier is held.
func (m Modifiers) IsEmpty() bool { return m == 0 }

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "|")
}

// Flags controls how input bytes are interpreted.
type Flags uint16

const (
	FlagNoInterpret Flags = 1 << iota // Do not interpret C0/DEL codes
	FlagConvertKP                     // Convert keypad codes to regular keypresses
	FlagRaw                           // Input is raw bytes, not UTF-8
	FlagUTF8                          // Input is definitely UTF-8
	FlagNoTermios                     // Collaborator must not touch termios
	FlagSpaceSymbol                   // Sets CanonSpaceSymbol
	FlagCtrlC                         // Collaborator reads Ctrl-C as a key, no SIGINT
	FlagEINTR                         // Collaborator reports interrupted reads as errors
)

// Union returns the flags set in either.
func (f Flags) Union(o Flags) Flags { return f | o }

// Intersect returns the flags set in both.
func (f Flags) Intersect(o Flags) Flags { return f & o }

// Without returns f with every flag of o cleared.
func (f Flags) Without(o Flags) Flags { return f &^ o }

// Has reports whether any flag of o is set.
func (f Flags) Has(o Flags) bool { return f&o != 0 }

// CanonFlags selects canonicalization rules applied to every decoded event.
type CanonFlags uint8

const (
	CanonSpaceSymbol CanonFlags = 1 << iota // Space is symbolic rather than Unicode
	CanonDelBS                              // DEL is converted to Backspace
)

// Union returns the flags set in either.
func (c CanonFlags) Union(o CanonFlags) CanonFlags { return c | o }

// Intersect returns the flags set in both.
func (c CanonFlags) Intersect(o CanonFlags) CanonFlags { return c & o }

// Without returns c with every flag of o cleared.
func (c CanonFlags) Without(o CanonFlags) CanonFlags { return c &^ o }

// Has reports whether any flag of o is set.
func (c CanonFlags) Has(o CanonFlags) bool { return c&o != 0 }

// Format controls how events are rendered to and parsed from strings.
type Format uint16

const (
	FormatLongMod     Format = 1 << 0 // Shift-... instead of S-...
	FormatCaretCtrl   Format = 1 << 1 // ^X instead of C-X
	FormatAltIsMeta   Format = 1 << 2 // Meta- or M- instead of Alt- or A-
	FormatWrapBracket Format = 1 << 3 // Wrap special keys in brackets like <Escape>
	FormatSpaceMod    Format = 1 << 4 // M Foo instead of M-Foo
	FormatLowerMod    Format = 1 << 5 // meta or m instead of Meta or M
	FormatLowerSpace  Format = 1 << 6 // page down instead of PageDown
	FormatMousePos    Format = 1 << 8 // Include mouse position if relevant; @ (col,line)

	FormatVim   = FormatAltIsMeta | FormatWrapBracket
	FormatURWID = FormatLongMod | FormatAltIsMeta | FormatLowerMod | FormatSpaceMod | FormatLowerSpace
)

// Union returns the flags set in either.
func (f Format) Union(o Format) Format { return f | o }

// Intersect returns the flags set in both.
func (f Format) Intersect(o Format) Format { return f & o }

// Without returns f with every flag of o cleared.
func (f Format) Without(o Format) Format { return f &^ o }

// Has reports whether any flag of o is set.
func (f Format) Has(o Format) bool { return f&o != 0 }
