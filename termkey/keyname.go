package termkey

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sym identifies a symbolic key that has a name but no character.
type Sym int

const (
	SymUnknown Sym = -1
	SymNone    Sym = 0

	// Special names in C0
	SymBackspace Sym = iota - 1
	SymTab
	SymEnter
	SymEscape

	// Special names in G0
	SymSpace
	SymDEL

	// Special keys
	SymUp
	SymDown
	SymLeft
	SymRight
	SymBegin
	SymFind
	SymInsert
	SymDelete
	SymSelect
	SymPageUp
	SymPageDown
	SymHome
	SymEnd

	// Special keys from terminfo
	SymCancel
	SymClear
	SymClose
	SymCommand
	SymCopy
	SymExit
	SymHelp
	SymMark
	SymMessage
	SymMove
	SymOpen
	SymOptions
	SymPrint
	SymRedo
	SymReference
	SymRefresh
	SymReplace
	SymRestart
	SymResume
	SymSave
	SymSuspend
	SymUndo

	// Numeric keypad special keys
	SymKP0
	SymKP1
	SymKP2
	SymKP3
	SymKP4
	SymKP5
	SymKP6
	SymKP7
	SymKP8
	SymKP9
	SymKPEnter
	SymKPPlus
	SymKPMinus
	SymKPMult
	SymKPDiv
	SymKPComma
	SymKPPeriod
	SymKPEquals

	NumSyms
)

const unknownKeyName = "UNKNOWN"

var defaultKeyNames = [NumSyms]string{
	SymNone:      "NONE",
	SymBackspace: "Backspace",
	SymTab:       "Tab",
	SymEnter:     "Enter",
	SymEscape:    "Escape",
	SymSpace:     "Space",
	SymDEL:       "DEL",
	SymUp:        "Up",
	SymDown:      "Down",
	SymLeft:      "Left",
	SymRight:     "Right",
	SymBegin:     "Begin",
	SymFind:      "Find",
	SymInsert:    "Insert",
	SymDelete:    "Delete",
	SymSelect:    "Select",
	SymPageUp:    "PageUp",
	SymPageDown:  "PageDown",
	SymHome:      "Home",
	SymEnd:       "End",
	SymCancel:    "Cancel",
	SymClear:     "Clear",
	SymClose:     "Close",
	SymCommand:   "Command",
	SymCopy:      "Copy",
	SymExit:      "Exit",
	SymHelp:      "Help",
	SymMark:      "Mark",
	SymMessage:   "Message",
	SymMove:      "Move",
	SymOpen:      "Open",
	SymOptions:   "Options",
	SymPrint:     "Print",
	SymRedo:      "Redo",
	SymReference: "Reference",
	SymRefresh:   "Refresh",
	SymReplace:   "Replace",
	SymRestart:   "Restart",
	SymResume:    "Resume",
	SymSave:      "Save",
	SymSuspend:   "Suspend",
	SymUndo:      "Undo",
	SymKP0:       "KP0",
	SymKP1:       "KP1",
	SymKP2:       "KP2",
	SymKP3:       "KP3",
	SymKP4:       "KP4",
	SymKP5:       "KP5",
	SymKP6:       "KP6",
	SymKP7:       "KP7",
	SymKP8:       "KP8",
	SymKP9:       "KP9",
	SymKPEnter:   "KPEnter",
	SymKPPlus:    "KPPlus",
	SymKPMinus:   "KPMinus",
	SymKPMult:    "KPMult",
	SymKPDiv:     "KPDiv",
	SymKPComma:   "KPComma",
	SymKPPeriod:  "KPPeriod",
	SymKPEquals:  "KPEquals",
}

// KeyNames maps symbols to display names and back. A KeyNames value is never
// modified after construction; With returns an updated copy.
type KeyNames struct {
	names []string
}

var stdKeyNames = &KeyNames{names: defaultKeyNames[:]}

// DefaultKeyNames returns the built-in table.
func DefaultKeyNames() *KeyNames {
	return stdKeyNames
}

// Name returns the display name of sym, or "UNKNOWN" for symbols outside the table.
func (k *KeyNames) Name(sym Sym) string {
	if sym < 0 || int(sym) >= len(k.names) || k.names[sym] == "" {
		return unknownKeyName
	}
	return k.names[sym]
}

// Len returns the number of symbols the table covers, SymNone included.
func (k *KeyNames) Len() int { return len(k.names) }

// Sym returns the symbol whose name is exactly name, or SymUnknown.
func (k *KeyNames) Sym(name string) Sym {
	for i, n := range k.names {
		if n != "" && n == name {
			return Sym(i)
		}
	}
	return SymUnknown
}

// Lookup finds the longest name that prefixes s. It returns the symbol and the
// number of bytes of s the name covers.
func (k *KeyNames) Lookup(s string) (Sym, int, bool) {
	return k.lookup(s, false)
}

// lookup matches names against s; with lowerSpace, names are compared in their
// "page up" rendering.
func (k *KeyNames) lookup(s string, lowerSpace bool) (Sym, int, bool) {
	best, bestLen := SymUnknown, 0
	for i, n := range k.names {
		if n == "" || Sym(i) == SymNone {
			continue
		}
		if lowerSpace {
			n = camelToSpaces(n)
		}
		if len(n) > bestLen && strings.HasPrefix(s, n) {
			best, bestLen = Sym(i), len(n)
		}
	}
	if bestLen == 0 {
		return SymUnknown, 0, false
	}
	return best, bestLen, true
}

// With returns a copy of the table where sym is named name. Passing SymUnknown
// allocates a new symbol past the end of the table; the symbol used is returned.
func (k *KeyNames) With(sym Sym, name string) (*KeyNames, Sym) {
	if sym < 0 {
		sym = Sym(len(k.names))
		if sym < NumSyms {
			sym = NumSyms
		}
	}
	size := len(k.names)
	if int(sym) >= size {
		size = int(sym) + 1
	}
	names := make([]string, size)
	copy(names, k.names)
	names[sym] = name
	return &KeyNames{names: names}, sym
}

// camelToSpaces renders "PageUp" as "page up".
func camelToSpaces(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		if unicode.IsUpper(r) && prevLower {
			b.WriteByte(' ')
		}
		prevLower = unicode.IsLower(r)
		b.WriteRune(r)
	}
	return cases.Lower(language.Und).String(b.String())
}
