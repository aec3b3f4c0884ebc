package termkey

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type modNameSet struct {
	shift, alt, ctrl string
}

// modNames is indexed by the LongMod, AltIsMeta and LowerMod bits of a Format.
var modNames = func() [8]modNameSet {
	base := [4]modNameSet{
		{"S", "A", "C"},
		{"Shift", "Alt", "Ctrl"},
		{"S", "M", "C"},
		{"Shift", "Meta", "Ctrl"},
	}
	lower := cases.Lower(language.Und)
	var t [8]modNameSet
	for i, n := range base {
		t[i] = n
		t[i+4] = modNameSet{
			shift: lower.String(n.shift),
			alt:   lower.String(n.alt),
			ctrl:  lower.String(n.ctrl),
		}
	}
	return t
}()

func modNamesFor(f Format) modNameSet {
	i := 0
	if f.Has(FormatLongMod) {
		i |= 1
	}
	if f.Has(FormatAltIsMeta) {
		i |= 2
	}
	if f.Has(FormatLowerMod) {
		i |= 4
	}
	return modNames[i]
}

func modSeparator(f Format) string {
	if f.Has(FormatSpaceMod) {
		return " "
	}
	return "-"
}

// caretChar returns the character shown after ^ for a Ctrl-modified rune.
func caretChar(r rune) (rune, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return r - 0x20, true
	case r == '@', r >= '[' && r <= '_':
		return r, true
	}
	return 0, false
}

// Format renders ev as a string such as "C-a", "<M-Up>" or "page down".
func (s *Session) Format(ev Event, f Format) string {
	if ev == nil {
		return ""
	}
	mod := ev.Modifiers()
	u, isUnicode := ev.(Unicode)
	wrap := f.Has(FormatWrapBracket) && (!isUnicode || mod != 0)

	var b strings.Builder
	if wrap {
		b.WriteByte('<')
	}

	if isUnicode && mod == ModCtrl && f.Has(FormatCaretCtrl) {
		if c, ok := caretChar(u.Rune); ok {
			b.WriteByte('^')
			b.WriteRune(c)
			if wrap {
				b.WriteByte('>')
			}
			return b.String()
		}
	}

	names := modNamesFor(f)
	sep := modSeparator(f)
	if mod.Has(ModCtrl) {
		b.WriteString(names.ctrl)
		b.WriteString(sep)
	}
	if mod.Has(ModAlt) {
		b.WriteString(names.alt)
		b.WriteString(sep)
	}
	if mod.Has(ModShift) {
		b.WriteString(names.shift)
		b.WriteString(sep)
	}

	switch e := ev.(type) {
	case Unicode:
		b.WriteRune(e.Rune)
	case KeySym:
		name := s.keyNames.Name(e.Sym)
		if f.Has(FormatLowerSpace) {
			name = camelToSpaces(name)
		}
		b.WriteString(name)
	case Function:
		fc := 'F'
		if f.Has(FormatLowerSpace) {
			fc = 'f'
		}
		fmt.Fprintf(&b, "%c%d", fc, e.Number)
	case Mouse:
		fmt.Fprintf(&b, "Mouse%s(%d)", e.Action, e.Button)
		if f.Has(FormatMousePos) {
			fmt.Fprintf(&b, " @ (%d,%d)", e.Column, e.Line)
		}
	case Position:
		b.WriteString("Position")
	case ModeReport:
		if e.Initial != 0 {
			fmt.Fprintf(&b, "Mode(%c%d=%d)", e.Initial, e.Mode, e.Value)
		} else {
			fmt.Fprintf(&b, "Mode(%d=%d)", e.Mode, e.Value)
		}
	case UnknownCSI:
		b.WriteString("CSI")
	}

	if wrap {
		b.WriteByte('>')
	}
	return b.String()
}
