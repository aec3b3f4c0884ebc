package termkey

import (
	"strings"
	"unicode/utf8"
)

// Parse reads one key description from the front of str, in the notation
// Format produces for f. It returns the canonicalized event and the unparsed
// remainder; ok is false when nothing at the front of str names a key.
func (s *Session) Parse(str string, f Format) (ev Event, rest string, ok bool) {
	if f.Has(FormatCaretCtrl) && len(str) >= 2 && str[0] == '^' {
		if c := rune(str[1]); c >= '@' && c <= '_' {
			if c >= 'A' && c <= 'Z' {
				c += 0x20
			}
			return canonicalize(unicodeEvent(c, ModCtrl), s.canon), str[2:], true
		}
	}

	names := modNamesFor(f)
	sep := modSeparator(f)
	var mod Modifiers
	rest = str
	for {
		i := strings.Index(rest, sep)
		if i <= 0 {
			break
		}
		switch rest[:i] {
		case names.ctrl:
			mod |= ModCtrl
		case names.alt:
			mod |= ModAlt
		case names.shift:
			mod |= ModShift
		default:
			i = -1
		}
		if i < 0 {
			break
		}
		rest = rest[i+len(sep):]
	}

	lowerSpace := f.Has(FormatLowerSpace)
	if sym, n, found := s.keyNames.lookup(rest, lowerSpace); found {
		ev, rest = KeySym{Sym: sym, Mod: mod}, rest[n:]
	} else if num, n, found := parseFunction(rest, lowerSpace); found {
		ev, rest = Function{Number: num, Mod: mod}, rest[n:]
	} else if rest != "" {
		r, n := utf8.DecodeRuneInString(rest)
		ev, rest = unicodeEvent(r, mod), rest[n:]
	} else {
		return nil, str, false
	}
	return canonicalize(ev, s.canon), rest, true
}

// parseFunction reads "F<n>", or "f<n>" when lowerSpace is set.
func parseFunction(s string, lowerSpace bool) (int, int, bool) {
	prefix := byte('F')
	if lowerSpace {
		prefix = 'f'
	}
	if len(s) < 2 || s[0] != prefix {
		return 0, 0, false
	}
	n, i := 0, 1
	for i < len(s) && s[i] >= '0' && s[i] <= '9' && n < 1<<24 {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == 1 {
		return 0, 0, false
	}
	return n, i, true
}
