package termkey

import "fmt"

const maxCSIArgs = 16

// csiSeq is a parsed control sequence: CSI [initial] args [intermediate] final.
type csiSeq struct {
	initial      byte
	args         []int // -1 marks an omitted argument
	intermediate byte
	final        byte
}

func (c csiSeq) String() string {
	s := "CSI "
	if c.initial != 0 {
		s += string(c.initial)
	}
	for i, a := range c.args {
		if i > 0 {
			s += ";"
		}
		if a >= 0 {
			s += fmt.Sprint(a)
		}
	}
	if c.intermediate != 0 {
		s += string(c.intermediate)
	}
	return s + string(c.final)
}

// arg returns argument i, or -1 when it is absent.
func (c csiSeq) arg(i int) int {
	if i < len(c.args) {
		return c.args[i]
	}
	return -1
}

// mod decodes argument i as an xterm "modifiers + 1" parameter.
func (c csiSeq) mod(i int) Modifiers {
	if a := c.arg(i); a > 1 {
		return Modifiers(a-1) & (ModShift | ModAlt | ModCtrl)
	}
	return 0
}

// parseCSI splits the bytes between the introducer and the final byte.
func parseCSI(params []byte, final byte) csiSeq {
	seq := csiSeq{final: final}
	p := params
	if len(p) > 0 && p[0] >= '<' && p[0] <= '?' {
		seq.initial = p[0]
		p = p[1:]
	}

	arg, seen, sub := -1, false, false
	for _, c := range p {
		switch {
		case c >= '0' && c <= '9':
			seen = true
			if sub {
				continue
			}
			if arg < 0 {
				arg = 0
			}
			if arg < 1<<24 {
				arg = arg*10 + int(c-'0')
			}
		case c == ':':
			// Sub-parameters are skipped.
			sub = true
		case c == ';':
			seen = true
			if len(seq.args) < maxCSIArgs {
				seq.args = append(seq.args, arg)
			}
			arg, sub = -1, false
		case c >= 0x20 && c <= 0x2f:
			seq.intermediate = c
		}
	}
	if seen && len(seq.args) < maxCSIArgs {
		seq.args = append(seq.args, arg)
	}
	return seq
}

// peekCSI decodes a control sequence whose introducer is intro bytes long.
func (s *Session) peekCSI(b []byte, intro int, force bool) (Event, int, Status) {
	end := intro
	for end < len(b) && (b[end] < 0x40 || b[end] > 0x7e) {
		end++
	}
	if end >= len(b) {
		if !force {
			return nil, 0, StatusAgain
		}
		return unicodeEvent('[', ModAlt), intro, StatusKey
	}

	seq := parseCSI(b[intro:end], b[end])
	ev, extra, st := s.dispatchCSI(seq, b[end+1:], force)
	if st != StatusKey {
		return nil, 0, st
	}
	return ev, end + 1 + extra, StatusKey
}

var csiLetterSyms = map[byte]Sym{
	'A': SymUp,
	'B': SymDown,
	'C': SymRight,
	'D': SymLeft,
	'E': SymBegin,
	'F': SymEnd,
	'H': SymHome,
	'Z': SymTab,
}

var csiLetterFunctions = map[byte]int{
	'P': 1,
	'Q': 2,
	'R': 3,
	'S': 4,
}

var csiTildeSyms = map[int]Sym{
	1: SymFind,
	2: SymInsert,
	3: SymDelete,
	4: SymSelect,
	5: SymPageUp,
	6: SymPageDown,
	7: SymHome,
	8: SymEnd,
}

var csiTildeFunctions = map[int]int{
	11: 1, 12: 2, 13: 3, 14: 4, 15: 5,
	17: 6, 18: 7, 19: 8, 20: 9, 21: 10,
	23: 11, 24: 12, 25: 13, 26: 14,
	28: 15, 29: 16,
	31: 17, 32: 18, 33: 19, 34: 20,
}

// dispatchCSI turns a parsed sequence into an event. rest holds the bytes after
// the final byte; extra reports how many of them the event used.
func (s *Session) dispatchCSI(seq csiSeq, rest []byte, force bool) (ev Event, extra int, st Status) {
	switch {
	case seq.initial == '<' && (seq.final == 'M' || seq.final == 'm') && len(seq.args) >= 3:
		if ev, ok := s.sgrMouse(seq); ok {
			return ev, 0, StatusKey
		}

	case seq.initial == 0 && seq.intermediate == 0 && seq.final == 'M' && len(seq.args) == 0:
		return s.peekX10Mouse(rest, force)

	case seq.initial == 0 && seq.intermediate == 0 && seq.final == 'M' && len(seq.args) >= 3:
		if ev, ok := s.rxvtMouse(seq); ok {
			return ev, 0, StatusKey
		}

	case (seq.initial == 0 || seq.initial == '?') && seq.final == 'R' && len(seq.args) >= 2:
		if seq.args[0] >= 0 && seq.args[1] >= 0 {
			return Position{Line: seq.args[0], Column: seq.args[1]}, 0, StatusKey
		}

	case (seq.initial == 0 || seq.initial == '?') && seq.intermediate == '$' && seq.final == 'y' && len(seq.args) >= 2:
		return ModeReport{Initial: seq.initial, Mode: seq.args[0], Value: seq.args[1]}, 0, StatusKey

	case seq.initial == 0 && seq.intermediate == 0 && seq.final == '~':
		if ev, ok := s.tildeKey(seq); ok {
			return ev, 0, StatusKey
		}

	case seq.initial == 0 && seq.intermediate == 0 && seq.final == 'u':
		if cp := seq.arg(0); cp >= 0 && cp <= 0x10ffff {
			return s.codepointEvent(rune(cp), seq.mod(1)), 0, StatusKey
		}

	case seq.initial == 0 && seq.intermediate == 0:
		if sym, ok := csiLetterSyms[seq.final]; ok {
			mod := seq.mod(1)
			if seq.final == 'Z' {
				mod |= ModShift
			}
			return KeySym{Sym: sym, Mod: mod}, 0, StatusKey
		}
		if n, ok := csiLetterFunctions[seq.final]; ok {
			return Function{Number: n, Mod: seq.mod(1)}, 0, StatusKey
		}
	}

	s.logger.Debug("unrecognized control sequence", "seq", seq.String())
	return UnknownCSI{}, 0, StatusKey
}

// tildeKey decodes CSI n[;mod] ~ and the xterm modifyOtherKeys form
// CSI 27;mod;code ~.
func (s *Session) tildeKey(seq csiSeq) (Event, bool) {
	n := seq.arg(0)
	if n == 27 && len(seq.args) >= 3 {
		cp := seq.arg(2)
		if cp < 0 || cp > 0x10ffff {
			return nil, false
		}
		return s.codepointEvent(rune(cp), seq.mod(1)), true
	}
	if sym, ok := csiTildeSyms[n]; ok {
		return KeySym{Sym: sym, Mod: seq.mod(1)}, true
	}
	if fn, ok := csiTildeFunctions[n]; ok {
		return Function{Number: fn, Mod: seq.mod(1)}, true
	}
	return nil, false
}

// sgrMouse decodes CSI < cb;col;line M, with m marking a release.
func (s *Session) sgrMouse(seq csiSeq) (Event, bool) {
	cb, col, line := seq.args[0], seq.args[1], seq.args[2]
	if cb < 0 || col < 0 || line < 0 {
		return nil, false
	}
	s.mouseProto = MouseSGR
	ev := decodeMouse(cb, col, line)
	if seq.final == 'm' {
		ev.Action = MouseRelease
	}
	return ev, true
}

// rxvtMouse decodes CSI cb;col;line M.
func (s *Session) rxvtMouse(seq csiSeq) (Event, bool) {
	cb, col, line := seq.args[0], seq.args[1], seq.args[2]
	if cb < 0 || col < 0 || line < 0 {
		return nil, false
	}
	s.mouseProto = MouseRXVT
	return decodeMouse(cb, col, line), true
}

var ss3Syms = map[byte]Sym{
	'A': SymUp,
	'B': SymDown,
	'C': SymRight,
	'D': SymLeft,
	'E': SymBegin,
	'F': SymEnd,
	'H': SymHome,
	'M': SymKPEnter,
	'X': SymKPEquals,
	'j': SymKPMult,
	'k': SymKPPlus,
	'l': SymKPComma,
	'm': SymKPMinus,
	'n': SymKPPeriod,
	'o': SymKPDiv,
	'p': SymKP0,
	'q': SymKP1,
	'r': SymKP2,
	's': SymKP3,
	't': SymKP4,
	'u': SymKP5,
	'v': SymKP6,
	'w': SymKP7,
	'x': SymKP8,
	'y': SymKP9,
}

// keypadChars is what FlagConvertKP turns keypad symbols into.
var keypadChars = map[Sym]rune{
	SymKP0: '0', SymKP1: '1', SymKP2: '2', SymKP3: '3', SymKP4: '4',
	SymKP5: '5', SymKP6: '6', SymKP7: '7', SymKP8: '8', SymKP9: '9',
	SymKPPlus:   '+',
	SymKPMinus:  '-',
	SymKPMult:   '*',
	SymKPDiv:    '/',
	SymKPComma:  ',',
	SymKPPeriod: '.',
	SymKPEquals: '=',
}

// peekSS3 decodes ESC O x (or the 8-bit SS3 byte followed by x).
func (s *Session) peekSS3(b []byte, intro int, force bool) (Event, int, Status) {
	if len(b) <= intro {
		if !force {
			return nil, 0, StatusAgain
		}
		return unicodeEvent('O', ModAlt), intro, StatusKey
	}

	final := b[intro]
	if n, ok := csiLetterFunctions[final]; ok {
		return Function{Number: n}, intro + 1, StatusKey
	}
	sym, ok := ss3Syms[final]
	if !ok {
		s.logger.Debug("unrecognized SS3 sequence", "final", string(final))
		return UnknownCSI{}, intro + 1, StatusKey
	}
	if s.flags.Has(FlagConvertKP) {
		if r, ok := keypadChars[sym]; ok {
			return unicodeEvent(r, 0), intro + 1, StatusKey
		}
	}
	return KeySym{Sym: sym}, intro + 1, StatusKey
}
