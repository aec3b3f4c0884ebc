package termkey

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		format Format
		want   Event
		rest   string
	}{
		{name: "letter", input: "A", want: Unicode{Rune: 'A', UTF8: "A"}},
		{name: "letter with rest", input: "A and more", want: Unicode{Rune: 'A', UTF8: "A"}, rest: " and more"},
		{name: "ctrl short", input: "C-b", want: Unicode{Rune: 'b', Mod: ModCtrl, UTF8: "b"}},
		{name: "ctrl long", input: "Ctrl-b", format: FormatLongMod, want: Unicode{Rune: 'b', Mod: ModCtrl, UTF8: "b"}},
		{name: "caret", input: "^B", format: FormatCaretCtrl, want: Unicode{Rune: 'b', Mod: ModCtrl, UTF8: "b"}},
		{name: "caret bracket", input: "^[x", format: FormatCaretCtrl, want: Unicode{Rune: '[', Mod: ModCtrl, UTF8: "["}, rest: "x"},
		{name: "meta", input: "M-c", format: FormatAltIsMeta, want: Unicode{Rune: 'c', Mod: ModAlt, UTF8: "c"}},
		{name: "dash key", input: "A--", want: Unicode{Rune: '-', Mod: ModAlt, UTF8: "-"}},
		{name: "keysym", input: "Up", want: KeySym{Sym: SymUp}},
		{name: "keysym with modifiers", input: "C-A-S-Up", want: KeySym{Sym: SymUp, Mod: ModCtrl | ModAlt | ModShift}},
		{name: "function", input: "F5", want: Function{Number: 5}},
		{name: "function two digits", input: "F12 next", want: Function{Number: 12}, rest: " next"},
		{name: "function lower", input: "f5", format: FormatLowerSpace, want: Function{Number: 5}},
		{
			name:   "spaced long names",
			input:  "ctrl alt page up",
			format: FormatLongMod | FormatLowerMod | FormatSpaceMod | FormatLowerSpace,
			want:   KeySym{Sym: SymPageUp, Mod: ModCtrl | ModAlt},
		},
		{
			name:   "urwid",
			input:  "meta page down",
			format: FormatURWID,
			want:   KeySym{Sym: SymPageDown, Mod: ModAlt},
		},
		{name: "space name", input: "Space", want: Unicode{Rune: ' ', UTF8: " "}},
		{name: "del", input: "DEL", want: KeySym{Sym: SymDEL}},
		{name: "delete is longer than del", input: "Delete", want: KeySym{Sym: SymDelete}},
		{name: "utf8 letter", input: "é!", want: Unicode{Rune: 'é', UTF8: "é"}, rest: "!"},
		{name: "bare F", input: "F", want: Unicode{Rune: 'F', UTF8: "F"}},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev, rest, ok := s.Parse(tt.input, tt.format)
			require.True(t, ok)
			if diff := cmp.Diff(tt.want, ev); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestParseNoMatch(t *testing.T) {
	t.Parallel()

	s := New()
	for _, in := range []string{"", "C-", "Ctrl-"} {
		f := Format(0)
		if in == "Ctrl-" {
			f = FormatLongMod
		}
		ev, rest, ok := s.Parse(in, f)
		assert.False(t, ok, "%q", in)
		assert.Nil(t, ev)
		assert.Equal(t, in, rest)
	}
}

func TestParseCanonicalizes(t *testing.T) {
	t.Parallel()

	s := New(WithFlags(FlagSpaceSymbol), WithCanonFlags(CanonDelBS))

	ev, _, ok := s.Parse("Space", 0)
	require.True(t, ok)
	assert.Equal(t, KeySym{Sym: SymSpace}, ev)

	ev, _, ok = s.Parse(" ", 0)
	require.True(t, ok)
	assert.Equal(t, KeySym{Sym: SymSpace}, ev)

	ev, _, ok = s.Parse("DEL", 0)
	require.True(t, ok)
	assert.Equal(t, KeySym{Sym: SymBackspace}, ev)
}

func TestParseFormatRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		inputs []string
	}{
		{format: 0, inputs: []string{"a", "C-b", "A-S-Up", "C-A-Delete", "F12", "PageDown", "S-Tab", "é", "KPEnter"}},
		{format: FormatLongMod, inputs: []string{"Ctrl-b", "Alt-Shift-Up", "Shift-F3"}},
		{format: FormatLongMod | FormatAltIsMeta, inputs: []string{"Meta-x", "Ctrl-Meta-End"}},
		{format: FormatCaretCtrl, inputs: []string{"^A", "^_", "A-x"}},
		{format: FormatURWID, inputs: []string{"ctrl meta page up", "shift f4", "meta backspace", "ctrl x"}},
	}

	s := New()
	for _, tt := range tests {
		for _, in := range tt.inputs {
			ev, rest, ok := s.Parse(in, tt.format)
			require.True(t, ok, "%q", in)
			assert.Empty(t, rest, "%q", in)
			assert.Equal(t, in, s.Format(ev, tt.format), "round trip of %q", in)
		}
	}
}
