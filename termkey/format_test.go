package termkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	ctrlB := Unicode{Rune: 'b', Mod: ModCtrl, UTF8: "b"}
	altC := Unicode{Rune: 'c', Mod: ModAlt, UTF8: "c"}
	mouse := Mouse{Action: MousePress, Button: 1, Line: 1, Column: 1}

	tests := []struct {
		name   string
		ev     Event
		format Format
		want   string
	}{
		{name: "plain letter", ev: Unicode{Rune: 'A', UTF8: "A"}, want: "A"},
		{name: "plain letter bracketed", ev: Unicode{Rune: 'A', UTF8: "A"}, format: FormatWrapBracket, want: "A"},
		{name: "ctrl short", ev: ctrlB, want: "C-b"},
		{name: "ctrl long", ev: ctrlB, format: FormatLongMod, want: "Ctrl-b"},
		{name: "ctrl long spaced", ev: ctrlB, format: FormatLongMod | FormatSpaceMod, want: "Ctrl b"},
		{name: "ctrl long lower", ev: ctrlB, format: FormatLongMod | FormatLowerMod, want: "ctrl-b"},
		{name: "ctrl urwid", ev: ctrlB, format: FormatURWID, want: "ctrl b"},
		{name: "ctrl caret", ev: ctrlB, format: FormatCaretCtrl, want: "^B"},
		{name: "ctrl caret bracketed", ev: ctrlB, format: FormatCaretCtrl | FormatWrapBracket, want: "<^B>"},
		{name: "ctrl vim", ev: ctrlB, format: FormatVim, want: "<C-b>"},
		{name: "caret bracket", ev: Unicode{Rune: '[', Mod: ModCtrl, UTF8: "["}, format: FormatCaretCtrl, want: "^["},
		{name: "caret needs ctrl only", ev: Unicode{Rune: 'b', Mod: ModCtrl | ModAlt, UTF8: "b"}, format: FormatCaretCtrl, want: "C-A-b"},
		{name: "alt short", ev: altC, want: "A-c"},
		{name: "alt long", ev: altC, format: FormatLongMod, want: "Alt-c"},
		{name: "alt meta", ev: altC, format: FormatAltIsMeta, want: "M-c"},
		{name: "alt meta long", ev: altC, format: FormatAltIsMeta | FormatLongMod, want: "Meta-c"},
		{name: "alt vim", ev: altC, format: FormatVim, want: "<M-c>"},
		{name: "all modifiers", ev: KeySym{Sym: SymUp, Mod: ModCtrl | ModAlt | ModShift}, want: "C-A-S-Up"},
		{name: "keysym", ev: KeySym{Sym: SymUp}, want: "Up"},
		{name: "keysym vim", ev: KeySym{Sym: SymUp}, format: FormatVim, want: "<Up>"},
		{name: "keysym camel", ev: KeySym{Sym: SymPageUp}, want: "PageUp"},
		{name: "keysym lower space", ev: KeySym{Sym: SymPageUp}, format: FormatLowerSpace, want: "page up"},
		{name: "keysym urwid", ev: KeySym{Sym: SymPageDown, Mod: ModAlt}, format: FormatURWID, want: "meta page down"},
		{name: "function", ev: Function{Number: 5}, want: "F5"},
		{name: "function vim", ev: Function{Number: 5}, format: FormatVim, want: "<F5>"},
		{name: "function lower space", ev: Function{Number: 5}, format: FormatLowerSpace, want: "f5"},
		{name: "mouse", ev: mouse, want: "MousePress(1)"},
		{name: "mouse position", ev: mouse, format: FormatMousePos, want: "MousePress(1) @ (1,1)"},
		{name: "mouse ctrl", ev: Mouse{Action: MousePress, Button: 1, Mod: ModCtrl}, want: "C-MousePress(1)"},
		{name: "mouse release", ev: Mouse{Action: MouseRelease, Line: 3, Column: 7}, format: FormatMousePos, want: "MouseRelease(0) @ (7,3)"},
		{name: "position", ev: Position{Line: 2, Column: 3}, want: "Position"},
		{name: "dec mode", ev: ModeReport{Initial: '?', Mode: 1, Value: 2}, want: "Mode(?1=2)"},
		{name: "ansi mode", ev: ModeReport{Mode: 4, Value: 1}, want: "Mode(4=1)"},
		{name: "unknown csi", ev: UnknownCSI{}, want: "CSI"},
		{name: "unknown csi bracketed", ev: UnknownCSI{}, format: FormatWrapBracket, want: "<CSI>"},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, s.Format(tt.ev, tt.format))
		})
	}
}

func TestFormatNil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, New().Format(nil, FormatVim))
}
