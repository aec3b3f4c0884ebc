package main

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/phroun/termkey/termkey"
)

const keyColumnWidth = 18

// describe returns the event kind and the details that Format leaves out.
func describe(ev termkey.Event) (string, string) {
	switch e := ev.(type) {
	case termkey.Unicode:
		return "unicode", fmt.Sprintf("U+%04X %s", e.Rune, e.Mod)
	case termkey.Function:
		return "function", fmt.Sprintf("F%d %s", e.Number, e.Mod)
	case termkey.KeySym:
		return "keysym", fmt.Sprintf("sym %d %s", e.Sym, e.Mod)
	case termkey.Mouse:
		return "mouse", fmt.Sprintf("%s button %d at line %d col %d %s", e.Action, e.Button, e.Line, e.Column, e.Mod)
	case termkey.Position:
		return "position", fmt.Sprintf("line %d col %d", e.Line, e.Column)
	case termkey.ModeReport:
		return "mode", fmt.Sprintf("initial %q mode %d value %d", e.Initial, e.Mode, e.Value)
	case termkey.UnknownCSI:
		return "unknown", ""
	}
	return "", ""
}

// printEvent writes one aligned row. eol is "\r\n" while the terminal is raw.
func printEvent(w io.Writer, formatted string, ev termkey.Event, eol string) {
	kind, detail := describe(ev)
	fmt.Fprintf(w, "%s %s %s%s",
		runewidth.FillRight(formatted, keyColumnWidth),
		runewidth.FillRight(kind, 9),
		detail, eol)
}
