package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/phroun/termkey/termkey"
)

func newParseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "parse KEY...",
		Short:   "Parse key descriptions such as C-a or M-PageUp",
		Example: "  testkey parse C-a M-Up S-F5\n  testkey --format urwid parse 'meta page down'",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.settings()
			if err != nil {
				return err
			}
			sess := s.session()
			out := cmd.OutOrStdout()

			for _, arg := range args {
				ev, rest, ok := sess.Parse(arg, s.format)
				if !ok {
					return fmt.Errorf("cannot parse %q", arg)
				}
				if rest != "" {
					return fmt.Errorf("cannot parse %q: trailing %q", arg, rest)
				}
				printEvent(out, sess.Format(ev, s.format), ev, "\n")
			}
			return nil
		},
	}
}

func newFormatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "format BYTES...",
		Short:   "Decode escaped input bytes and print the keys they make",
		Example: `  testkey format '\x1b[1;5A' '\x1bOP' 'a\x7f'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.settings()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			for _, arg := range args {
				input, err := unescape(arg)
				if err != nil {
					return err
				}
				sess := s.session(termkey.WithBufferSize(max(len(input), s.bufferSize)))
				sess.Push(input)
				for {
					// Nothing else is coming, so pending prefixes resolve as they stand.
					res, err := sess.Force()
					if err != nil {
						return err
					}
					if res.Status != termkey.StatusKey {
						break
					}
					printEvent(out, sess.Format(res.Event, s.format), res.Event, "\n")
				}
			}
			return nil
		},
	}
}

// unescape interprets Go string escapes such as \x1b and \t.
func unescape(s string) ([]byte, error) {
	u, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return nil, fmt.Errorf("invalid escaped input %q: %w", s, err)
	}
	return []byte(u), nil
}

func newKeynameCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "keyname [NAME...]",
		Short: "List key names, or look names up",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.settings()
			if err != nil {
				return err
			}
			names := s.keyNames
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				sess := s.session()
				for sym := termkey.Sym(1); int(sym) < names.Len(); sym++ {
					fmt.Fprintf(out, "%4d %s %s\n", sym,
						runewidth.FillRight(names.Name(sym), 12),
						sess.Format(termkey.KeySym{Sym: sym}, termkey.FormatLowerSpace))
				}
				return nil
			}

			var known []string
			for sym := termkey.Sym(1); int(sym) < names.Len(); sym++ {
				known = append(known, names.Name(sym))
			}
			for _, arg := range args {
				sym := names.Sym(arg)
				if sym == termkey.SymUnknown {
					return unknownNameError("key name", arg, known)
				}
				fmt.Fprintf(out, "%4d %s\n", sym, names.Name(sym))
			}
			return nil
		},
	}
}
