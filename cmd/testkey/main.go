package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/phroun/termkey/keyboard"
	"github.com/phroun/termkey/termkey"
)

// Mouse reporting
const (
	mouseEnableSGR    = "\x1b[?1006h" // SGR mouse mode
	mouseEnableBasic  = "\x1b[?1000h" // Basic mouse tracking
	mouseEnableMotion = "\x1b[?1002h" // Button event + motion tracking
	mouseDisable      = "\x1b[?1000l\x1b[?1002l\x1b[?1006l"

	pasteEnable  = "\x1b[?2004h"
	pasteDisable = "\x1b[?2004l"
)

// options holds the flags shared by every command.
type options struct {
	configPath string
	logLevel   string
	flags      []string
	canon      []string
	format     []string
	wait       time.Duration
}

func (o *options) settings() (settings, error) {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return settings{}, err
	}
	return resolve(cfg, o.flags, o.canon, o.format, o.wait)
}

func (o *options) logger(w io.Writer) (*slog.Logger, error) {
	if o.logLevel == "" {
		return slog.New(slog.DiscardHandler), nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var syncMode, mouseMode, pasteMode, lineMode bool

	rootCmd := &cobra.Command{
		Use:           "testkey",
		Short:         "Show the keys a terminal sends, decoded",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.settings()
			if err != nil {
				return err
			}
			logger, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if mouseMode {
				fmt.Fprint(out, mouseEnableBasic+mouseEnableMotion+mouseEnableSGR)
				defer fmt.Fprint(out, mouseDisable)
			}
			if pasteMode {
				fmt.Fprint(out, pasteEnable)
				defer fmt.Fprint(out, pasteDisable)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if syncMode {
				return runSync(ctx, os.Stdin, out, s, logger)
			}
			return runAsync(ctx, os.Stdin, out, s, logger, lineMode)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML file with decoder settings and key names")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log decoder activity to stderr at this level (debug, info, warn, error)")
	pf.StringSliceVar(&opts.flags, "flags", nil, "Decoder flags (no-interpret, convert-kp, raw, utf8, no-termios, space-symbol, ctrl-c, eintr)")
	pf.StringSliceVar(&opts.canon, "canon", nil, "Canonicalization flags (space-symbol, del-bs)")
	pf.StringSliceVar(&opts.format, "format", nil, "Key format flags or a preset (vim, urwid); default alt-is-meta")
	pf.DurationVar(&opts.wait, "wait", 0, "How long to wait for the rest of an escape sequence")

	f := rootCmd.Flags()
	f.BoolVar(&syncMode, "sync", false, "Decode in a single-threaded poll loop instead of the keyboard handler")
	f.BoolVar(&mouseMode, "mouse", false, "Enable mouse reporting (SGR mode)")
	f.BoolVar(&pasteMode, "paste", false, "Enable bracketed paste")
	f.BoolVar(&lineMode, "line", false, "Assemble and print whole lines instead of keys")

	rootCmd.AddCommand(newParseCmd(opts), newFormatCmd(opts), newKeynameCmd(opts))
	return rootCmd
}

// runAsync prints keys from a keyboard.Handler until Ctrl-C.
func runAsync(ctx context.Context, in *os.File, out io.Writer, s settings, logger *slog.Logger, lineMode bool) error {
	format := s.format
	handler := keyboard.New(keyboard.Options{
		InputReader: in,
		EchoWriter:  out,
		Flags:       s.flags | termkey.FlagCtrlC,
		CanonFlags:  s.canon,
		WaitTime:    s.waitTime,
		BufferSize:  s.bufferSize,
		KeyNames:    s.keyNames,
		Format:      &format,
		Logger:      logger,
	})
	handler.OnPaste = func(content []byte) {
		logger.Info("paste", "bytes", len(content))
	}
	handler.SetLineMode(lineMode)

	if err := handler.Start(); err != nil {
		return err
	}
	// Ensure cleanup on exit
	defer handler.Stop()

	eol := "\n"
	if handler.ManagesTerminal() {
		eol = "\r\n"
	}
	fmt.Fprint(out, "Press keys (Ctrl+C to exit):"+eol)

	done := make(chan error, 1)
	go func() { done <- handler.Wait() }()

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-done:
			// Input ended; show what was decoded before it did.
			for {
				select {
				case ev := <-handler.Keys:
					printEvent(out, handler.Format(ev), ev, eol)
				default:
					return err
				}
			}

		case line, ok := <-handler.Lines:
			if !ok || len(line) == 0 {
				return nil
			}
			fmt.Fprintf(out, "Line: %q%s", line, eol)

		case ev, ok := <-handler.Keys:
			if !ok {
				return nil
			}
			printEvent(out, handler.Format(ev), ev, eol)
			if isInterrupt(ev) {
				return nil
			}
		}
	}
}

func isInterrupt(ev termkey.Event) bool {
	u, ok := ev.(termkey.Unicode)
	return ok && u.Rune == 'c' && u.Mod == termkey.ModCtrl
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
