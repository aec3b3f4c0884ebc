//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/phroun/termkey/termkey"
)

// runSync drives a termkey.Session directly from a poll loop: wait for input
// or for the session's wait time, then decode everything available.
func runSync(ctx context.Context, in *os.File, out io.Writer, s settings, logger *slog.Logger) error {
	fd := int(in.Fd())
	eol := "\n"

	if !s.flags.Has(termkey.FlagNoTermios) && term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enable raw mode: %w", err)
		}
		defer term.Restore(fd, state)
		eol = "\r\n"
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("failed to set non-blocking input: %w", err)
	}
	defer unix.SetNonblock(fd, false)

	sess := s.session(termkey.WithSource(in), termkey.WithLogger(logger))
	fmt.Fprint(out, "Press keys (Ctrl+C to exit):"+eol)

	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	timeout := -1
	for ctx.Err() == nil {
		n, err := unix.Poll(fds, timeout)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return fmt.Errorf("failed to poll input: %w", err)
		}

		if n == 0 {
			// Nothing completed the pending sequence in time.
			res, err := sess.Force()
			if err != nil {
				return err
			}
			if res.Status == termkey.StatusKey {
				printEvent(out, sess.Format(res.Event, s.format), res.Event, eol)
			}
		}
		if fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
			if res, err := sess.AdviseReadable(); res.Status == termkey.StatusError {
				return err
			}
		}

		timeout = -1
		for {
			res, err := sess.Poll()
			if err != nil {
				return err
			}
			switch res.Status {
			case termkey.StatusKey:
				printEvent(out, sess.Format(res.Event, s.format), res.Event, eol)
				if isInterrupt(res.Event) {
					return nil
				}
				continue
			case termkey.StatusAgain:
				timeout = int(res.Wait.Milliseconds())
			case termkey.StatusEOF:
				return nil
			}
			break
		}
	}
	return nil
}
