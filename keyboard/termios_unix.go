//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package keyboard

import "golang.org/x/sys/unix"

// enableSignals turns ISIG back on after term.MakeRaw so Ctrl-C still raises
// SIGINT instead of arriving as a key.
func enableSignals(fd int) error {
	t, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return err
	}
	t.Lflag |= unix.ISIG
	return unix.IoctlSetTermios(fd, ioctlWriteTermios, t)
}
