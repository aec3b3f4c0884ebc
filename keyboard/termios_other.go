//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package keyboard

func enableSignals(fd int) error { return nil }
