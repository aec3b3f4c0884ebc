//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

func runSync(ctx context.Context, in *os.File, out io.Writer, s settings, logger *slog.Logger) error {
	return errors.New("--sync needs poll(2), which this platform does not have")
}
