package termkey

import (
	"errors"
	"strings"
	"syscall"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPushAndResize(t *testing.T) {
	t.Parallel()

	b := NewBuffer(8)
	assert.Equal(t, 8, b.Cap())
	assert.Equal(t, 0, b.Push(nil))
	assert.Equal(t, 8, b.Push([]byte("0123456789")))
	assert.Equal(t, 0, b.Remaining())

	b.Consume(3)
	assert.Equal(t, "34567", string(b.Bytes()))
	assert.Equal(t, 3, b.Push([]byte("abcd")))
	assert.Equal(t, "34567abc", string(b.Bytes()))
	assert.Equal(t, b.Cap(), b.Len()+b.Remaining())

	err := b.SetCap(4)
	require.ErrorIs(t, err, ErrBufferTooSmall)
	assert.Equal(t, 8, b.Cap())

	require.NoError(t, b.SetCap(16))
	assert.Equal(t, "34567abc", string(b.Bytes()))
	assert.Equal(t, 8, b.Remaining())
}

func TestSessionBufferSize(t *testing.T) {
	t.Parallel()

	s := New()
	assert.Equal(t, DefaultBufferSize, s.BufferSize())
	assert.Equal(t, 256, s.BufferRemaining())

	s.Push([]byte("h"))
	assert.Equal(t, 255, s.BufferRemaining())

	require.NoError(t, s.SetBufferSize(512))
	assert.Equal(t, 512, s.BufferSize())
	assert.Equal(t, 511, s.BufferRemaining())
	assert.Equal(t, Unicode{Rune: 'h', UTF8: "h"}, pollKey(t, s))
}

func TestWriteOverflow(t *testing.T) {
	t.Parallel()

	s := New(WithBufferSize(4))
	n, err := s.Write([]byte("hello"))
	require.ErrorIs(t, err, ErrBufferOverflow)
	assert.Equal(t, 4, n)

	n, err = s.Write(nil)
	assert.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, []Event{
		Unicode{Rune: 'h', UTF8: "h"},
		Unicode{Rune: 'e', UTF8: "e"},
		Unicode{Rune: 'l', UTF8: "l"},
		Unicode{Rune: 'l', UTF8: "l"},
	}, decodeAll(t, s))
}

func TestAdviseReadable(t *testing.T) {
	t.Parallel()

	s := New(WithSource(strings.NewReader("h")))

	res, err := s.AdviseReadable()
	require.NoError(t, err)
	assert.Equal(t, StatusAgain, res.Status)

	assert.Equal(t, Unicode{Rune: 'h', UTF8: "h"}, pollKey(t, s))
	requireStatus(t, s, StatusNone)

	res, err = s.AdviseReadable()
	require.NoError(t, err)
	assert.Equal(t, StatusNone, res.Status)

	requireStatus(t, s, StatusEOF)
}

func TestAdviseReadableForcesAtEOF(t *testing.T) {
	t.Parallel()

	s := New(WithSource(strings.NewReader("\x1b")))

	res, err := s.AdviseReadable()
	require.NoError(t, err)
	require.Equal(t, StatusAgain, res.Status)
	requireStatus(t, s, StatusAgain)

	res, err = s.AdviseReadable()
	require.NoError(t, err)
	require.Equal(t, StatusNone, res.Status)

	assert.Equal(t, KeySym{Sym: SymEscape}, pollKey(t, s))
	requireStatus(t, s, StatusEOF)
}

func TestAdviseReadableErrors(t *testing.T) {
	t.Parallel()

	t.Run("no source", func(t *testing.T) {
		t.Parallel()
		res, err := New().AdviseReadable()
		require.ErrorIs(t, err, ErrNoSource)
		assert.Equal(t, StatusError, res.Status)
	})

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		res, err := New(WithSource(iotest.ErrReader(boom))).AdviseReadable()
		require.ErrorIs(t, err, boom)
		assert.Equal(t, StatusError, res.Status)
	})

	t.Run("would block", func(t *testing.T) {
		t.Parallel()
		res, err := New(WithSource(iotest.ErrReader(syscall.EAGAIN))).AdviseReadable()
		require.NoError(t, err)
		assert.Equal(t, StatusNone, res.Status)
	})

	t.Run("interrupted", func(t *testing.T) {
		t.Parallel()
		res, err := New(WithSource(iotest.ErrReader(syscall.EINTR))).AdviseReadable()
		require.NoError(t, err)
		assert.Equal(t, StatusNone, res.Status)

		res, err = New(WithFlags(FlagEINTR), WithSource(iotest.ErrReader(syscall.EINTR))).AdviseReadable()
		require.ErrorIs(t, err, syscall.EINTR)
		assert.Equal(t, StatusError, res.Status)
	})
}

func TestStopAndStart(t *testing.T) {
	t.Parallel()

	s := New()
	assert.True(t, s.IsStarted())

	s.Stop()
	assert.False(t, s.IsStarted())
	assert.Equal(t, 1, s.Push([]byte("x")))

	_, err := s.Poll()
	assert.ErrorIs(t, err, ErrSessionStopped)
	_, err = s.Force()
	assert.ErrorIs(t, err, ErrSessionStopped)
	_, err = s.AdviseReadable()
	assert.ErrorIs(t, err, ErrSessionStopped)

	s.Start()
	assert.Equal(t, Unicode{Rune: 'x', UTF8: "x"}, pollKey(t, s))
}

func TestWaitTime(t *testing.T) {
	t.Parallel()

	s := New()
	assert.Equal(t, 50*time.Millisecond, s.WaitTime())
	s.SetWaitTime(200 * time.Millisecond)
	assert.Equal(t, 200*time.Millisecond, s.WaitTime())

	s.Push([]byte("\x1b["))
	res := requireStatus(t, s, StatusAgain)
	assert.Equal(t, 200*time.Millisecond, res.Wait)
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Again", StatusAgain.String())
	assert.Equal(t, "EOF", StatusEOF.String())
}
