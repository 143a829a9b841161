package demo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teeworlds-community/ddnetdemo/errs"
)

func TestMessagePackerRoundTrip(t *testing.T) {
	p := NewMessagePacker()
	p.AddInt(42).AddString("hello").AddInt(-7).AddString("")

	buf, err := p.Bytes()
	require.NoError(t, err)

	u := NewMessageUnpacker(buf)

	i, err := u.Int()
	require.NoError(t, err)
	require.Equal(t, int32(42), i)

	s, err := u.String()
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	i, err = u.Int()
	require.NoError(t, err)
	require.Equal(t, int32(-7), i)

	s, err = u.String()
	require.NoError(t, err)
	require.Empty(t, s)

	require.Zero(t, u.Remaining())
}

func TestMessagePackerStickyError(t *testing.T) {
	p := NewMessagePacker()
	huge := strings.Repeat("x", MaxMessageSize+1)
	p.AddString(huge)
	require.ErrorIs(t, p.err, errs.ErrMessageTooLarge)

	// Further calls after the first error are no-ops.
	p.AddInt(1).AddString("y")
	_, err := p.Bytes()
	require.ErrorIs(t, err, errs.ErrMessageTooLarge)
}

func TestMessageUnpackerStringNotTerminated(t *testing.T) {
	u := NewMessageUnpacker([]byte("no terminator"))
	_, err := u.String()
	require.ErrorIs(t, err, errs.ErrStringNotNULTerm)
}

func TestMessageUnpackerIntTruncated(t *testing.T) {
	u := NewMessageUnpacker(nil)
	_, err := u.Int()
	require.Error(t, err)
}
