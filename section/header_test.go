package section

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		Version:    CurrentVersion,
		NetVersion: NetVersionString,
		MapName:    "ctf5",
		MapSize:    12345,
		MapCRC:     0xDEADBEEF,
		DemoType:   "client",
		LengthSecs: 60,
		Timestamp:  "2026-07-30 12-00-00",
	}

	b := h.Bytes()
	require.Len(t, b, HeaderSize)

	got, err := ParseHeader(b)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestHeaderRoundTripEmptyStrings(t *testing.T) {
	h := Header{Version: 1}
	got, err := ParseHeader(h.Bytes())
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestParseHeaderTooShort(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderSize-1))
	require.Error(t, err)
}

func TestParseHeaderBadMagic(t *testing.T) {
	b := (&Header{}).Bytes()
	b[0] = 'X'
	_, err := ParseHeader(b)
	require.Error(t, err)
}
