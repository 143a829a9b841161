package section

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSHA256ExtensionProbeMatches(t *testing.T) {
	ext := SHA256Extension{Digest: [32]byte{1, 2, 3}}
	b := ext.Bytes()
	require.Len(t, b, SHA256MarkerSize+SHA256DigestSize)

	got, consumed, ok := ProbeSHA256Extension(b)
	require.True(t, ok)
	require.Equal(t, len(b), consumed)
	require.Equal(t, ext.Digest, got.Digest)
}

func TestSHA256ExtensionProbeRejectsNonMatchingPrefix(t *testing.T) {
	data := make([]byte, SHA256MarkerSize+SHA256DigestSize)
	_, _, ok := ProbeSHA256Extension(data)
	require.False(t, ok, "a zeroed prefix is not the SHA-256 marker UUID")
}

func TestSHA256ExtensionProbeTooShort(t *testing.T) {
	_, _, ok := ProbeSHA256Extension(make([]byte, 4))
	require.False(t, ok)
}
