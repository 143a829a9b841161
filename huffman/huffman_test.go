package huffman

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teeworlds-community/ddnetdemo/errs"
)

func TestRoundTrip(t *testing.T) {
	tree := NewTree()

	cases := [][]byte{
		nil,
		{},
		{0},
		{0xFF},
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte{0x7F}, 4096),
	}

	for _, src := range cases {
		compressed := tree.Compress(nil, src)
		decoded, err := tree.Decompress(nil, compressed, len(src)+1)
		require.NoError(t, err)
		require.Equal(t, src, decoded)
	}
}

func TestRoundTripRandom(t *testing.T) {
	tree := NewTree()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		n := rng.Intn(2000)
		src := make([]byte, n)
		_, _ = rng.Read(src)

		compressed := tree.Compress(nil, src)
		decoded, err := tree.Decompress(nil, compressed, n)
		require.NoError(t, err)
		require.Equal(t, src, decoded)
	}
}

func TestCompressAppendsToExistingSlice(t *testing.T) {
	tree := NewTree()
	dst := []byte{0xAA}
	out := tree.Compress(dst, []byte("hi"))
	require.Equal(t, byte(0xAA), out[0])
}

func TestDecompressOutputTooBig(t *testing.T) {
	tree := NewTree()
	src := bytes.Repeat([]byte{'a'}, 100)
	compressed := tree.Compress(nil, src)

	_, err := tree.Decompress(nil, compressed, 10)
	require.ErrorIs(t, err, errs.ErrHuffmanOutputTooBig)
}

func TestDecompressTruncatedStream(t *testing.T) {
	tree := NewTree()
	compressed := tree.Compress(nil, []byte("hello world"))

	_, err := tree.Decompress(nil, compressed[:1], 100)
	require.Error(t, err)
}
