package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataCodecRoundTrip(t *testing.T) {
	codec := NewDataCodec()

	cases := [][]int32{
		nil,
		{0},
		{1, -1, 2147483647, -2147483648},
		{0, 0, 0, 0, 0},
		make([]int32, 500),
	}

	for _, src := range cases {
		compressed, err := codec.Compress(nil, src)
		require.NoError(t, err)

		decoded, err := codec.Decompress(nil, compressed, len(src)+1)
		require.NoError(t, err)
		require.Equal(t, src, decoded)
	}
}

func TestDataCodecReusesScratchBuffers(t *testing.T) {
	codec := NewDataCodec()

	first, err := codec.Compress(nil, []int32{1, 2, 3})
	require.NoError(t, err)

	second, err := codec.Compress(nil, []int32{4, 5, 6, 7})
	require.NoError(t, err)

	decodedFirst, err := codec.Decompress(nil, first, 3)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, decodedFirst)

	decodedSecond, err := codec.Decompress(nil, second, 4)
	require.NoError(t, err)
	require.Equal(t, []int32{4, 5, 6, 7}, decodedSecond)
}

func TestDataCodecDecompressRespectsMaxWords(t *testing.T) {
	codec := NewDataCodec()

	src := []int32{1, 2, 3, 4, 5}
	compressed, err := codec.Compress(nil, src)
	require.NoError(t, err)

	decoded, err := codec.Decompress(nil, compressed, 2)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2}, decoded)
}
