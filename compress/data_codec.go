package compress

import (
	"github.com/teeworlds-community/ddnetdemo/bitpack"
	"github.com/teeworlds-community/ddnetdemo/huffman"
	"github.com/teeworlds-community/ddnetdemo/internal/pool"
)

// DataCodec is the demo format's two-stage data codec: it varint-packs a
// slice of 32-bit signed integers into bytes, then Huffman-compresses the
// resulting byte stream. Decompress inverts both stages.
//
// A DataCodec keeps reusable scratch buffers for the intermediate varint
// byte stream, so it is NOT safe for concurrent use: it is built to be
// owned by a single Writer or Reader, matching their own single-owner
// contract.
type DataCodec struct {
	tree *huffman.Tree

	packBuf   *pool.ByteBuffer
	decompBuf *pool.ByteBuffer
}

var _ Codec = (*DataCodec)(nil)

// NewDataCodec builds the canonical Huffman tree and returns a ready
// DataCodec.
func NewDataCodec() *DataCodec {
	return &DataCodec{
		tree:      huffman.NewTree(),
		packBuf:   pool.NewByteBuffer(pool.BlobBufferDefaultSize),
		decompBuf: pool.NewByteBuffer(pool.BlobBufferDefaultSize),
	}
}

// Compress packs src as variable-length integers and Huffman-compresses
// the result, appending to dst and returning the extended slice.
func (c *DataCodec) Compress(dst []byte, src []int32) ([]byte, error) {
	c.packBuf.Reset()
	c.packBuf.B = bitpack.PackInts(c.packBuf.B, src)

	return c.tree.Compress(dst, c.packBuf.Bytes()), nil
}

// Decompress Huffman-decompresses src into a varint byte stream, then
// unpacks it into up to maxWords signed 32-bit integers, appending to dst
// and returning the extended slice.
func (c *DataCodec) Decompress(dst []int32, src []byte, maxWords int) ([]int32, error) {
	c.decompBuf.Reset()
	var err error
	c.decompBuf.B, err = c.tree.Decompress(c.decompBuf.B, src, maxWords*bitpack.MaxEncodedLen)
	if err != nil {
		return dst, err
	}

	packed := c.decompBuf.Bytes()
	out := dst
	for len(packed) > 0 && len(out)-len(dst) < maxWords {
		v, n, err := bitpack.Unpack(packed)
		if err != nil {
			return dst, err
		}
		out = append(out, v)
		packed = packed[n:]
	}

	return out, nil
}
