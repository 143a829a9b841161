// Package compress implements the demo format's two-stage data codec:
// every snapshot, delta, and message payload is varint-packed and then
// Huffman-compressed before it is framed into a chunk (see package demo).
//
// Unlike a general-purpose compression library, this format has exactly
// one wire-compatible algorithm - there is no negotiation and no
// alternative codec a writer could choose, since any other encoding
// would produce bytes existing DDNet clients and replay tools cannot
// parse. The Codec interface below exists purely to give the data codec
// a conventional, testable shape; DataCodec is its only implementation.
package compress

// Compressor compresses a decoded int32 payload into its wire bytes.
type Compressor interface {
	Compress(dst []byte, src []int32) ([]byte, error)
}

// Decompressor restores wire bytes to their decoded int32 payload.
type Decompressor interface {
	Decompress(dst []int32, src []byte, maxWords int) ([]int32, error)
}

// Codec combines both directions of the data codec.
type Codec interface {
	Compressor
	Decompressor
}
