package huffman

import "github.com/teeworlds-community/ddnetdemo/errs"

// Compress Huffman-encodes src, appending the result to dst and returning
// the extended slice. The stream always ends with the EOF symbol's code
// followed by one final byte even if no bits remain in it, matching the
// format's fixed trailing-byte convention.
func (t *Tree) Compress(dst, src []byte) []byte {
	var bits uint32
	var bitCount uint32

	for _, s := range src {
		n := &t.nodes[s]
		bits |= n.bits << bitCount
		bitCount += n.numBits
		for bitCount >= 8 {
			dst = append(dst, byte(bits))
			bits >>= 8
			bitCount -= 8
		}
	}

	eof := &t.nodes[EOFSymbol]
	bits |= eof.bits << bitCount
	bitCount += eof.numBits
	for bitCount >= 8 {
		dst = append(dst, byte(bits))
		bits >>= 8
		bitCount -= 8
	}
	dst = append(dst, byte(bits))

	return dst
}

// Decompress Huffman-decodes src, appending decoded bytes to dst up to
// maxOutput bytes, and returns the extended slice. It stops at the EOF
// symbol; encountering the output limit first is reported as
// errs.ErrHuffmanOutputTooBig, and a malformed stream (underflow before
// EOF, or a decode-table walk that falls off the tree) is reported as a
// corrupt/truncated error.
func (t *Tree) Decompress(dst, src []byte, maxOutput int) ([]byte, error) {
	var bits uint32
	var bitCount uint32
	pos := 0
	eof := &t.nodes[EOFSymbol]

	for {
		var n *node
		if bitCount >= lutBits {
			n = t.decodeLUT[bits&lutMask]
		}

		for bitCount < 24 && pos < len(src) {
			bits |= uint32(src[pos]) << bitCount
			pos++
			bitCount += 8
		}

		if n == nil {
			n = t.decodeLUT[bits&lutMask]
		}
		if n == nil {
			return dst, errs.ErrHuffmanInvalidNode
		}

		if n.numBits != 0 {
			bits >>= n.numBits
			bitCount -= n.numBits
		} else {
			bits >>= lutBits
			bitCount -= lutBits
			for {
				n = &t.nodes[n.leafs[bits&1]]
				bitCount--
				bits >>= 1
				if n.numBits != 0 {
					break
				}
				if bitCount == 0 {
					return dst, errs.ErrHuffmanTruncated
				}
			}
		}

		if n == eof {
			return dst, nil
		}

		if len(dst) >= maxOutput {
			return dst, errs.ErrHuffmanOutputTooBig
		}
		dst = append(dst, n.symbol)
	}
}
